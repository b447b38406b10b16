package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/internal/api/handlers"
	"fittrack/internal/config"
	"fittrack/internal/jobs"
	"fittrack/internal/repository"
	"fittrack/internal/service"
	"fittrack/internal/websocket"
	"fittrack/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	store := repository.NewPostgresStore(db)
	redisRepo := repository.NewRedisRepository(redisClient)

	if err := store.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Rank-sync pool: best-effort redis mirroring off the request path.
	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.QueueSize, redisRepo)
	pool.Start()

	hub := websocket.NewHub(redisRepo)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)

	userService := service.NewUserService(store.Users, store.Teams, store.Activities, redisRepo)
	teamService := service.NewTeamService(store.Teams, store.Users)
	activityService := service.NewActivityService(store.Activities, store.Users, pool)
	workoutService := service.NewWorkoutService(store.Workouts, store.Users)
	leaderboardService := service.NewLeaderboardService(store.Leaderboards, store.Users, store.Teams, redisRepo)

	// Seed the live ranking from the source of truth.
	if err := leaderboardService.SyncRanking(context.Background()); err != nil {
		log.Printf("Initial ranking sync failed: %v", err)
	}

	// Optional batch job rebuilding leaderboard snapshots.
	var snapshots *jobs.SnapshotManager
	snapCtx, snapCancel := context.WithCancel(context.Background())
	defer snapCancel()
	if cfg.Snapshots.Enabled {
		snapshots = jobs.NewSnapshotManager(leaderboardService, jobs.SnapshotConfig{
			Interval: cfg.Snapshots.Interval,
		})
		if err := snapshots.Start(snapCtx); err != nil {
			log.Printf("Failed to start snapshot manager: %v", err)
		}
	}

	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	activityHandler := handlers.NewActivityHandler(activityService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, store, redisRepo)

	app := fiber.New(fiber.Config{
		AppName:      "FitTrack API",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api")

	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Get("/:id/activities", userHandler.Activities)
	users.Get("/:id/stats", userHandler.Stats)

	teams := api.Group("/teams")
	teams.Get("/", teamHandler.List)
	teams.Post("/", teamHandler.Create)
	teams.Get("/:id", teamHandler.Get)
	teams.Put("/:id", teamHandler.Update)
	teams.Delete("/:id", teamHandler.Delete)
	teams.Post("/:id/add_member", teamHandler.AddMember)
	teams.Post("/:id/remove_member", teamHandler.RemoveMember)
	teams.Get("/:id/members", teamHandler.Members)

	activities := api.Group("/activities")
	activities.Get("/", activityHandler.List)
	activities.Post("/", activityHandler.Create)
	activities.Get("/by_user", activityHandler.ByUser)
	activities.Get("/by_type", activityHandler.ByType)
	activities.Get("/:id", activityHandler.Get)
	activities.Put("/:id", activityHandler.Update)
	activities.Delete("/:id", activityHandler.Delete)

	workouts := api.Group("/workouts")
	workouts.Get("/", workoutHandler.List)
	workouts.Post("/", workoutHandler.Create)
	workouts.Get("/by_fitness_level", workoutHandler.ByFitnessLevel)
	workouts.Get("/by_activity_type", workoutHandler.ByActivityType)
	workouts.Get("/recommendations", workoutHandler.Recommendations)
	workouts.Get("/:id", workoutHandler.Get)
	workouts.Put("/:id", workoutHandler.Update)
	workouts.Delete("/:id", workoutHandler.Delete)

	leaderboard := api.Group("/leaderboard")
	leaderboard.Get("/", leaderboardHandler.List)
	leaderboard.Post("/", leaderboardHandler.Create)
	leaderboard.Get("/current", leaderboardHandler.Current)
	leaderboard.Get("/:id", leaderboardHandler.Get)
	leaderboard.Put("/:id", leaderboardHandler.Update)
	leaderboard.Delete("/:id", leaderboardHandler.Delete)

	api.Get("/search/:username", leaderboardHandler.Search)
	api.Get("/health", leaderboardHandler.Health)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// WebSocket route with upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", fiberws.New(func(conn *fiberws.Conn) {
		websocket.ServeWS(hub, conn)
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "FitTrack API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/users",
				"GET /api/teams",
				"GET /api/activities",
				"GET /api/workouts",
				"GET /api/leaderboard/current?period=weekly",
				"GET /api/search/:username",
				"GET /api/health",
				"GET /metrics",
				"WS /ws",
			},
			"websocket_clients": hub.ClientCount(),
		})
	})

	// Graceful shutdown with worker pool draining.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		if snapshots != nil {
			snapshots.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}

		if err := pool.Shutdown(30 * time.Second); err != nil {
			log.Printf("Worker pool shutdown error: %v", err)
		}

		if err := store.Close(); err != nil {
			log.Printf("Error closing PostgreSQL: %v", err)
		}
		if err := redisRepo.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}

		log.Println("Server shutdown complete")
	}()

	port := cfg.Server.Port
	log.Printf("Server starting on port %d...", port)
	if err := app.Listen(fmt.Sprintf(":%d", port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initPostgres initializes PostgreSQL connection with connection pooling
func initPostgres(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Max connections should cover the worker pool plus request handlers.
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// initRedis initializes Redis connection with connection pooling
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   "Request failed",
		"message": err.Error(),
	})
}
