package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"fittrack/internal/config"
	"fittrack/internal/models"
	"fittrack/internal/repository"
	"fittrack/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	MinActivitiesPerUser = 5
	MaxActivitiesPerUser = 10
	MinDuration          = 20
	MaxDuration          = 120
)

type seedUser struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	HeroName     string
	FitnessLevel string
	Team         string
	JoinedDays   int
	BasePoints   int
}

var seedUsers = []seedUser{
	{"ironman", "ironman@avengers.com", "Tony", "Stark", "Iron Man", models.FitnessAdvanced, "Team Marvel", 100, 950},
	{"spiderman", "spiderman@avengers.com", "Peter", "Parker", "Spider-Man", models.FitnessIntermediate, "Team Marvel", 80, 890},
	{"blackwidow", "blackwidow@avengers.com", "Natasha", "Romanoff", "Black Widow", models.FitnessAdvanced, "Team Marvel", 95, 870},
	{"captainamerica", "cap@avengers.com", "Steve", "Rogers", "Captain America", models.FitnessAdvanced, "Team Marvel", 110, 920},
	{"thor", "thor@avengers.com", "Thor", "Odinson", "Thor", models.FitnessAdvanced, "Team Marvel", 120, 880},
	{"batman", "batman@justiceleague.com", "Bruce", "Wayne", "Batman", models.FitnessAdvanced, "Team DC", 105, 940},
	{"superman", "superman@justiceleague.com", "Clark", "Kent", "Superman", models.FitnessAdvanced, "Team DC", 115, 980},
	{"wonderwoman", "wonderwoman@justiceleague.com", "Diana", "Prince", "Wonder Woman", models.FitnessAdvanced, "Team DC", 100, 910},
	{"flash", "flash@justiceleague.com", "Barry", "Allen", "The Flash", models.FitnessIntermediate, "Team DC", 85, 860},
	{"aquaman", "aquaman@justiceleague.com", "Arthur", "Curry", "Aquaman", models.FitnessIntermediate, "Team DC", 90, 850},
}

func main() {
	log.Println("🌱 Starting seeder for FitTrack...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("✓ Connected to PostgreSQL")

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("✓ Connected to Redis")

	store := repository.NewPostgresStore(db)
	redisRepo := repository.NewRedisRepository(redisClient)

	if err := store.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("✓ Database migrations completed")

	ctx := context.Background()

	log.Println("🧹 Clearing existing data...")
	if err := store.Truncate(ctx); err != nil {
		log.Fatalf("Failed to clear PostgreSQL: %v", err)
	}
	if err := redisRepo.Reset(ctx); err != nil {
		log.Fatalf("Failed to clear Redis: %v", err)
	}

	log.Println("🏅 Creating teams...")
	teamIDs, err := seedTeams(ctx, store)
	if err != nil {
		log.Fatalf("Failed to seed teams: %v", err)
	}

	log.Println("🦸 Creating superhero users...")
	users, err := seedProfiles(ctx, store, teamIDs)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Println("🏃 Logging activities...")
	activityService := service.NewActivityService(store.Activities, store.Users, nil)
	activityCount, err := seedActivities(ctx, activityService, users)
	if err != nil {
		log.Fatalf("Failed to seed activities: %v", err)
	}

	log.Println("💪 Creating workout catalog...")
	workoutService := service.NewWorkoutService(store.Workouts, store.Users)
	workoutCount, err := seedWorkouts(ctx, workoutService)
	if err != nil {
		log.Fatalf("Failed to seed workouts: %v", err)
	}

	log.Println("🏆 Building leaderboard snapshots...")
	leaderboardService := service.NewLeaderboardService(store.Leaderboards, store.Users, store.Teams, redisRepo)
	if err := leaderboardService.BuildSnapshots(ctx, time.Now()); err != nil {
		log.Fatalf("Failed to build snapshots: %v", err)
	}

	log.Println("⚡ Populating Redis live ranking...")
	if err := leaderboardService.SyncRanking(ctx); err != nil {
		log.Fatalf("Failed to sync live ranking: %v", err)
	}

	log.Println("✅ Seeding completed successfully!")
	log.Printf("   - Teams: %d", len(teamIDs))
	log.Printf("   - Users: %d", len(users))
	log.Printf("   - Activities: %d", activityCount)
	log.Printf("   - Workouts: %d", workoutCount)

	printTopHeroes(ctx, store)

	store.Close()
	redisRepo.Close()

	log.Println("\n🎉 Seeder finished!")
}

// seedTeams creates the two rival teams and returns their ids by name.
func seedTeams(ctx context.Context, store *repository.PostgresStore) (map[string]string, error) {
	teams := []models.Team{
		{ID: uuid.NewString(), Name: "Team Marvel", Description: "Earth's Mightiest Heroes"},
		{ID: uuid.NewString(), Name: "Team DC", Description: "Justice League United"},
	}
	ids := make(map[string]string, len(teams))
	for i := range teams {
		if err := store.Teams.Create(ctx, &teams[i]); err != nil {
			return nil, fmt.Errorf("create team %s: %w", teams[i].Name, err)
		}
		ids[teams[i].Name] = teams[i].ID
	}
	return ids, nil
}

// seedProfiles inserts the superhero roster and registers each user on their
// team's member list. Base points simulate history predating the logged
// activities.
func seedProfiles(ctx context.Context, store *repository.PostgresStore, teamIDs map[string]string) ([]models.User, error) {
	now := time.Now().UTC()
	users := make([]models.User, 0, len(seedUsers))

	members := make(map[string][]string, len(teamIDs))
	for _, s := range seedUsers {
		teamID := teamIDs[s.Team]
		user := models.User{
			ID:           uuid.NewString(),
			Username:     s.Username,
			Email:        s.Email,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			FitnessLevel: s.FitnessLevel,
			TotalPoints:  s.BasePoints,
			TeamID:       &teamID,
			DateJoined:   now.AddDate(0, 0, -s.JoinedDays),
		}
		if err := store.Users.Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", s.Username, err)
		}
		members[teamID] = append(members[teamID], user.ID)
		users = append(users, user)
	}

	for teamID, ids := range members {
		team, err := store.Teams.Get(ctx, teamID)
		if err != nil {
			return nil, err
		}
		team.MemberIDs = models.StringList(ids)
		if err := store.Teams.Update(ctx, team); err != nil {
			return nil, fmt.Errorf("update team members: %w", err)
		}
	}
	return users, nil
}

// seedActivities logs a random training history per user. Going through the
// points engine means every activity folds its duration into the user total.
func seedActivities(ctx context.Context, svc *service.ActivityService, users []models.User) (int, error) {
	heroNames := make(map[string]string, len(seedUsers))
	for _, s := range seedUsers {
		heroNames[s.Username] = s.HeroName
	}

	count := 0
	for _, user := range users {
		n := rand.Intn(MaxActivitiesPerUser-MinActivitiesPerUser+1) + MinActivitiesPerUser
		for i := 0; i < n; i++ {
			activityType := models.ActivityTypes[rand.Intn(len(models.ActivityTypes))]
			daysAgo := rand.Intn(30) + 1
			req := models.ActivityRequest{
				UserID:       user.ID,
				ActivityType: activityType,
				Duration:     rand.Intn(MaxDuration-MinDuration+1) + MinDuration,
				Notes:        fmt.Sprintf("%s %s session", heroNames[user.Username], activityType),
				Date:         time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02"),
			}
			if rand.Intn(2) == 0 {
				distance := float64(rand.Intn(1300)+200) / 100
				req.Distance = &distance
			}
			calories := rand.Intn(651) + 150
			req.CaloriesBurned = &calories

			if _, err := svc.Record(ctx, req); err != nil {
				return count, fmt.Errorf("record activity for %s: %w", user.Username, err)
			}
			count++
		}
	}
	return count, nil
}

// seedWorkouts loads the suggested workout catalog.
func seedWorkouts(ctx context.Context, svc *service.WorkoutService) (int, error) {
	intPtr := func(v int) *int { return &v }
	workouts := []models.WorkoutRequest{
		{
			Title:             "Hero Strength Training",
			Description:       "Build superhuman strength",
			FitnessLevel:      models.FitnessIntermediate,
			ActivityType:      models.ActivityStrengthTraining,
			Duration:          45,
			EstimatedCalories: intPtr(400),
			Instructions:      []string{"Super Squats: 4x12", "Power Push-ups: 3x15", "Hero Deadlifts: 4x10"},
			EquipmentNeeded:   []string{"barbell", "squat rack"},
		},
		{
			Title:             "Speed Force Cardio",
			Description:       "Lightning-fast cardio workout",
			FitnessLevel:      models.FitnessAdvanced,
			ActivityType:      models.ActivityRunning,
			Duration:          30,
			EstimatedCalories: intPtr(450),
			Instructions:      []string{"Sprint Intervals: 8x30s", "High Knees: 4x1min", "Burpees: 3x20"},
		},
		{
			Title:             "Warrior Flexibility",
			Description:       "Improve agility and flexibility",
			FitnessLevel:      models.FitnessBeginner,
			ActivityType:      models.ActivityYoga,
			Duration:          25,
			EstimatedCalories: intPtr(150),
			Instructions:      []string{"Dynamic Stretching: 5min", "Yoga Flow: 15min", "Cool Down Stretches: 5min"},
			EquipmentNeeded:   []string{"yoga mat"},
		},
		{
			Title:             "Combat Core Training",
			Description:       "Build a steel core",
			FitnessLevel:      models.FitnessIntermediate,
			ActivityType:      models.ActivityStrengthTraining,
			Duration:          35,
			EstimatedCalories: intPtr(300),
			Instructions:      []string{"Plank Holds: 3x1min", "Russian Twists: 4x20", "Leg Raises: 3x15", "Mountain Climbers: 4x45s"},
		},
		{
			Title:             "Endurance Mission",
			Description:       "Build stamina for long missions",
			FitnessLevel:      models.FitnessIntermediate,
			ActivityType:      models.ActivityMixed,
			Duration:          60,
			EstimatedCalories: intPtr(550),
			Instructions:      []string{"Long Distance Run: 40min", "Jump Rope: 10min", "Cool Down Walk: 10min"},
			EquipmentNeeded:   []string{"jump rope"},
		},
	}

	for _, req := range workouts {
		if _, err := svc.Create(ctx, req); err != nil {
			return 0, fmt.Errorf("create workout %s: %w", req.Title, err)
		}
	}
	return len(workouts), nil
}

// printTopHeroes shows the podium after seeding.
func printTopHeroes(ctx context.Context, store *repository.PostgresStore) {
	users, err := store.Users.List(ctx)
	if err != nil {
		log.Printf("Failed to load top users: %v", err)
		return
	}
	teamNames := make(map[string]string)
	if teams, err := store.Teams.List(ctx); err == nil {
		for _, t := range teams {
			teamNames[t.ID] = t.Name
		}
	}

	log.Println("\n📊 Top 3 Heroes:")
	for i, u := range users {
		if i >= 3 {
			break
		}
		team := "-"
		if u.TeamID != nil {
			if name, ok := teamNames[*u.TeamID]; ok {
				team = name
			}
		}
		log.Printf("   %d. %s %s (%s) - %d points - %s",
			i+1, u.FirstName, u.LastName, u.Username, u.TotalPoints, team)
	}
}

// initPostgres initializes PostgreSQL connection
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

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// initRedis initializes Redis connection
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
