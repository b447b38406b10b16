package repository

import (
	"context"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// PostgresStore bundles the GORM-backed repositories behind one handle so the
// connection pool is shared and has a single lifecycle.
type PostgresStore struct {
	db           *gorm.DB
	Users        *PostgresUserRepository
	Teams        *PostgresTeamRepository
	Activities   *PostgresActivityRepository
	Workouts     *PostgresWorkoutRepository
	Leaderboards *PostgresLeaderboardRepository
}

// NewPostgresStore creates the repository set on top of an open connection.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{
		db:           db,
		Users:        &PostgresUserRepository{db: db},
		Teams:        &PostgresTeamRepository{db: db},
		Activities:   &PostgresActivityRepository{db: db},
		Workouts:     &PostgresWorkoutRepository{db: db},
		Leaderboards: &PostgresLeaderboardRepository{db: db},
	}
}

// AutoMigrate runs database migrations for all entity tables.
func (s *PostgresStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Activity{},
		&models.Workout{},
		&models.Leaderboard{},
	)
}

// Truncate clears every entity table. Seeder use only.
func (s *PostgresStore) Truncate(ctx context.Context) error {
	tables := []interface{}{
		&models.Activity{},
		&models.Leaderboard{},
		&models.Workout{},
		&models.User{},
		&models.Team{},
	}
	for _, table := range tables {
		err := s.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(table).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Ping checks if database is reachable
func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateErr maps gorm sentinel errors onto the repository taxonomy.
func translateErr(err error) error {
	if err == gorm.ErrRecordNotFound {
		return ErrNotFound
	}
	return err
}
