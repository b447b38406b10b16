package repository

import (
	"context"
	"errors"

	"fittrack/internal/models"
)

// Store-level errors. Handlers map these onto HTTP statuses.
var (
	// ErrNotFound means no record matched the given id or query.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey means a unique constraint (username, email, team name,
	// leaderboard period+period_start) would be violated. Checked before any
	// write is committed.
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserRepository is the data-access contract for user profiles.
// List results are ordered by total_points descending.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	// IncrementPoints folds a points delta into the user's running total as a
	// single atomic update. Returns false when the user does not exist.
	IncrementPoints(ctx context.Context, id string, delta int) (bool, error)
}

// TeamRepository is the data-access contract for teams.
// List results are ordered by total_points descending.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	Get(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepository is the data-access contract for logged activities.
// List results are ordered by date descending, then created_at descending.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	Get(ctx context.Context, id string) (*models.Activity, error)
	List(ctx context.Context) ([]models.Activity, error)
	ListByUser(ctx context.Context, userID string) ([]models.Activity, error)
	ListByType(ctx context.Context, activityType string) ([]models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id string) error
}

// WorkoutRepository is the data-access contract for the workout catalog.
// List results are ordered by fitness_level, then title ascending.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	Get(ctx context.Context, id string) (*models.Workout, error)
	List(ctx context.Context) ([]models.Workout, error)

	// ListByLevels returns workouts whose fitness_level is in levels, in the
	// default catalog ordering. A limit <= 0 means no cap.
	ListByLevels(ctx context.Context, levels []string, limit int) ([]models.Workout, error)
	ListByType(ctx context.Context, activityType string) ([]models.Workout, error)
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, id string) error
}

// LeaderboardRepository is the data-access contract for ranking snapshots.
// List results are ordered by period_start descending.
type LeaderboardRepository interface {
	Create(ctx context.Context, lb *models.Leaderboard) error
	Get(ctx context.Context, id string) (*models.Leaderboard, error)
	List(ctx context.Context) ([]models.Leaderboard, error)

	// LatestByPeriod returns the snapshot with the maximum period_start for
	// the given period, or ErrNotFound.
	LatestByPeriod(ctx context.Context, period string) (*models.Leaderboard, error)

	// Upsert writes a snapshot keyed on (period, period_start), replacing the
	// rankings of an existing snapshot for the same window.
	Upsert(ctx context.Context, lb *models.Leaderboard) error
	Update(ctx context.Context, lb *models.Leaderboard) error
	Delete(ctx context.Context, id string) error
}
