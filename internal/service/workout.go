package service

import (
	"context"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/google/uuid"
)

// WorkoutService handles the workout catalog and the recommendation filter.
type WorkoutService struct {
	workouts repository.WorkoutRepository
	users    repository.UserRepository
}

// NewWorkoutService creates the workout service.
func NewWorkoutService(workouts repository.WorkoutRepository, users repository.UserRepository) *WorkoutService {
	return &WorkoutService{workouts: workouts, users: users}
}

// Create adds a workout suggestion to the catalog.
func (s *WorkoutService) Create(ctx context.Context, req models.WorkoutRequest) (*models.Workout, error) {
	level := req.FitnessLevel
	if level == "" {
		level = models.FitnessAll
	}
	workout := &models.Workout{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Description:       req.Description,
		FitnessLevel:      level,
		ActivityType:      req.ActivityType,
		Duration:          req.Duration,
		EstimatedCalories: req.EstimatedCalories,
		Instructions:      models.StringList(req.Instructions),
		EquipmentNeeded:   models.StringList(req.EquipmentNeeded),
	}
	if err := s.workouts.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Get retrieves one workout.
func (s *WorkoutService) Get(ctx context.Context, id string) (*models.Workout, error) {
	return s.workouts.Get(ctx, id)
}

// List returns the full catalog in the default ordering (fitness_level, then
// title ascending).
func (s *WorkoutService) List(ctx context.Context) ([]models.Workout, error) {
	return s.workouts.List(ctx)
}

// ByFitnessLevel returns workouts matching the level or marked for all
// levels, uncapped. An empty level defaults to "all".
func (s *WorkoutService) ByFitnessLevel(ctx context.Context, level string) ([]models.Workout, error) {
	if level == "" {
		level = models.FitnessAll
	}
	switch level {
	case models.FitnessBeginner, models.FitnessIntermediate, models.FitnessAdvanced, models.FitnessAll:
	default:
		return nil, models.NewValidationError("fitness_level", "unknown fitness level")
	}
	levels := []string{level}
	if level != models.FitnessAll {
		levels = append(levels, models.FitnessAll)
	}
	return s.workouts.ListByLevels(ctx, levels, 0)
}

// ByActivityType returns workouts of one activity type, uncapped.
func (s *WorkoutService) ByActivityType(ctx context.Context, activityType string) ([]models.Workout, error) {
	if activityType == "" {
		return nil, models.NewValidationError("activity_type", "parameter is required")
	}
	if !models.ValidActivityType(activityType) && activityType != models.ActivityMixed {
		return nil, models.NewValidationError("activity_type", "unknown activity type")
	}
	return s.workouts.ListByType(ctx, activityType)
}

// Recommend selects workouts for the user's fitness level (exact match or
// "all"), truncated to the first RecommendationLimit entries under the
// catalog's default ordering. Fails when the user does not exist.
func (s *WorkoutService) Recommend(ctx context.Context, userID string) ([]models.Workout, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "parameter is required")
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	levels := []string{user.FitnessLevel, models.FitnessAll}
	return s.workouts.ListByLevels(ctx, levels, models.RecommendationLimit)
}

// Update replaces a workout's fields.
func (s *WorkoutService) Update(ctx context.Context, id string, req models.WorkoutRequest) (*models.Workout, error) {
	existing, err := s.workouts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = req.Title
	existing.Description = req.Description
	if req.FitnessLevel != "" {
		existing.FitnessLevel = req.FitnessLevel
	}
	existing.ActivityType = req.ActivityType
	existing.Duration = req.Duration
	existing.EstimatedCalories = req.EstimatedCalories
	existing.Instructions = models.StringList(req.Instructions)
	existing.EquipmentNeeded = models.StringList(req.EquipmentNeeded)
	if err := s.workouts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a workout from the catalog.
func (s *WorkoutService) Delete(ctx context.Context, id string) error {
	return s.workouts.Delete(ctx, id)
}
