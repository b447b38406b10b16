package repository

import (
	"context"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// PostgresWorkoutRepository handles workout catalog persistence in PostgreSQL.
type PostgresWorkoutRepository struct {
	db *gorm.DB
}

// Create inserts a workout suggestion.
func (r *PostgresWorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

// Get retrieves a workout by id.
func (r *PostgresWorkoutRepository) Get(ctx context.Context, id string) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&workout).Error; err != nil {
		return nil, translateErr(err)
	}
	return &workout, nil
}

// List retrieves the full catalog in the default ordering.
func (r *PostgresWorkoutRepository) List(ctx context.Context) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.WithContext(ctx).Order("fitness_level ASC, title ASC").Find(&workouts).Error
	return workouts, err
}

// ListByLevels retrieves workouts whose fitness_level is in levels.
func (r *PostgresWorkoutRepository) ListByLevels(ctx context.Context, levels []string, limit int) ([]models.Workout, error) {
	var workouts []models.Workout
	q := r.db.WithContext(ctx).
		Where("fitness_level IN ?", levels).
		Order("fitness_level ASC, title ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&workouts).Error
	return workouts, err
}

// ListByType retrieves workouts of one activity type.
func (r *PostgresWorkoutRepository) ListByType(ctx context.Context, activityType string) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.WithContext(ctx).
		Where("activity_type = ?", activityType).
		Order("fitness_level ASC, title ASC").
		Find(&workouts).Error
	return workouts, err
}

// Update saves a full workout record.
func (r *PostgresWorkoutRepository) Update(ctx context.Context, workout *models.Workout) error {
	res := r.db.WithContext(ctx).Model(workout).Select("*").Omit("id", "created_at").Updates(workout)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a workout by id.
func (r *PostgresWorkoutRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Workout{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
