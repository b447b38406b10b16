package repository

import (
	"context"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// PostgresActivityRepository handles activity persistence in PostgreSQL.
type PostgresActivityRepository struct {
	db *gorm.DB
}

// Create inserts a logged activity.
func (r *PostgresActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// Get retrieves an activity by id.
func (r *PostgresActivityRepository) Get(ctx context.Context, id string) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error; err != nil {
		return nil, translateErr(err)
	}
	return &activity, nil
}

// List retrieves all activities, newest activity date first.
func (r *PostgresActivityRepository) List(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&activities).Error
	return activities, err
}

// ListByUser retrieves the activity history of one user.
func (r *PostgresActivityRepository) ListByUser(ctx context.Context, userID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&activities).Error
	return activities, err
}

// ListByType retrieves activities of one activity type.
func (r *PostgresActivityRepository) ListByType(ctx context.Context, activityType string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Where("activity_type = ?", activityType).
		Order("date DESC, created_at DESC").
		Find(&activities).Error
	return activities, err
}

// Update saves a full activity record. Re-saving does not re-adjust the
// owning user's total; the fold is one-way.
func (r *PostgresActivityRepository) Update(ctx context.Context, activity *models.Activity) error {
	res := r.db.WithContext(ctx).Model(activity).Select("*").Omit("id", "created_at").Updates(activity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an activity by id.
func (r *PostgresActivityRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Activity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
