package repository

import (
	"context"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// PostgresUserRepository handles user persistence in PostgreSQL.
type PostgresUserRepository struct {
	db *gorm.DB
}

// Create inserts a user after checking the username and email unique keys.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.checkUnique(ctx, user.Username, user.Email, ""); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// Get retrieves a user by id.
func (r *PostgresUserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// List retrieves all users ordered by total points descending.
func (r *PostgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("total_points DESC").Find(&users).Error
	return users, err
}

// ListByIDs retrieves the users whose id is in ids, in the default ordering.
// Used for team membership resolution.
func (r *PostgresUserRepository) ListByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("total_points DESC").Find(&users).Error
	return users, err
}

// Update saves a full user record, re-checking unique keys against other rows.
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.checkUnique(ctx, user.Username, user.Email, user.ID); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(user).Select("*").Omit("id", "created_at").Updates(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user by id.
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementPoints applies the points delta in a single UPDATE so concurrent
// folds cannot lose each other's increments.
func (r *PostgresUserRepository) IncrementPoints(ctx context.Context, id string, delta int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("total_points", gorm.Expr("total_points + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// checkUnique rejects a write that would duplicate another row's username or
// email. excludeID skips the row being updated.
func (r *PostgresUserRepository) checkUnique(ctx context.Context, username, email, excludeID string) error {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateKey
	}
	return nil
}
