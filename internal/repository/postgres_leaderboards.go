package repository

import (
	"context"

	"fittrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresLeaderboardRepository handles ranking snapshot persistence in PostgreSQL.
type PostgresLeaderboardRepository struct {
	db *gorm.DB
}

// Create inserts a snapshot after checking the (period, period_start) key.
func (r *PostgresLeaderboardRepository) Create(ctx context.Context, lb *models.Leaderboard) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Leaderboard{}).
		Where("period = ? AND period_start = ?", lb.Period, lb.PeriodStart.Time).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateKey
	}
	return r.db.WithContext(ctx).Create(lb).Error
}

// Get retrieves a snapshot by id.
func (r *PostgresLeaderboardRepository) Get(ctx context.Context, id string) (*models.Leaderboard, error) {
	var lb models.Leaderboard
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lb).Error; err != nil {
		return nil, translateErr(err)
	}
	return &lb, nil
}

// List retrieves all snapshots, most recent window first.
func (r *PostgresLeaderboardRepository) List(ctx context.Context) ([]models.Leaderboard, error) {
	var lbs []models.Leaderboard
	err := r.db.WithContext(ctx).Order("period_start DESC").Find(&lbs).Error
	return lbs, err
}

// LatestByPeriod retrieves the snapshot with the newest period_start for the
// given period.
func (r *PostgresLeaderboardRepository) LatestByPeriod(ctx context.Context, period string) (*models.Leaderboard, error) {
	var lb models.Leaderboard
	err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("period_start DESC").
		First(&lb).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &lb, nil
}

// Upsert writes a snapshot keyed on (period, period_start), refreshing the
// rankings of an existing window in place.
func (r *PostgresLeaderboardRepository) Upsert(ctx context.Context, lb *models.Leaderboard) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "period"}, {Name: "period_start"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"period_end", "user_rankings", "team_rankings", "updated_at",
		}),
	}).Create(lb).Error
}

// Update saves a full snapshot record.
func (r *PostgresLeaderboardRepository) Update(ctx context.Context, lb *models.Leaderboard) error {
	res := r.db.WithContext(ctx).Model(lb).Select("*").Omit("id", "created_at").Updates(lb)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a snapshot by id.
func (r *PostgresLeaderboardRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Leaderboard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
