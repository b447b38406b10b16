package repository

import (
	"context"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// PostgresTeamRepository handles team persistence in PostgreSQL.
type PostgresTeamRepository struct {
	db *gorm.DB
}

// Create inserts a team after checking the name unique key.
func (r *PostgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	if err := r.checkUnique(ctx, team.Name, ""); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(team).Error
}

// Get retrieves a team by id.
func (r *PostgresTeamRepository) Get(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error; err != nil {
		return nil, translateErr(err)
	}
	return &team, nil
}

// List retrieves all teams ordered by total points descending.
func (r *PostgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).Order("total_points DESC").Find(&teams).Error
	return teams, err
}

// Update saves a full team record, re-checking the name against other rows.
func (r *PostgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	if err := r.checkUnique(ctx, team.Name, team.ID); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(team).Select("*").Omit("id", "created_at").Updates(team)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a team by id.
func (r *PostgresTeamRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Team{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresTeamRepository) checkUnique(ctx context.Context, name, excludeID string) error {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Team{}).Where("name = ?", name)
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
