package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/google/uuid"
)

// LeaderboardService handles ranking snapshots: period lookup, snapshot CRUD,
// snapshot building, and the live-rank mirror.
type LeaderboardService struct {
	leaderboards repository.LeaderboardRepository
	users        repository.UserRepository
	teams        repository.TeamRepository
	redisRepo    *repository.RedisRepository
}

// NewLeaderboardService creates the leaderboard service. redisRepo may be nil
// when no live ranking is wired.
func NewLeaderboardService(
	leaderboards repository.LeaderboardRepository,
	users repository.UserRepository,
	teams repository.TeamRepository,
	redisRepo *repository.RedisRepository,
) *LeaderboardService {
	return &LeaderboardService{
		leaderboards: leaderboards,
		users:        users,
		teams:        teams,
		redisRepo:    redisRepo,
	}
}

// Current returns the snapshot with the newest period_start for the period.
// Ranks were fixed at write time; nothing is re-sorted here.
func (s *LeaderboardService) Current(ctx context.Context, period string) (*models.Leaderboard, error) {
	if !models.ValidPeriod(period) {
		return nil, models.NewValidationError("period", "unknown period")
	}
	return s.leaderboards.LatestByPeriod(ctx, period)
}

// Get retrieves one snapshot.
func (s *LeaderboardService) Get(ctx context.Context, id string) (*models.Leaderboard, error) {
	return s.leaderboards.Get(ctx, id)
}

// List returns all snapshots, most recent window first.
func (s *LeaderboardService) List(ctx context.Context) ([]models.Leaderboard, error) {
	return s.leaderboards.List(ctx)
}

// Create stores an externally built snapshot.
func (s *LeaderboardService) Create(ctx context.Context, req models.LeaderboardRequest) (*models.Leaderboard, error) {
	lb, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	lb.ID = uuid.NewString()
	if err := s.leaderboards.Create(ctx, lb); err != nil {
		return nil, err
	}
	return lb, nil
}

// Update replaces a snapshot's fields.
func (s *LeaderboardService) Update(ctx context.Context, id string, req models.LeaderboardRequest) (*models.Leaderboard, error) {
	existing, err := s.leaderboards.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	lb, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	lb.ID = existing.ID
	lb.CreatedAt = existing.CreatedAt
	if err := s.leaderboards.Update(ctx, lb); err != nil {
		return nil, err
	}
	return lb, nil
}

// Delete removes a snapshot.
func (s *LeaderboardService) Delete(ctx context.Context, id string) error {
	return s.leaderboards.Delete(ctx, id)
}

func (s *LeaderboardService) fromRequest(req models.LeaderboardRequest) (*models.Leaderboard, error) {
	if !models.ValidPeriod(req.Period) {
		return nil, models.NewValidationError("period", "unknown period")
	}
	start, err := models.ParseDate(req.PeriodStart)
	if err != nil {
		return nil, models.NewValidationError("period_start", "must be formatted YYYY-MM-DD")
	}
	end, err := models.ParseDate(req.PeriodEnd)
	if err != nil {
		return nil, models.NewValidationError("period_end", "must be formatted YYYY-MM-DD")
	}
	return &models.Leaderboard{
		Period:       req.Period,
		PeriodStart:  start,
		PeriodEnd:    end,
		UserRankings: models.UserRankings(req.UserRankings),
		TeamRankings: models.TeamRankings(req.TeamRankings),
	}, nil
}

// BuildSnapshots rebuilds the snapshot for every period's current window.
// Rankings sort by total points descending with dense 1-based ranks fixed at
// write time. Batch responsibility: never invoked on the request path.
func (s *LeaderboardService) BuildSnapshots(ctx context.Context, now time.Time) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}

	userRankings := make(models.UserRankings, 0, len(users))
	for i, u := range users {
		userRankings = append(userRankings, models.UserRanking{
			UserID: u.ID,
			Points: u.TotalPoints,
			Rank:   i + 1,
		})
	}
	// Team totals are externally maintained aggregates; they are ranked as
	// stored, not recomputed from member activity.
	teamRankings := make(models.TeamRankings, 0, len(teams))
	for i, t := range teams {
		teamRankings = append(teamRankings, models.TeamRanking{
			TeamID: t.ID,
			Points: t.TotalPoints,
			Rank:   i + 1,
		})
	}

	for _, period := range models.Periods {
		start, end := PeriodWindow(period, now)
		lb := &models.Leaderboard{
			ID:           uuid.NewString(),
			Period:       period,
			PeriodStart:  start,
			PeriodEnd:    end,
			UserRankings: userRankings,
			TeamRankings: teamRankings,
		}
		if err := s.leaderboards.Upsert(ctx, lb); err != nil {
			return fmt.Errorf("failed to save %s snapshot: %w", period, err)
		}
		log.Printf("leaderboard snapshot saved: %s %s..%s (%d users, %d teams)",
			period, start, end, len(userRankings), len(teamRankings))
	}
	return nil
}

// SyncRanking mirrors every user's total into the live Redis ranking.
// Used at startup and by the seeder.
func (s *LeaderboardService) SyncRanking(ctx context.Context) error {
	if s.redisRepo == nil {
		return nil
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if len(users) == 0 {
		return nil
	}
	points := make(map[string]int, len(users))
	for _, u := range users {
		points[u.Username] = u.TotalPoints
	}
	if err := s.redisRepo.BulkUpdatePoints(ctx, points); err != nil {
		return fmt.Errorf("failed to sync ranking: %w", err)
	}
	log.Printf("synced %d users into the live ranking", len(users))
	return nil
}

// SearchUser looks up a user's live rank and points.
func (s *LeaderboardService) SearchUser(ctx context.Context, username string) (*models.SearchResponse, error) {
	if s.redisRepo == nil {
		return nil, repository.ErrNotFound
	}
	rank, err := s.redisRepo.GetUserRank(ctx, username)
	if err != nil {
		return nil, err
	}
	points, err := s.redisRepo.GetUserPoints(ctx, username)
	if err != nil {
		return nil, err
	}
	return &models.SearchResponse{
		GlobalRank: rank,
		Username:   username,
		Points:     points,
	}, nil
}

// PeriodWindow computes the calendar window a period covers at the given
// instant. Weeks start on Monday; all_time runs from the Unix epoch.
func PeriodWindow(period string, now time.Time) (models.Date, models.Date) {
	day := models.NewDate(now)
	switch period {
	case models.PeriodDaily:
		return day, day
	case models.PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := models.NewDate(day.AddDate(0, 0, -offset))
		return start, models.NewDate(start.AddDate(0, 0, 6))
	case models.PeriodMonthly:
		start := models.NewDate(time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC))
		return start, models.NewDate(start.AddDate(0, 1, -1))
	default: // all_time
		return models.NewDate(time.Unix(0, 0).UTC()), day
	}
}
