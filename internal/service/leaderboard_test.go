package service

import (
	"context"
	"testing"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodWindow(t *testing.T) {
	// 2024-05-15 is a Wednesday.
	wednesday := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    string
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{"daily", models.PeriodDaily, wednesday, "2024-05-15", "2024-05-15"},
		{"weekly mid-week", models.PeriodWeekly, wednesday, "2024-05-13", "2024-05-19"},
		{"weekly on monday", models.PeriodWeekly, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), "2024-05-13", "2024-05-19"},
		{"weekly on sunday", models.PeriodWeekly, time.Date(2024, 5, 19, 23, 59, 0, 0, time.UTC), "2024-05-13", "2024-05-19"},
		{"monthly leap february", models.PeriodMonthly, time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{"monthly", models.PeriodMonthly, wednesday, "2024-05-01", "2024-05-31"},
		{"all time", models.PeriodAllTime, wednesday, "1970-01-01", "2024-05-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PeriodWindow(tt.period, tt.now)
			assert.Equal(t, tt.wantStart, start.String())
			assert.Equal(t, tt.wantEnd, end.String())
		})
	}
}

func TestBuildSnapshotsAssignsDenseRanks(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLeaderboardService(store.Leaderboards, store.Users, store.Teams, nil)
	ctx := context.Background()

	high := &models.User{Username: "high", Email: "high@example.com", TotalPoints: 300}
	mid := &models.User{Username: "mid", Email: "mid@example.com", TotalPoints: 200}
	low := &models.User{Username: "low", Email: "low@example.com", TotalPoints: 100}
	for _, u := range []*models.User{mid, high, low} {
		require.NoError(t, store.Users.Create(ctx, u))
	}
	require.NoError(t, store.Teams.Create(ctx, &models.Team{Name: "Only Team", TotalPoints: 600}))

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.BuildSnapshots(ctx, now))

	board, err := svc.Current(ctx, models.PeriodWeekly)
	require.NoError(t, err)
	require.Len(t, board.UserRankings, 3)

	assert.Equal(t, high.ID, board.UserRankings[0].UserID)
	assert.Equal(t, 1, board.UserRankings[0].Rank)
	assert.Equal(t, 300, board.UserRankings[0].Points)
	assert.Equal(t, mid.ID, board.UserRankings[1].UserID)
	assert.Equal(t, 2, board.UserRankings[1].Rank)
	assert.Equal(t, low.ID, board.UserRankings[2].UserID)
	assert.Equal(t, 3, board.UserRankings[2].Rank)

	require.Len(t, board.TeamRankings, 1)
	assert.Equal(t, 1, board.TeamRankings[0].Rank)
	assert.Equal(t, "2024-05-13", board.PeriodStart.String())
}

func TestBuildSnapshotsUpsertsSameWindow(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLeaderboardService(store.Leaderboards, store.Users, store.Teams, nil)
	ctx := context.Background()

	user := &models.User{Username: "solo", Email: "solo@example.com", TotalPoints: 10}
	require.NoError(t, store.Users.Create(ctx, user))

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.BuildSnapshots(ctx, now))

	_, err := store.Users.IncrementPoints(ctx, user.ID, 90)
	require.NoError(t, err)
	require.NoError(t, svc.BuildSnapshots(ctx, now.Add(time.Hour)))

	// Same window rebuilt in place, one snapshot per period.
	boards, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, len(models.Periods))

	board, err := svc.Current(ctx, models.PeriodDaily)
	require.NoError(t, err)
	require.Len(t, board.UserRankings, 1)
	assert.Equal(t, 100, board.UserRankings[0].Points)
}

func TestCurrentReturnsLatestPeriodStart(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLeaderboardService(store.Leaderboards, store.Users, store.Teams, nil)
	ctx := context.Background()

	older, _ := models.ParseDate("2024-05-06")
	newer, _ := models.ParseDate("2024-05-13")
	require.NoError(t, store.Leaderboards.Create(ctx, &models.Leaderboard{
		Period: models.PeriodWeekly, PeriodStart: older, PeriodEnd: models.NewDate(older.AddDate(0, 0, 6)),
	}))
	require.NoError(t, store.Leaderboards.Create(ctx, &models.Leaderboard{
		Period: models.PeriodWeekly, PeriodStart: newer, PeriodEnd: models.NewDate(newer.AddDate(0, 0, 6)),
	}))

	board, err := svc.Current(ctx, models.PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-13", board.PeriodStart.String())
}

func TestCurrentValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLeaderboardService(store.Leaderboards, store.Users, store.Teams, nil)
	ctx := context.Background()

	_, err := svc.Current(ctx, "fortnightly")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Current(ctx, models.PeriodMonthly)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateSnapshotDuplicateWindow(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewLeaderboardService(store.Leaderboards, store.Users, store.Teams, nil)
	ctx := context.Background()

	req := models.LeaderboardRequest{
		Period:      models.PeriodWeekly,
		PeriodStart: "2024-05-13",
		PeriodEnd:   "2024-05-19",
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}
