package service

import (
	"context"
	"testing"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDefaults(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store.Users, store.Teams, store.Activities, nil)

	user, err := svc.Create(context.Background(), models.UserRequest{
		Username: "newbie",
		Email:    "newbie@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FitnessBeginner, user.FitnessLevel)
	assert.Equal(t, 0, user.TotalPoints)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.DateJoined.IsZero())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store.Users, store.Teams, store.Activities, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.UserRequest{Username: "alpha", Email: "shared@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, models.UserRequest{Username: "beta", Email: "shared@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	_, err = svc.Create(ctx, models.UserRequest{Username: "alpha", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestUpdateUserPreservesDerivedFields(t *testing.T) {
	store := repository.NewMemoryStore()
	users := NewUserService(store.Users, store.Teams, store.Activities, nil)
	activities := NewActivityService(store.Activities, store.Users, nil)
	ctx := context.Background()

	user, err := users.Create(ctx, models.UserRequest{Username: "gamma", Email: "gamma@example.com"})
	require.NoError(t, err)

	_, err = activities.Record(ctx, models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivityYoga,
		Duration:     25,
		Date:         "2025-07-01",
	})
	require.NoError(t, err)

	updated, err := users.Update(ctx, user.ID, models.UserRequest{
		Username:     "gamma",
		Email:        "gamma@example.com",
		FirstName:    "Renamed",
		FitnessLevel: models.FitnessAdvanced,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FirstName)
	assert.Equal(t, models.FitnessAdvanced, updated.FitnessLevel)
	assert.Equal(t, 25, updated.TotalPoints)
	assert.Equal(t, user.DateJoined, updated.DateJoined)
}

func TestListWithTeamNames(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store.Users, store.Teams, store.Activities, nil)
	ctx := context.Background()

	team := &models.Team{Name: "Team Rocket"}
	require.NoError(t, store.Teams.Create(ctx, team))

	dangling := "deleted-team"
	_, err := svc.Create(ctx, models.UserRequest{Username: "member", Email: "member@example.com", TeamID: &team.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.UserRequest{Username: "orphan", Email: "orphan@example.com", TeamID: &dangling})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.UserRequest{Username: "solo", Email: "solo@example.com"})
	require.NoError(t, err)

	out, err := svc.ListWithTeamNames(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)

	byUsername := make(map[string]*string)
	for _, u := range out {
		byUsername[u.Username] = u.TeamName
	}
	require.NotNil(t, byUsername["member"])
	assert.Equal(t, "Team Rocket", *byUsername["member"])
	assert.Nil(t, byUsername["orphan"])
	assert.Nil(t, byUsername["solo"])
}

func TestDeleteUserKeepsActivities(t *testing.T) {
	store := repository.NewMemoryStore()
	users := NewUserService(store.Users, store.Teams, store.Activities, nil)
	activities := NewActivityService(store.Activities, store.Users, nil)
	ctx := context.Background()

	user, err := users.Create(ctx, models.UserRequest{Username: "leaver", Email: "leaver@example.com"})
	require.NoError(t, err)
	_, err = activities.Record(ctx, models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivitySports,
		Duration:     50,
		Date:         "2025-07-02",
	})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err = users.Get(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	remaining, err := store.Activities.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestUserStatsZero(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store.Users, store.Teams, store.Activities, nil)
	ctx := context.Background()

	user, err := svc.Create(ctx, models.UserRequest{Username: "idle", Email: "idle@example.com"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalActivities)
	assert.Equal(t, 0, stats.TotalDuration)
	assert.Equal(t, 0.0, stats.TotalDistance)
}

func TestUserStatsExcludesMissingDistances(t *testing.T) {
	store := repository.NewMemoryStore()
	users := NewUserService(store.Users, store.Teams, store.Activities, nil)
	activities := NewActivityService(store.Activities, store.Users, nil)
	ctx := context.Background()

	user, err := users.Create(ctx, models.UserRequest{Username: "tracker", Email: "tracker@example.com"})
	require.NoError(t, err)

	distance := 5.5
	_, err = activities.Record(ctx, models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivityRunning,
		Duration:     30,
		Distance:     &distance,
		Date:         "2025-07-03",
	})
	require.NoError(t, err)
	_, err = activities.Record(ctx, models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivityYoga,
		Duration:     45,
		Date:         "2025-07-04",
	})
	require.NoError(t, err)

	stats, err := users.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalActivities)
	assert.Equal(t, 75, stats.TotalDuration)
	assert.Equal(t, 5.5, stats.TotalDistance)
	assert.Equal(t, 75, stats.TotalPoints)
}

func TestUserStatsUnknownUser(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store.Users, store.Teams, store.Activities, nil)

	_, err := svc.Stats(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
