package service

import (
	"context"
	"testing"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, store *repository.MemoryStore, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FitnessLevel: models.FitnessBeginner,
	}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func TestRecordDerivesPointsFromDuration(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities, store.Users, nil)
	user := newTestUser(t, store, "runner")

	activity, err := svc.Record(context.Background(), models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivityRunning,
		Duration:     45,
		Date:         "2025-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 45, activity.PointsEarned)

	updated, err := store.Users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, updated.TotalPoints)
}

func TestRecordAccumulatesIntoUserTotal(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities, store.Users, nil)
	user := newTestUser(t, store, "cyclist")

	for _, duration := range []int{30, 60, 15} {
		_, err := svc.Record(context.Background(), models.ActivityRequest{
			UserID:       user.ID,
			ActivityType: models.ActivityCycling,
			Duration:     duration,
			Date:         "2025-06-02",
		})
		require.NoError(t, err)
	}

	updated, err := store.Users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 105, updated.TotalPoints)
}

func TestRecordKeepsActivityWhenUserMissing(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities, store.Users, nil)

	activity, err := svc.Record(context.Background(), models.ActivityRequest{
		UserID:       "no-such-user",
		ActivityType: models.ActivitySwimming,
		Duration:     30,
		Date:         "2025-06-03",
	})
	require.NoError(t, err)

	stored, err := store.Activities.Get(context.Background(), activity.ID)
	require.NoError(t, err)
	assert.Equal(t, "no-such-user", stored.UserID)
	assert.Equal(t, 30, stored.PointsEarned)
}

func TestRecordValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities, store.Users, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.ActivityRequest
	}{
		{"zero duration", models.ActivityRequest{UserID: "u", ActivityType: models.ActivityRunning, Duration: 0, Date: "2025-06-01"}},
		{"negative duration", models.ActivityRequest{UserID: "u", ActivityType: models.ActivityRunning, Duration: -5, Date: "2025-06-01"}},
		{"unknown type", models.ActivityRequest{UserID: "u", ActivityType: "flying", Duration: 30, Date: "2025-06-01"}},
		{"bad date", models.ActivityRequest{UserID: "u", ActivityType: models.ActivityRunning, Duration: 30, Date: "01/06/2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(ctx, tt.req)
			var verr *models.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestUpdateKeepsStoredPoints(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities, store.Users, nil)
	user := newTestUser(t, store, "lifter")

	activity, err := svc.Record(context.Background(), models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivityStrengthTraining,
		Duration:     30,
		Date:         "2025-06-04",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), activity.ID, models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivityStrengthTraining,
		Duration:     90,
		Date:         "2025-06-04",
	})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Duration)
	assert.Equal(t, 30, updated.PointsEarned)

	owner, err := store.Users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, owner.TotalPoints)
}

func TestDeleteDoesNotDecrementPoints(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities, store.Users, nil)
	user := newTestUser(t, store, "swimmer")

	activity, err := svc.Record(context.Background(), models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivitySwimming,
		Duration:     40,
		Date:         "2025-06-05",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), activity.ID))

	owner, err := store.Users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, owner.TotalPoints)
}

func TestListWithUserNamesResolvesDanglingToNil(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities, store.Users, nil)
	user := newTestUser(t, store, "walker")

	_, err := svc.Record(context.Background(), models.ActivityRequest{
		UserID:       user.ID,
		ActivityType: models.ActivityWalking,
		Duration:     20,
		Date:         "2025-06-06",
	})
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), models.ActivityRequest{
		UserID:       "ghost",
		ActivityType: models.ActivityWalking,
		Duration:     20,
		Date:         "2025-06-07",
	})
	require.NoError(t, err)

	out, err := svc.ListWithUserNames(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	byUser := make(map[string]*string)
	for _, a := range out {
		byUser[a.UserID] = a.UserName
	}
	require.NotNil(t, byUser[user.ID])
	assert.Equal(t, "walker", *byUser[user.ID])
	assert.Nil(t, byUser["ghost"])
}

func TestListByTypeRejectsUnknown(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities, store.Users, nil)

	_, err := svc.ListByType(context.Background(), "teleportation")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.ListByType(context.Background(), "")
	assert.ErrorAs(t, err, &verr)
}
