package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fittrack/internal/models"
	"fittrack/internal/repository"
	"fittrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, *repository.MemoryStore) {
	store := repository.NewMemoryStore()

	userHandler := NewUserHandler(service.NewUserService(store.Users, store.Teams, store.Activities, nil))
	teamHandler := NewTeamHandler(service.NewTeamService(store.Teams, store.Users))
	activityHandler := NewActivityHandler(service.NewActivityService(store.Activities, store.Users, nil))
	workoutHandler := NewWorkoutHandler(service.NewWorkoutService(store.Workouts, store.Users))
	leaderboardHandler := NewLeaderboardHandler(
		service.NewLeaderboardService(store.Leaderboards, store.Users, store.Teams, nil))

	app := fiber.New()
	api := app.Group("/api")

	api.Get("/users", userHandler.List)
	api.Post("/users", userHandler.Create)
	api.Get("/users/:id", userHandler.Get)
	api.Get("/users/:id/stats", userHandler.Stats)
	api.Post("/teams", teamHandler.Create)
	api.Post("/teams/:id/add_member", teamHandler.AddMember)
	api.Post("/teams/:id/remove_member", teamHandler.RemoveMember)
	api.Post("/activities", activityHandler.Create)
	api.Get("/activities/by_type", activityHandler.ByType)
	api.Get("/workouts/recommendations", workoutHandler.Recommendations)
	api.Get("/leaderboard/current", leaderboardHandler.Current)
	api.Get("/health", leaderboardHandler.Health)

	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestCreateUserEndpoint(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/users", models.UserRequest{
		Username: "ironman",
		Email:    "ironman@avengers.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	decode(t, resp, &user)
	assert.Equal(t, "ironman", user.Username)
	assert.Equal(t, models.FitnessBeginner, user.FitnessLevel)
	assert.Equal(t, 0, user.TotalPoints)
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/users", models.UserRequest{
		Username: "badmail",
		Email:    "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateUserDuplicateConflict(t *testing.T) {
	app, _ := newTestApp()

	req := models.UserRequest{Username: "dup", Email: "dup@example.com"}
	resp := doJSON(t, app, http.MethodPost, "/api/users", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/users", req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetUserNotFound(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMembershipGuards(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/teams", models.TeamRequest{Name: "Avengers"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var team models.Team
	decode(t, resp, &team)

	add := fiber.Map{"user_id": "user-1"}
	resp = doJSON(t, app, http.MethodPost, "/api/teams/"+team.ID+"/add_member", add)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/teams/"+team.ID+"/add_member", add)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/teams/"+team.ID+"/remove_member", fiber.Map{"user_id": "stranger"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordActivityWithDanglingUser(t *testing.T) {
	app, store := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/activities", models.ActivityRequest{
		UserID:       "ghost",
		ActivityType: models.ActivityRunning,
		Duration:     30,
		Date:         "2025-06-01",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var activity models.Activity
	decode(t, resp, &activity)
	assert.Equal(t, 30, activity.PointsEarned)

	stored, err := store.Activities.Get(context.Background(), activity.ID)
	require.NoError(t, err)
	assert.Equal(t, "ghost", stored.UserID)
}

func TestActivitiesByTypeRejectsUnknown(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/activities/by_type?activity_type=flying", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecommendationsRequireExistingUser(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/workouts/recommendations?user_id=missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/workouts/recommendations", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCurrentLeaderboardEndpoint(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/leaderboard/current?period=fortnightly", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Default weekly period, no snapshot built yet.
	resp = doJSON(t, app, http.MethodGet, "/api/leaderboard/current", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
