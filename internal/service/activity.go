package service

import (
	"context"
	"log"

	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/repository"
	"fittrack/internal/worker"

	"github.com/google/uuid"
)

// RankSync receives best-effort live-ranking updates after a points fold.
type RankSync interface {
	Submit(task worker.RankSyncTask) error
}

// ActivityService is the points engine: it derives points for logged
// activities and folds them into the owning user's running total.
type ActivityService struct {
	activities repository.ActivityRepository
	users      repository.UserRepository
	rankSync   RankSync
}

// NewActivityService creates the points engine. rankSync may be nil when no
// live ranking is wired (tests, seeder).
func NewActivityService(
	activities repository.ActivityRepository,
	users repository.UserRepository,
	rankSync RankSync,
) *ActivityService {
	return &ActivityService{
		activities: activities,
		users:      users,
		rankSync:   rankSync,
	}
}

// Record validates and persists a new activity, then folds the earned points
// into the user's total. Scoring rule: 1 point per minute of duration; any
// client-supplied points value never reaches this path.
//
// The fold is best-effort: when the referenced user does not exist the
// activity is still persisted and the miss is logged, not surfaced.
func (s *ActivityService) Record(ctx context.Context, req models.ActivityRequest) (*models.Activity, error) {
	if req.Duration <= 0 {
		return nil, models.NewValidationError("duration", "must be a positive integer")
	}
	if !models.ValidActivityType(req.ActivityType) {
		return nil, models.NewValidationError("activity_type", "unknown activity type")
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, models.NewValidationError("date", "must be formatted YYYY-MM-DD")
	}

	activity := &models.Activity{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		ActivityType:   req.ActivityType,
		Duration:       req.Duration,
		Distance:       req.Distance,
		CaloriesBurned: req.CaloriesBurned,
		PointsEarned:   req.Duration,
		Notes:          req.Notes,
		Date:           date,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	observability.RecordActivity(activity.ActivityType, activity.PointsEarned)

	s.foldPoints(ctx, activity)
	return activity, nil
}

// foldPoints applies the one-way fold of earned points into the user total
// and mirrors the new total into the live ranking.
func (s *ActivityService) foldPoints(ctx context.Context, activity *models.Activity) {
	updated, err := s.users.IncrementPoints(ctx, activity.UserID, activity.PointsEarned)
	if err != nil {
		log.Printf("points fold failed for user %s: %v", activity.UserID, err)
		return
	}
	if !updated {
		log.Printf("points fold skipped: user %s does not exist", activity.UserID)
		observability.RecordFoldMiss()
		return
	}
	if s.rankSync == nil {
		return
	}
	user, err := s.users.Get(ctx, activity.UserID)
	if err != nil {
		log.Printf("ranking sync skipped for user %s: %v", activity.UserID, err)
		return
	}
	// Backpressure drops are already logged by the pool.
	_ = s.rankSync.Submit(worker.RankSyncTask{
		Username:    user.Username,
		TotalPoints: user.TotalPoints,
	})
}

// Get retrieves one activity.
func (s *ActivityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	return s.activities.Get(ctx, id)
}

// ListWithUserNames returns all activities enriched with the owning user's
// username, nil when the reference dangles.
func (s *ActivityService) ListWithUserNames(ctx context.Context) ([]models.ActivityResponse, error) {
	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	out := make([]models.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		resp := models.ActivityResponse{Activity: a}
		if name, ok := names[a.UserID]; ok {
			resp.UserName = &name
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListByUser returns one user's activity history.
func (s *ActivityService) ListByUser(ctx context.Context, userID string) ([]models.Activity, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "parameter is required")
	}
	return s.activities.ListByUser(ctx, userID)
}

// ListByType returns activities of one type.
func (s *ActivityService) ListByType(ctx context.Context, activityType string) ([]models.Activity, error) {
	if activityType == "" {
		return nil, models.NewValidationError("activity_type", "parameter is required")
	}
	if !models.ValidActivityType(activityType) {
		return nil, models.NewValidationError("activity_type", "unknown activity type")
	}
	return s.activities.ListByType(ctx, activityType)
}

// Update replaces an activity's fields. The stored points_earned is kept and
// the user total is not re-adjusted; the fold is one-way.
func (s *ActivityService) Update(ctx context.Context, id string, req models.ActivityRequest) (*models.Activity, error) {
	if req.Duration <= 0 {
		return nil, models.NewValidationError("duration", "must be a positive integer")
	}
	if !models.ValidActivityType(req.ActivityType) {
		return nil, models.NewValidationError("activity_type", "unknown activity type")
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, models.NewValidationError("date", "must be formatted YYYY-MM-DD")
	}

	existing, err := s.activities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.UserID = req.UserID
	existing.ActivityType = req.ActivityType
	existing.Duration = req.Duration
	existing.Distance = req.Distance
	existing.CaloriesBurned = req.CaloriesBurned
	existing.Notes = req.Notes
	existing.Date = date
	if err := s.activities.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an activity. No points decrement path exists.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	return s.activities.Delete(ctx, id)
}
