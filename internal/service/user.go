package service

import (
	"context"
	"log"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/google/uuid"
)

// RankMirror removes deleted users from the live ranking. Best-effort.
type RankMirror interface {
	RemoveUser(ctx context.Context, username string) error
}

// UserService handles user profiles, their team-name enrichment, and the
// read-side stats aggregation.
type UserService struct {
	users      repository.UserRepository
	teams      repository.TeamRepository
	activities repository.ActivityRepository
	ranks      RankMirror
}

// NewUserService creates the user service. ranks may be nil.
func NewUserService(
	users repository.UserRepository,
	teams repository.TeamRepository,
	activities repository.ActivityRepository,
	ranks RankMirror,
) *UserService {
	return &UserService{
		users:      users,
		teams:      teams,
		activities: activities,
		ranks:      ranks,
	}
}

// Create registers a new user profile. total_points starts at zero and is
// mutated only by the points engine.
func (s *UserService) Create(ctx context.Context, req models.UserRequest) (*models.User, error) {
	level := req.FitnessLevel
	if level == "" {
		level = models.FitnessBeginner
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Age:          req.Age,
		FitnessLevel: level,
		TeamID:       req.TeamID,
		DateJoined:   time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves one user.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.Get(ctx, id)
}

// ListWithTeamNames returns all users enriched with their resolved team name,
// nil when the user has no team or the reference dangles. Ordered by total
// points descending.
func (s *UserService) ListWithTeamNames(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		resp := models.UserResponse{User: u}
		if u.TeamID != nil {
			if name, ok := names[*u.TeamID]; ok {
				resp.TeamName = &name
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// Update replaces a user's profile fields. The running total and join date
// are preserved; clients cannot write them.
func (s *UserService) Update(ctx context.Context, id string, req models.UserRequest) (*models.User, error) {
	existing, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Username = req.Username
	existing.Email = req.Email
	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Age = req.Age
	if req.FitnessLevel != "" {
		existing.FitnessLevel = req.FitnessLevel
	}
	existing.TeamID = req.TeamID
	if err := s.users.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a user and drops it from the live ranking. Activities that
// reference the user are kept; their enrichment resolves to null from now on.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if s.ranks != nil {
		if err := s.ranks.RemoveUser(ctx, user.Username); err != nil {
			log.Printf("failed to drop %s from live ranking: %v", user.Username, err)
		}
	}
	return nil
}

// Activities returns a user's activity history, newest first.
func (s *UserService) Activities(ctx context.Context, id string) ([]models.Activity, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.activities.ListByUser(ctx, user.ID)
}

// Stats recomputes the user's summary on every call: activity count, summed
// duration, and summed distance. Activities without a distance are excluded
// from the distance sum rather than counted as zero.
func (s *UserService) Stats(ctx context.Context, id string) (*models.UserStats, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	activities, err := s.activities.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{
		UserID:      user.ID,
		Username:    user.Username,
		TotalPoints: user.TotalPoints,
	}
	for _, a := range activities {
		stats.TotalActivities++
		stats.TotalDuration += a.Duration
		if a.Distance != nil {
			stats.TotalDistance += *a.Distance
		}
	}
	return stats, nil
}
