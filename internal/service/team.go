package service

import (
	"context"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/google/uuid"
)

// TeamService handles teams and the membership invariants on member_ids.
type TeamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
}

// NewTeamService creates the team service.
func NewTeamService(teams repository.TeamRepository, users repository.UserRepository) *TeamService {
	return &TeamService{teams: teams, users: users}
}

// Create registers a new team. captain_id and member_ids are stored as given;
// references are not enforced to exist.
func (s *TeamService) Create(ctx context.Context, req models.TeamRequest) (*models.Team, error) {
	team := &models.Team{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CaptainID:   req.CaptainID,
		MemberIDs:   dedupe(req.MemberIDs),
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Get retrieves one team.
func (s *TeamService) Get(ctx context.Context, id string) (*models.Team, error) {
	return s.teams.Get(ctx, id)
}

// List returns all teams ordered by total points descending.
func (s *TeamService) List(ctx context.Context) ([]models.Team, error) {
	return s.teams.List(ctx)
}

// Update replaces a team's fields. The aggregate total is preserved: it is
// externally maintained and never recomputed here.
func (s *TeamService) Update(ctx context.Context, id string, req models.TeamRequest) (*models.Team, error) {
	existing, err := s.teams.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	existing.Description = req.Description
	existing.CaptainID = req.CaptainID
	if req.MemberIDs != nil {
		existing.MemberIDs = dedupe(req.MemberIDs)
	}
	if err := s.teams.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a team. Users keep their team reference; it dangles and
// resolves to a null team name from now on.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	return s.teams.Delete(ctx, id)
}

// AddMember appends a user id to the team's member list. Guarded: adding an
// existing member fails with ErrAlreadyMember and leaves the list unchanged.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID string) (*models.Team, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "is required")
	}
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.MemberIDs.Contains(userID) {
		return nil, ErrAlreadyMember
	}
	team.MemberIDs = append(team.MemberIDs, userID)
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// RemoveMember removes the first occurrence of a user id from the member
// list. Removing a non-member fails with ErrNotMember.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID string) (*models.Team, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "is required")
	}
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.MemberIDs.Contains(userID) {
		return nil, ErrNotMember
	}
	team.MemberIDs = team.MemberIDs.Remove(userID)
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Members resolves the team's member ids to user records. Dangling ids are
// skipped; ordering follows the store's default user ordering.
func (s *TeamService) Members(ctx context.Context, teamID string) ([]models.User, error) {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.users.ListByIDs(ctx, team.MemberIDs)
}

// dedupe preserves first occurrences so a stored member list never starts out
// with duplicates.
func dedupe(ids []string) models.StringList {
	seen := make(map[string]bool, len(ids))
	out := make(models.StringList, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
