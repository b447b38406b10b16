package service

import (
	"context"
	"testing"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeamDedupesMembers(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTeamService(store.Teams, store.Users)

	team, err := svc.Create(context.Background(), models.TeamRequest{
		Name:      "Dedupe Squad",
		MemberIDs: []string{"a", "b", "a", "c", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"a", "b", "c"}, team.MemberIDs)
}

func TestCreateTeamDuplicateName(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTeamService(store.Teams, store.Users)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.TeamRequest{Name: "Unique"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.TeamRequest{Name: "Unique"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestAddMember(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTeamService(store.Teams, store.Users)
	ctx := context.Background()

	team, err := svc.Create(ctx, models.TeamRequest{Name: "Joiners"})
	require.NoError(t, err)

	updated, err := svc.AddMember(ctx, team.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"user-1"}, updated.MemberIDs)

	// Adding the same member again must fail and leave the list unchanged.
	_, err = svc.AddMember(ctx, team.ID, "user-1")
	assert.ErrorIs(t, err, ErrAlreadyMember)

	stored, err := svc.Get(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"user-1"}, stored.MemberIDs)
}

func TestAddMemberValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTeamService(store.Teams, store.Users)
	ctx := context.Background()

	team, err := svc.Create(ctx, models.TeamRequest{Name: "Strict"})
	require.NoError(t, err)

	_, err = svc.AddMember(ctx, team.ID, "")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.AddMember(ctx, "no-such-team", "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRemoveMember(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTeamService(store.Teams, store.Users)
	ctx := context.Background()

	team, err := svc.Create(ctx, models.TeamRequest{Name: "Leavers", MemberIDs: []string{"a", "b", "c"}})
	require.NoError(t, err)

	updated, err := svc.RemoveMember(ctx, team.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"a", "c"}, updated.MemberIDs)

	_, err = svc.RemoveMember(ctx, team.ID, "b")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestMembersSkipsDanglingIDs(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTeamService(store.Teams, store.Users)
	ctx := context.Background()

	user := newTestUser(t, store, "present")
	team, err := svc.Create(ctx, models.TeamRequest{Name: "Partial", MemberIDs: []string{user.ID, "ghost"}})
	require.NoError(t, err)

	members, err := svc.Members(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "present", members[0].Username)
}

func TestUpdateTeamPreservesTotalPoints(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTeamService(store.Teams, store.Users)
	ctx := context.Background()

	team := &models.Team{Name: "Scored", TotalPoints: 500}
	require.NoError(t, store.Teams.Create(ctx, team))

	updated, err := svc.Update(ctx, team.ID, models.TeamRequest{Name: "Rescored", Description: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Rescored", updated.Name)
	assert.Equal(t, 500, updated.TotalPoints)
}
