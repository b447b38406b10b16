package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"fittrack/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory implementation of the repository
// contracts, used by tests and local development. Orderings match the
// Postgres store.
type MemoryStore struct {
	Users        *MemoryUserRepository
	Teams        *MemoryTeamRepository
	Activities   *MemoryActivityRepository
	Workouts     *MemoryWorkoutRepository
	Leaderboards *MemoryLeaderboardRepository
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Users:        &MemoryUserRepository{users: make(map[string]models.User)},
		Teams:        &MemoryTeamRepository{teams: make(map[string]models.Team)},
		Activities:   &MemoryActivityRepository{activities: make(map[string]models.Activity)},
		Workouts:     &MemoryWorkoutRepository{workouts: make(map[string]models.Workout)},
		Leaderboards: &MemoryLeaderboardRepository{boards: make(map[string]models.Leaderboard)},
	}
}

func ensureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// MemoryUserRepository stores users in memory.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	seq   int
	order map[string]int
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicateKey
		}
	}
	user.ID = ensureID(user.ID)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if r.order == nil {
		r.order = make(map[string]int)
	}
	r.seq++
	r.order[user.ID] = r.seq
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	r.sortByPoints(users)
	return users, nil
}

func (r *MemoryUserRepository) ListByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, u)
		}
	}
	r.sortByPoints(users)
	return users, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return ErrDuplicateKey
		}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) IncrementPoints(ctx context.Context, id string, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return false, nil
	}
	user.TotalPoints += delta
	user.UpdatedAt = time.Now().UTC()
	r.users[id] = user
	return true, nil
}

func (r *MemoryUserRepository) sortByPoints(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].TotalPoints != users[j].TotalPoints {
			return users[i].TotalPoints > users[j].TotalPoints
		}
		return r.order[users[i].ID] < r.order[users[j].ID]
	})
}

// MemoryTeamRepository stores teams in memory.
type MemoryTeamRepository struct {
	mu    sync.RWMutex
	teams map[string]models.Team
}

func (r *MemoryTeamRepository) Create(ctx context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == team.Name {
			return ErrDuplicateKey
		}
	}
	team.ID = ensureID(team.ID)
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now
	r.teams[team.ID] = *team
	return nil
}

func (r *MemoryTeamRepository) Get(ctx context.Context, id string) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &team, nil
}

func (r *MemoryTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	teams := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].TotalPoints > teams[j].TotalPoints
	})
	return teams, nil
}

func (r *MemoryTeamRepository) Update(ctx context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.teams[team.ID]
	if !ok {
		return ErrNotFound
	}
	for id, t := range r.teams {
		if id != team.ID && t.Name == team.Name {
			return ErrDuplicateKey
		}
	}
	team.CreatedAt = existing.CreatedAt
	team.UpdatedAt = time.Now().UTC()
	r.teams[team.ID] = *team
	return nil
}

func (r *MemoryTeamRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

// MemoryActivityRepository stores activities in memory.
type MemoryActivityRepository struct {
	mu         sync.RWMutex
	activities map[string]models.Activity
	seq        int
	order      map[string]int
}

func (r *MemoryActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity.ID = ensureID(activity.ID)
	now := time.Now().UTC()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	if r.order == nil {
		r.order = make(map[string]int)
	}
	r.seq++
	r.order[activity.ID] = r.seq
	r.activities[activity.ID] = *activity
	return nil
}

func (r *MemoryActivityRepository) Get(ctx context.Context, id string) (*models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	activity, ok := r.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &activity, nil
}

func (r *MemoryActivityRepository) List(ctx context.Context) ([]models.Activity, error) {
	return r.filtered(func(models.Activity) bool { return true })
}

func (r *MemoryActivityRepository) ListByUser(ctx context.Context, userID string) ([]models.Activity, error) {
	return r.filtered(func(a models.Activity) bool { return a.UserID == userID })
}

func (r *MemoryActivityRepository) ListByType(ctx context.Context, activityType string) ([]models.Activity, error) {
	return r.filtered(func(a models.Activity) bool { return a.ActivityType == activityType })
}

func (r *MemoryActivityRepository) filtered(keep func(models.Activity) bool) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	activities := make([]models.Activity, 0)
	for _, a := range r.activities {
		if keep(a) {
			activities = append(activities, a)
		}
	}
	sort.SliceStable(activities, func(i, j int) bool {
		if !activities[i].Date.Equal(activities[j].Date.Time) {
			return activities[i].Date.After(activities[j].Date.Time)
		}
		return r.order[activities[i].ID] > r.order[activities[j].ID]
	})
	return activities, nil
}

func (r *MemoryActivityRepository) Update(ctx context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.activities[activity.ID]
	if !ok {
		return ErrNotFound
	}
	activity.CreatedAt = existing.CreatedAt
	activity.UpdatedAt = time.Now().UTC()
	r.activities[activity.ID] = *activity
	return nil
}

func (r *MemoryActivityRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[id]; !ok {
		return ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

// MemoryWorkoutRepository stores the workout catalog in memory.
type MemoryWorkoutRepository struct {
	mu       sync.RWMutex
	workouts map[string]models.Workout
}

func (r *MemoryWorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	workout.ID = ensureID(workout.ID)
	if workout.FitnessLevel == "" {
		workout.FitnessLevel = models.FitnessAll
	}
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	r.workouts[workout.ID] = *workout
	return nil
}

func (r *MemoryWorkoutRepository) Get(ctx context.Context, id string) (*models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	workout, ok := r.workouts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &workout, nil
}

func (r *MemoryWorkoutRepository) List(ctx context.Context) ([]models.Workout, error) {
	return r.filtered(func(models.Workout) bool { return true }, 0)
}

func (r *MemoryWorkoutRepository) ListByLevels(ctx context.Context, levels []string, limit int) ([]models.Workout, error) {
	return r.filtered(func(w models.Workout) bool {
		for _, l := range levels {
			if w.FitnessLevel == l {
				return true
			}
		}
		return false
	}, limit)
}

func (r *MemoryWorkoutRepository) ListByType(ctx context.Context, activityType string) ([]models.Workout, error) {
	return r.filtered(func(w models.Workout) bool { return w.ActivityType == activityType }, 0)
}

func (r *MemoryWorkoutRepository) filtered(keep func(models.Workout) bool, limit int) ([]models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	workouts := make([]models.Workout, 0)
	for _, w := range r.workouts {
		if keep(w) {
			workouts = append(workouts, w)
		}
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		if workouts[i].FitnessLevel != workouts[j].FitnessLevel {
			return workouts[i].FitnessLevel < workouts[j].FitnessLevel
		}
		return workouts[i].Title < workouts[j].Title
	})
	if limit > 0 && len(workouts) > limit {
		workouts = workouts[:limit]
	}
	return workouts, nil
}

func (r *MemoryWorkoutRepository) Update(ctx context.Context, workout *models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.workouts[workout.ID]
	if !ok {
		return ErrNotFound
	}
	workout.CreatedAt = existing.CreatedAt
	workout.UpdatedAt = time.Now().UTC()
	r.workouts[workout.ID] = *workout
	return nil
}

func (r *MemoryWorkoutRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workouts[id]; !ok {
		return ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

// MemoryLeaderboardRepository stores ranking snapshots in memory.
type MemoryLeaderboardRepository struct {
	mu     sync.RWMutex
	boards map[string]models.Leaderboard
}

func (r *MemoryLeaderboardRepository) Create(ctx context.Context, lb *models.Leaderboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.boards {
		if b.Period == lb.Period && b.PeriodStart.Equal(lb.PeriodStart.Time) {
			return ErrDuplicateKey
		}
	}
	lb.ID = ensureID(lb.ID)
	now := time.Now().UTC()
	lb.CreatedAt = now
	lb.UpdatedAt = now
	r.boards[lb.ID] = *lb
	return nil
}

func (r *MemoryLeaderboardRepository) Get(ctx context.Context, id string) (*models.Leaderboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lb, ok := r.boards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &lb, nil
}

func (r *MemoryLeaderboardRepository) List(ctx context.Context) ([]models.Leaderboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	boards := make([]models.Leaderboard, 0, len(r.boards))
	for _, b := range r.boards {
		boards = append(boards, b)
	}
	sort.SliceStable(boards, func(i, j int) bool {
		return boards[i].PeriodStart.After(boards[j].PeriodStart.Time)
	})
	return boards, nil
}

func (r *MemoryLeaderboardRepository) LatestByPeriod(ctx context.Context, period string) (*models.Leaderboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *models.Leaderboard
	for _, b := range r.boards {
		if b.Period != period {
			continue
		}
		b := b
		if latest == nil || b.PeriodStart.After(latest.PeriodStart.Time) {
			latest = &b
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (r *MemoryLeaderboardRepository) Upsert(ctx context.Context, lb *models.Leaderboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for id, b := range r.boards {
		if b.Period == lb.Period && b.PeriodStart.Equal(lb.PeriodStart.Time) {
			b.PeriodEnd = lb.PeriodEnd
			b.UserRankings = lb.UserRankings
			b.TeamRankings = lb.TeamRankings
			b.UpdatedAt = now
			r.boards[id] = b
			*lb = b
			return nil
		}
	}
	lb.ID = ensureID(lb.ID)
	lb.CreatedAt = now
	lb.UpdatedAt = now
	r.boards[lb.ID] = *lb
	return nil
}

func (r *MemoryLeaderboardRepository) Update(ctx context.Context, lb *models.Leaderboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.boards[lb.ID]
	if !ok {
		return ErrNotFound
	}
	lb.CreatedAt = existing.CreatedAt
	lb.UpdatedAt = time.Now().UTC()
	r.boards[lb.ID] = *lb
	return nil
}

func (r *MemoryLeaderboardRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[id]; !ok {
		return ErrNotFound
	}
	delete(r.boards, id)
	return nil
}
