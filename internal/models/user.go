package models

import (
	"time"
)

// Fitness levels a user can report.
const (
	FitnessBeginner     = "beginner"
	FitnessIntermediate = "intermediate"
	FitnessAdvanced     = "advanced"

	// FitnessAll is valid for workouts only and marks a workout as suitable
	// for every level.
	FitnessAll = "all"
)

// User represents a tracked athlete profile.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;size:254" json:"email"`
	FirstName    string    `gorm:"size:100" json:"first_name"`
	LastName     string    `gorm:"size:100" json:"last_name"`
	Age          *int      `json:"age"`
	FitnessLevel string    `gorm:"not null;default:beginner;size:50" json:"fitness_level"`
	TotalPoints  int       `gorm:"not null;default:0;index" json:"total_points"`
	TeamID       *string   `gorm:"size:36" json:"team_id"`
	DateJoined   time.Time `json:"date_joined"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserRequest is the payload for creating or replacing a user profile.
// total_points is never client-supplied; it is owned by the points engine.
type UserRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=150"`
	Email        string  `json:"email" validate:"required,email"`
	FirstName    string  `json:"first_name" validate:"max=100"`
	LastName     string  `json:"last_name" validate:"max=100"`
	Age          *int    `json:"age" validate:"omitempty,gte=1,lte=120"`
	FitnessLevel string  `json:"fitness_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	TeamID       *string `json:"team_id"`
}

// UserResponse is a user enriched with its resolved team name.
type UserResponse struct {
	User
	TeamName *string `json:"team_name"`
}

// UserStats summarizes a user's activity history.
type UserStats struct {
	UserID          string  `json:"user_id"`
	Username        string  `json:"username"`
	TotalPoints     int     `json:"total_points"`
	TotalActivities int     `json:"total_activities"`
	TotalDuration   int     `json:"total_duration"`
	TotalDistance   float64 `json:"total_distance"`
}

// SearchResponse is the live-rank lookup result for a single user.
type SearchResponse struct {
	GlobalRank int    `json:"global_rank"`
	Username   string `json:"username"`
	Points     int    `json:"points"`
}
