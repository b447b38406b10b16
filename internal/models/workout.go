package models

import (
	"time"
)

// RecommendationLimit caps the number of workouts returned by the
// personalized recommendation query.
const RecommendationLimit = 5

// Workout is a suggested workout from the static catalog. Reference data:
// nothing else in the system mutates it.
type Workout struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	Title             string     `gorm:"not null;size:200" json:"title"`
	Description       string     `gorm:"type:text" json:"description"`
	FitnessLevel      string     `gorm:"not null;default:all;index;size:50" json:"fitness_level"`
	ActivityType      string     `gorm:"not null;index;size:100" json:"activity_type"`
	Duration          int        `gorm:"not null" json:"duration"`
	EstimatedCalories *int       `json:"estimated_calories"`
	Instructions      StringList `gorm:"serializer:json" json:"instructions"`
	EquipmentNeeded   StringList `gorm:"serializer:json" json:"equipment_needed"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Workout) TableName() string {
	return "workouts"
}

// WorkoutRequest is the payload for creating or replacing a workout suggestion.
type WorkoutRequest struct {
	Title             string   `json:"title" validate:"required,min=2,max=200"`
	Description       string   `json:"description"`
	FitnessLevel      string   `json:"fitness_level" validate:"omitempty,oneof=beginner intermediate advanced all"`
	ActivityType      string   `json:"activity_type" validate:"required,oneof=running walking cycling swimming strength_training yoga sports other mixed"`
	Duration          int      `json:"duration" validate:"required,gt=0"`
	EstimatedCalories *int     `json:"estimated_calories" validate:"omitempty,gt=0"`
	Instructions      []string `json:"instructions"`
	EquipmentNeeded   []string `json:"equipment_needed"`
}
