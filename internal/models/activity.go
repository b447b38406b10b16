package models

import (
	"time"
)

// Activity types a user can log. Workouts additionally allow "mixed".
const (
	ActivityRunning          = "running"
	ActivityWalking          = "walking"
	ActivityCycling          = "cycling"
	ActivitySwimming         = "swimming"
	ActivityStrengthTraining = "strength_training"
	ActivityYoga             = "yoga"
	ActivitySports           = "sports"
	ActivityOther            = "other"
	ActivityMixed            = "mixed"
)

// ActivityTypes lists the types valid for logged activities.
var ActivityTypes = []string{
	ActivityRunning,
	ActivityWalking,
	ActivityCycling,
	ActivitySwimming,
	ActivityStrengthTraining,
	ActivityYoga,
	ActivitySports,
	ActivityOther,
}

// ValidActivityType reports whether t is a loggable activity type.
func ValidActivityType(t string) bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Activity is a single logged workout session.
//
// PointsEarned is derived (1 point per minute of duration) and never
// client-supplied. Once folded into the owning user's total it is not
// re-adjusted by later edits or deletes.
type Activity struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"not null;index;size:36" json:"user_id"`
	ActivityType   string    `gorm:"not null;index;size:100" json:"activity_type"`
	Duration       int       `gorm:"not null" json:"duration"`
	Distance       *float64  `json:"distance"`
	CaloriesBurned *int      `json:"calories_burned"`
	PointsEarned   int       `gorm:"not null;default:0" json:"points_earned"`
	Notes          string    `gorm:"type:text" json:"notes"`
	Date           Date      `gorm:"not null;index" json:"date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Activity) TableName() string {
	return "activities"
}

// ActivityRequest is the payload for logging an activity. It carries no
// points field; points are always derived server-side.
type ActivityRequest struct {
	UserID         string   `json:"user_id" validate:"required"`
	ActivityType   string   `json:"activity_type" validate:"required,oneof=running walking cycling swimming strength_training yoga sports other"`
	Duration       int      `json:"duration" validate:"required,gt=0"`
	Distance       *float64 `json:"distance" validate:"omitempty,gt=0"`
	CaloriesBurned *int     `json:"calories_burned" validate:"omitempty,gt=0"`
	Notes          string   `json:"notes"`
	Date           string   `json:"date" validate:"required,datetime=2006-01-02"`
}

// ActivityResponse is an activity enriched with the owning user's name.
type ActivityResponse struct {
	Activity
	UserName *string `json:"user_name"`
}
