package models

import (
	"time"
)

// Team represents a group of users competing together.
//
// MemberIDs holds user id references; the list never contains duplicates
// (guarded on add) and is not enforced by a foreign-key constraint.
// TotalPoints is an externally maintained aggregate: nothing in this system
// recomputes it from member activity.
type Team struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null;size:200" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CaptainID   string     `gorm:"size:36" json:"captain_id"`
	MemberIDs   StringList `gorm:"serializer:json" json:"member_ids"`
	TotalPoints int        `gorm:"not null;default:0;index" json:"total_points"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// StringList is an ordered list of ids stored as a JSON column.
type StringList []string

// Contains reports whether id is present in the list.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Remove returns the list with the first occurrence of id removed.
func (l StringList) Remove(id string) StringList {
	for i, v := range l {
		if v == id {
			return append(append(StringList{}, l[:i]...), l[i+1:]...)
		}
	}
	return l
}

// TeamRequest is the payload for creating or replacing a team.
type TeamRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description"`
	CaptainID   string   `json:"captain_id"`
	MemberIDs   []string `json:"member_ids"`
}

// MembershipRequest is the payload for add_member / remove_member.
type MembershipRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
