package models

import (
	"time"
)

// Leaderboard periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all_time"
)

// Periods lists all valid leaderboard periods.
var Periods = []string{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAllTime}

// ValidPeriod reports whether p is a known leaderboard period.
func ValidPeriod(p string) bool {
	for _, v := range Periods {
		if v == p {
			return true
		}
	}
	return false
}

// UserRanking is one user entry in a leaderboard snapshot.
type UserRanking struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

// TeamRanking is one team entry in a leaderboard snapshot.
type TeamRanking struct {
	TeamID string `json:"team_id"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

// UserRankings is an ordered ranking list stored as a JSON column.
type UserRankings []UserRanking

// TeamRankings is an ordered ranking list stored as a JSON column.
type TeamRankings []TeamRanking

// Leaderboard is a ranking snapshot for one period instance. Contents are
// fixed at write time; reads return the embedded lists as written. The
// (period, period_start) pair identifies at most one snapshot.
type Leaderboard struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	Period       string       `gorm:"not null;index:idx_period_start,unique;size:50" json:"period"`
	PeriodStart  Date         `gorm:"not null;index:idx_period_start,unique" json:"period_start"`
	PeriodEnd    Date         `gorm:"not null" json:"period_end"`
	UserRankings UserRankings `gorm:"serializer:json" json:"user_rankings"`
	TeamRankings TeamRankings `gorm:"serializer:json" json:"team_rankings"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Leaderboard) TableName() string {
	return "leaderboard"
}

// LeaderboardRequest is the payload for creating or replacing a snapshot.
type LeaderboardRequest struct {
	Period       string        `json:"period" validate:"required,oneof=daily weekly monthly all_time"`
	PeriodStart  string        `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd    string        `json:"period_end" validate:"required,datetime=2006-01-02"`
	UserRankings []UserRanking `json:"user_rankings"`
	TeamRankings []TeamRanking `json:"team_rankings"`
}
