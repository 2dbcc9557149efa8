package models

import "time"

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	DisplayName   string `json:"display_name"`
	School        string `json:"school"`
	EcoPoints     int    `json:"eco_points"`
	Level         int    `json:"level"`
	Streak        int    `json:"streak"`
	IsCurrentUser bool   `json:"is_current_user,omitempty"`
}

type ActivityItem struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Score       int       `json:"score,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

type UserStats struct {
	EcoPoints           int            `json:"eco_points"`
	Level               int            `json:"level"`
	Streak              int            `json:"streak"`
	Rank                int64          `json:"rank"`
	TotalUsers          int64          `json:"total_users"`
	CompletedQuizzes    int            `json:"completed_quizzes"`
	CompletedChallenges int            `json:"completed_challenges"`
	Achievements        int            `json:"achievements"`
	RecentActivity      []ActivityItem `json:"recent_activity"`
}
