// Package progression holds the rules that turn activity into eco-points,
// levels and daily streaks. All state lives on the user document passed in;
// nothing here touches storage.
package progression

import (
	"errors"
	"time"

	"ecolearn-service/internal/models"
)

// PointsPerLevel is the number of eco-points per level tier.
const PointsPerLevel = 1000

var ErrNegativeDelta = errors.New("point delta must be non-negative")

// Level derives the level tier from a running point total.
func Level(points int) int {
	return points/PointsPerLevel + 1
}

type PointsResult struct {
	TotalPoints int  `json:"total_points"`
	NewLevel    int  `json:"new_level"`
	LeveledUp   bool `json:"leveled_up"`
}

// ApplyPoints adds delta to the user's eco-points and recomputes the level.
// Points only ever accumulate; a negative delta is rejected without mutation.
func ApplyPoints(u *models.User, delta int) (PointsResult, error) {
	if delta < 0 {
		return PointsResult{}, ErrNegativeDelta
	}
	prevLevel := u.Level
	u.EcoPoints += delta
	u.Level = Level(u.EcoPoints)
	return PointsResult{
		TotalPoints: u.EcoPoints,
		NewLevel:    u.Level,
		LeveledUp:   u.Level > prevLevel,
	}, nil
}

// EvaluateStreak applies the daily-streak transition for an activity at now:
// already credited today leaves the streak alone, activity the day after the
// last one extends it, anything else starts a fresh streak of 1. Repeated
// activity on the same day can never inflate the count.
func EvaluateStreak(u *models.User, now time.Time) {
	today := calendarDay(now)
	if u.LastActivityDate != nil {
		last := calendarDay(*u.LastActivityDate)
		if last.Equal(today) {
			return
		}
		if last.AddDate(0, 0, 1).Equal(today) {
			u.Streak++
			stamp := now
			u.LastActivityDate = &stamp
			return
		}
	}
	u.Streak = 1
	stamp := now
	u.LastActivityDate = &stamp
}

// calendarDay truncates a timestamp to its UTC calendar date. Day boundaries
// are evaluated in UTC so the result does not depend on server locale.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
