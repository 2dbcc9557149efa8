package progression

import (
	"testing"
	"time"

	"ecolearn-service/internal/models"
)

func TestLevelFormula(t *testing.T) {
	testCases := []struct {
		points   int
		expected int
	}{
		{0, 1},
		{1, 1},
		{999, 1},
		{1000, 2},
		{1001, 2},
		{1999, 2},
		{2000, 3},
		{2500, 3},
		{10000, 11},
	}

	for _, tc := range testCases {
		if got := Level(tc.points); got != tc.expected {
			t.Errorf("Level(%d) = %d, expected %d", tc.points, got, tc.expected)
		}
	}
}

func TestApplyPoints(t *testing.T) {
	user := &models.User{EcoPoints: 0, Level: 1}

	res, err := ApplyPoints(user, 400)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.TotalPoints != 400 || res.NewLevel != 1 || res.LeveledUp {
		t.Errorf("Expected 400 points at level 1 without level-up, got %+v", res)
	}

	res, err = ApplyPoints(user, 700)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.TotalPoints != 1100 || res.NewLevel != 2 || !res.LeveledUp {
		t.Errorf("Expected 1100 points crossing into level 2, got %+v", res)
	}

	// Zero delta is a valid no-op award
	res, err = ApplyPoints(user, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.TotalPoints != 1100 || res.LeveledUp {
		t.Errorf("Zero delta should change nothing, got %+v", res)
	}
}

func TestApplyPointsRejectsNegativeDelta(t *testing.T) {
	user := &models.User{EcoPoints: 500, Level: 1}

	_, err := ApplyPoints(user, -50)
	if err != ErrNegativeDelta {
		t.Fatalf("Expected ErrNegativeDelta, got %v", err)
	}
	if user.EcoPoints != 500 || user.Level != 1 {
		t.Errorf("Rejected delta must not mutate the user, got points=%d level=%d", user.EcoPoints, user.Level)
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluateStreak(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		lastActivity   *time.Time
		streak         int
		expectedStreak int
		expectStamp    bool
	}{
		{
			name:           "first ever activity",
			lastActivity:   nil,
			streak:         0,
			expectedStreak: 1,
			expectStamp:    true,
		},
		{
			name:           "already credited today",
			lastActivity:   timePtr(time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)),
			streak:         4,
			expectedStreak: 4,
			expectStamp:    false,
		},
		{
			name:           "active yesterday extends streak",
			lastActivity:   timePtr(time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC)),
			streak:         4,
			expectedStreak: 5,
			expectStamp:    true,
		},
		{
			name:           "gap resets streak",
			lastActivity:   timePtr(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)),
			streak:         10,
			expectedStreak: 1,
			expectStamp:    true,
		},
		{
			name:           "future-dated last activity resets",
			lastActivity:   timePtr(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)),
			streak:         3,
			expectedStreak: 1,
			expectStamp:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user := &models.User{Streak: tc.streak, LastActivityDate: tc.lastActivity}
			EvaluateStreak(user, now)

			if user.Streak != tc.expectedStreak {
				t.Errorf("Expected streak %d, got %d", tc.expectedStreak, user.Streak)
			}
			if tc.expectStamp {
				if user.LastActivityDate == nil || !user.LastActivityDate.Equal(now) {
					t.Errorf("Expected last activity stamped to %v, got %v", now, user.LastActivityDate)
				}
			} else if !user.LastActivityDate.Equal(*tc.lastActivity) {
				t.Errorf("Expected last activity unchanged, got %v", user.LastActivityDate)
			}
		})
	}
}

func TestEvaluateStreakSameDayIdempotent(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	user := &models.User{Streak: 2, LastActivityDate: timePtr(start.Add(-24 * time.Hour))}

	EvaluateStreak(user, start)
	if user.Streak != 3 {
		t.Fatalf("Expected streak 3 after first activity, got %d", user.Streak)
	}

	// Any number of further activities the same day must not move the streak
	for i := 0; i < 5; i++ {
		EvaluateStreak(user, start.Add(time.Duration(i)*time.Hour))
	}
	if user.Streak != 3 {
		t.Errorf("Same-day activity inflated streak to %d", user.Streak)
	}
}

func TestEvaluateStreakCalendarBoundaries(t *testing.T) {
	testCases := []struct {
		name string
		last time.Time
		now  time.Time
	}{
		{
			name: "month boundary",
			last: time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC),
			now:  time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "year boundary",
			last: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC),
			now:  time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC),
		},
		{
			name: "non-UTC wall clock same UTC day pair",
			last: time.Date(2024, 3, 14, 20, 0, 0, 0, time.FixedZone("UTC+7", 7*3600)),
			now:  time.Date(2024, 3, 15, 20, 0, 0, 0, time.FixedZone("UTC+7", 7*3600)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user := &models.User{Streak: 7, LastActivityDate: timePtr(tc.last)}
			EvaluateStreak(user, tc.now)
			if user.Streak != 8 {
				t.Errorf("Expected consecutive days across boundary to extend streak to 8, got %d", user.Streak)
			}
		})
	}
}
