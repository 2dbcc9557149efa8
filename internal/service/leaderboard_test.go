package service

import (
	"testing"

	"ecolearn-service/internal/models"
)

func TestRankEntries(t *testing.T) {
	users := []models.User{
		{ID: "a", DisplayName: "Ana", School: "Greenwood", EcoPoints: 3200, Level: 4, Streak: 12},
		{ID: "b", DisplayName: "Ben", School: "Riverside", EcoPoints: 2100, Level: 3, Streak: 2},
		{ID: "c", DisplayName: "Cho", School: "Greenwood", EcoPoints: 900, Level: 1, Streak: 0},
	}

	entries := rankEntries(users, "b")

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("Expected rank %d at position %d, got %d", i+1, i, e.Rank)
		}
	}
	if !entries[1].IsCurrentUser {
		t.Error("Expected Ben to be flagged as the current user")
	}
	if entries[0].IsCurrentUser || entries[2].IsCurrentUser {
		t.Error("Only the requesting user should be flagged")
	}
}

func TestRankEntriesWithoutCurrentUser(t *testing.T) {
	users := []models.User{{ID: "a", DisplayName: "Ana", EcoPoints: 100, Level: 1}}

	entries := rankEntries(users, "")
	if entries[0].IsCurrentUser {
		t.Error("Global leaderboard must not flag any row as current user")
	}
}
