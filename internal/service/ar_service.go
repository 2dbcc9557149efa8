package service

import (
	"context"
	"time"

	"ecolearn-service/internal/ledger"
	"ecolearn-service/internal/repository"
)

type ARService struct {
	Users  *repository.UserRepository
	Ledger *ledger.Ledger
}

func NewARService(users *repository.UserRepository, l *ledger.Ledger) *ARService {
	return &ARService{Users: users, Ledger: l}
}

// RecordActivity awards points for an AR mini-game. AR awards feed the daily
// streak like any other qualifying activity.
func (s *ARService) RecordActivity(ctx context.Context, userID string, kind ledger.ARActivity, actions, points int) (*ledger.AROutcome, error) {
	return s.Ledger.SubmitARActivity(ctx, userID, kind, actions, points, time.Now())
}

type ARStats struct {
	ARTreesPlanted     int `json:"ar_trees_planted"`
	ARRecyclingActions int `json:"ar_recycling_actions"`
	AREnergyActions    int `json:"ar_energy_actions"`
	TotalARPoints      int `json:"total_ar_points"`
}

func (s *ARService) GetStats(ctx context.Context, userID string) (*ARStats, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ARStats{
		ARTreesPlanted:     user.ARTreesPlanted,
		ARRecyclingActions: user.ARRecyclingActions,
		AREnergyActions:    user.AREnergyActions,
		TotalARPoints:      user.ARPoints,
	}, nil
}
