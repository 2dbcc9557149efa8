package service

import (
	"context"
	"time"

	"ecolearn-service/internal/ledger"
	"ecolearn-service/internal/models"
	"ecolearn-service/internal/repository"
)

type ChallengeService struct {
	Repo   *repository.ChallengeRepository
	Ledger *ledger.Ledger
}

func NewChallengeService(repo *repository.ChallengeRepository, l *ledger.Ledger) *ChallengeService {
	return &ChallengeService{Repo: repo, Ledger: l}
}

func (s *ChallengeService) ListChallenges(ctx context.Context, category, difficulty string, isDaily *bool) ([]models.Challenge, error) {
	return s.Repo.FindActive(ctx, category, difficulty, isDaily)
}

func (s *ChallengeService) GetDailyChallenge(ctx context.Context) (*models.Challenge, error) {
	return s.Repo.FindDaily(ctx)
}

// CompleteChallenge records a one-time completion; duplicates and missing
// proof are rejected by the ledger before anything is written.
func (s *ChallengeService) CompleteChallenge(ctx context.Context, userID, challengeID, proof string) (*ledger.ChallengeOutcome, error) {
	challenge, err := s.Repo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	return s.Ledger.SubmitChallenge(ctx, userID, challenge, proof, time.Now())
}
