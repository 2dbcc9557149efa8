package service

import (
	"context"
	"time"

	"ecolearn-service/internal/ledger"
	"ecolearn-service/internal/models"
	"ecolearn-service/internal/repository"
)

type QuizService struct {
	Repo   *repository.QuizRepository
	Ledger *ledger.Ledger
}

func NewQuizService(repo *repository.QuizRepository, l *ledger.Ledger) *QuizService {
	return &QuizService{Repo: repo, Ledger: l}
}

func (s *QuizService) ListQuizzes(ctx context.Context, category, difficulty string) ([]models.Quiz, error) {
	return s.Repo.FindActive(ctx, category, difficulty)
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	return s.Repo.FindByIDPublic(ctx, id)
}

// SubmitQuiz grades the submission against the full quiz document and commits
// the outcome to the user's progress.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID, quizID string, answers []int) (*ledger.QuizOutcome, error) {
	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return s.Ledger.SubmitQuiz(ctx, userID, quiz, answers, time.Now())
}
