// Package ledger records quiz, challenge and AR completions against a user's
// progress. Every award flows through here so points, level and streak always
// move together and commit as one write.
package ledger

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"ecolearn-service/internal/models"
	"ecolearn-service/internal/progression"
)

// Unanswered marks a question the user skipped. It never matches a valid
// option index.
const Unanswered = -1

// UserStore is the persistence boundary for user progress. SaveProgress must
// fail with ErrConflict when the document changed since FindByID read it.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	SaveProgress(ctx context.Context, u *models.User) error
}

type Ledger struct {
	Users UserStore
}

func New(users UserStore) *Ledger {
	return &Ledger{Users: users}
}

type QuestionResult struct {
	Question      string `json:"question"`
	UserAnswer    int    `json:"user_answer"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

type QuizOutcome struct {
	Results      []QuestionResult `json:"results"`
	Percentage   int              `json:"score"`
	PointsEarned int              `json:"points_earned"`
	TotalPoints  int              `json:"total_points"`
	NewLevel     int              `json:"new_level"`
	LeveledUp    bool             `json:"leveled_up"`
	Streak       int              `json:"streak"`
}

type ChallengeOutcome struct {
	PointsEarned int  `json:"points_earned"`
	TotalPoints  int  `json:"total_points"`
	NewLevel     int  `json:"new_level"`
	LeveledUp    bool `json:"leveled_up"`
	Streak       int  `json:"streak"`
}

type ARActivity string

const (
	ARTreePlanting ARActivity = "tree_planting"
	ARRecycling    ARActivity = "recycling"
	AREnergy       ARActivity = "energy_conservation"
)

type AROutcome struct {
	TotalPoints  int  `json:"total_points"`
	NewLevel     int  `json:"new_level"`
	LeveledUp    bool `json:"leveled_up"`
	Streak       int  `json:"streak"`
	TotalActions int  `json:"total_actions"`
}

// GradeQuiz scores a submitted answer sheet against the quiz. Entries beyond
// the question count are ignored and missing entries count as unanswered.
// A quiz with no questions grades to zero rather than dividing by it.
func GradeQuiz(quiz *models.Quiz, answers []int) ([]QuestionResult, int, int) {
	results := make([]QuestionResult, 0, len(quiz.Questions))
	correct := 0

	for i, q := range quiz.Questions {
		answer := Unanswered
		if i < len(answers) {
			answer = answers[i]
		}
		isCorrect := answer != Unanswered && answer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		results = append(results, QuestionResult{
			Question:      q.Question,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	if len(quiz.Questions) == 0 {
		return results, 0, 0
	}
	percentage := int(math.Round(100 * float64(correct) / float64(len(quiz.Questions))))
	points := int(math.Round(float64(quiz.Points) * float64(percentage) / 100))
	return results, percentage, points
}

// SubmitQuiz grades the answers, appends a completion record and folds the
// earned points into the user's progress. Quizzes may be retaken; every
// submission appends a fresh record and awards points again.
func (l *Ledger) SubmitQuiz(ctx context.Context, userID string, quiz *models.Quiz, answers []int, now time.Time) (*QuizOutcome, error) {
	var out *QuizOutcome
	err := l.commit(ctx, userID, func(u *models.User) error {
		results, percentage, points := GradeQuiz(quiz, answers)
		u.CompletedQuizzes = append(u.CompletedQuizzes, models.QuizCompletion{
			QuizID:      quiz.ID,
			Score:       percentage,
			CompletedAt: now,
		})
		res, err := progression.ApplyPoints(u, points)
		if err != nil {
			return err
		}
		progression.EvaluateStreak(u, now)
		out = &QuizOutcome{
			Results:      results,
			Percentage:   percentage,
			PointsEarned: points,
			TotalPoints:  res.TotalPoints,
			NewLevel:     res.NewLevel,
			LeveledUp:    res.LeveledUp,
			Streak:       u.Streak,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitChallenge records a one-time challenge completion. A second
// submission for the same challenge is rejected and nothing is written, as is
// a missing proof on challenges that require one. Only daily challenges feed
// the streak.
func (l *Ledger) SubmitChallenge(ctx context.Context, userID string, challenge *models.Challenge, proof string, now time.Time) (*ChallengeOutcome, error) {
	if challenge.RequiresProof && strings.TrimSpace(proof) == "" {
		return nil, ErrMissingProof
	}

	var out *ChallengeOutcome
	err := l.commit(ctx, userID, func(u *models.User) error {
		if u.HasCompletedChallenge(challenge.ID) {
			return ErrDuplicateCompletion
		}
		u.CompletedChallenges = append(u.CompletedChallenges, models.ChallengeCompletion{
			ChallengeID: challenge.ID,
			CompletedAt: now,
			Proof:       proof,
		})
		res, err := progression.ApplyPoints(u, challenge.Points)
		if err != nil {
			return err
		}
		if challenge.IsDaily {
			progression.EvaluateStreak(u, now)
		}
		out = &ChallengeOutcome{
			PointsEarned: challenge.Points,
			TotalPoints:  res.TotalPoints,
			NewLevel:     res.NewLevel,
			LeveledUp:    res.LeveledUp,
			Streak:       u.Streak,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitARActivity awards points for an AR mini-game session and bumps the
// matching activity counter. AR awards count toward the daily streak the same
// way quizzes and daily challenges do.
func (l *Ledger) SubmitARActivity(ctx context.Context, userID string, kind ARActivity, actions, points int, now time.Time) (*AROutcome, error) {
	if actions < 0 || points < 0 {
		return nil, ErrInvalidActivity
	}

	var out *AROutcome
	err := l.commit(ctx, userID, func(u *models.User) error {
		var total int
		switch kind {
		case ARTreePlanting:
			u.ARTreesPlanted += actions
			total = u.ARTreesPlanted
		case ARRecycling:
			u.ARRecyclingActions += actions
			total = u.ARRecyclingActions
		case AREnergy:
			u.AREnergyActions += actions
			total = u.AREnergyActions
		default:
			return ErrInvalidActivity
		}
		u.ARPoints += points
		res, err := progression.ApplyPoints(u, points)
		if err != nil {
			return err
		}
		progression.EvaluateStreak(u, now)
		out = &AROutcome{
			TotalPoints:  res.TotalPoints,
			NewLevel:     res.NewLevel,
			LeveledUp:    res.LeveledUp,
			Streak:       u.Streak,
			TotalActions: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// commit runs one read-modify-write of a user's progress. A save that loses
// the version race is retried once with freshly read state; a second conflict
// is surfaced to the caller. Errors from apply abort without writing.
func (l *Ledger) commit(ctx context.Context, userID string, apply func(*models.User) error) error {
	for attempt := 0; ; attempt++ {
		u, err := l.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := apply(u); err != nil {
			return err
		}
		err = l.Users.SaveProgress(ctx, u)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConflict) || attempt >= 1 {
			return err
		}
	}
}
