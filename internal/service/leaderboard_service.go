package service

import (
	"context"

	"ecolearn-service/internal/models"
	"ecolearn-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	globalLeaderboardSize = 50
	schoolLeaderboardSize = 20
	recentQuizActivity    = 5
	recentChallengeCount  = 5
)

type LeaderboardService struct {
	Users      *repository.UserRepository
	Quizzes    *repository.QuizRepository
	Challenges *repository.ChallengeRepository
}

func NewLeaderboardService(users *repository.UserRepository, quizzes *repository.QuizRepository, challenges *repository.ChallengeRepository) *LeaderboardService {
	return &LeaderboardService{Users: users, Quizzes: quizzes, Challenges: challenges}
}

func (s *LeaderboardService) Global(ctx context.Context) ([]models.LeaderboardEntry, error) {
	users, err := s.Users.TopByPoints(ctx, bson.M{}, globalLeaderboardSize)
	if err != nil {
		return nil, err
	}
	return rankEntries(users, ""), nil
}

func (s *LeaderboardService) School(ctx context.Context, school, currentUserID string) ([]models.LeaderboardEntry, error) {
	users, err := s.Users.TopByPoints(ctx, bson.M{"school": school}, schoolLeaderboardSize)
	if err != nil {
		return nil, err
	}
	return rankEntries(users, currentUserID), nil
}

func rankEntries(users []models.User, currentUserID string) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			Rank:          i + 1,
			DisplayName:   u.DisplayName,
			School:        u.School,
			EcoPoints:     u.EcoPoints,
			Level:         u.Level,
			Streak:        u.Streak,
			IsCurrentUser: currentUserID != "" && u.ID == currentUserID,
		})
	}
	return entries
}

// Stats assembles a learner's dashboard numbers: rank among all users plus
// recent completions resolved to content titles.
func (s *LeaderboardService) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.Users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	ahead, err := s.Users.CountWithMorePoints(ctx, user.EcoPoints)
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{
		EcoPoints:           user.EcoPoints,
		Level:               user.Level,
		Streak:              user.Streak,
		Rank:                ahead + 1,
		TotalUsers:          totalUsers,
		CompletedQuizzes:    len(user.CompletedQuizzes),
		CompletedChallenges: len(user.CompletedChallenges),
		Achievements:        len(user.Achievements),
		RecentActivity:      s.recentActivity(ctx, user),
	}
	return stats, nil
}

func (s *LeaderboardService) recentActivity(ctx context.Context, user *models.User) []models.ActivityItem {
	items := []models.ActivityItem{}

	quizzes := user.CompletedQuizzes
	if len(quizzes) > recentQuizActivity {
		quizzes = quizzes[len(quizzes)-recentQuizActivity:]
	}
	for _, q := range quizzes {
		title := q.QuizID
		if quiz, err := s.Quizzes.FindByIDPublic(ctx, q.QuizID); err == nil {
			title = quiz.Title
		}
		items = append(items, models.ActivityItem{
			Type:        "quiz",
			Title:       title,
			Score:       q.Score,
			CompletedAt: q.CompletedAt,
		})
	}

	challenges := user.CompletedChallenges
	if len(challenges) > recentChallengeCount {
		challenges = challenges[len(challenges)-recentChallengeCount:]
	}
	for _, c := range challenges {
		title := c.ChallengeID
		if challenge, err := s.Challenges.FindByID(ctx, c.ChallengeID); err == nil {
			title = challenge.Title
		}
		items = append(items, models.ActivityItem{
			Type:        "challenge",
			Title:       title,
			CompletedAt: c.CompletedAt,
		})
	}
	return items
}
