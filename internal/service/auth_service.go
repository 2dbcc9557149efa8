package service

import (
	"context"
	"errors"

	"ecolearn-service/internal/auth"
	"ecolearn-service/internal/ledger"
	"ecolearn-service/internal/models"
	"ecolearn-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	Users *repository.UserRepository
	JWT   *auth.JWTService
}

func NewAuthService(users *repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{Users: users, JWT: jwtService}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	School      string
	Grade       string
}

// Register creates a learner account with fresh progression state: zero
// points, level 1, no streak, no completions.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	_, err := s.Users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, ledger.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:               in.Email,
		Password:            string(hash),
		DisplayName:         in.DisplayName,
		School:              in.School,
		Grade:               in.Grade,
		EcoPoints:           0,
		Level:               1,
		Streak:              0,
		Achievements:        []string{},
		CompletedQuizzes:    []models.QuizCompletion{},
		CompletedChallenges: []models.ChallengeCompletion{},
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.JWT.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, ledger.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.JWT.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.Users.FindByID(ctx, id)
}
