package service

import (
	"context"

	"ecolearn-service/internal/models"
	"ecolearn-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

type ProfileUpdate struct {
	DisplayName string
	School      string
	Grade       string
	Avatar      string
}

// UpdateProfile applies the non-empty fields and returns the fresh document.
// Progression fields are off limits here; only the ledger writes those.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	fields := bson.M{}
	if in.DisplayName != "" {
		fields["display_name"] = in.DisplayName
	}
	if in.School != "" {
		fields["school"] = in.School
	}
	if in.Grade != "" {
		fields["grade"] = in.Grade
	}
	if in.Avatar != "" {
		fields["avatar"] = in.Avatar
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateProfile(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(ctx, userID)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.FindByID(ctx, userID)
}
