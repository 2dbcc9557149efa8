package repository

import (
	"context"
	"errors"
	"time"

	"ecolearn-service/internal/ledger"
	"ecolearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ledger.ErrUserNotFound
	}
	var user models.User
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ledger.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ledger.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := r.Col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

// SaveProgress writes back the progression state of a user read earlier. The
// update matches on the version that was read and bumps it, so a writer that
// lost the race gets ledger.ErrConflict instead of clobbering the other write.
func (r *UserRepository) SaveProgress(ctx context.Context, user *models.User) error {
	objID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return ledger.ErrUserNotFound
	}
	update := bson.M{
		"$set": bson.M{
			"eco_points":           user.EcoPoints,
			"level":                user.Level,
			"streak":               user.Streak,
			"last_activity_date":   user.LastActivityDate,
			"ar_trees_planted":     user.ARTreesPlanted,
			"ar_recycling_actions": user.ARRecyclingActions,
			"ar_energy_actions":    user.AREnergyActions,
			"ar_points":            user.ARPoints,
			"completed_quizzes":    user.CompletedQuizzes,
			"completed_challenges": user.CompletedChallenges,
			"updated_at":           time.Now(),
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": objID, "version": user.Version}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the document is gone or another writer bumped the version.
		if exists, err := r.exists(ctx, objID); err != nil {
			return err
		} else if !exists {
			return ledger.ErrUserNotFound
		}
		return ledger.ErrConflict
	}
	return nil
}

func (r *UserRepository) exists(ctx context.Context, objID primitive.ObjectID) (bool, error) {
	count, err := r.Col.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, fields bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ledger.ErrUserNotFound
	}
	fields["updated_at"] = time.Now()
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ledger.ErrUserNotFound
	}
	return nil
}

// TopByPoints returns users ordered by eco-points for leaderboard views.
func (r *UserRepository) TopByPoints(ctx context.Context, filter bson.M, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "eco_points", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{
			"display_name": 1,
			"school":       1,
			"eco_points":   1,
			"level":        1,
			"streak":       1,
		})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, cur.Err()
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{})
}

// CountWithMorePoints supports rank computation: rank = count(points > mine) + 1.
func (r *UserRepository) CountWithMorePoints(ctx context.Context, points int) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"eco_points": bson.M{"$gt": points}})
}
