package repository

import (
	"context"

	"ecolearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ChallengeRepository struct {
	Col *mongo.Collection
}

func NewChallengeRepository(db *mongo.Database) *ChallengeRepository {
	return &ChallengeRepository{Col: db.Collection("challenges")}
}

func (r *ChallengeRepository) FindActive(ctx context.Context, category, difficulty string, isDaily *bool) ([]models.Challenge, error) {
	filter := bson.M{"is_active": true}
	if category != "" {
		filter["category"] = category
	}
	if difficulty != "" {
		filter["difficulty"] = difficulty
	}
	if isDaily != nil {
		filter["is_daily"] = *isDaily
	}
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var challenges []models.Challenge
	for cur.Next(ctx) {
		var c models.Challenge
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, cur.Err()
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (*models.Challenge, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var challenge models.Challenge
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&challenge)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) FindDaily(ctx context.Context) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.Col.FindOne(ctx, bson.M{"is_daily": true, "is_active": true}).Decode(&challenge)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	res, err := r.Col.InsertOne(ctx, challenge)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		challenge.ID = oid.Hex()
	}
	return nil
}
