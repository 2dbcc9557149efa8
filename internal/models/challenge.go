package models

import "time"

type Challenge struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description"`
	Category      string    `bson:"category" json:"category"`
	Difficulty    string    `bson:"difficulty" json:"difficulty"`
	Points        int       `bson:"points" json:"points"`
	TimeLimitDays int       `bson:"time_limit_days,omitempty" json:"time_limit_days,omitempty"`
	RequiresProof bool      `bson:"requires_proof" json:"requires_proof"`
	IsDaily       bool      `bson:"is_daily" json:"is_daily"`
	IsActive      bool      `bson:"is_active" json:"is_active"`
	Instructions  []string  `bson:"instructions" json:"instructions"`
	Tips          []string  `bson:"tips" json:"tips"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

var ChallengeCategories = []string{"recycling", "energy", "water", "transportation", "waste-reduction", "gardening"}
