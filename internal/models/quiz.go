package models

import "time"

type Question struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correct_answer" json:"correct_answer,omitempty"`
	Explanation   string   `bson:"explanation" json:"explanation,omitempty"`
}

type Quiz struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	Title            string     `bson:"title" json:"title"`
	Description      string     `bson:"description" json:"description"`
	Category         string     `bson:"category" json:"category"`
	Difficulty       string     `bson:"difficulty" json:"difficulty"`
	TimeLimitMinutes int        `bson:"time_limit_minutes" json:"time_limit_minutes"`
	Questions        []Question `bson:"questions" json:"questions"`
	Points           int        `bson:"points" json:"points"`
	IsActive         bool       `bson:"is_active" json:"is_active"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`
}

// QuizCategories and QuizDifficulties mirror the allowed content values.
var QuizCategories = []string{"recycling", "energy", "water", "climate", "biodiversity", "pollution"}

var QuizDifficulties = []string{"easy", "medium", "hard"}
