package models

import "time"

type QuizCompletion struct {
	QuizID      string    `bson:"quiz_id" json:"quiz_id"`
	Score       int       `bson:"score" json:"score"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
}

type ChallengeCompletion struct {
	ChallengeID string    `bson:"challenge_id" json:"challenge_id"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
	Proof       string    `bson:"proof,omitempty" json:"proof,omitempty"`
}

type User struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Email       string `bson:"email" json:"email"`
	Password    string `bson:"password" json:"-"`
	DisplayName string `bson:"display_name" json:"display_name"`
	School      string `bson:"school" json:"school"`
	Grade       string `bson:"grade" json:"grade"`
	Avatar      string `bson:"avatar" json:"avatar"`

	EcoPoints        int        `bson:"eco_points" json:"eco_points"`
	Level            int        `bson:"level" json:"level"`
	Streak           int        `bson:"streak" json:"streak"`
	LastActivityDate *time.Time `bson:"last_activity_date,omitempty" json:"last_activity_date,omitempty"`

	Achievements []string `bson:"achievements" json:"achievements"`

	ARTreesPlanted     int `bson:"ar_trees_planted" json:"ar_trees_planted"`
	ARRecyclingActions int `bson:"ar_recycling_actions" json:"ar_recycling_actions"`
	AREnergyActions    int `bson:"ar_energy_actions" json:"ar_energy_actions"`
	ARPoints           int `bson:"ar_points" json:"ar_points"`

	CompletedQuizzes    []QuizCompletion      `bson:"completed_quizzes" json:"completed_quizzes"`
	CompletedChallenges []ChallengeCompletion `bson:"completed_challenges" json:"completed_challenges"`

	// Version guards the read-modify-write of progression state. Writers
	// must match the version they read and bump it on save.
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasCompletedChallenge reports whether a completion record already exists
// for the given challenge. Challenges are one-time; quizzes are not.
func (u *User) HasCompletedChallenge(challengeID string) bool {
	for _, c := range u.CompletedChallenges {
		if c.ChallengeID == challengeID {
			return true
		}
	}
	return false
}
