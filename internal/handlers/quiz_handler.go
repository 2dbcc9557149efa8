package handlers

import (
	"context"
	"net/http"

	"ecolearn-service/internal/ledger"
	"ecolearn-service/internal/middleware"
	"ecolearn-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

// ListQuizzes returns active quizzes without their answer keys, optionally
// filtered by category and difficulty.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.Service.ListQuizzes(context.Background(), c.Query("category"), c.Query("difficulty"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quizzes", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.Service.GetQuiz(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// SubmitQuiz grades the submitted answers and applies the earned points to
// the learner's progress. Null entries mean the question was skipped.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		Answers []*int `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answers format", "details": err.Error()})
		return
	}

	answers := make([]int, len(req.Answers))
	for i, a := range req.Answers {
		if a == nil {
			answers[i] = ledger.Unanswered
		} else {
			answers[i] = *a
		}
	}

	outcome, err := h.Service.SubmitQuiz(context.Background(), userID, c.Param("id"), answers)
	if err != nil {
		respondLedgerError(c, err, "Quiz not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":         outcome.Percentage,
		"points_earned": outcome.PointsEarned,
		"total_points":  outcome.TotalPoints,
		"results":       outcome.Results,
		"new_level":     outcome.NewLevel,
		"leveled_up":    outcome.LeveledUp,
		"streak":        outcome.Streak,
	})
}
