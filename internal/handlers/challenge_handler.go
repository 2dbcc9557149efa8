package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"ecolearn-service/internal/middleware"
	"ecolearn-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	Service *service.ChallengeService
}

func NewChallengeHandler(s *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{Service: s}
}

func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	var isDaily *bool
	if raw := c.Query("is_daily"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_daily must be true or false"})
			return
		}
		isDaily = &v
	}

	challenges, err := h.Service.ListChallenges(context.Background(), c.Query("category"), c.Query("difficulty"), isDaily)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list challenges", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, challenges)
}

func (h *ChallengeHandler) GetDailyChallenge(c *gin.Context) {
	challenge, err := h.Service.GetDailyChallenge(context.Background())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No daily challenge available"})
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// CompleteChallenge records a one-time completion with optional proof text.
func (h *ChallengeHandler) CompleteChallenge(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		Proof string `json:"proof"`
	}
	// An empty body is fine: proof is optional unless the challenge demands it.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	outcome, err := h.Service.CompleteChallenge(context.Background(), userID, c.Param("id"), req.Proof)
	if err != nil {
		respondLedgerError(c, err, "Challenge not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Challenge completed successfully",
		"points_earned": outcome.PointsEarned,
		"total_points":  outcome.TotalPoints,
		"new_level":     outcome.NewLevel,
		"leveled_up":    outcome.LeveledUp,
		"streak":        outcome.Streak,
	})
}
