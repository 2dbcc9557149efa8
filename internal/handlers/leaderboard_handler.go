package handlers

import (
	"context"
	"net/http"

	"ecolearn-service/internal/middleware"
	"ecolearn-service/internal/service"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	Service     *service.LeaderboardService
	UserService *service.UserService
}

func NewLeaderboardHandler(s *service.LeaderboardService, users *service.UserService) *LeaderboardHandler {
	return &LeaderboardHandler{Service: s, UserService: users}
}

func (h *LeaderboardHandler) Global(c *gin.Context) {
	entries, err := h.Service.Global(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// School ranks the authenticated user's school and flags their own row.
func (h *LeaderboardHandler) School(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	user, err := h.UserService.GetUser(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	entries, err := h.Service.School(context.Background(), user.School, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *LeaderboardHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	stats, err := h.Service.Stats(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
