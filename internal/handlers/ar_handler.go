package handlers

import (
	"context"
	"net/http"

	"ecolearn-service/internal/ledger"
	"ecolearn-service/internal/middleware"
	"ecolearn-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ARHandler struct {
	Service *service.ARService
}

func NewARHandler(s *service.ARService) *ARHandler {
	return &ARHandler{Service: s}
}

// TreePlanting records an AR tree-planting session.
func (h *ARHandler) TreePlanting(c *gin.Context) {
	var req struct {
		TreesPlanted int `json:"trees_planted"`
		PointsEarned int `json:"points_earned"`
	}
	h.record(c, ledger.ARTreePlanting, &req.TreesPlanted, &req.PointsEarned, &req, "total_trees_planted")
}

// Recycling records an AR recycling session.
func (h *ARHandler) Recycling(c *gin.Context) {
	var req struct {
		ItemsRecycled int `json:"items_recycled"`
		PointsEarned  int `json:"points_earned"`
	}
	h.record(c, ledger.ARRecycling, &req.ItemsRecycled, &req.PointsEarned, &req, "total_recycling_actions")
}

// EnergyConservation records an AR energy-conservation session.
func (h *ARHandler) EnergyConservation(c *gin.Context) {
	var req struct {
		EnergyActions int `json:"energy_actions"`
		PointsEarned  int `json:"points_earned"`
	}
	h.record(c, ledger.AREnergy, &req.EnergyActions, &req.PointsEarned, &req, "total_energy_actions")
}

func (h *ARHandler) record(c *gin.Context, kind ledger.ARActivity, actions, points *int, req interface{}, totalKey string) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	outcome, err := h.Service.RecordActivity(context.Background(), userID, kind, *actions, *points)
	if err != nil {
		respondLedgerError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"total_points": outcome.TotalPoints,
		"new_level":    outcome.NewLevel,
		"leveled_up":   outcome.LeveledUp,
		"streak":       outcome.Streak,
		totalKey:       outcome.TotalActions,
	})
}

func (h *ARHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	stats, err := h.Service.GetStats(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
