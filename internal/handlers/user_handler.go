package handlers

import (
	"context"
	"net/http"

	"ecolearn-service/internal/middleware"
	"ecolearn-service/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

// UpdateProfile updates the editable profile fields; omitted fields are left
// untouched.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
		School      string `json:"school"`
		Grade       string `json:"grade"`
		Avatar      string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	user, err := h.Service.UpdateProfile(context.Background(), userID, service.ProfileUpdate{
		DisplayName: req.DisplayName,
		School:      req.School,
		Grade:       req.Grade,
		Avatar:      req.Avatar,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
