package handlers

import (
	"errors"
	"net/http"

	"ecolearn-service/internal/ledger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// respondLedgerError maps ledger and lookup failures to HTTP statuses.
// notFoundMsg names the content item the caller referenced.
func respondLedgerError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, ledger.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, ledger.ErrDuplicateCompletion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Challenge already completed"})
	case errors.Is(err, ledger.ErrMissingProof):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Proof is required for this challenge"})
	case errors.Is(err, ledger.ErrInvalidActivity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Activity counts and points must be non-negative"})
	case errors.Is(err, ledger.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Progress was updated concurrently, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record completion", "details": err.Error()})
	}
}
