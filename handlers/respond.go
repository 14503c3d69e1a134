package handlers

import (
	"errors"
	"net/http"

	"oscarpool/services"

	"github.com/gin-gonic/gin"
)

// statusFor translates service-layer sentinel errors into HTTP status codes.
// Anything unrecognized is treated as an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrLobbyNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrNomineeNotFound),
		errors.Is(err, services.ErrParticipantNotFound),
		errors.Is(err, services.ErrAdminNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNameTaken),
		errors.Is(err, services.ErrNomineeExists),
		errors.Is(err, services.ErrUsernameExists),
		errors.Is(err, services.ErrLobbyNotOpen),
		errors.Is(err, services.ErrLobbyCompleted):
		return http.StatusConflict
	case errors.Is(err, services.ErrPicksHidden),
		errors.Is(err, services.ErrNotLobbyOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrMissingPredictions),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrNomineeMismatch),
		errors.Is(err, services.ErrDuplicatePicks),
		errors.Is(err, services.ErrPartialReorder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func currentAdminID(c *gin.Context) (uint, bool) {
	adminID, exists := c.Get("admin_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return 0, false
	}
	return adminID.(uint), true
}
