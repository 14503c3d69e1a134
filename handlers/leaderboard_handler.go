package handlers

import (
	"net/http"

	"oscarpool/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard is public and recomputed per request; clients poll it on a
// fixed interval.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	leaderboard, err := h.leaderboardService.GetLeaderboard(c.Param("lobbyId"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}
