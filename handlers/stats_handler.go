package handlers

import (
	"net/http"

	"oscarpool/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService  *services.StatsService
	limitsService *services.LimitsService
	authService   *services.AuthService
}

func NewStatsHandler(
	statsService *services.StatsService,
	limitsService *services.LimitsService,
	authService *services.AuthService,
) *StatsHandler {
	return &StatsHandler{
		statsService:  statsService,
		limitsService: limitsService,
		authService:   authService,
	}
}

// GetSystemStats is restricted to the reserved "admin" account.
func (h *StatsHandler) GetSystemStats(c *gin.Context) {
	if !h.requireSuperAdmin(c) {
		return
	}

	stats, err := h.statsService.GetSystemStats()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetUsageStats(c *gin.Context) {
	if !h.requireSuperAdmin(c) {
		return
	}

	usage, err := h.limitsService.GetUsageStats()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, usage)
}

func (h *StatsHandler) UpdateLimits(c *gin.Context) {
	if !h.requireSuperAdmin(c) {
		return
	}

	var req services.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := h.limitsService.UpdateConfig(&req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, config)
}

func (h *StatsHandler) requireSuperAdmin(c *gin.Context) bool {
	adminID, ok := currentAdminID(c)
	if !ok {
		return false
	}

	admin, err := h.authService.GetAdminByID(adminID)
	if err != nil {
		abortWithError(c, err)
		return false
	}

	if admin.Username != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return false
	}

	return true
}
