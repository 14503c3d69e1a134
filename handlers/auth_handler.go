package handlers

import (
	"net/http"

	"oscarpool/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   *services.AuthService
	limitsService *services.LimitsService
}

func NewAuthHandler(authService *services.AuthService, limitsService *services.LimitsService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		limitsService: limitsService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check, err := h.limitsService.CanCreateAdmin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !check.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": check.Reason})
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	admin, err := h.authService.GetAdminByID(adminID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": admin.ID, "username": admin.Username})
}
