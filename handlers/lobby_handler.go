package handlers

import (
	"net/http"

	"oscarpool/services"

	"github.com/gin-gonic/gin"
)

type LobbyHandler struct {
	lobbyService    *services.LobbyService
	categoryService *services.CategoryService
	limitsService   *services.LimitsService
}

func NewLobbyHandler(
	lobbyService *services.LobbyService,
	categoryService *services.CategoryService,
	limitsService *services.LimitsService,
) *LobbyHandler {
	return &LobbyHandler{
		lobbyService:    lobbyService,
		categoryService: categoryService,
		limitsService:   limitsService,
	}
}

type bulkDeleteRequest struct {
	ParticipantIDs []uint `json:"participant_ids" binding:"required"`
}

func (h *LobbyHandler) CreateLobby(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	var req services.CreateLobbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check, err := h.limitsService.CanCreateLobby(adminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !check.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": check.Reason})
		return
	}

	lobby, err := h.lobbyService.CreateLobby(adminID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lobby)
}

func (h *LobbyHandler) GetMyLobbies(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	lobbies, err := h.lobbyService.GetLobbiesByAdmin(adminID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lobbies)
}

// GetLobby is public: anyone holding the invite link can load the lobby.
func (h *LobbyHandler) GetLobby(c *gin.Context) {
	lobby, err := h.lobbyService.GetLobbyByID(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lobby)
}

// GetLobbyCategories serves the prediction form. This is the one read that
// goes through the Redis category cache.
func (h *LobbyHandler) GetLobbyCategories(c *gin.Context) {
	if _, err := h.lobbyService.GetLobbyByID(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetCategoriesWithNomineesCached()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *LobbyHandler) GetParticipants(c *gin.Context) {
	participants, err := h.lobbyService.GetParticipantsByLobby(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

func (h *LobbyHandler) LockLobby(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	lobby, err := h.lobbyService.LockLobby(c.Param("id"), adminID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lobby)
}

func (h *LobbyHandler) UnlockLobby(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	lobby, err := h.lobbyService.UnlockLobby(c.Param("id"), adminID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lobby)
}

func (h *LobbyHandler) CompleteLobby(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	lobby, err := h.lobbyService.CompleteLobby(c.Param("id"), adminID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lobby)
}

func (h *LobbyHandler) DeleteParticipant(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	participantID, err := parseID(c, "participantId")
	if err != nil {
		return
	}

	if err := h.lobbyService.DeleteParticipant(c.Param("id"), participantID, adminID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *LobbyHandler) BulkDeleteParticipants(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lobbyService.DeleteParticipants(c.Param("id"), req.ParticipantIDs, adminID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted_count": len(req.ParticipantIDs)})
}

func (h *LobbyHandler) DeleteLobby(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	if err := h.lobbyService.DeleteLobby(c.Param("id"), adminID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
