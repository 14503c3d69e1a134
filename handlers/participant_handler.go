package handlers

import (
	"net/http"

	"oscarpool/models"
	"oscarpool/services"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
	lobbyService       *services.LobbyService
	limitsService      *services.LimitsService
}

func NewParticipantHandler(
	participantService *services.ParticipantService,
	lobbyService *services.LobbyService,
	limitsService *services.LimitsService,
) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
		lobbyService:       lobbyService,
		limitsService:      limitsService,
	}
}

// SubmitPredictions is public: anyone holding the invite link can enter
// the pool while the lobby is open.
func (h *ParticipantHandler) SubmitPredictions(c *gin.Context) {
	var req services.SubmitPredictionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check, err := h.limitsService.CanAddParticipant(req.LobbyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !check.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": check.Reason})
		return
	}

	participant, err := h.participantService.SubmitPredictions(&req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// GetParticipantPicks reveals one participant's picks. While the lobby is
// still open the picks stay hidden so entrants cannot copy each other.
func (h *ParticipantHandler) GetParticipantPicks(c *gin.Context) {
	participantID, err := parseID(c, "participantId")
	if err != nil {
		return
	}

	lobbyID := c.Query("lobby_id")
	if lobbyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lobby_id query parameter is required"})
		return
	}

	lobby, err := h.lobbyService.GetLobbyByID(lobbyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if lobby.Status == models.LobbyStatusOpen {
		abortWithError(c, services.ErrPicksHidden)
		return
	}

	picks, err := h.participantService.GetParticipantPicks(participantID, lobbyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, picks)
}
