package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"oscarpool/models"

	"gorm.io/gorm"
)

type LobbyService struct {
	db *gorm.DB
}

func NewLobbyService(db *gorm.DB) *LobbyService {
	return &LobbyService{db: db}
}

type CreateLobbyRequest struct {
	Name string `json:"name" binding:"required"`
}

type LobbyWithCount struct {
	models.Lobby
	ParticipantCount int `json:"participant_count"`
}

func (s *LobbyService) CreateLobby(adminID uint, req *CreateLobbyRequest) (*models.Lobby, error) {
	lobby := models.Lobby{
		ID:      s.generateLobbyID(),
		AdminID: adminID,
		Name:    req.Name,
		Status:  models.LobbyStatusOpen,
	}

	if err := s.db.Create(&lobby).Error; err != nil {
		return nil, err
	}

	return &lobby, nil
}

func (s *LobbyService) GetLobbyByID(lobbyID string) (*models.Lobby, error) {
	var lobby models.Lobby
	if err := s.db.Where("id = ?", lobbyID).First(&lobby).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLobbyNotFound
		}
		return nil, err
	}
	return &lobby, nil
}

func (s *LobbyService) GetLobbiesByAdmin(adminID uint) ([]LobbyWithCount, error) {
	var lobbies []LobbyWithCount
	err := s.db.Model(&models.Lobby{}).
		Select("lobbies.*, COUNT(participants.id) AS participant_count").
		Joins("LEFT JOIN participants ON participants.lobby_id = lobbies.id AND participants.deleted_at IS NULL").
		Where("lobbies.admin_id = ?", adminID).
		Group("lobbies.id").
		Order("lobbies.created_at DESC").
		Find(&lobbies).Error
	return lobbies, err
}

// Lifecycle transitions. A completed lobby is terminal: once an admin marks
// the ceremony done, no transition can move the lobby out of that state.

func (s *LobbyService) LockLobby(lobbyID string, adminID uint) (*models.Lobby, error) {
	lobby, err := s.ownedLobby(lobbyID, adminID)
	if err != nil {
		return nil, err
	}
	if lobby.Status == models.LobbyStatusCompleted {
		return nil, ErrLobbyCompleted
	}

	now := time.Now()
	updates := map[string]interface{}{"status": models.LobbyStatusLocked, "locked_at": &now}
	if err := s.db.Model(lobby).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetLobbyByID(lobbyID)
}

func (s *LobbyService) UnlockLobby(lobbyID string, adminID uint) (*models.Lobby, error) {
	lobby, err := s.ownedLobby(lobbyID, adminID)
	if err != nil {
		return nil, err
	}
	if lobby.Status == models.LobbyStatusCompleted {
		return nil, ErrLobbyCompleted
	}

	updates := map[string]interface{}{"status": models.LobbyStatusOpen, "locked_at": nil}
	if err := s.db.Model(lobby).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetLobbyByID(lobbyID)
}

func (s *LobbyService) CompleteLobby(lobbyID string, adminID uint) (*models.Lobby, error) {
	lobby, err := s.ownedLobby(lobbyID, adminID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(lobby).Update("status", models.LobbyStatusCompleted).Error; err != nil {
		return nil, err
	}
	return s.GetLobbyByID(lobbyID)
}

func (s *LobbyService) GetParticipantsByLobby(lobbyID string) ([]models.Participant, error) {
	if _, err := s.GetLobbyByID(lobbyID); err != nil {
		return nil, err
	}

	var participants []models.Participant
	err := s.db.Where("lobby_id = ?", lobbyID).
		Order("submitted_at").
		Find(&participants).Error
	return participants, err
}

func (s *LobbyService) DeleteParticipant(lobbyID string, participantID uint, adminID uint) error {
	if _, err := s.ownedLobby(lobbyID, adminID); err != nil {
		return err
	}

	var participant models.Participant
	if err := s.db.Where("id = ? AND lobby_id = ?", participantID, lobbyID).
		First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}

	return s.deleteParticipants([]uint{participantID})
}

func (s *LobbyService) DeleteParticipants(lobbyID string, participantIDs []uint, adminID uint) error {
	if _, err := s.ownedLobby(lobbyID, adminID); err != nil {
		return err
	}
	if len(participantIDs) == 0 {
		return nil
	}
	return s.deleteParticipants(participantIDs)
}

func (s *LobbyService) DeleteLobby(lobbyID string, adminID uint) error {
	if _, err := s.ownedLobby(lobbyID, adminID); err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	participantIDs := tx.Model(&models.Participant{}).Select("id").Where("lobby_id = ?", lobbyID)

	if err := tx.Where("participant_id IN (?)", participantIDs).
		Delete(&models.Prediction{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("lobby_id = ?", lobbyID).Delete(&models.Participant{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("id = ?", lobbyID).Delete(&models.Lobby{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *LobbyService) deleteParticipants(participantIDs []uint) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("participant_id IN ?", participantIDs).
		Delete(&models.Prediction{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("id IN ?", participantIDs).
		Delete(&models.Participant{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *LobbyService) ownedLobby(lobbyID string, adminID uint) (*models.Lobby, error) {
	lobby, err := s.GetLobbyByID(lobbyID)
	if err != nil {
		return nil, err
	}
	if lobby.AdminID != adminID {
		return nil, ErrNotLobbyOwner
	}
	return lobby, nil
}

func (s *LobbyService) generateLobbyID() string {
	bytes := make([]byte, 5)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
