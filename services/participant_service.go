package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"oscarpool/models"

	"gorm.io/gorm"
)

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{db: db}
}

type PredictionInput struct {
	CategoryID uint `json:"category_id" binding:"required"`
	NomineeID  uint `json:"nominee_id" binding:"required"`
}

type SubmitPredictionsRequest struct {
	LobbyID         string            `json:"lobby_id" binding:"required"`
	ParticipantName string            `json:"participant_name" binding:"required"`
	Predictions     []PredictionInput `json:"predictions" binding:"required,min=1"`
}

type ParticipantPick struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	NomineeID    uint    `json:"nominee_id"`
	NomineeName  string  `json:"nominee_name"`
	WinnerID     *uint   `json:"winner_id"`
	WinnerName   *string `json:"winner_name"`
	IsCorrect    *bool   `json:"is_correct"`
}

// SubmitPredictions validates and stores one participant's full prediction
// set. The batch must cover every current category exactly once and every
// pick must name a nominee that belongs to its category. The participant row
// and all prediction rows are written in a single transaction, so a
// participant with missing predictions is never observable.
func (s *ParticipantService) SubmitPredictions(req *SubmitPredictionsRequest) (*models.Participant, error) {
	name := strings.TrimSpace(req.ParticipantName)
	if name == "" {
		return nil, errors.New("name is required")
	}

	var lobby models.Lobby
	if err := s.db.Where("id = ?", req.LobbyID).First(&lobby).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLobbyNotFound
		}
		return nil, err
	}

	if lobby.Status != models.LobbyStatusOpen {
		return nil, ErrLobbyNotOpen
	}

	var existing models.Participant
	if err := s.db.Where("lobby_id = ? AND LOWER(name) = LOWER(?)", req.LobbyID, name).
		First(&existing).Error; err == nil {
		return nil, ErrNameTaken
	}

	var categories []models.Category
	if err := s.db.Order("display_order").Find(&categories).Error; err != nil {
		return nil, err
	}

	currentIDs := make(map[uint]bool, len(categories))
	for _, category := range categories {
		currentIDs[category.ID] = true
	}

	picked := make(map[uint]uint, len(req.Predictions))
	for _, pred := range req.Predictions {
		if !currentIDs[pred.CategoryID] {
			return nil, ErrUnknownCategory
		}
		if _, dup := picked[pred.CategoryID]; dup {
			return nil, ErrDuplicatePicks
		}
		picked[pred.CategoryID] = pred.NomineeID
	}

	for _, category := range categories {
		if _, ok := picked[category.ID]; !ok {
			return nil, ErrMissingPredictions
		}
	}

	for _, pred := range req.Predictions {
		var nominee models.Nominee
		err := s.db.Where("id = ? AND category_id = ?", pred.NomineeID, pred.CategoryID).
			First(&nominee).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNomineeMismatch
			}
			return nil, err
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	participant := models.Participant{
		LobbyID:     req.LobbyID,
		Name:        name,
		SubmittedAt: time.Now(),
	}

	if err := tx.Create(&participant).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, pred := range req.Predictions {
		prediction := models.Prediction{
			ParticipantID: participant.ID,
			CategoryID:    pred.CategoryID,
			NomineeID:     pred.NomineeID,
		}

		if err := tx.Create(&prediction).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &participant, nil
}

// GetParticipantPicks returns one row per prediction, in category display
// order, with the announced winner alongside. IsCorrect is nil exactly when
// the category has no winner yet. The caller is responsible for the
// visibility gate (locked or completed lobbies only).
func (s *ParticipantService) GetParticipantPicks(participantID uint, lobbyID string) ([]ParticipantPick, error) {
	var participant models.Participant
	err := s.db.Where("id = ? AND lobby_id = ?", participantID, lobbyID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	var predictions []models.Prediction
	err = s.db.Where("participant_id = ?", participantID).
		Preload("Category").
		Preload("Nominee").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}

	var winners []models.Nominee
	if err := s.db.Where("is_winner = ?", true).Find(&winners).Error; err != nil {
		return nil, err
	}

	winnerByCategory := make(map[uint]models.Nominee, len(winners))
	for _, winner := range winners {
		winnerByCategory[winner.CategoryID] = winner
	}

	sort.Slice(predictions, func(i, j int) bool {
		a, b := predictions[i].Category, predictions[j].Category
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.ID < b.ID
	})

	picks := make([]ParticipantPick, 0, len(predictions))
	for _, prediction := range predictions {
		pick := ParticipantPick{
			CategoryID:   prediction.CategoryID,
			CategoryName: prediction.Category.Name,
			NomineeID:    prediction.NomineeID,
			NomineeName:  prediction.Nominee.Name,
		}

		if winner, ok := winnerByCategory[prediction.CategoryID]; ok {
			winnerID := winner.ID
			winnerName := winner.Name
			correct := prediction.NomineeID == winner.ID
			pick.WinnerID = &winnerID
			pick.WinnerName = &winnerName
			pick.IsCorrect = &correct
		}

		picks = append(picks, pick)
	}

	return picks, nil
}
