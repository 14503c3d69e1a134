package services

import (
	"oscarpool/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type TopLobby struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ParticipantCount int    `json:"participant_count"`
}

type TopAdmin struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	LobbyCount        int    `json:"lobby_count"`
	TotalParticipants int    `json:"total_participants"`
}

type SystemStats struct {
	Totals     StatsTotals `json:"totals"`
	TopLobbies []TopLobby  `json:"top_lobbies"`
	TopAdmins  []TopAdmin  `json:"top_admins"`
}

type StatsTotals struct {
	Admins       int64 `json:"admins"`
	Lobbies      int64 `json:"lobbies"`
	Participants int64 `json:"participants"`
}

// GetSystemStats aggregates deployment-wide totals plus the busiest lobbies
// and admins. Restricted to the reserved "admin" account at the handler.
func (s *StatsService) GetSystemStats() (*SystemStats, error) {
	stats := &SystemStats{
		TopLobbies: []TopLobby{},
		TopAdmins:  []TopAdmin{},
	}

	if err := s.db.Model(&models.Admin{}).Count(&stats.Totals.Admins).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Lobby{}).Count(&stats.Totals.Lobbies).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Participant{}).Count(&stats.Totals.Participants).Error; err != nil {
		return nil, err
	}

	err := s.db.Model(&models.Lobby{}).
		Select("lobbies.id, lobbies.name, COUNT(participants.id) AS participant_count").
		Joins("LEFT JOIN participants ON participants.lobby_id = lobbies.id AND participants.deleted_at IS NULL").
		Group("lobbies.id").
		Order("participant_count DESC").
		Limit(5).
		Find(&stats.TopLobbies).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Admin{}).
		Select("admins.id, admins.username, COUNT(DISTINCT lobbies.id) AS lobby_count, COUNT(participants.id) AS total_participants").
		Joins("LEFT JOIN lobbies ON lobbies.admin_id = admins.id AND lobbies.deleted_at IS NULL").
		Joins("LEFT JOIN participants ON participants.lobby_id = lobbies.id AND participants.deleted_at IS NULL").
		Group("admins.id").
		Order("total_participants DESC").
		Limit(5).
		Find(&stats.TopAdmins).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
