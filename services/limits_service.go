package services

import (
	"fmt"

	"oscarpool/models"

	"gorm.io/gorm"
)

// Hard caps the adjustable limits can never exceed.
const (
	HardCapMaxAdmins               = 1000
	HardCapMaxLobbiesPerAdmin      = 50
	HardCapMaxParticipantsPerLobby = 500
)

type LimitsService struct {
	db *gorm.DB
}

func NewLimitsService(db *gorm.DB) *LimitsService {
	return &LimitsService{db: db}
}

type LimitCheck struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type UpdateConfigRequest struct {
	MaxAdmins               *int `json:"max_admins"`
	MaxLobbiesPerAdmin      *int `json:"max_lobbies_per_admin"`
	MaxParticipantsPerLobby *int `json:"max_participants_per_lobby"`
}

// EnsureConfig seeds the single config row if it does not exist yet.
// Called once at startup, after migration.
func (s *LimitsService) EnsureConfig() error {
	var config models.SystemConfig
	err := s.db.First(&config, 1).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	config = models.SystemConfig{
		ID:                      1,
		MaxAdmins:               100,
		MaxLobbiesPerAdmin:      10,
		MaxParticipantsPerLobby: 50,
	}
	return s.db.Create(&config).Error
}

func (s *LimitsService) GetConfig() (*models.SystemConfig, error) {
	var config models.SystemConfig
	if err := s.db.First(&config, 1).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (s *LimitsService) UpdateConfig(req *UpdateConfigRequest) (*models.SystemConfig, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	if req.MaxAdmins != nil {
		config.MaxAdmins = min(*req.MaxAdmins, HardCapMaxAdmins)
	}
	if req.MaxLobbiesPerAdmin != nil {
		config.MaxLobbiesPerAdmin = min(*req.MaxLobbiesPerAdmin, HardCapMaxLobbiesPerAdmin)
	}
	if req.MaxParticipantsPerLobby != nil {
		config.MaxParticipantsPerLobby = min(*req.MaxParticipantsPerLobby, HardCapMaxParticipantsPerLobby)
	}

	if err := s.db.Save(config).Error; err != nil {
		return nil, err
	}
	return config, nil
}

func (s *LimitsService) CanCreateAdmin() (*LimitCheck, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return nil, err
	}

	if count >= int64(config.MaxAdmins) {
		return &LimitCheck{
			Allowed: false,
			Reason:  fmt.Sprintf("Maximum number of admins reached (%d). Contact the site administrator.", config.MaxAdmins),
		}, nil
	}

	return &LimitCheck{Allowed: true}, nil
}

func (s *LimitsService) CanCreateLobby(adminID uint) (*LimitCheck, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Lobby{}).Where("admin_id = ?", adminID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	if count >= int64(config.MaxLobbiesPerAdmin) {
		return &LimitCheck{
			Allowed: false,
			Reason:  fmt.Sprintf("You have reached the maximum number of lobbies (%d). Delete some lobbies to create new ones.", config.MaxLobbiesPerAdmin),
		}, nil
	}

	return &LimitCheck{Allowed: true}, nil
}

func (s *LimitsService) CanAddParticipant(lobbyID string) (*LimitCheck, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Participant{}).Where("lobby_id = ?", lobbyID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	if count >= int64(config.MaxParticipantsPerLobby) {
		return &LimitCheck{
			Allowed: false,
			Reason:  fmt.Sprintf("This lobby has reached its maximum capacity (%d participants).", config.MaxParticipantsPerLobby),
		}, nil
	}

	return &LimitCheck{Allowed: true}, nil
}

type UsageStats struct {
	Config     *models.SystemConfig `json:"config"`
	HardCaps   map[string]int       `json:"hard_caps"`
	Admins     UsageCounter         `json:"admins"`
	Lobbies    int64                `json:"lobbies"`
	Categories int64                `json:"categories"`
}

type UsageCounter struct {
	Current int64 `json:"current"`
	Limit   int   `json:"limit"`
}

// GetUsageStats reports how close the deployment is to its configured limits.
func (s *LimitsService) GetUsageStats() (*UsageStats, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	var adminCount, lobbyCount, categoryCount int64
	if err := s.db.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Lobby{}).Count(&lobbyCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return nil, err
	}

	return &UsageStats{
		Config: config,
		HardCaps: map[string]int{
			"max_admins":                 HardCapMaxAdmins,
			"max_lobbies_per_admin":      HardCapMaxLobbiesPerAdmin,
			"max_participants_per_lobby": HardCapMaxParticipantsPerLobby,
		},
		Admins:     UsageCounter{Current: adminCount, Limit: config.MaxAdmins},
		Lobbies:    lobbyCount,
		Categories: categoryCount,
	}, nil
}
