package services

import (
	"errors"
	"sort"

	"oscarpool/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type LeaderboardService struct {
	db       *gorm.DB
	collator *collate.Collator
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{
		db:       db,
		collator: collate.New(language.English),
	}
}

type LeaderboardEntry struct {
	ParticipantID uint   `json:"participant_id"`
	Name          string `json:"name"`
	Score         int    `json:"score"`
	CorrectPicks  int    `json:"correct_picks"`
	TotalPicks    int    `json:"total_picks"`
	Rank          int    `json:"rank"`
}

type LeaderboardStats struct {
	TotalParticipants   int `json:"total_participants"`
	CategoriesAnnounced int `json:"categories_announced"`
	TotalCategories     int `json:"total_categories"`
}

type LeaderboardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	Stats       LeaderboardStats   `json:"stats"`
	LobbyName   string             `json:"lobby_name"`
	LobbyStatus string             `json:"lobby_status"`
}

// GetLeaderboard recomputes the full standings for a lobby from the current
// predictions and winner flags. There is no cached or incremental state:
// scoring is a pure function of what is in the store right now, so every
// poll gets a fresh ranking.
func (s *LeaderboardService) GetLeaderboard(lobbyID string) (*LeaderboardResponse, error) {
	var lobby models.Lobby
	if err := s.db.Where("id = ?", lobbyID).First(&lobby).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLobbyNotFound
		}
		return nil, err
	}

	var participants []models.Participant
	if err := s.db.Where("lobby_id = ?", lobbyID).
		Order("submitted_at").
		Find(&participants).Error; err != nil {
		return nil, err
	}

	var totalCategories int64
	if err := s.db.Model(&models.Category{}).Count(&totalCategories).Error; err != nil {
		return nil, err
	}

	var winners []models.Nominee
	if err := s.db.Where("is_winner = ?", true).Find(&winners).Error; err != nil {
		return nil, err
	}

	winnerByCategory := make(map[uint]uint, len(winners))
	for _, winner := range winners {
		winnerByCategory[winner.CategoryID] = winner.ID
	}

	entries := make([]LeaderboardEntry, 0, len(participants))
	for _, participant := range participants {
		var predictions []models.Prediction
		if err := s.db.Where("participant_id = ?", participant.ID).
			Find(&predictions).Error; err != nil {
			return nil, err
		}

		correctPicks := 0
		for _, prediction := range predictions {
			if winnerID, ok := winnerByCategory[prediction.CategoryID]; ok && winnerID == prediction.NomineeID {
				correctPicks++
			}
		}

		entries = append(entries, LeaderboardEntry{
			ParticipantID: participant.ID,
			Name:          participant.Name,
			Score:         correctPicks, // 1 point per correct pick
			CorrectPicks:  correctPicks,
			TotalPicks:    len(predictions),
		})
	}

	// Score descending, name ascending within a tie
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return s.collator.CompareString(entries[i].Name, entries[j].Name) < 0
	})

	// Competition ranking: tied entries share a rank, the next distinct
	// score ranks below the whole tie block (scores 5,5,3 -> ranks 1,1,3).
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	return &LeaderboardResponse{
		Entries: entries,
		Stats: LeaderboardStats{
			TotalParticipants:   len(participants),
			CategoriesAnnounced: len(winnerByCategory),
			TotalCategories:     int(totalCategories),
		},
		LobbyName:   lobby.Name,
		LobbyStatus: lobby.Status,
	}, nil
}
