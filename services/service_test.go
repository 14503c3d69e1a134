package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"oscarpool/models"
	"oscarpool/services"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// setupTestDB opens a fresh in-memory database with the full schema. Each
// call gets its own named database; shared cache keeps every pooled
// connection on the same one.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Admin{},
		&models.SystemConfig{},
		&models.Category{},
		&models.Nominee{},
		&models.Lobby{},
		&models.Participant{},
		&models.Prediction{},
	)
	require.NoError(t, err)

	return db
}

func createTestAdmin(t *testing.T, db *gorm.DB, username string) *models.Admin {
	t.Helper()

	admin := models.Admin{Username: username, PasswordHash: "not-a-real-hash"}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func createTestLobby(t *testing.T, db *gorm.DB, adminID uint, status string) *models.Lobby {
	t.Helper()

	svc := services.NewLobbyService(db)
	lobby, err := svc.CreateLobby(adminID, &services.CreateLobbyRequest{Name: "Oscar Night"})
	require.NoError(t, err)

	if status != models.LobbyStatusOpen {
		require.NoError(t, db.Model(lobby).Update("status", status).Error)
		lobby.Status = status
	}
	return lobby
}

// seedCategory creates a category with the given nominees and returns both.
func seedCategory(t *testing.T, db *gorm.DB, name string, nomineeNames ...string) (*models.Category, []models.Nominee) {
	t.Helper()

	svc := services.NewCategoryService(db, nil)
	category, err := svc.CreateCategory(name)
	require.NoError(t, err)

	nominees := make([]models.Nominee, 0, len(nomineeNames))
	for _, nomineeName := range nomineeNames {
		nominee, err := svc.AddNominee(category.ID, nomineeName)
		require.NoError(t, err)
		nominees = append(nominees, *nominee)
	}
	return category, nominees
}

// submitFor enters a participant with one pick per listed (category, nominee)
// pair, in the order given.
func submitFor(t *testing.T, db *gorm.DB, lobbyID, name string, picks map[uint]uint) *models.Participant {
	t.Helper()

	predictions := make([]services.PredictionInput, 0, len(picks))
	for categoryID, nomineeID := range picks {
		predictions = append(predictions, services.PredictionInput{
			CategoryID: categoryID,
			NomineeID:  nomineeID,
		})
	}

	svc := services.NewParticipantService(db)
	participant, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
		LobbyID:         lobbyID,
		ParticipantName: name,
		Predictions:     predictions,
	})
	require.NoError(t, err)
	return participant
}
