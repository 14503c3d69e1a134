package services_test

import (
	"testing"

	"oscarpool/models"
	"oscarpool/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPredictions_Success(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	category, nominees := seedCategory(t, db, "Best Picture", "A", "B")

	svc := services.NewParticipantService(db)
	participant, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
		LobbyID:         lobby.ID,
		ParticipantName: "  Jane  ",
		Predictions: []services.PredictionInput{
			{CategoryID: category.ID, NomineeID: nominees[0].ID},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane", participant.Name, "name is stored trimmed")
	assert.Equal(t, lobby.ID, participant.LobbyID)
	assert.False(t, participant.SubmittedAt.IsZero())

	var count int64
	require.NoError(t, db.Model(&models.Prediction{}).
		Where("participant_id = ?", participant.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitPredictions_LobbyNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewParticipantService(db)

	_, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
		LobbyID:         "missing",
		ParticipantName: "Jane",
		Predictions:     []services.PredictionInput{{CategoryID: 1, NomineeID: 1}},
	})
	assert.ErrorIs(t, err, services.ErrLobbyNotFound)
}

func TestSubmitPredictions_LobbyNotOpen(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	category, nominees := seedCategory(t, db, "Best Picture", "A", "B")

	for _, status := range []string{models.LobbyStatusLocked, models.LobbyStatusCompleted} {
		lobby := createTestLobby(t, db, admin.ID, status)

		svc := services.NewParticipantService(db)
		_, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
			LobbyID:         lobby.ID,
			ParticipantName: "Jane",
			Predictions: []services.PredictionInput{
				{CategoryID: category.ID, NomineeID: nominees[0].ID},
			},
		})
		assert.ErrorIs(t, err, services.ErrLobbyNotOpen, "status %s must reject submissions", status)
	}
}

func TestSubmitPredictions_DuplicateNameCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	category, nominees := seedCategory(t, db, "Best Picture", "A", "B")

	submitFor(t, db, lobby.ID, "jane", map[uint]uint{category.ID: nominees[0].ID})

	svc := services.NewParticipantService(db)
	_, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
		LobbyID:         lobby.ID,
		ParticipantName: "Jane",
		Predictions: []services.PredictionInput{
			{CategoryID: category.ID, NomineeID: nominees[1].ID},
		},
	})
	assert.ErrorIs(t, err, services.ErrNameTaken)
}

func TestSubmitPredictions_SameNameDifferentLobby(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	first := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	second := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	category, nominees := seedCategory(t, db, "Best Picture", "A", "B")

	submitFor(t, db, first.ID, "Jane", map[uint]uint{category.ID: nominees[0].ID})
	// Name uniqueness is per lobby
	submitFor(t, db, second.ID, "Jane", map[uint]uint{category.ID: nominees[0].ID})
}

func TestSubmitPredictions_IncompleteCoverage(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	picture, pictureNoms := seedCategory(t, db, "Best Picture", "A", "B")
	seedCategory(t, db, "Best Director", "C", "D")

	svc := services.NewParticipantService(db)
	_, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
		LobbyID:         lobby.ID,
		ParticipantName: "Jane",
		Predictions: []services.PredictionInput{
			{CategoryID: picture.ID, NomineeID: pictureNoms[0].ID},
		},
	})
	assert.ErrorIs(t, err, services.ErrMissingPredictions)

	// The failed submission must not leave a participant behind.
	var count int64
	require.NoError(t, db.Model(&models.Participant{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitPredictions_UnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	category, nominees := seedCategory(t, db, "Best Picture", "A", "B")

	svc := services.NewParticipantService(db)
	_, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
		LobbyID:         lobby.ID,
		ParticipantName: "Jane",
		Predictions: []services.PredictionInput{
			{CategoryID: category.ID, NomineeID: nominees[0].ID},
			{CategoryID: 9999, NomineeID: nominees[1].ID},
		},
	})
	assert.ErrorIs(t, err, services.ErrUnknownCategory)
}

func TestSubmitPredictions_DuplicateCategoryInBatch(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	category, nominees := seedCategory(t, db, "Best Picture", "A", "B")

	svc := services.NewParticipantService(db)
	_, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
		LobbyID:         lobby.ID,
		ParticipantName: "Jane",
		Predictions: []services.PredictionInput{
			{CategoryID: category.ID, NomineeID: nominees[0].ID},
			{CategoryID: category.ID, NomineeID: nominees[1].ID},
		},
	})
	assert.ErrorIs(t, err, services.ErrDuplicatePicks)
}

func TestSubmitPredictions_NomineeFromWrongCategory(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	picture, _ := seedCategory(t, db, "Best Picture", "A", "B")
	director, directorNoms := seedCategory(t, db, "Best Director", "C", "D")

	svc := services.NewParticipantService(db)
	_, err := svc.SubmitPredictions(&services.SubmitPredictionsRequest{
		LobbyID:         lobby.ID,
		ParticipantName: "Jane",
		Predictions: []services.PredictionInput{
			// C belongs to Best Director, not Best Picture
			{CategoryID: picture.ID, NomineeID: directorNoms[0].ID},
			{CategoryID: director.ID, NomineeID: directorNoms[1].ID},
		},
	})
	assert.ErrorIs(t, err, services.ErrNomineeMismatch)
}

func TestGetParticipantPicks(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	picture, pictureNoms := seedCategory(t, db, "Best Picture", "A", "B")
	director, directorNoms := seedCategory(t, db, "Best Director", "C", "D")

	participant := submitFor(t, db, lobby.ID, "Jane", map[uint]uint{
		picture.ID:  pictureNoms[0].ID,
		director.ID: directorNoms[1].ID,
	})

	categoryService := services.NewCategoryService(db, nil)
	require.NoError(t, categoryService.SetWinner(picture.ID, pictureNoms[0].ID))

	svc := services.NewParticipantService(db)
	picks, err := svc.GetParticipantPicks(participant.ID, lobby.ID)
	require.NoError(t, err)
	require.Len(t, picks, 2)

	// Ordered by category display order
	assert.Equal(t, "Best Picture", picks[0].CategoryName)
	assert.Equal(t, "A", picks[0].NomineeName)
	require.NotNil(t, picks[0].IsCorrect)
	assert.True(t, *picks[0].IsCorrect)
	require.NotNil(t, picks[0].WinnerName)
	assert.Equal(t, "A", *picks[0].WinnerName)

	// No winner announced yet: correctness is unknown, not false
	assert.Equal(t, "Best Director", picks[1].CategoryName)
	assert.Nil(t, picks[1].IsCorrect)
	assert.Nil(t, picks[1].WinnerID)
	assert.Nil(t, picks[1].WinnerName)
}

func TestGetParticipantPicks_WrongLobby(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	other := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	category, nominees := seedCategory(t, db, "Best Picture", "A", "B")

	participant := submitFor(t, db, lobby.ID, "Jane", map[uint]uint{category.ID: nominees[0].ID})

	svc := services.NewParticipantService(db)
	_, err := svc.GetParticipantPicks(participant.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrParticipantNotFound)
}

func TestGetParticipantPicks_IncorrectPick(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "host")
	lobby := createTestLobby(t, db, admin.ID, models.LobbyStatusOpen)
	category, nominees := seedCategory(t, db, "Best Picture", "A", "B")

	participant := submitFor(t, db, lobby.ID, "Jane", map[uint]uint{category.ID: nominees[1].ID})

	categoryService := services.NewCategoryService(db, nil)
	require.NoError(t, categoryService.SetWinner(category.ID, nominees[0].ID))

	svc := services.NewParticipantService(db)
	picks, err := svc.GetParticipantPicks(participant.ID, lobby.ID)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	require.NotNil(t, picks[0].IsCorrect)
	assert.False(t, *picks[0].IsCorrect)
	require.NotNil(t, picks[0].WinnerID)
	assert.Equal(t, nominees[0].ID, *picks[0].WinnerID)
}
