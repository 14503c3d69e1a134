package services_test

import (
	"testing"

	"oscarpool/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(db, "test-secret")

	registered, err := svc.Register(&services.RegisterRequest{
		Username: "host",
		Password: "sekret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "host", registered.Username)
	assert.NotEmpty(t, registered.Token)

	loggedIn, err := svc.Login(&services.LoginRequest{
		Username: "host",
		Password: "sekret1",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(db, "test-secret")

	_, err := svc.Register(&services.RegisterRequest{Username: "host", Password: "sekret1"})
	require.NoError(t, err)

	_, err = svc.Register(&services.RegisterRequest{Username: "host", Password: "other12"})
	assert.ErrorIs(t, err, services.ErrUsernameExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(db, "test-secret")

	_, err := svc.Register(&services.RegisterRequest{Username: "host", Password: "sekret1"})
	require.NoError(t, err)

	_, err = svc.Login(&services.LoginRequest{Username: "host", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(db, "test-secret")

	_, err := svc.Login(&services.LoginRequest{Username: "ghost", Password: "sekret1"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRegister_StoresHashedPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(db, "test-secret")

	registered, err := svc.Register(&services.RegisterRequest{Username: "host", Password: "sekret1"})
	require.NoError(t, err)

	admin, err := svc.GetAdminByID(registered.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "sekret1", admin.PasswordHash)
	assert.NotEmpty(t, admin.PasswordHash)
}
