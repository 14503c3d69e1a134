package services

import "errors"

// Sentinel errors surfaced by the service layer. Handlers translate them
// to HTTP status codes; services themselves never touch the transport.
var (
	// Not found
	ErrLobbyNotFound       = errors.New("lobby not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrNomineeNotFound     = errors.New("nominee not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAdminNotFound       = errors.New("admin not found")

	// Conflicts
	ErrNameTaken      = errors.New("a participant with this name already exists in this lobby")
	ErrNomineeExists  = errors.New("nominee already exists in this category")
	ErrUsernameExists = errors.New("username already exists")

	// Invalid input
	ErrMissingPredictions = errors.New("please make a prediction for all categories")
	ErrUnknownCategory    = errors.New("prediction references an unknown category")
	ErrNomineeMismatch    = errors.New("invalid nominee selection")
	ErrDuplicatePicks     = errors.New("more than one prediction for the same category")
	ErrPartialReorder     = errors.New("reorder must include every category id")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Forbidden
	ErrNotLobbyOwner = errors.New("not authorized to manage this lobby")

	// State conflicts
	ErrLobbyNotOpen   = errors.New("this lobby is no longer accepting predictions")
	ErrPicksHidden    = errors.New("picks are hidden until the lobby is locked")
	ErrLobbyCompleted = errors.New("lobby is completed and can no longer change status")
)
