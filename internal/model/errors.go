package model

import "errors"

// Common errors used across the application. All game errors are expected,
// recoverable and caller-facing; the dispatcher propagates them unchanged.
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Seating errors
	ErrPlayerAlreadyInGame = errors.New("player already in game")
	ErrGameFull            = errors.New("game is full")

	// Lifecycle errors
	ErrGameNotStartable = errors.New("game is not startable")
	ErrPlayerNotInGame  = errors.New("player is not in this game")

	// Turn and placement errors
	ErrNotYourTurn          = errors.New("not your turn")
	ErrInvalidBoardPosition = errors.New("invalid board position")

	// Dispatch errors
	ErrGameNotInProgress = errors.New("no game in progress")
	ErrGameIDMismatch    = errors.New("game ID does not match active game")
	ErrUnknownCommand    = errors.New("unknown command type")
	ErrAreaNotFound      = errors.New("area not found")
	ErrNotAGameArea      = errors.New("area does not host games")

	// Town errors
	ErrTownNotFound     = errors.New("town not found")
	ErrTownFull         = errors.New("town is at capacity")
	ErrAlreadyInTown    = errors.New("player is already in town")
	ErrNotInTown        = errors.New("player is not in town")
	ErrInvalidPassword  = errors.New("invalid town update password")
	ErrInvalidTownAreas = errors.New("invalid town area layout")
)
