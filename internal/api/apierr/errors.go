package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeTownNotFound        = "TOWN_NOT_FOUND"
	CodeAreaNotFound        = "AREA_NOT_FOUND"
	CodeTownFull            = "TOWN_FULL"
	CodeAlreadyInTown       = "ALREADY_IN_TOWN"
	CodeNotInTown           = "NOT_IN_TOWN"
	CodeInvalidPassword     = "INVALID_PASSWORD"
	CodeInvalidTownAreas    = "INVALID_TOWN_AREAS"
	CodePlayerAlreadyInGame = "PLAYER_ALREADY_IN_GAME"
	CodeGameFull            = "GAME_FULL"
	CodeGameNotStartable    = "GAME_NOT_STARTABLE"
	CodePlayerNotInGame     = "PLAYER_NOT_IN_GAME"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeInvalidPosition     = "INVALID_POSITION"
	CodeNoGameInProgress    = "NO_GAME_IN_PROGRESS"
	CodeGameIDMismatch      = "GAME_ID_MISMATCH"
	CodeUnknownCommand      = "UNKNOWN_COMMAND"
	CodeNotAGameArea        = "NOT_A_GAME_AREA"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTownNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTownNotFound, "Town not found"}}
	case errors.Is(err, model.ErrAreaNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAreaNotFound, "Area not found"}}
	case errors.Is(err, model.ErrTownFull):
		return &httpError{http.StatusConflict, APIError{CodeTownFull, "Town is at capacity"}}
	case errors.Is(err, model.ErrAlreadyInTown):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInTown, "Already in this town"}}
	case errors.Is(err, model.ErrNotInTown):
		return &httpError{http.StatusConflict, APIError{CodeNotInTown, "Not in this town"}}
	case errors.Is(err, model.ErrInvalidPassword):
		return &httpError{http.StatusForbidden, APIError{CodeInvalidPassword, "Invalid town update password"}}
	case errors.Is(err, model.ErrInvalidTownAreas):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTownAreas, "Invalid town area layout"}}
	case errors.Is(err, model.ErrPlayerAlreadyInGame):
		return &httpError{http.StatusConflict, APIError{CodePlayerAlreadyInGame, "Already in this game"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Game is full"}}
	case errors.Is(err, model.ErrGameNotStartable):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStartable, "Game cannot be started"}}
	case errors.Is(err, model.ErrPlayerNotInGame):
		return &httpError{http.StatusForbidden, APIError{CodePlayerNotInGame, "Not a participant in this game"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidBoardPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid board position"}}
	case errors.Is(err, model.ErrGameNotInProgress):
		return &httpError{http.StatusNotFound, APIError{CodeNoGameInProgress, "No game in progress"}}
	case errors.Is(err, model.ErrGameIDMismatch):
		return &httpError{http.StatusConflict, APIError{CodeGameIDMismatch, "Game ID does not match the active game"}}
	case errors.Is(err, model.ErrUnknownCommand):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownCommand, "Unknown command type"}}
	case errors.Is(err, model.ErrNotAGameArea):
		return &httpError{http.StatusBadRequest, APIError{CodeNotAGameArea, "Area does not host games"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
