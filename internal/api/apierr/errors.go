package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
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
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidNumber     = "INVALID_NUMBER"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeRoundNotFound     = "ROUND_NOT_FOUND"
	CodeArchiveNotFound   = "ARCHIVE_NOT_FOUND"
	CodeAlreadyInRound    = "ALREADY_IN_ROUND"
	CodeNoActiveRound     = "NO_ACTIVE_ROUND"
	CodeRoundNotCreated   = "ROUND_NOT_CREATED"
	CodeRoundNotStarted   = "ROUND_NOT_STARTED"
	CodeIncompleteGuesses = "INCOMPLETE_GUESSES"
	CodeRoundConflict     = "ROUND_CONFLICT"
	CodeInternalError     = "INTERNAL_ERROR"
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
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoundNotFound, "Round not found"}}
	case errors.Is(err, model.ErrArchiveNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeArchiveNotFound, "Archived round not found"}}
	case errors.Is(err, model.ErrAlreadyInRound):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInRound, "Player is already in a running round"}}
	case errors.Is(err, model.ErrNoActiveRound):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveRound, "Player has no active round"}}
	case errors.Is(err, model.ErrRoundNotCreated):
		return &httpError{http.StatusConflict, APIError{CodeRoundNotCreated, "Round is not accepting guesses"}}
	case errors.Is(err, model.ErrRoundNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeRoundNotStarted, "Round has not been started"}}
	case errors.Is(err, model.ErrIncompleteGuesses):
		return &httpError{http.StatusConflict, APIError{CodeIncompleteGuesses, "Guesses are missing for some participants"}}
	case errors.Is(err, model.ErrRoundConflict):
		return &httpError{http.StatusConflict, APIError{CodeRoundConflict, "Round was modified concurrently, retry"}}
	case errors.Is(err, model.ErrInvalidNumber):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidNumber, "Number is outside the playable range"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInvalidNumberError creates an invalid number error with a specific message
func NewInvalidNumberError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidNumber, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
