package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dotgrid/dotsboxes-go/internal/model"
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
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeMatchNotFound        = "MATCH_NOT_FOUND"
	CodeMatchFull            = "MATCH_FULL"
	CodeAlreadyJoined        = "ALREADY_JOINED"
	CodeMatchNotWaiting      = "MATCH_NOT_WAITING"
	CodeMatchNotCompleted    = "MATCH_NOT_COMPLETED"
	CodeNotCreator           = "NOT_CREATOR"
	CodeMissingOpponent      = "MISSING_OPPONENT"
	CodeGameNotActive        = "GAME_NOT_ACTIVE"
	CodeGameAlreadyCompleted = "GAME_ALREADY_COMPLETED"
	CodeInvalidDot           = "INVALID_DOT"
	CodeSelfLoop             = "SELF_LOOP"
	CodeNotAdjacent          = "NOT_ADJACENT"
	CodeDuplicateEdge        = "DUPLICATE_EDGE"
	CodePlayerNotInMatch     = "PLAYER_NOT_IN_MATCH"
	CodeNotYourTurn          = "NOT_YOUR_TURN"
	CodeWriteConflict        = "WRITE_CONFLICT"
	CodeInvalidGridSize      = "INVALID_GRID_SIZE"
	CodeInternalError        = "INTERNAL_ERROR"
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

	switch {
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrMatchFull):
		return &httpError{http.StatusConflict, APIError{CodeMatchFull, "Match already has two players"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already in this match"}}
	case errors.Is(err, model.ErrMatchNotWaiting):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotWaiting, "Match is not waiting for players"}}
	case errors.Is(err, model.ErrMatchNotCompleted):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotCompleted, "Match is not completed"}}
	case errors.Is(err, model.ErrNotCreator):
		return &httpError{http.StatusForbidden, APIError{CodeNotCreator, "Only the match creator can perform this action"}}
	case errors.Is(err, model.ErrMissingOpponent):
		return &httpError{http.StatusConflict, APIError{CodeMissingOpponent, "Match has no second player"}}
	case errors.Is(err, model.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is not active"}}
	case errors.Is(err, model.ErrGameAlreadyCompleted):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyCompleted, "Game is already completed"}}
	case errors.Is(err, model.ErrInvalidDot):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDot, "Dot is outside the grid"}}
	case errors.Is(err, model.ErrSelfLoop):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfLoop, "Edge endpoints must differ"}}
	case errors.Is(err, model.ErrNotAdjacent):
		return &httpError{http.StatusBadRequest, APIError{CodeNotAdjacent, "Dots are not adjacent"}}
	case errors.Is(err, model.ErrDuplicateEdge):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateEdge, "Edge already exists"}}
	case errors.Is(err, model.ErrPlayerNotInMatch):
		return &httpError{http.StatusForbidden, APIError{CodePlayerNotInMatch, "Player is not in this match"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrWriteConflict):
		return &httpError{http.StatusConflict, APIError{CodeWriteConflict, "Match was modified concurrently, retry"}}
	case errors.Is(err, model.ErrInvalidGridSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGridSize, "Grid size must be at least 2"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
