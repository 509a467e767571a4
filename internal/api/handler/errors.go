package handler

import (
	"net/http"

	"github.com/dotgrid/dotsboxes-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest       = apierr.CodeInvalidRequest
	CodeMatchNotFound        = apierr.CodeMatchNotFound
	CodeMatchFull            = apierr.CodeMatchFull
	CodeAlreadyJoined        = apierr.CodeAlreadyJoined
	CodeMatchNotWaiting      = apierr.CodeMatchNotWaiting
	CodeMatchNotCompleted    = apierr.CodeMatchNotCompleted
	CodeNotCreator           = apierr.CodeNotCreator
	CodeMissingOpponent      = apierr.CodeMissingOpponent
	CodeGameNotActive        = apierr.CodeGameNotActive
	CodeGameAlreadyCompleted = apierr.CodeGameAlreadyCompleted
	CodeInvalidDot           = apierr.CodeInvalidDot
	CodeSelfLoop             = apierr.CodeSelfLoop
	CodeNotAdjacent          = apierr.CodeNotAdjacent
	CodeDuplicateEdge        = apierr.CodeDuplicateEdge
	CodePlayerNotInMatch     = apierr.CodePlayerNotInMatch
	CodeNotYourTurn          = apierr.CodeNotYourTurn
	CodeWriteConflict        = apierr.CodeWriteConflict
	CodeInvalidGridSize      = apierr.CodeInvalidGridSize
	CodeInternalError        = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
