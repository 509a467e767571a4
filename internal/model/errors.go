package model

import "errors"

// Common errors used across the application. All are rejections of a
// single attempt, not crashes; only ErrWriteConflict is retryable.
var (
	// Match lifecycle errors
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchFull         = errors.New("match is full")
	ErrAlreadyJoined     = errors.New("player is already in the match")
	ErrMatchNotWaiting   = errors.New("match is not waiting for players")
	ErrMatchNotCompleted = errors.New("match is not completed")
	ErrNotCreator        = errors.New("player is not the match creator")
	ErrMissingOpponent   = errors.New("match has no second player")

	// Move validation errors, in the order the validator checks them
	ErrGameNotActive        = errors.New("game is not active")
	ErrGameAlreadyCompleted = errors.New("game is already completed")
	ErrInvalidDot           = errors.New("dot is outside the grid")
	ErrSelfLoop             = errors.New("edge endpoints must differ")
	ErrNotAdjacent          = errors.New("dots are not adjacent")
	ErrDuplicateEdge        = errors.New("edge already exists")
	ErrPlayerNotInMatch     = errors.New("player is not in this match")
	ErrNotYourTurn          = errors.New("not this player's turn")

	// Storage errors
	ErrWriteConflict = errors.New("match was modified concurrently")

	// Config errors
	ErrInvalidGridSize = errors.New("grid size must be at least 2")
)
