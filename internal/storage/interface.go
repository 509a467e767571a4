package storage

import (
	"context"

	"github.com/dotgrid/dotsboxes-go/internal/model"
)

// Storage defines the interface for match persistence.
//
// UpdateMatch is a conditional write: it succeeds only if the stored
// version still equals the version the caller read, otherwise it fails
// with model.ErrWriteConflict and nothing is written. On success the
// match's Version is bumped. Every write also notifies subscribers of
// that match with the full updated record, at-least-once and in write
// order per match.
type Storage interface {
	// Match operations
	CreateMatch(ctx context.Context, m *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	UpdateMatch(ctx context.Context, m *model.Match) error
	DeleteMatch(ctx context.Context, id model.MatchID) error

	// Listings
	ListOpenMatches(ctx context.Context) ([]*model.Match, error)
	ListActiveMatchIDs(ctx context.Context) ([]model.MatchID, error)

	// SubscribeMatch delivers the full match on every change until the
	// context is cancelled or the returned stop function is called.
	SubscribeMatch(ctx context.Context, id model.MatchID) (<-chan *model.Match, func(), error)

	Close() error
}
