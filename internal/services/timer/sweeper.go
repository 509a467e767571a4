package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/storage"
)

// Expirer is the slice of the match orchestrator the sweeper needs
type Expirer interface {
	ExpireTurn(ctx context.Context, id model.MatchID) error
}

// Sweeper periodically checks every active match for an elapsed turn
// window and hands expired turns to the orchestrator. It races against
// live players through the same conditional-write path: whichever write
// lands first wins, and the loser is a no-op.
type Sweeper struct {
	storage  storage.Storage
	expirer  Expirer
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a new turn-timeout sweeper
func NewSweeper(store storage.Storage, expirer Expirer, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		storage:  store,
		expirer:  expirer,
		interval: interval,
		logger:   logger.With(slog.String("component", "turn-sweeper")),
	}
}

// Run sweeps on the configured interval until the context is cancelled
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info("turn sweeper started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			s.logger.Info("turn sweeper stopped")
			return ctx.Err()
		}
	}
}

// Sweep runs a single pass over all active matches
func (s *Sweeper) Sweep(ctx context.Context) {
	ids, err := s.storage.ListActiveMatchIDs(ctx)
	if err != nil {
		s.logger.Error("failed to list active matches", slog.String("error", err.Error()))
		return
	}

	for _, id := range ids {
		if err := s.expirer.ExpireTurn(ctx, id); err != nil {
			s.logger.Error("failed to expire turn",
				slog.String("match_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
	}
}
