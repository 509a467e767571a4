package bot

import (
	"context"
	"log/slog"

	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/services/match"
)

const (
	// MaxBotMoves is a safety limit for the PlayTurn chain loop
	MaxBotMoves = 1000
)

// Service plays bot turns against a match. The bot is an ordinary
// participant: every edge it chooses goes through the orchestrator's
// ApplyMove, so validation, completion, scoring and turn resolution are
// identical to a human move.
type Service struct {
	orchestrator *match.Orchestrator
	strategy     Strategy
	logger       *slog.Logger
}

// NewService creates a new bot Service
func NewService(orchestrator *match.Orchestrator, strategy Strategy, logger *slog.Logger) *Service {
	return &Service{
		orchestrator: orchestrator,
		strategy:     strategy,
		logger:       logger.With(slog.String("component", "bot-service")),
	}
}

// PlayTurn plays moves for the given bot player until the turn passes
// away from it or the game ends. Chain turns are followed: completing a
// cell means the bot moves again.
func (s *Service) PlayTurn(ctx context.Context, matchID model.MatchID, botID model.PlayerID) error {
	for i := 0; i < MaxBotMoves; i++ {
		m, err := s.orchestrator.GetMatch(ctx, matchID)
		if err != nil {
			return err
		}
		if m.Status != model.StatusActive || m.GameOver {
			return nil
		}
		if m.SlotOf(botID) != m.CurrentTurn {
			return nil
		}

		edge, ok := s.strategy.ChooseEdge(m)
		if !ok {
			return nil
		}

		result, err := s.orchestrator.ApplyMove(ctx, matchID, botID, edge.A, edge.B)
		if err != nil {
			return err
		}

		s.logger.Info("bot move applied",
			slog.String("match_id", string(matchID)),
			slog.String("edge", edge.String()),
			slog.Int("cells_claimed", result.CellsClaimed),
		)

		if result.GameCompleted || result.CellsClaimed == 0 {
			return nil
		}
	}
	return nil
}
