package match

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dotgrid/dotsboxes-go/internal/dependencies/clock"
	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/services/completion"
	"github.com/dotgrid/dotsboxes-go/internal/services/rules"
	"github.com/dotgrid/dotsboxes-go/internal/services/timer"
	"github.com/dotgrid/dotsboxes-go/internal/services/turn"
	"github.com/dotgrid/dotsboxes-go/internal/services/victory"
	"github.com/dotgrid/dotsboxes-go/internal/storage"
)

// maxWriteAttempts bounds the optimistic retry loop. Only
// model.ErrWriteConflict triggers a re-read; every other error is
// terminal for the attempt.
const maxWriteAttempts = 3

// DefaultTurnDuration is the turn window applied when a match is created
// without one
const DefaultTurnDuration = 30 * time.Second

// Orchestrator composes validation, completion detection, turn
// resolution, and victory evaluation into atomic operations against
// persisted match state. It alone owns the read-modify-write cycle: the
// engine services stay pure and a conditional write proves the snapshot
// was still current at commit time.
type Orchestrator struct {
	storage    storage.Storage
	rules      *rules.Service
	completion *completion.Service
	turns      *turn.Service
	victory    *victory.Service
	clock      clock.Clock
	logger     *slog.Logger

	defaultTurnDuration time.Duration
}

// NewOrchestrator creates a new match orchestrator
func NewOrchestrator(
	store storage.Storage,
	rulesService *rules.Service,
	completionService *completion.Service,
	turnService *turn.Service,
	victoryService *victory.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		storage:    store,
		rules:      rulesService,
		completion: completionService,
		turns:      turnService,
		victory:    victoryService,
		clock:      clk,
		logger:     logger,

		defaultTurnDuration: DefaultTurnDuration,
	}
}

// SetDefaultTurnDuration overrides the turn window applied to matches
// created without one
func (o *Orchestrator) SetDefaultTurnDuration(d time.Duration) {
	if d > 0 {
		o.defaultTurnDuration = d
	}
}

// MoveResult reports the outcome of an accepted move
type MoveResult struct {
	CellsClaimed  int
	GameCompleted bool
	Winner        model.Winner
}

// CreateMatch creates a new match in the waiting state with the creator
// in slot 1
func (o *Orchestrator) CreateMatch(ctx context.Context, playerID model.PlayerID, playerName string, settings model.Settings) (*model.Match, error) {
	if settings.GridSize < 2 {
		return nil, model.ErrInvalidGridSize
	}
	if settings.TurnDuration <= 0 {
		settings.TurnDuration = o.defaultTurnDuration
	}

	now := o.clock.Now()
	m := &model.Match{
		ID:       model.MatchID(uuid.NewString()),
		Status:   model.StatusWaiting,
		Settings: settings,
		Player1: &model.Participant{
			ID:       playerID,
			Name:     playerName,
			JoinedAt: now,
		},
		Lines:         []model.Line{},
		Cells:         initialCells(settings.GridSize),
		Scores:        map[model.PlayerSlot]int{model.Slot1: 0, model.Slot2: 0},
		CurrentTurn:   model.Slot1,
		TurnStartedAt: now,
		MissedTurns:   map[model.PlayerSlot]int{model.Slot1: 0, model.Slot2: 0},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := o.storage.CreateMatch(ctx, m); err != nil {
		o.logger.Error("failed to create match",
			slog.String("match_id", string(m.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	o.logger.Info("match created",
		slog.String("match_id", string(m.ID)),
		slog.String("player_id", string(playerID)),
		slog.Int("grid_size", settings.GridSize),
	)

	return m, nil
}

// GetMatch retrieves a match by ID
func (o *Orchestrator) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return o.storage.GetMatch(ctx, id)
}

// Insights bundles advisory statistics for a match snapshot. Nothing in
// here affects play.
type Insights struct {
	Turn       turn.Stats
	Prediction victory.Prediction
}

// MatchInsights computes turn statistics and a winner forecast from a
// match snapshot
func (o *Orchestrator) MatchInsights(m *model.Match) Insights {
	return Insights{
		Turn:       o.turns.StatsFor(m.TurnHistory, m.CurrentTurn),
		Prediction: o.victory.Predict(m),
	}
}

// ListOpenMatches returns public matches still waiting for a second player
func (o *Orchestrator) ListOpenMatches(ctx context.Context) ([]*model.Match, error) {
	return o.storage.ListOpenMatches(ctx)
}

// JoinMatch seats a player in slot 2 of a waiting match. With AutoStart
// the match activates immediately; otherwise it stays waiting until the
// creator starts it.
func (o *Orchestrator) JoinMatch(ctx context.Context, id model.MatchID, playerID model.PlayerID, playerName string) (*model.Match, error) {
	var joined *model.Match
	err := o.transact(ctx, id, func(m *model.Match) error {
		if m.SlotOf(playerID) != model.SlotNone {
			return model.ErrAlreadyJoined
		}
		if m.Status != model.StatusWaiting {
			return model.ErrMatchNotWaiting
		}
		if m.Player2 != nil {
			return model.ErrMatchFull
		}

		now := o.clock.Now()
		m.Player2 = &model.Participant{
			ID:       playerID,
			Name:     playerName,
			JoinedAt: now,
		}
		if m.Settings.AutoStart {
			o.activate(m, now)
		}
		m.UpdatedAt = now
		joined = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("player joined match",
		slog.String("match_id", string(id)),
		slog.String("player_id", string(playerID)),
	)
	return joined, nil
}

// AddBot seats a bot opponent in slot 2 of a waiting match
func (o *Orchestrator) AddBot(ctx context.Context, id model.MatchID) (*model.Match, error) {
	botID := model.PlayerID("bot-" + uuid.NewString())

	var joined *model.Match
	err := o.transact(ctx, id, func(m *model.Match) error {
		if m.Status != model.StatusWaiting {
			return model.ErrMatchNotWaiting
		}
		if m.Player2 != nil {
			return model.ErrMatchFull
		}

		now := o.clock.Now()
		m.Player2 = &model.Participant{
			ID:       botID,
			Name:     "Bot",
			IsBot:    true,
			JoinedAt: now,
		}
		if m.Settings.AutoStart {
			o.activate(m, now)
		}
		m.UpdatedAt = now
		joined = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("bot joined match",
		slog.String("match_id", string(id)),
		slog.String("player_id", string(botID)),
	)
	return joined, nil
}

// StartMatch activates a waiting match. Only the creator may start, and
// both slots must be occupied.
func (o *Orchestrator) StartMatch(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error) {
	var started *model.Match
	err := o.transact(ctx, id, func(m *model.Match) error {
		if m.Player1 == nil || m.Player1.ID != playerID {
			return model.ErrNotCreator
		}
		if m.Status != model.StatusWaiting {
			return model.ErrMatchNotWaiting
		}
		if m.Player2 == nil {
			return model.ErrMissingOpponent
		}

		now := o.clock.Now()
		o.activate(m, now)
		m.UpdatedAt = now
		started = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("match started", slog.String("match_id", string(id)))
	return started, nil
}

// CancelMatch cancels a match that is still waiting. Only the creator
// may cancel; cancelled is terminal.
func (o *Orchestrator) CancelMatch(ctx context.Context, id model.MatchID, playerID model.PlayerID) error {
	err := o.transact(ctx, id, func(m *model.Match) error {
		if m.Player1 == nil || m.Player1.ID != playerID {
			return model.ErrNotCreator
		}
		if m.Status != model.StatusWaiting {
			return model.ErrMatchNotWaiting
		}

		m.Status = model.StatusCancelled
		m.UpdatedAt = o.clock.Now()
		return nil
	})
	if err != nil {
		return err
	}

	o.logger.Info("match cancelled", slog.String("match_id", string(id)))
	return nil
}

// ApplyMove validates and applies one move atomically: the conditional
// write fails if the snapshot changed between read and commit, and the
// whole cycle is retried a bounded number of times.
func (o *Orchestrator) ApplyMove(ctx context.Context, id model.MatchID, playerID model.PlayerID, start, end model.Dot) (*MoveResult, error) {
	var result *MoveResult
	err := o.transact(ctx, id, func(m *model.Match) error {
		if err := o.rules.Validate(m, playerID, start, end); err != nil {
			return err
		}

		now := o.clock.Now()
		slot := m.SlotOf(playerID)
		edge := model.NewEdge(start, end)

		m.Lines = append(m.Lines, model.Line{
			Edge:    edge,
			Player:  slot,
			DrawnAt: now,
		})

		claimed := o.completion.NewlyCompleted(m, edge)
		for _, cell := range claimed {
			m.Cells[m.CellIndex(cell)].Owner = slot
		}
		m.Scores[slot] += len(claimed)
		m.TurnHistory = append(m.TurnHistory, model.TurnRecord{
			Player:         slot,
			CellsCompleted: len(claimed),
		})

		// An accepted move clears the mover's missed-turn strikes and
		// restarts the turn clock
		m.MissedTurns[slot] = 0
		m.CurrentTurn = o.turns.Resolve(slot, len(claimed)).NextTurn
		m.TurnStartedAt = now

		verdict := o.victory.Evaluate(m)
		if verdict.GameOver {
			m.GameOver = true
			m.Winner = verdict.Winner
			m.EndReason = model.EndReasonNormal
			m.Status = model.StatusCompleted
		}
		m.UpdatedAt = now

		result = &MoveResult{
			CellsClaimed:  len(claimed),
			GameCompleted: verdict.GameOver,
			Winner:        verdict.Winner,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("move applied",
		slog.String("match_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.Int("cells_claimed", result.CellsClaimed),
		slog.Bool("game_completed", result.GameCompleted),
	)
	return result, nil
}

// ApplyPass force-passes the turn without a move. Privileged: bypasses
// normal validation, used only by the turn timer.
func (o *Orchestrator) ApplyPass(ctx context.Context, id model.MatchID) error {
	return o.transact(ctx, id, func(m *model.Match) error {
		if m.Status != model.StatusActive || m.GameOver {
			return model.ErrGameNotActive
		}

		now := o.clock.Now()
		m.CurrentTurn = o.turns.ForceSwitch(m.CurrentTurn).NextTurn
		m.TurnStartedAt = now
		m.UpdatedAt = now
		return nil
	})
}

// ApplyForfeit ends the match with the given slot as winner. Privileged:
// bypasses normal validation, used only by the turn timer.
func (o *Orchestrator) ApplyForfeit(ctx context.Context, id model.MatchID, winner model.PlayerSlot) error {
	return o.transact(ctx, id, func(m *model.Match) error {
		if m.Status != model.StatusActive || m.GameOver {
			return model.ErrGameNotActive
		}

		m.GameOver = true
		m.Winner = model.WinnerForSlot(winner)
		m.EndReason = model.EndReasonTurnTimeout
		m.Status = model.StatusCompleted
		m.UpdatedAt = o.clock.Now()
		return nil
	})
}

// ExpireTurn handles one elapsed turn window for a match: below three
// strikes the turn force-passes, at three the opponent wins by forfeit.
// A conflicting concurrent write (e.g. a move landing just in time) makes
// this a no-op rather than a retry, since the game has moved on.
func (o *Orchestrator) ExpireTurn(ctx context.Context, id model.MatchID) error {
	m, err := o.storage.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if m.Status != model.StatusActive || m.GameOver {
		return nil
	}
	if timer.Remaining(o.clock.Now(), m.TurnStartedAt, m.Settings.TurnDuration) > 0 {
		return nil
	}

	slot := m.CurrentTurn
	missed := m.MissedTurns[slot] + 1

	now := o.clock.Now()
	m.MissedTurns[slot] = missed
	if missed >= 3 {
		m.GameOver = true
		m.Winner = model.WinnerForSlot(slot.Other())
		m.EndReason = model.EndReasonTurnTimeout
		m.Status = model.StatusCompleted
	} else {
		m.CurrentTurn = o.turns.ForceSwitch(slot).NextTurn
		m.TurnStartedAt = now
	}
	m.UpdatedAt = now

	if err := o.storage.UpdateMatch(ctx, m); err != nil {
		if errors.Is(err, model.ErrWriteConflict) {
			// Someone moved under us; the expiry no longer applies
			return nil
		}
		return err
	}

	if missed >= 3 {
		o.logger.Info("match forfeited on timeout",
			slog.String("match_id", string(id)),
			slog.Int("missed_by_slot", int(slot)),
		)
	} else {
		o.logger.Info("turn passed on timeout",
			slog.String("match_id", string(id)),
			slog.Int("missed_by_slot", int(slot)),
			slog.Int("missed_count", missed),
		)
	}
	return nil
}

// Rematch creates a fresh match from a completed one, with the requesting
// participant as the new creator and the same settings
func (o *Orchestrator) Rematch(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error) {
	original, err := o.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if original.Status != model.StatusCompleted {
		return nil, model.ErrMatchNotCompleted
	}

	slot := original.SlotOf(playerID)
	if slot == model.SlotNone {
		return nil, model.ErrPlayerNotInMatch
	}

	creator := original.ParticipantInSlot(slot)
	return o.CreateMatch(ctx, creator.ID, creator.Name, original.Settings)
}

// activate moves a waiting match to active and starts slot 1's turn clock
func (o *Orchestrator) activate(m *model.Match, now time.Time) {
	m.Status = model.StatusActive
	m.CurrentTurn = model.Slot1
	m.TurnStartedAt = now
}

// transact runs one read-modify-conditional-write cycle, retrying only on
// write conflicts. apply mutates the snapshot in place; validation errors
// abort before anything is written.
func (o *Orchestrator) transact(ctx context.Context, id model.MatchID, apply func(m *model.Match) error) error {
	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		m, err := o.storage.GetMatch(ctx, id)
		if err != nil {
			return err
		}

		if err := apply(m); err != nil {
			return err
		}

		err = o.storage.UpdateMatch(ctx, m)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrWriteConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// initialCells pre-populates the (N-1)^2 cell list, all unclaimed
func initialCells(gridSize int) []model.CellState {
	candidates := model.CandidateCells(gridSize)
	cells := make([]model.CellState, len(candidates))
	for i, c := range candidates {
		cells[i] = model.CellState{Cell: c, Owner: model.SlotNone}
	}
	return cells
}

// Interface for dependency injection
type OrchestratorInterface interface {
	CreateMatch(ctx context.Context, playerID model.PlayerID, playerName string, settings model.Settings) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	MatchInsights(m *model.Match) Insights
	ListOpenMatches(ctx context.Context) ([]*model.Match, error)
	JoinMatch(ctx context.Context, id model.MatchID, playerID model.PlayerID, playerName string) (*model.Match, error)
	AddBot(ctx context.Context, id model.MatchID) (*model.Match, error)
	StartMatch(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error)
	CancelMatch(ctx context.Context, id model.MatchID, playerID model.PlayerID) error
	ApplyMove(ctx context.Context, id model.MatchID, playerID model.PlayerID, start, end model.Dot) (*MoveResult, error)
	ApplyPass(ctx context.Context, id model.MatchID) error
	ApplyForfeit(ctx context.Context, id model.MatchID, winner model.PlayerSlot) error
	ExpireTurn(ctx context.Context, id model.MatchID) error
	Rematch(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error)
}

var _ OrchestratorInterface = (*Orchestrator)(nil)
