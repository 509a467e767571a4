package rules

import (
	"github.com/dotgrid/dotsboxes-go/internal/model"
)

// Service decides the legality of a proposed move against a match
// snapshot. It is pure: no mutation, no side effects, safe to call from
// any goroutine.
type Service struct{}

// New creates a new move validator
func New() *Service {
	return &Service{}
}

// Validate checks a proposed edge for the acting player against the
// current snapshot. Checks short-circuit in a fixed order so callers get
// deterministic errors: match status, terminal flag, dot bounds, self
// loop, adjacency, duplicate edge, participation, turn ownership.
func (s *Service) Validate(m *model.Match, playerID model.PlayerID, start, end model.Dot) error {
	if m.Status != model.StatusActive {
		return model.ErrGameNotActive
	}
	if m.GameOver {
		return model.ErrGameAlreadyCompleted
	}

	gridSize := m.GridSize()
	if !start.InGrid(gridSize) || !end.InGrid(gridSize) {
		return model.ErrInvalidDot
	}
	if start == end {
		return model.ErrSelfLoop
	}

	edge := model.NewEdge(start, end)
	if !edge.Adjacent() {
		return model.ErrNotAdjacent
	}
	if m.HasEdge(edge) {
		return model.ErrDuplicateEdge
	}

	slot := m.SlotOf(playerID)
	if slot == model.SlotNone {
		return model.ErrPlayerNotInMatch
	}
	if slot != m.CurrentTurn {
		return model.ErrNotYourTurn
	}

	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Validate(m *model.Match, playerID model.PlayerID, start, end model.Dot) error
}

var _ ServiceInterface = (*Service)(nil)
