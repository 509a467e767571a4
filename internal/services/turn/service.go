package turn

import (
	"github.com/dotgrid/dotsboxes-go/internal/model"
)

// Service resolves turn order after each move: completing at least one
// cell grants the mover a bonus turn, otherwise the turn passes to the
// opponent. Pure; the orchestrator owns all state.
type Service struct{}

// New creates a new turn resolver
func New() *Service {
	return &Service{}
}

// Result describes the outcome of resolving a turn
type Result struct {
	NextTurn    model.PlayerSlot
	TurnChanged bool
}

// Resolve computes the next slot to act given how many cells the move by
// current completed. Chain turns are unlimited: the mover keeps the turn
// for as long as every move completes a cell.
func (s *Service) Resolve(current model.PlayerSlot, cellsCompleted int) Result {
	if cellsCompleted > 0 {
		return Result{NextTurn: current, TurnChanged: false}
	}
	return Result{NextTurn: current.Other(), TurnChanged: true}
}

// ForceSwitch unconditionally passes the turn away from current. Used
// only by the forfeit path, never by a normal move.
func (s *Service) ForceSwitch(current model.PlayerSlot) Result {
	return Result{NextTurn: current.Other(), TurnChanged: true}
}

// Stats summarizes a turn history log
type Stats struct {
	TotalTurns       int
	TurnsBySlot      map[model.PlayerSlot]int
	CellsBySlot      map[model.PlayerSlot]int
	ConsecutiveTurns int // current streak for the active slot
}

// StatsFor computes aggregate statistics from the history log, with the
// consecutive-turn streak measured for the given active slot
func (s *Service) StatsFor(history []model.TurnRecord, active model.PlayerSlot) Stats {
	stats := Stats{
		TotalTurns: len(history),
		TurnsBySlot: map[model.PlayerSlot]int{
			model.Slot1: 0,
			model.Slot2: 0,
		},
		CellsBySlot: map[model.PlayerSlot]int{
			model.Slot1: 0,
			model.Slot2: 0,
		},
	}

	for _, rec := range history {
		stats.TurnsBySlot[rec.Player]++
		stats.CellsBySlot[rec.Player] += rec.CellsCompleted
	}

	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Player != active {
			break
		}
		stats.ConsecutiveTurns++
	}

	return stats
}

// Interface for dependency injection
type ServiceInterface interface {
	Resolve(current model.PlayerSlot, cellsCompleted int) Result
	ForceSwitch(current model.PlayerSlot) Result
	StatsFor(history []model.TurnRecord, active model.PlayerSlot) Stats
}

var _ ServiceInterface = (*Service)(nil)
