package victory

import (
	"fmt"

	"github.com/dotgrid/dotsboxes-go/internal/model"
)

// Service decides game completion and winner from claimed cells and
// scores. Only Evaluate's GameOver result ends a game; the prediction
// helpers are advisory for UI and bot use and must never terminate play.
type Service struct{}

// New creates a new victory evaluator
func New() *Service {
	return &Service{}
}

// Result is the outcome of evaluating a match for completion
type Result struct {
	GameOver bool
	Winner   model.Winner
	Reason   string
}

// Prediction is an advisory winner forecast
type Prediction struct {
	Winner     model.Winner
	Confidence float64
}

// Evaluate determines whether the match is over and, if so, the winner.
// The game is over exactly when every cell has an owner; the winner is
// the higher score, or the tie sentinel on equal scores.
func (s *Service) Evaluate(m *model.Match) Result {
	claimed := m.ClaimedCells()
	total := m.TotalCells()

	if claimed < total {
		return Result{
			GameOver: false,
			Winner:   model.WinnerNone,
			Reason:   fmt.Sprintf("game in progress - %d/%d cells claimed", claimed, total),
		}
	}

	winner := s.DetermineWinner(m.Scores)
	var reason string
	if winner == model.WinnerTie {
		reason = fmt.Sprintf("game over - tie at %d points each", m.Scores[model.Slot1])
	} else {
		winnerSlot := model.Slot1
		if winner == model.WinnerSlot2 {
			winnerSlot = model.Slot2
		}
		reason = fmt.Sprintf("game over - player %d wins %d to %d",
			winnerSlot, m.Scores[winnerSlot], m.Scores[winnerSlot.Other()])
	}

	return Result{GameOver: true, Winner: winner, Reason: reason}
}

// DetermineWinner compares scores, returning the tie sentinel on equality
func (s *Service) DetermineWinner(scores map[model.PlayerSlot]int) model.Winner {
	p1, p2 := scores[model.Slot1], scores[model.Slot2]
	switch {
	case p1 > p2:
		return model.WinnerSlot1
	case p2 > p1:
		return model.WinnerSlot2
	}
	return model.WinnerTie
}

// Remaining returns the count of unclaimed cells
func (s *Service) Remaining(m *model.Match) int {
	return m.TotalCells() - m.ClaimedCells()
}

// Progress returns the fraction of cells claimed as a percentage
func (s *Service) Progress(m *model.Match) float64 {
	total := m.TotalCells()
	if total == 0 {
		return 0
	}
	return float64(m.ClaimedCells()) / float64(total) * 100
}

// Decisive reports whether the outcome is mathematically locked: the
// score gap exceeds the cells still on the board. Advisory only.
func (s *Service) Decisive(m *model.Match) bool {
	gap := m.Scores[model.Slot1] - m.Scores[model.Slot2]
	if gap < 0 {
		gap = -gap
	}
	return gap > s.Remaining(m)
}

// Predict forecasts the winner with a confidence derived from the ratio
// of the score gap to the remaining cells. With nothing left to claim,
// or a gap no comeback can close, confidence is 1. Advisory only.
func (s *Service) Predict(m *model.Match) Prediction {
	remaining := s.Remaining(m)
	gap := m.Scores[model.Slot1] - m.Scores[model.Slot2]

	if remaining == 0 {
		return Prediction{Winner: s.DetermineWinner(m.Scores), Confidence: 1.0}
	}

	abs := gap
	if abs < 0 {
		abs = -abs
	}
	if abs > remaining {
		winner := model.WinnerSlot1
		if gap < 0 {
			winner = model.WinnerSlot2
		}
		return Prediction{Winner: winner, Confidence: 1.0}
	}

	confidence := 1 - float64(remaining)/10
	if confidence < 0.1 {
		confidence = 0.1
	}
	return Prediction{Winner: model.WinnerNone, Confidence: confidence}
}

// Interface for dependency injection
type ServiceInterface interface {
	Evaluate(m *model.Match) Result
	DetermineWinner(scores map[model.PlayerSlot]int) model.Winner
	Remaining(m *model.Match) int
	Progress(m *model.Match) float64
	Decisive(m *model.Match) bool
	Predict(m *model.Match) Prediction
}

var _ ServiceInterface = (*Service)(nil)
