package rules

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dotgrid/dotsboxes-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	match   *model.Match
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.match = &model.Match{
		ID:     "match-1",
		Status: model.StatusActive,
		Settings: model.Settings{
			GridSize: 3,
		},
		Player1: &model.Participant{ID: "alice", Name: "Alice"},
		Player2: &model.Participant{ID: "bob", Name: "Bob"},
		Cells: []model.CellState{
			{Cell: model.Cell{Row: 0, Col: 0}}, {Cell: model.Cell{Row: 0, Col: 1}},
			{Cell: model.Cell{Row: 1, Col: 0}}, {Cell: model.Cell{Row: 1, Col: 1}},
		},
		Scores:      map[model.PlayerSlot]int{model.Slot1: 0, model.Slot2: 0},
		CurrentTurn: model.Slot1,
		MissedTurns: map[model.PlayerSlot]int{model.Slot1: 0, model.Slot2: 0},
	}
}

func (s *ServiceSuite) TestValidMove() {
	err := s.service.Validate(s.match, "alice",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 1})
	s.NoError(err)
}

func (s *ServiceSuite) TestValidMoveReversedEndpoints() {
	err := s.service.Validate(s.match, "alice",
		model.Dot{Row: 0, Col: 1}, model.Dot{Row: 0, Col: 0})
	s.NoError(err)
}

func (s *ServiceSuite) TestGameNotActive() {
	s.match.Status = model.StatusWaiting

	err := s.service.Validate(s.match, "alice",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 1})
	s.ErrorIs(err, model.ErrGameNotActive)
}

func (s *ServiceSuite) TestGameAlreadyCompleted() {
	s.match.GameOver = true

	err := s.service.Validate(s.match, "alice",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 1})
	s.ErrorIs(err, model.ErrGameAlreadyCompleted)
}

func (s *ServiceSuite) TestInvalidDotOutOfBounds() {
	err := s.service.Validate(s.match, "alice",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 3})
	s.ErrorIs(err, model.ErrInvalidDot)

	err = s.service.Validate(s.match, "alice",
		model.Dot{Row: -1, Col: 0}, model.Dot{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrInvalidDot)
}

func (s *ServiceSuite) TestSelfLoop() {
	err := s.service.Validate(s.match, "alice",
		model.Dot{Row: 1, Col: 1}, model.Dot{Row: 1, Col: 1})
	s.ErrorIs(err, model.ErrSelfLoop)
}

func (s *ServiceSuite) TestNotAdjacentDiagonal() {
	err := s.service.Validate(s.match, "alice",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 1, Col: 1})
	s.ErrorIs(err, model.ErrNotAdjacent)
}

func (s *ServiceSuite) TestNotAdjacentDistance() {
	err := s.service.Validate(s.match, "alice",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 2})
	s.ErrorIs(err, model.ErrNotAdjacent)
}

func (s *ServiceSuite) TestDuplicateEdge() {
	edge := model.NewEdge(model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 1})
	s.match.Lines = append(s.match.Lines, model.Line{Edge: edge, Player: model.Slot1})
	s.match.CurrentTurn = model.Slot2

	// Same edge, reversed endpoint order, by the other player
	err := s.service.Validate(s.match, "bob",
		model.Dot{Row: 0, Col: 1}, model.Dot{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrDuplicateEdge)
}

func (s *ServiceSuite) TestPlayerNotInMatch() {
	err := s.service.Validate(s.match, "carol",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 1})
	s.ErrorIs(err, model.ErrPlayerNotInMatch)
}

func (s *ServiceSuite) TestNotYourTurn() {
	err := s.service.Validate(s.match, "bob",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 1})
	s.ErrorIs(err, model.ErrNotYourTurn)
}

// Check order: a move that is invalid in several ways reports the first
// failing check

func (s *ServiceSuite) TestStatusCheckedBeforeBounds() {
	s.match.Status = model.StatusCompleted

	err := s.service.Validate(s.match, "carol",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 9})
	s.ErrorIs(err, model.ErrGameNotActive)
}

func (s *ServiceSuite) TestBoundsCheckedBeforeAdjacency() {
	err := s.service.Validate(s.match, "bob",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 2, Col: 9})
	s.ErrorIs(err, model.ErrInvalidDot)
}

func (s *ServiceSuite) TestDuplicateCheckedBeforeTurn() {
	edge := model.NewEdge(model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 1})
	s.match.Lines = append(s.match.Lines, model.Line{Edge: edge, Player: model.Slot1})

	// Bob is out of turn AND the edge is taken; duplicate wins
	err := s.service.Validate(s.match, "bob",
		model.Dot{Row: 0, Col: 0}, model.Dot{Row: 0, Col: 1})
	s.ErrorIs(err, model.ErrDuplicateEdge)
}
