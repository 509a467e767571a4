package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dotgrid/dotsboxes-go/internal/dependencies/mocks"
	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/services/completion"
)

type GreedyStrategySuite struct {
	suite.Suite
	completion *completion.Service
	random     *mocks.MockRandom
	strategy   *GreedyStrategy
}

func TestGreedyStrategySuite(t *testing.T) {
	suite.Run(t, new(GreedyStrategySuite))
}

func (s *GreedyStrategySuite) SetupTest() {
	s.completion = completion.New()
	s.random = mocks.NewMockRandom()
	s.strategy = NewGreedyStrategy(s.completion, s.random)
}

// activeMatch builds an in-flight match with the bot in slot 2 and the
// turn on the bot
func (s *GreedyStrategySuite) activeMatch(gridSize int) *model.Match {
	candidates := model.CandidateCells(gridSize)
	cells := make([]model.CellState, len(candidates))
	for i, c := range candidates {
		cells[i] = model.CellState{Cell: c, Owner: model.SlotNone}
	}
	return &model.Match{
		ID:     "match-1",
		Status: model.StatusActive,
		Settings: model.Settings{
			GridSize:     gridSize,
			TurnDuration: 30 * time.Second,
		},
		Player1:     &model.Participant{ID: "alice", Name: "Alice"},
		Player2:     &model.Participant{ID: "bot-1", Name: "Bot", IsBot: true},
		Lines:       []model.Line{},
		Cells:       cells,
		Scores:      map[model.PlayerSlot]int{model.Slot1: 0, model.Slot2: 0},
		CurrentTurn: model.Slot2,
		TurnHistory: []model.TurnRecord{},
		MissedTurns: map[model.PlayerSlot]int{model.Slot1: 0, model.Slot2: 0},
	}
}

func (s *GreedyStrategySuite) draw(m *model.Match, r1, c1, r2, c2 int) {
	m.Lines = append(m.Lines, model.Line{
		Edge:   model.NewEdge(model.Dot{Row: r1, Col: c1}, model.Dot{Row: r2, Col: c2}),
		Player: model.Slot1,
	})
}

func (s *GreedyStrategySuite) TestFullBoardHasNoEdge() {
	m := s.activeMatch(3)
	for _, e := range model.CandidateEdges(3) {
		m.Lines = append(m.Lines, model.Line{Edge: e, Player: model.Slot1})
	}

	_, ok := s.strategy.ChooseEdge(m)
	s.False(ok)
}

func (s *GreedyStrategySuite) TestTakesCompletingEdge() {
	m := s.activeMatch(3)
	// Top-left cell is three-sided; its right edge is the only
	// completing move on the board
	s.draw(m, 0, 0, 0, 1)
	s.draw(m, 1, 0, 1, 1)
	s.draw(m, 0, 0, 1, 0)

	edge, ok := s.strategy.ChooseEdge(m)
	s.Require().True(ok)
	s.Equal(model.NewEdge(model.Dot{Row: 0, Col: 1}, model.Dot{Row: 1, Col: 1}), edge)
	s.True(s.completion.WouldComplete(m, edge))
}

func (s *GreedyStrategySuite) TestAvoidsGiveawayEdge() {
	m := s.activeMatch(3)
	// Top-left cell is two-sided: adding either of its remaining edges
	// would hand the opponent the cell
	s.draw(m, 0, 0, 0, 1)
	s.draw(m, 0, 0, 1, 0)

	edge, ok := s.strategy.ChooseEdge(m)
	s.Require().True(ok)
	s.NotEqual(model.NewEdge(model.Dot{Row: 1, Col: 0}, model.Dot{Row: 1, Col: 1}), edge)
	s.NotEqual(model.NewEdge(model.Dot{Row: 0, Col: 1}, model.Dot{Row: 1, Col: 1}), edge)

	// No reply to the chosen edge completes a cell
	sim := m.Clone()
	sim.Lines = append(sim.Lines, model.Line{Edge: edge, Player: model.Slot2})
	for _, reply := range model.CandidateEdges(3) {
		if sim.HasEdge(reply) {
			continue
		}
		s.False(s.completion.WouldComplete(sim, reply))
	}
}

func (s *GreedyStrategySuite) TestFallsBackWhenEveryEdgeGivesAway() {
	m := s.activeMatch(2)
	// The single cell has two sides; both remaining edges are giveaways
	s.draw(m, 0, 0, 0, 1)
	s.draw(m, 1, 0, 1, 1)

	edge, ok := s.strategy.ChooseEdge(m)
	s.Require().True(ok)
	s.Contains([]model.Edge{
		model.NewEdge(model.Dot{Row: 0, Col: 0}, model.Dot{Row: 1, Col: 0}),
		model.NewEdge(model.Dot{Row: 0, Col: 1}, model.Dot{Row: 1, Col: 1}),
	}, edge)
	s.False(m.HasEdge(edge))
}

func (s *GreedyStrategySuite) TestChooseEdgeDoesNotMutateMatch() {
	m := s.activeMatch(3)
	s.draw(m, 0, 0, 0, 1)
	before := m.Clone()

	_, ok := s.strategy.ChooseEdge(m)
	s.Require().True(ok)
	s.Equal(before, m)
}
