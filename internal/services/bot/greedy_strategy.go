package bot

import (
	"github.com/dotgrid/dotsboxes-go/internal/dependencies/random"
	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/services/completion"
)

// GreedyStrategy plays the obvious move: take any edge that completes a
// cell; failing that, an edge that does not hand the opponent a
// completion; failing that, any open edge. Ties are broken randomly.
type GreedyStrategy struct {
	completion *completion.Service
	random     random.Random
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(completionService *completion.Service, rnd random.Random) *GreedyStrategy {
	return &GreedyStrategy{
		completion: completionService,
		random:     rnd,
	}
}

var _ Strategy = (*GreedyStrategy)(nil)

// ChooseEdge picks the bot's next edge from the open edges of the match
func (s *GreedyStrategy) ChooseEdge(m *model.Match) (model.Edge, bool) {
	open := openEdges(m)
	if len(open) == 0 {
		return model.Edge{}, false
	}

	var winning, safe []model.Edge
	for _, e := range open {
		if s.completion.WouldComplete(m, e) {
			winning = append(winning, e)
			continue
		}
		if !s.givesAwayCell(m, e) {
			safe = append(safe, e)
		}
	}

	switch {
	case len(winning) > 0:
		return winning[s.random.Intn(len(winning))], true
	case len(safe) > 0:
		return safe[s.random.Intn(len(safe))], true
	}
	return open[s.random.Intn(len(open))], true
}

// givesAwayCell reports whether drawing e would leave some cell one edge
// away from completion for the opponent
func (s *GreedyStrategy) givesAwayCell(m *model.Match, e model.Edge) bool {
	// Simulate our move on a clone, then ask whether any reply completes
	// a cell
	sim := m.Clone()
	sim.Lines = append(sim.Lines, model.Line{Edge: e, Player: m.CurrentTurn})

	for _, reply := range openEdges(sim) {
		if s.completion.WouldComplete(sim, reply) {
			return true
		}
	}
	return false
}

// openEdges returns every candidate edge not yet drawn
func openEdges(m *model.Match) []model.Edge {
	var open []model.Edge
	for _, e := range model.CandidateEdges(m.GridSize()) {
		if !m.HasEdge(e) {
			open = append(open, e)
		}
	}
	return open
}
