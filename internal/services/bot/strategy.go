package bot

import "github.com/dotgrid/dotsboxes-go/internal/model"

// Strategy defines how a bot chooses its next edge. Given the current
// match snapshot it returns one legal candidate edge, or false when the
// board is full. Strategies never mutate the match; their move goes
// through the same validation path as a human move.
type Strategy interface {
	ChooseEdge(m *model.Match) (model.Edge, bool)
}
