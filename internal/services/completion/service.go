package completion

import (
	"github.com/dotgrid/dotsboxes-go/internal/model"
)

// Service detects cells completed by a single move. Detection is
// localized: an edge borders at most two cells, so only those neighbors
// are tested rather than rescanning the grid. This keeps detection O(1)
// per move regardless of grid size.
type Service struct{}

// New creates a new completion detector
func New() *Service {
	return &Service{}
}

// NewlyCompleted returns the cells closed by drawing edge, given the line
// set with the edge already included. Zero, one, or two cells; never
// more. Cells that already have an owner are skipped even if their edges
// appear complete.
func (s *Service) NewlyCompleted(m *model.Match, edge model.Edge) []model.Cell {
	var completed []model.Cell
	for _, cell := range edge.AdjacentCells(m.GridSize()) {
		idx := m.CellIndex(cell)
		if idx < 0 || m.Cells[idx].Owner != model.SlotNone {
			continue
		}
		if s.cellBounded(m, cell) {
			completed = append(completed, cell)
		}
	}
	return completed
}

// WouldComplete reports whether hypothetically drawing edge would close at
// least one unclaimed cell. Used by the bot to rank candidate moves; the
// match itself is not modified.
func (s *Service) WouldComplete(m *model.Match, edge model.Edge) bool {
	for _, cell := range edge.AdjacentCells(m.GridSize()) {
		idx := m.CellIndex(cell)
		if idx < 0 || m.Cells[idx].Owner != model.SlotNone {
			continue
		}
		if s.cellBoundedWith(m, cell, edge) {
			return true
		}
	}
	return false
}

// cellBounded reports whether all 4 bounding edges of cell are drawn
func (s *Service) cellBounded(m *model.Match, cell model.Cell) bool {
	for _, e := range cell.BoundingEdges() {
		if !m.HasEdge(e) {
			return false
		}
	}
	return true
}

// cellBoundedWith is cellBounded with one extra hypothetical edge
func (s *Service) cellBoundedWith(m *model.Match, cell model.Cell, extra model.Edge) bool {
	for _, e := range cell.BoundingEdges() {
		if e != extra && !m.HasEdge(e) {
			return false
		}
	}
	return true
}

// Interface for dependency injection
type ServiceInterface interface {
	NewlyCompleted(m *model.Match, edge model.Edge) []model.Cell
	WouldComplete(m *model.Match, edge model.Edge) bool
}

var _ ServiceInterface = (*Service)(nil)
