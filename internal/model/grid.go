package model

import "fmt"

// Dot is a point on the N x N lattice, identified by (row, col)
type Dot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InGrid reports whether the dot lies within an N x N grid
func (d Dot) InGrid(gridSize int) bool {
	return d.Row >= 0 && d.Row < gridSize && d.Col >= 0 && d.Col < gridSize
}

// Less orders dots row-major, used for edge canonicalization
func (d Dot) Less(other Dot) bool {
	if d.Row != other.Row {
		return d.Row < other.Row
	}
	return d.Col < other.Col
}

func (d Dot) String() string {
	return fmt.Sprintf("%d-%d", d.Row, d.Col)
}

// Edge is a unit segment between two grid-adjacent dots.
// The endpoints are stored in canonical order (A before B row-major), so
// structurally equal edges compare equal regardless of the order the
// endpoints were supplied in.
type Edge struct {
	A Dot `json:"a"`
	B Dot `json:"b"`
}

// NewEdge builds an edge from two dots, canonicalizing endpoint order
func NewEdge(a, b Dot) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Horizontal reports whether the edge runs along a row
func (e Edge) Horizontal() bool {
	return e.A.Row == e.B.Row
}

// Adjacent reports whether the endpoints are grid-adjacent: exactly one
// coordinate differs, by exactly 1
func (e Edge) Adjacent() bool {
	dr := e.B.Row - e.A.Row
	dc := e.B.Col - e.A.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// AdjacentCells returns the 1-2 cells bordered by this edge within an
// N x N grid. A horizontal edge borders the cells above and below it, a
// vertical edge the cells to its left and right; edges on the grid
// boundary border a single cell.
func (e Edge) AdjacentCells(gridSize int) []Cell {
	cells := make([]Cell, 0, 2)
	if e.Horizontal() {
		row, col := e.A.Row, e.A.Col
		if row > 0 {
			cells = append(cells, Cell{Row: row - 1, Col: col})
		}
		if row < gridSize-1 {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	} else {
		row, col := e.A.Row, e.A.Col
		if col > 0 {
			cells = append(cells, Cell{Row: row, Col: col - 1})
		}
		if col < gridSize-1 {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}

func (e Edge) String() string {
	return fmt.Sprintf("%s:%s", e.A, e.B)
}

// Cell is a unit cell of the grid, identified by its top-left dot.
// Valid for 0 <= Row, Col < N-1.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// BoundingEdges returns the 4 edges that close this cell: top, bottom,
// left, right
func (c Cell) BoundingEdges() [4]Edge {
	topLeft := Dot{Row: c.Row, Col: c.Col}
	topRight := Dot{Row: c.Row, Col: c.Col + 1}
	bottomLeft := Dot{Row: c.Row + 1, Col: c.Col}
	bottomRight := Dot{Row: c.Row + 1, Col: c.Col + 1}

	return [4]Edge{
		NewEdge(topLeft, topRight),
		NewEdge(bottomLeft, bottomRight),
		NewEdge(topLeft, bottomLeft),
		NewEdge(topRight, bottomRight),
	}
}

func (c Cell) String() string {
	return fmt.Sprintf("%d-%d", c.Row, c.Col)
}

// CandidateEdges enumerates every horizontal and vertical unit edge of an
// N x N dot grid, 2*N*(N-1) in total
func CandidateEdges(gridSize int) []Edge {
	edges := make([]Edge, 0, 2*gridSize*(gridSize-1))
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			d := Dot{Row: row, Col: col}
			if col+1 < gridSize {
				edges = append(edges, NewEdge(d, Dot{Row: row, Col: col + 1}))
			}
			if row+1 < gridSize {
				edges = append(edges, NewEdge(d, Dot{Row: row + 1, Col: col}))
			}
		}
	}
	return edges
}

// CandidateCells enumerates every cell of an N x N dot grid, (N-1)^2 in
// total, row-major
func CandidateCells(gridSize int) []Cell {
	cells := make([]Cell, 0, (gridSize-1)*(gridSize-1))
	for row := 0; row < gridSize-1; row++ {
		for col := 0; col < gridSize-1; col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}
