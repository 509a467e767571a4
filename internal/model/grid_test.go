package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotInGrid(t *testing.T) {
	assert.True(t, Dot{Row: 0, Col: 0}.InGrid(3))
	assert.True(t, Dot{Row: 2, Col: 2}.InGrid(3))
	assert.False(t, Dot{Row: 3, Col: 0}.InGrid(3))
	assert.False(t, Dot{Row: 0, Col: 3}.InGrid(3))
	assert.False(t, Dot{Row: -1, Col: 0}.InGrid(3))
	assert.False(t, Dot{Row: 0, Col: -1}.InGrid(3))
}

func TestNewEdgeCanonicalizesEndpointOrder(t *testing.T) {
	a := Dot{Row: 1, Col: 1}
	b := Dot{Row: 1, Col: 2}

	forward := NewEdge(a, b)
	reversed := NewEdge(b, a)

	assert.Equal(t, forward, reversed)
	assert.Equal(t, a, reversed.A)
	assert.Equal(t, b, reversed.B)
}

func TestEdgeAdjacent(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Dot
		adjacent bool
	}{
		{"horizontal neighbors", Dot{0, 0}, Dot{0, 1}, true},
		{"vertical neighbors", Dot{0, 0}, Dot{1, 0}, true},
		{"diagonal", Dot{0, 0}, Dot{1, 1}, false},
		{"two apart", Dot{0, 0}, Dot{0, 2}, false},
		{"far apart", Dot{0, 0}, Dot{3, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.adjacent, NewEdge(tt.a, tt.b).Adjacent())
		})
	}
}

func TestEdgeAdjacentCells(t *testing.T) {
	// Interior horizontal edge borders the cells above and below
	interior := NewEdge(Dot{Row: 1, Col: 0}, Dot{Row: 1, Col: 1})
	assert.ElementsMatch(t,
		[]Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}},
		interior.AdjacentCells(3))

	// Top boundary edge borders a single cell
	top := NewEdge(Dot{Row: 0, Col: 0}, Dot{Row: 0, Col: 1})
	assert.Equal(t, []Cell{{Row: 0, Col: 0}}, top.AdjacentCells(3))

	// Bottom boundary edge borders a single cell
	bottom := NewEdge(Dot{Row: 2, Col: 0}, Dot{Row: 2, Col: 1})
	assert.Equal(t, []Cell{{Row: 1, Col: 0}}, bottom.AdjacentCells(3))

	// Interior vertical edge borders the cells left and right
	vertical := NewEdge(Dot{Row: 0, Col: 1}, Dot{Row: 1, Col: 1})
	assert.ElementsMatch(t,
		[]Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		vertical.AdjacentCells(3))

	// Left boundary edge borders a single cell
	left := NewEdge(Dot{Row: 0, Col: 0}, Dot{Row: 1, Col: 0})
	assert.Equal(t, []Cell{{Row: 0, Col: 0}}, left.AdjacentCells(3))
}

func TestCellBoundingEdges(t *testing.T) {
	edges := Cell{Row: 1, Col: 1}.BoundingEdges()

	expected := [4]Edge{
		NewEdge(Dot{1, 1}, Dot{1, 2}), // top
		NewEdge(Dot{2, 1}, Dot{2, 2}), // bottom
		NewEdge(Dot{1, 1}, Dot{2, 1}), // left
		NewEdge(Dot{1, 2}, Dot{2, 2}), // right
	}
	assert.Equal(t, expected, edges)

	// All four are distinct and adjacent
	seen := make(map[Edge]bool)
	for _, e := range edges {
		assert.True(t, e.Adjacent())
		assert.False(t, seen[e])
		seen[e] = true
	}
}

func TestCandidateEdgesCount(t *testing.T) {
	for n := 2; n <= 8; n++ {
		t.Run(fmt.Sprintf("grid%d", n), func(t *testing.T) {
			edges := CandidateEdges(n)
			require.Len(t, edges, 2*n*(n-1))

			// No duplicates, all canonical and adjacent
			seen := make(map[Edge]bool)
			for _, e := range edges {
				assert.True(t, e.Adjacent())
				assert.False(t, e.B.Less(e.A))
				assert.False(t, seen[e])
				seen[e] = true
			}
		})
	}
}

func TestCandidateCellsCount(t *testing.T) {
	for n := 2; n <= 8; n++ {
		cells := CandidateCells(n)
		require.Len(t, cells, (n-1)*(n-1))
	}

	// Row-major order
	cells := CandidateCells(3)
	assert.Equal(t, []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, cells)
}
