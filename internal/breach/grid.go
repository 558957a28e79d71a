package breach

import "fmt"

// Symbol is a single hex code shown in a grid cell.
type Symbol string

// DefaultAlphabet is the symbol set used by the standard puzzle.
var DefaultAlphabet = []Symbol{"1C", "BD", "55", "E9", "7A", "FF"}

// Rand is the randomness source used for generation. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Position addresses a cell by row and column.
type Position struct {
	Row int
	Col int
}

// Cell is one slot of the grid.
type Cell struct {
	Row   int
	Col   int
	Value Symbol
	Used  bool
}

// Grid is a square matrix of cells. Cells are only ever mutated to flip
// Used, and only on a private copy (see State.Apply).
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid builds a grid from explicit row values. Every row must have the
// same length as the number of rows.
func NewGrid(rows [][]Symbol) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidConfig)
	}
	g := &Grid{size: size, cells: make([]Cell, 0, size*size)}
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, r, len(row), size)
		}
		for c, v := range row {
			g.cells = append(g.cells, Cell{Row: r, Col: c, Value: v})
		}
	}
	return g, nil
}

// Size returns the number of rows (and columns).
func (g *Grid) Size() int {
	return g.size
}

// At returns the cell at p and whether p lies inside the grid.
func (g *Grid) At(p Position) (Cell, bool) {
	if !g.inBounds(p) {
		return Cell{}, false
	}
	return g.cells[p.Row*g.size+p.Col], true
}

// Rows returns a copy of the grid laid out row by row.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.size)
	for r := range rows {
		rows[r] = make([]Cell, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// Legal reports whether p may be selected under constraint c.
func (g *Grid) Legal(c Constraint, p Position) bool {
	cell, ok := g.At(p)
	if !ok || cell.Used {
		return false
	}
	return c.Allows(p)
}

// LegalMoves lists the unused cells on the line c points at.
func (g *Grid) LegalMoves(c Constraint) []Position {
	var moves []Position
	for i := range g.size {
		p := Position{Row: c.Index(), Col: i}
		if c.Axis() == AxisColumn {
			p = Position{Row: i, Col: c.Index()}
		}
		if g.Legal(c, p) {
			moves = append(moves, p)
		}
	}
	return moves
}

func (g *Grid) inBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

func (g *Grid) clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}

// markUsed flips Used on p and returns the cell. Callers must have checked
// Legal first.
func (g *Grid) markUsed(p Position) Cell {
	i := p.Row*g.size + p.Col
	g.cells[i].Used = true
	return g.cells[i]
}
