package breach

import "fmt"

// Axis is the orientation of the line the next pick is locked to.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	if a == AxisColumn {
		return "COL"
	}
	return "ROW"
}

// Constraint locks the next selection to a single row or a single column.
// The zero value is the initial constraint, row 0.
type Constraint struct {
	axis  Axis
	index int
}

// InitialConstraint is where every puzzle starts: the first pick must be on
// row 0.
func InitialConstraint() Constraint {
	return RowConstraint(0)
}

// RowConstraint locks selection to row i.
func RowConstraint(i int) Constraint {
	return Constraint{axis: AxisRow, index: i}
}

// ColumnConstraint locks selection to column i.
func ColumnConstraint(i int) Constraint {
	return Constraint{axis: AxisColumn, index: i}
}

func (c Constraint) Axis() Axis { return c.axis }
func (c Constraint) Index() int { return c.index }

// Allows reports whether p lies on the locked line.
func (c Constraint) Allows(p Position) bool {
	if c.axis == AxisColumn {
		return p.Col == c.index
	}
	return p.Row == c.index
}

// Next returns the constraint after p was picked: a row pick locks p's
// column, a column pick locks p's row.
func (c Constraint) Next(p Position) Constraint {
	if c.axis == AxisRow {
		return ColumnConstraint(p.Col)
	}
	return RowConstraint(p.Row)
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s %d", c.axis, c.index)
}
