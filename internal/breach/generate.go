package breach

import "fmt"

// maxWalkAttempts bounds how many times the master path walk is restarted
// after running into a dead end.
const maxWalkAttempts = 64

// MasterPath is the hidden route every daemon is derived from. Steps holds
// the coordinates walked, Values the symbols found there.
type MasterPath struct {
	Steps  []Position
	Values []Symbol
}

// Generate fills a size x size grid with uniformly random symbols and walks
// a master path over it that the selection rules can replay.
func Generate(size int, alphabet []Symbol, rng Rand) (*Grid, MasterPath, error) {
	if size < 3 {
		return nil, MasterPath{}, fmt.Errorf("%w: grid size %d, need at least 3", ErrInvalidConfig, size)
	}
	if len(alphabet) == 0 {
		return nil, MasterPath{}, fmt.Errorf("%w: empty alphabet", ErrInvalidConfig)
	}
	if rng == nil {
		return nil, MasterPath{}, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	rows := make([][]Symbol, size)
	for r := range rows {
		rows[r] = make([]Symbol, size)
		for c := range rows[r] {
			rows[r][c] = alphabet[rng.IntN(len(alphabet))]
		}
	}
	grid, err := NewGrid(rows)
	if err != nil {
		return nil, MasterPath{}, err
	}

	for range maxWalkAttempts {
		steps, ok := walkPath(size, rng)
		if !ok {
			continue
		}
		if err := VerifyPath(grid, steps); err != nil {
			return nil, MasterPath{}, err
		}
		return grid, pathFromSteps(grid, steps), nil
	}
	return nil, MasterPath{}, fmt.Errorf("%w: no path after %d attempts", ErrUnsolvable, maxWalkAttempts)
}

// walkPath starts on row 0 and alternates vertical and horizontal steps,
// never landing on a cell it already visited. It reports false when it
// runs out of fresh cells.
func walkPath(size int, rng Rand) ([]Position, bool) {
	cur := Position{Row: 0, Col: rng.IntN(size)}
	steps := []Position{cur}
	visited := map[Position]bool{cur: true}

	// The first player move is row-locked, so the first step of the path
	// has to keep the column.
	vertical := true
	candidates := make([]Position, 0, size)
	for len(steps) < PathLength {
		candidates = candidates[:0]
		for i := range size {
			next := cur
			if vertical {
				if i == cur.Row {
					continue
				}
				next.Row = i
			} else {
				if i == cur.Col {
					continue
				}
				next.Col = i
			}
			if !visited[next] {
				candidates = append(candidates, next)
			}
		}
		if len(candidates) == 0 {
			return nil, false
		}
		cur = candidates[rng.IntN(len(candidates))]
		visited[cur] = true
		steps = append(steps, cur)
		vertical = !vertical
	}
	return steps, true
}

// VerifyPath replays steps through the selection rules from the initial
// constraint and returns an ErrUnsolvable error at the first illegal step.
func VerifyPath(grid *Grid, steps []Position) error {
	g := grid.clone()
	for i := range g.cells {
		g.cells[i].Used = false
	}
	c := InitialConstraint()
	for i, p := range steps {
		if !g.Legal(c, p) {
			return fmt.Errorf("%w: step %d at (%d,%d) not allowed under %s", ErrUnsolvable, i, p.Row, p.Col, c)
		}
		g.markUsed(p)
		c = c.Next(p)
	}
	return nil
}

func pathFromSteps(grid *Grid, steps []Position) MasterPath {
	values := make([]Symbol, len(steps))
	for i, p := range steps {
		cell, _ := grid.At(p)
		values[i] = cell.Value
	}
	return MasterPath{Steps: steps, Values: values}
}
