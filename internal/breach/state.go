package breach

// Status is the lifecycle of one puzzle.
type Status int

const (
	StatusActive Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "active"
	}
}

// Terminal reports whether the puzzle has resolved.
func (s Status) Terminal() bool {
	return s != StatusActive
}

// Move is a player's attempt to pick a cell.
type Move struct {
	Row int
	Col int
}

// Outcome describes what a move did.
type Outcome struct {
	// Accepted is false when the move was illegal or the puzzle was over.
	Accepted bool

	Symbol Symbol

	// Completed holds the ids of daemons this move finished.
	Completed []int

	// Gained is the reward added by this move.
	Gained int

	// Resolved is true when this move ended the puzzle.
	Resolved bool
}

// State is an immutable snapshot of a puzzle. Apply and Tick return new
// values; a State obtained earlier never changes.
type State struct {
	Grid          *Grid
	Targets       []Target
	Buffer        Buffer
	Constraint    Constraint
	Status        Status
	TimeRemaining int
	TimeLimit     int
	TotalReward   int
	Moves         int
}

// NewState generates a fresh puzzle and returns its initial state together
// with the master path the daemons were cut from.
func NewState(cfg Config, rng Rand) (State, MasterPath, error) {
	if err := cfg.Validate(); err != nil {
		return State{}, MasterPath{}, err
	}
	grid, path, err := Generate(cfg.GridSize, cfg.Alphabet, rng)
	if err != nil {
		return State{}, MasterPath{}, err
	}
	targets, err := Synthesize(path)
	if err != nil {
		return State{}, MasterPath{}, err
	}
	return initialState(grid, targets, cfg), path, nil
}

func initialState(grid *Grid, targets []Target, cfg Config) State {
	return State{
		Grid:          grid,
		Targets:       targets,
		Buffer:        NewBuffer(cfg.BufferSize),
		Constraint:    InitialConstraint(),
		Status:        StatusActive,
		TimeRemaining: cfg.TimeLimit,
		TimeLimit:     cfg.TimeLimit,
	}
}

// Apply picks the cell named by m. Illegal moves and moves on a resolved
// puzzle return the receiver unchanged with a zero Outcome.
func (s State) Apply(m Move) (State, Outcome) {
	if s.Status.Terminal() {
		return s, Outcome{}
	}
	p := Position(m)
	if !s.Grid.Legal(s.Constraint, p) {
		return s, Outcome{}
	}

	next := s
	next.Grid = s.Grid.clone()
	next.Targets = cloneTargets(s.Targets)

	cell := next.Grid.markUsed(p)
	next.Buffer = s.Buffer.with(cell.Value)
	next.Constraint = s.Constraint.Next(p)
	next.Moves++

	gained, completed := Match(next.Buffer, next.Targets)
	next.TotalReward += gained

	out := Outcome{
		Accepted:  true,
		Symbol:    cell.Value,
		Completed: completed,
		Gained:    gained,
	}

	if next.Buffer.Full() {
		if next.TotalReward > 0 {
			next.Status = StatusWon
		} else {
			next.Status = StatusLost
		}
		out.Resolved = true
	}
	return next, out
}

// Tick advances the countdown by one unit. Reaching zero loses the puzzle
// regardless of the reward collected so far.
func (s State) Tick() State {
	if s.Status.Terminal() {
		return s
	}
	next := s
	next.TimeRemaining--
	if next.TimeRemaining <= 0 {
		next.TimeRemaining = 0
		next.Status = StatusLost
	}
	return next
}

// LegalMoves lists the cells the player may pick next.
func (s State) LegalMoves() []Position {
	if s.Status.Terminal() {
		return nil
	}
	return s.Grid.LegalMoves(s.Constraint)
}
