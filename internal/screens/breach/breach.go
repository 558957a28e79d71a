// Package breach hosts the breach protocol puzzle in the terminal UI.
package breach

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	bp "github.com/abhisek/unitutor/internal/breach"
	"github.com/abhisek/unitutor/internal/identity"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/store"
	"github.com/abhisek/unitutor/internal/ui/layout"
)

// BreachScreen drives a bp.Controller and renders its state.
type BreachScreen struct {
	cfg      bp.Config
	rng      bp.Rand
	events   store.EventRepo
	identity *identity.Service
	logger   *zap.Logger
	opts     []bp.Option
	title    string

	ctrl   *bp.Controller
	sub    *subscription
	state  bp.State
	cursor bp.Position

	last     bp.Outcome
	paid     bool
	reward   int
	recorded bool
	errMsg   string
}

var _ screen.Screen = (*BreachScreen)(nil)
var _ screen.KeyHintProvider = (*BreachScreen)(nil)
var _ screen.BackHandler = (*BreachScreen)(nil)
var _ screen.Closer = (*BreachScreen)(nil)

// New creates a breach screen. events and ident may be nil, in which case
// runs are neither recorded nor paid out to a profile. opts are passed to
// every controller the screen starts.
func New(cfg bp.Config, rng bp.Rand, events store.EventRepo, ident *identity.Service, logger *zap.Logger, opts ...bp.Option) *BreachScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BreachScreen{
		cfg:      cfg,
		rng:      rng,
		events:   events,
		identity: ident,
		logger:   logger,
		opts:     opts,
		title:    "Breach Protocol",
	}
}

// NewBonus creates the breach screen offered after a quiz.
func NewBonus(cfg bp.Config, rng bp.Rand, events store.EventRepo, ident *identity.Service, logger *zap.Logger, opts ...bp.Option) *BreachScreen {
	s := New(cfg, rng, events, ident, logger, opts...)
	s.title = "Bonus Breach"
	return s
}

func (s *BreachScreen) Init() tea.Cmd {
	return s.start()
}

func (s *BreachScreen) Title() string {
	return s.title
}

// HandlesBack keeps Esc from leaving while a payout is in flight.
func (s *BreachScreen) HandlesBack() bool {
	return s.awaitingPayout()
}

// Close tears down the running controller.
func (s *BreachScreen) Close() {
	if s.ctrl != nil {
		s.ctrl.Close()
	}
}

func (s *BreachScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.ctrl == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.state.Status == bp.StatusActive:
		return []layout.KeyHint{
			{Key: "←→↑↓", Description: "Move"},
			{Key: "Enter", Description: "Upload"},
			{Key: "Esc", Description: "Abort"},
		}
	case s.awaitingPayout():
		return []layout.KeyHint{{Key: "…", Description: "Transferring credits"}}
	default:
		return []layout.KeyHint{
			{Key: "R", Description: "New breach"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *BreachScreen) awaitingPayout() bool {
	return s.ctrl != nil && s.state.Status == bp.StatusWon && !s.paid
}

// start replaces any running puzzle with a fresh one and subscribes to it.
func (s *BreachScreen) start() tea.Cmd {
	s.Close()

	sub := newSubscription()
	cb := bp.Callbacks{
		OnSuccess: sub.pay,
		OnClose:   sub.close,
	}
	notify := bp.WithNotify(func(bp.State) { sub.notify() })

	opts := append([]bp.Option{bp.WithLogger(s.logger)}, s.opts...)
	ctrl, err := bp.NewController(s.cfg, s.rng, cb, append(opts, notify)...)
	if err != nil {
		s.ctrl = nil
		s.errMsg = err.Error()
		return nil
	}

	s.ctrl = ctrl
	s.sub = sub
	s.state = ctrl.State()
	s.cursor = bp.Position{}
	s.last = bp.Outcome{}
	s.paid, s.reward, s.recorded = false, 0, false
	s.errMsg = ""
	return listen(sub)
}

// listen waits for the next controller signal. Tests swap it out and
// poll the subscription directly.
var listen = func(sub *subscription) tea.Cmd {
	return sub.wait
}

func (s *BreachScreen) current(src *subscription) bool {
	return s.ctrl != nil && src == s.sub
}

func (s *BreachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		if !s.current(msg.src) {
			return s, nil
		}
		return s, tea.Batch(s.refresh(), listen(s.sub))

	case payoutMsg:
		if !s.current(msg.src) {
			return s, nil
		}
		s.paid = true
		s.reward = msg.reward
		s.state = s.ctrl.State()
		return s, tea.Batch(s.record(s.state, msg.reward), listen(s.sub))

	case closedMsg:
		return s, nil

	case recordedMsg:
		if msg.err != nil {
			s.logger.Error("record breach", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
			return s, nil
		}
		if msg.profile == nil {
			return s, nil
		}
		p := msg.profile
		return s, func() tea.Msg { return screen.ProfileUpdatedMsg{Profile: p} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// refresh pulls the latest state and records a lost run once.
func (s *BreachScreen) refresh() tea.Cmd {
	s.state = s.ctrl.State()
	if s.state.Status == bp.StatusLost {
		return s.record(s.state, 0)
	}
	return nil
}

func (s *BreachScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl == nil {
		return s, nil
	}
	if s.state.Status.Terminal() {
		if msg.String() == "r" && !s.awaitingPayout() {
			return s, s.start()
		}
		return s, nil
	}

	switch msg.String() {
	case "left", "h":
		s.moveCursor(0, -1)
	case "right", "l":
		s.moveCursor(0, 1)
	case "up", "k":
		s.moveCursor(-1, 0)
	case "down", "j":
		s.moveCursor(1, 0)
	case "enter", "space":
		out := s.ctrl.Select(s.cursor.Row, s.cursor.Col)
		s.last = out
		if out.Accepted {
			return s, s.refresh()
		}
	}
	return s, nil
}

// moveCursor moves along the active line only, wrapping at the edges.
func (s *BreachScreen) moveCursor(dRow, dCol int) {
	n := s.state.Grid.Size()
	c := s.state.Constraint
	s.snapCursor()
	if c.Axis() == bp.AxisRow {
		if dCol == 0 {
			return
		}
		s.cursor.Col = (s.cursor.Col + dCol + n) % n
		return
	}
	if dRow == 0 {
		return
	}
	s.cursor.Row = (s.cursor.Row + dRow + n) % n
}

// snapCursor keeps the cursor on the active line after the constraint
// flips.
func (s *BreachScreen) snapCursor() {
	c := s.state.Constraint
	if c.Axis() == bp.AxisRow {
		s.cursor.Row = c.Index()
	} else {
		s.cursor.Col = c.Index()
	}
}

// record persists a resolved run and pays reward into the active profile.
func (s *BreachScreen) record(st bp.State, reward int) tea.Cmd {
	if s.recorded {
		return nil
	}
	s.recorded = true

	events, ident := s.events, s.identity
	data := store.BreachEventData{
		RunID:         s.ctrl.ID(),
		Status:        st.Status.String(),
		TotalReward:   reward,
		Moves:         st.Moves,
		TimeRemaining: st.TimeRemaining,
	}
	return func() tea.Msg {
		ctx := context.Background()
		var profile *store.Profile
		var errs []error

		if ident != nil {
			p, err := ident.Current(ctx)
			if err != nil {
				return recordedMsg{err: err}
			}
			data.ProfileID = p.ID
			if reward > 0 {
				p, err = ident.AdjustCredits(ctx, reward)
				errs = append(errs, err)
			}
			profile = p
		}
		if events != nil {
			errs = append(errs, events.AppendBreach(ctx, data))
		}
		return recordedMsg{profile: profile, err: errors.Join(errs...)}
	}
}
