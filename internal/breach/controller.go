package breach

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Callbacks connect a puzzle to the screen hosting it.
type Callbacks struct {
	// OnSuccess receives the total reward once, PayoutDelay after a win.
	OnSuccess func(totalReward int)

	// OnClose runs once when the puzzle is dismissed.
	OnClose func()
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces the system clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithNotify registers f to receive the states the controller moves to,
// in the order they happened. When a concurrent move and tick race, a
// snapshot overtaken by a newer one is skipped rather than delivered
// late. f runs without the controller lock held and must not block or
// call Select or Tick.
func WithNotify(f func(State)) Option {
	return func(c *Controller) { c.notify = f }
}

// Controller owns one puzzle: its state, its countdown and its payout. All
// mutations go through one mutex, so a tick is never processed mid-move.
type Controller struct {
	id     string
	cfg    Config
	cb     Callbacks
	clock  Clock
	logger *zap.Logger
	notify func(State)

	mu         sync.Mutex
	seq        uint64 // bumped on every state change
	state      State
	path       MasterPath
	stopTick   func()
	stopPayout func()
	paid       bool
	closed     bool

	pubMu     sync.Mutex
	published uint64
}

// NewController generates a puzzle and starts its countdown.
func NewController(cfg Config, rng Rand, cb Callbacks, opts ...Option) (*Controller, error) {
	state, path, err := NewState(cfg, rng)
	if err != nil {
		return nil, err
	}
	return newController(cfg, state, path, cb, opts...), nil
}

func newController(cfg Config, state State, path MasterPath, cb Callbacks, opts ...Option) *Controller {
	c := &Controller{
		id:     uuid.NewString(),
		cfg:    cfg,
		cb:     cb,
		clock:  SystemClock(),
		logger: zap.NewNop(),
		state:  state,
		path:   path,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("breach_id", c.id))
	c.mu.Lock()
	c.stopTick = c.clock.Every(cfg.TickInterval, c.Tick)
	c.mu.Unlock()
	c.logger.Debug("breach started",
		zap.Int("grid_size", cfg.GridSize),
		zap.Int("time_limit", cfg.TimeLimit))
	return c
}

// ID identifies this puzzle run.
func (c *Controller) ID() string {
	return c.id
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select applies a cell pick. Illegal picks and picks after the puzzle
// resolved or closed are ignored.
func (c *Controller) Select(row, col int) Outcome {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Outcome{}
	}
	next, out := c.state.Apply(Move{Row: row, Col: col})
	if !out.Accepted {
		c.mu.Unlock()
		return out
	}
	c.state = next
	c.seq++
	seq := c.seq
	if len(out.Completed) > 0 {
		c.logger.Debug("daemons uploaded", zap.Ints("targets", out.Completed), zap.Int("total", next.TotalReward))
	}
	if out.Resolved {
		c.resolveLocked()
	}
	c.mu.Unlock()

	c.publish(seq, next)
	return out
}

// Tick advances the countdown by one unit. It is what the clock calls.
func (c *Controller) Tick() {
	c.mu.Lock()
	if c.closed || c.state.Status.Terminal() {
		c.mu.Unlock()
		return
	}
	c.state = c.state.Tick()
	c.seq++
	seq := c.seq
	next := c.state
	if next.Status.Terminal() {
		c.resolveLocked()
	}
	c.mu.Unlock()

	c.publish(seq, next)
}

// Close tears the puzzle down from any status: timers stop, a pending
// payout is cancelled, and OnClose runs. Calling Close again does nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.releaseLocked()
	status := c.state.Status
	c.mu.Unlock()

	c.logger.Debug("breach closed", zap.Stringer("status", status))
	if c.cb.OnClose != nil {
		c.cb.OnClose()
	}
}

// resolveLocked runs on the transition to a terminal status.
func (c *Controller) resolveLocked() {
	c.stopTick()
	c.logger.Info("breach resolved",
		zap.Stringer("status", c.state.Status),
		zap.Int("total_reward", c.state.TotalReward),
		zap.Int("moves", c.state.Moves),
		zap.Int("time_remaining", c.state.TimeRemaining))
	if c.state.Status == StatusWon {
		c.stopPayout = c.clock.After(c.cfg.PayoutDelay, c.payout)
	}
}

func (c *Controller) releaseLocked() {
	c.stopTick()
	if c.stopPayout != nil {
		c.stopPayout()
	}
}

func (c *Controller) payout() {
	c.mu.Lock()
	if c.closed || c.paid || c.state.Status != StatusWon {
		c.mu.Unlock()
		return
	}
	c.paid = true
	total := c.state.TotalReward
	c.mu.Unlock()

	if c.cb.OnSuccess != nil {
		c.cb.OnSuccess(total)
	}
}

// publish hands s, the state numbered seq, to the notify hook unless a
// later state already went out.
func (c *Controller) publish(seq uint64, s State) {
	if c.notify == nil {
		return
	}
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	if seq <= c.published {
		return
	}
	c.published = seq
	c.notify(s)
}
