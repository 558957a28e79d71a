package breach

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	bp "github.com/abhisek/unitutor/internal/breach"
	"github.com/abhisek/unitutor/internal/identity"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/store"
)

// manualClock fires timers only when the test says so.
type manualClock struct {
	mu    sync.Mutex
	every []func()
	after []func()
}

func (c *manualClock) Every(_ time.Duration, f func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.every = append(c.every, f)
	return func() {}
}

func (c *manualClock) After(_ time.Duration, f func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.after = append(c.after, f)
	return func() {}
}

func (c *manualClock) tick() {
	c.mu.Lock()
	fs := append([]func(){}, c.every...)
	c.mu.Unlock()
	for _, f := range fs {
		f()
	}
}

func (c *manualClock) fireAfter() {
	c.mu.Lock()
	fs := c.after
	c.after = nil
	c.mu.Unlock()
	for _, f := range fs {
		f()
	}
}

func init() {
	listen = func(*subscription) tea.Cmd { return nil }
}

type fixture struct {
	screen *BreachScreen
	clock  *manualClock
	store  *store.Store
	ident  *identity.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:breachscreen_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	clock := &manualClock{}
	ident := identity.New(st.ProfileRepo())
	s := New(bp.DefaultConfig(), rand.New(rand.NewPCG(42, 7)), st.EventRepo(), ident, nil, bp.WithClock(clock))
	t.Cleanup(s.Close)
	return &fixture{screen: s, clock: clock, store: st, ident: ident}
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// drain feeds every queued controller signal back into the screen and
// runs the commands that come out, returning any non-signal messages.
func (f *fixture) drain(t *testing.T) []tea.Msg {
	t.Helper()
	var out []tea.Msg
	for {
		msg, ok := f.screen.sub.poll()
		if !ok {
			return out
		}
		_, cmd := f.screen.Update(msg)
		out = append(out, f.run(t, cmd)...)
	}
}

// run executes cmd and feeds screen-internal results back in, returning
// the messages meant for the rest of the app.
func (f *fixture) run(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, f.run(t, c)...)
		}
		return out
	case recordedMsg:
		if msg.err != nil {
			t.Fatalf("record: %v", msg.err)
		}
		_, next := f.screen.Update(msg)
		return f.run(t, next)
	default:
		return []tea.Msg{msg}
	}
}

// moveTo steers the cursor to p with arrow keys.
func (f *fixture) moveTo(t *testing.T, p bp.Position) {
	t.Helper()
	for range 2 * f.screen.state.Grid.Size() {
		if f.screen.cursor == p {
			return
		}
		var k rune
		if f.screen.state.Constraint.Axis() == bp.AxisRow {
			k = tea.KeyRight
		} else {
			k = tea.KeyDown
		}
		f.screen.Update(press(k))
	}
	if f.screen.cursor != p {
		t.Fatalf("cursor stuck at %+v, want %+v", f.screen.cursor, p)
	}
}

// solve finds a winning sequence of picks by depth-first search.
func solve(st bp.State) []bp.Position {
	if st.Status == bp.StatusWon {
		return []bp.Position{}
	}
	if st.Status.Terminal() {
		return nil
	}
	for _, p := range st.LegalMoves() {
		next, _ := st.Apply(bp.Move(p))
		if rest := solve(next); rest != nil {
			return append([]bp.Position{p}, rest...)
		}
	}
	return nil
}

func TestBreachScreen_Init(t *testing.T) {
	f := newFixture(t)
	f.screen.Init()
	if f.screen.ctrl == nil || f.screen.sub == nil {
		t.Fatal("controller not started")
	}
	if f.screen.Title() != "Breach Protocol" {
		t.Errorf("Title = %q", f.screen.Title())
	}
	if f.screen.HandlesBack() {
		t.Error("active puzzle should allow leaving")
	}
	if view := f.screen.View(100, 30); !strings.Contains(view, "CODE MATRIX") {
		t.Error("view missing grid section")
	}
}

func TestBreachScreen_CursorStaysOnActiveLine(t *testing.T) {
	f := newFixture(t)
	f.screen.Init()

	f.screen.Update(press(tea.KeyDown))
	if f.screen.cursor.Row != 0 {
		t.Fatalf("vertical move on a row constraint changed row to %d", f.screen.cursor.Row)
	}
	f.screen.Update(press(tea.KeyLeft))
	if f.screen.cursor.Col != f.screen.state.Grid.Size()-1 {
		t.Fatalf("left from column 0 should wrap, got %d", f.screen.cursor.Col)
	}

	f.screen.Update(press(tea.KeyEnter))
	if f.screen.state.Moves != 1 {
		t.Fatalf("moves = %d, want 1", f.screen.state.Moves)
	}
	if f.screen.state.Constraint.Axis() != bp.AxisColumn {
		t.Fatal("expected column constraint after the first pick")
	}
	f.screen.Update(press(tea.KeyRight))
	if f.screen.cursor.Col != f.screen.state.Constraint.Index() {
		t.Errorf("horizontal move left the locked column")
	}
	f.screen.Update(press(tea.KeyDown))
	if f.screen.cursor.Row != 1 {
		t.Errorf("row = %d after moving down", f.screen.cursor.Row)
	}
}

func TestBreachScreen_WinPaysOnceAfterDelay(t *testing.T) {
	f := newFixture(t)
	f.screen.Init()
	ctx := context.Background()

	before, err := f.ident.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}

	path := solve(f.screen.state)
	if path == nil {
		t.Fatal("generated puzzle has no winning line")
	}
	for _, p := range path {
		f.moveTo(t, p)
		f.screen.Update(press(tea.KeyEnter))
	}
	f.drain(t)

	if f.screen.state.Status != bp.StatusWon {
		t.Fatalf("status = %v, want won", f.screen.state.Status)
	}
	if !f.screen.HandlesBack() {
		t.Error("esc must be held while the payout is pending")
	}
	id := f.screen.ctrl.ID()
	f.screen.Update(keyPress('r'))
	if f.screen.ctrl.ID() != id {
		t.Error("restart allowed during payout")
	}

	f.clock.fireAfter()
	msgs := f.drain(t)

	if !f.screen.paid || f.screen.HandlesBack() {
		t.Fatal("payout did not release the screen")
	}
	var updated *store.Profile
	for _, m := range msgs {
		if pu, ok := m.(screen.ProfileUpdatedMsg); ok {
			updated = pu.Profile
		}
	}
	if updated == nil {
		t.Fatal("expected a profile update after payout")
	}
	reward := f.screen.state.TotalReward
	if updated.TotalScore != before.TotalScore+reward {
		t.Errorf("balance = %d, want %d", updated.TotalScore, before.TotalScore+reward)
	}

	stats, err := f.store.EventRepo().ProfileStats(ctx, before.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Breaches != 1 || stats.BreachesWon != 1 || stats.BreachCredits != reward {
		t.Errorf("stats = %+v, want one won breach worth %d", stats, reward)
	}

	f.clock.fireAfter()
	f.drain(t)
	stats, _ = f.store.EventRepo().ProfileStats(ctx, before.ID)
	if stats.Breaches != 1 {
		t.Errorf("breach recorded %d times", stats.Breaches)
	}
}

func TestBreachScreen_TimeoutRecordsLoss(t *testing.T) {
	f := newFixture(t)
	f.screen.Init()
	ctx := context.Background()

	for range bp.DefaultConfig().TimeLimit {
		f.clock.tick()
		f.drain(t)
	}

	if f.screen.state.Status != bp.StatusLost {
		t.Fatalf("status = %v, want lost", f.screen.state.Status)
	}
	if f.screen.HandlesBack() {
		t.Error("lost puzzle should allow leaving")
	}
	if !strings.Contains(f.screen.View(100, 30), "TIME EXPIRED") {
		t.Error("view missing timeout banner")
	}

	p, err := f.ident.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}
	stats, err := f.store.EventRepo().ProfileStats(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Breaches != 1 || stats.BreachesWon != 0 {
		t.Errorf("stats = %+v, want one lost breach", stats)
	}
}

func TestBreachScreen_RestartAfterLoss(t *testing.T) {
	f := newFixture(t)
	f.screen.Init()
	first := f.screen.ctrl.ID()
	oldSub := f.screen.sub

	for range bp.DefaultConfig().TimeLimit {
		f.clock.tick()
	}
	f.drain(t)

	f.screen.Update(keyPress('r'))
	if f.screen.ctrl.ID() == first {
		t.Fatal("restart kept the old controller")
	}
	if f.screen.state.Status != bp.StatusActive || f.screen.recorded {
		t.Error("restart did not reset the run")
	}

	// Signals from the old puzzle are ignored.
	if f.screen.sub == oldSub {
		t.Fatal("restart kept the old subscription")
	}
	f.screen.Update(stateChangedMsg{src: oldSub})
	if f.screen.recorded {
		t.Error("stale signal was processed")
	}
}

func TestBreachScreen_WinWithUnreadSignals(t *testing.T) {
	f := newFixture(t)
	f.screen.Init()
	ctx := context.Background()

	before, err := f.ident.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// Leave a backlog of countdown signals unread before resolving.
	for range 20 {
		f.clock.tick()
	}
	path := solve(f.screen.ctrl.State())
	if path == nil {
		t.Fatal("generated puzzle has no winning line")
	}
	last := len(path) - 1
	for _, p := range path[:last] {
		f.moveTo(t, p)
		f.screen.Update(press(tea.KeyEnter))
	}
	f.moveTo(t, path[last])

	// The winning pick publishes a terminal state with nobody reading.
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.screen.Update(press(tea.KeyEnter))
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Update blocked on an unread subscription")
	}

	f.drain(t)
	if f.screen.state.Status != bp.StatusWon {
		t.Fatalf("status = %v, want won", f.screen.state.Status)
	}

	f.clock.fireAfter()
	msgs := f.drain(t)
	if !f.screen.paid {
		t.Fatal("payout was not delivered")
	}
	var updated *store.Profile
	for _, m := range msgs {
		if pu, ok := m.(screen.ProfileUpdatedMsg); ok {
			updated = pu.Profile
		}
	}
	if updated == nil {
		t.Fatal("expected a profile update after payout")
	}
	if want := before.TotalScore + f.screen.state.TotalReward; updated.TotalScore != want {
		t.Errorf("balance = %d, want %d", updated.TotalScore, want)
	}
}

func TestSubscription_NeverBlocks(t *testing.T) {
	sub := newSubscription()
	for range 100 {
		sub.notify()
	}
	sub.pay(30)
	sub.pay(30)

	msg, ok := sub.poll()
	if pm, isPay := msg.(payoutMsg); !ok || !isPay || pm.reward != 30 || pm.src != sub {
		t.Fatalf("first signal = %#v, want payout of 30", msg)
	}
	if msg, ok = sub.poll(); !ok {
		t.Fatal("state change was lost")
	} else if _, isState := msg.(stateChangedMsg); !isState {
		t.Fatalf("second signal = %#v, want state change", msg)
	}
	if _, ok = sub.poll(); ok {
		t.Error("state changes were not coalesced")
	}

	got := make(chan tea.Msg, 1)
	go func() { got <- sub.wait() }()
	sub.close()
	sub.close()
	select {
	case msg := <-got:
		if _, isClosed := msg.(closedMsg); !isClosed {
			t.Errorf("wait after close = %#v, want closedMsg", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("close did not release a waiting listener")
	}
}

func TestBreachScreen_CloseStopsController(t *testing.T) {
	f := newFixture(t)
	f.screen.Init()

	f.screen.Close()
	f.clock.tick()

	if f.screen.ctrl.State().TimeRemaining != bp.DefaultConfig().TimeLimit {
		t.Error("closed controller kept counting down")
	}
}

func TestBreachScreen_Bonus(t *testing.T) {
	s := NewBonus(bp.DefaultConfig(), rand.New(rand.NewPCG(1, 1)), nil, nil, nil, bp.WithClock(&manualClock{}))
	defer s.Close()
	s.Init()
	if s.Title() != "Bonus Breach" {
		t.Errorf("Title = %q", s.Title())
	}
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
