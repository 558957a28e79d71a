package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestBootLogReveal(t *testing.T) {
	w, _ := newTestWelcome()

	if w.visibleLines() != 0 {
		t.Fatalf("visible lines at start = %d", w.visibleLines())
	}
	if strings.Contains(w.View(80, 24), "press any key") {
		t.Error("hint should not be visible at start")
	}

	sendTicks(w, 6)
	if got := w.visibleLines(); got != 2 {
		t.Errorf("visible lines after 600ms = %d, want 2", got)
	}
	if !strings.Contains(w.View(80, 24), "MOUNTING STUDY CORE") {
		t.Error("second boot line should be printed")
	}

	sendTicks(w, 30)
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want capped at %v", w.elapsed, totalDur)
	}
	view := w.View(80, 24)
	if !strings.Contains(view, "press any key") {
		t.Error("hint should be visible once the boot log completes")
	}
	if !strings.Contains(view, "██╗") {
		t.Error("full banner should render at width 80")
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(40); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner = %q", got)
	}
}

func TestKeypressSkipsToHome(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if cmd := sendTicks(w, 1); cmd != nil {
		t.Error("ticks should stop after the transition")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
