// Package welcome plays the boot sequence shown at launch.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	lineEvery    = 300 * time.Millisecond
	totalDur     = 2400 * time.Millisecond
)

// bootLog is revealed one line per lineEvery.
var bootLog = []string{
	"> POWER ON SELF TEST ......... OK",
	"> MOUNTING STUDY CORE ........ OK",
	"> LINKING QUIZ GENERATOR ..... OK",
	"> ARMING BREACH PROTOCOL ..... OK",
	"> SHUFFLING 52 CARDS ......... OK",
}

var cursorFrames = []string{"█", " "}

type tickMsg time.Time

// WelcomeScreen shows the boot log before transitioning to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the boot log.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// visibleLines is how much of the boot log has been printed.
func (w *WelcomeScreen) visibleLines() int {
	return min(int(w.elapsed/lineEvery), len(bootLog))
}

func (w *WelcomeScreen) View(width, height int) string {
	logStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan)
	okStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	var lines []string
	for _, l := range bootLog[:w.visibleLines()] {
		head, ok := strings.CutSuffix(l, "OK")
		if ok {
			lines = append(lines, logStyle.Render(head)+okStyle.Render("OK"))
		} else {
			lines = append(lines, logStyle.Render(l))
		}
	}
	if w.elapsed < totalDur {
		lines = append(lines, logStyle.Render("> "+cursorFrames[w.tickCount%len(cursorFrames)]))
	}

	sections := []string{strings.Join(lines, "\n")}

	if w.elapsed >= totalDur {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Turn your notes into quizzes. Spend the credits.")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, RenderBanner(width), tagline, hint)
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
