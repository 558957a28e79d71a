// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	bp "github.com/abhisek/unitutor/internal/breach"
	"github.com/abhisek/unitutor/internal/identity"
	"github.com/abhisek/unitutor/internal/quiz"
	"github.com/abhisek/unitutor/internal/quizgen"
	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	blackjackscreen "github.com/abhisek/unitutor/internal/screens/blackjack"
	breachscreen "github.com/abhisek/unitutor/internal/screens/breach"
	"github.com/abhisek/unitutor/internal/screens/history"
	"github.com/abhisek/unitutor/internal/screens/home"
	"github.com/abhisek/unitutor/internal/screens/profile"
	quizscreen "github.com/abhisek/unitutor/internal/screens/quiz"
	"github.com/abhisek/unitutor/internal/screens/upload"
	"github.com/abhisek/unitutor/internal/screens/welcome"
	"github.com/abhisek/unitutor/internal/store"
	"github.com/abhisek/unitutor/internal/ui/layout"
)

// Options holds the dependencies the screens are built from.
type Options struct {
	EventRepo store.EventRepo
	Identity  *identity.Service
	Generator quizgen.Generator // nil without an LLM provider
	Breach    bp.Config
	Logger    *zap.Logger

	// Seed makes puzzles and shuffles reproducible when non-zero.
	Seed uint64

	// SkipWelcome starts on the home screen.
	SkipWelcome bool

	// StartBreach opens a breach puzzle on top of the home screen.
	StartBreach bool
}

// launcher builds screens on demand for the home menu.
type launcher struct {
	opts Options
	seq  uint64
}

var _ home.Launcher = (*launcher)(nil)

// rng returns a fresh source for one screen. Screens never share one.
func (l *launcher) rng() *rand.Rand {
	l.seq++
	if l.opts.Seed != 0 {
		return rand.New(rand.NewPCG(l.opts.Seed, l.seq))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (l *launcher) NewQuiz() screen.Screen {
	return upload.New(l.opts.Generator, l.openQuiz, l.opts.Logger)
}

func (l *launcher) openQuiz(q *quiz.Quiz) screen.Screen {
	bonus := func() screen.Screen {
		return breachscreen.NewBonus(l.opts.Breach, l.rng(), l.opts.EventRepo, l.opts.Identity, l.opts.Logger)
	}
	return quizscreen.New(q, l.opts.EventRepo, l.opts.Identity, bonus)
}

func (l *launcher) Breach() screen.Screen {
	return breachscreen.New(l.opts.Breach, l.rng(), l.opts.EventRepo, l.opts.Identity, l.opts.Logger)
}

func (l *launcher) Blackjack() screen.Screen {
	return blackjackscreen.New(l.rng(), l.opts.EventRepo, l.opts.Identity, l.opts.Logger)
}

func (l *launcher) Profile() screen.Screen {
	return profile.New(l.opts.Identity, l.opts.EventRepo)
}

func (l *launcher) Logs() screen.Screen {
	return history.New(l.opts.EventRepo)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	launch  *launcher
	start   screen.Screen
	user    string
	credits int
	width   int
	height  int
}

// newAppModel creates a new AppModel starting at the boot screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	l := &launcher{opts: opts}
	homeFactory := func() screen.Screen {
		return home.New(l, opts.Identity, opts.Generator != nil)
	}

	var first, start screen.Screen
	switch {
	case opts.StartBreach:
		first, start = homeFactory(), l.Breach()
	case opts.SkipWelcome:
		first = homeFactory()
	default:
		first = welcome.New(homeFactory)
	}
	return AppModel{
		router: router.New(first),
		launch: l,
		start:  start,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.start == nil {
		return cmd
	}
	start := m.start
	return tea.Batch(cmd, func() tea.Msg { return router.PushScreenMsg{Screen: start} })
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ProfileUpdatedMsg:
		if msg.Profile != nil {
			m.user = msg.Profile.ID
			m.credits = msg.Profile.TotalScore
		}
		return m, m.router.Broadcast(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.Close()
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.user, m.credits, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and releases every screen on exit.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.router.Close()

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
