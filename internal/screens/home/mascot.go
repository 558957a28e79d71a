package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: a fat balance
	MascotAlert                            // Orange, exclamation: no LLM configured
)

// celebrateAt is the balance at which the mascot starts celebrating.
const celebrateAt = 200

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ A?✓ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ A?✓ │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ A?✓ │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

func mascotFor(credits int, llmReady bool) MascotVariant {
	switch {
	case !llmReady:
		return MascotAlert
	case credits >= celebrateAt:
		return MascotCelebrating
	}
	return MascotIdle
}
