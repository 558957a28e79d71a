package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/ui/theme"
)

const bannerArt = `
██╗   ██╗███╗   ██╗██╗████████╗██╗   ██╗████████╗ ██████╗ ██████╗
██║   ██║████╗  ██║██║╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
██║   ██║██╔██╗ ██║██║   ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
██║   ██║██║╚██╗██║██║   ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗
╚██████╔╝██║ ╚████║██║   ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
 ╚═════╝ ╚═╝  ╚═══╝╚═╝   ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "U N I T U T O R"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 66

// RenderBanner returns the UNITUTOR banner styled in the primary color,
// falling back to spaced letters on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
