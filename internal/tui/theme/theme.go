package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title       lipgloss.Style
	ModePill    lipgloss.Style
	Section     lipgloss.Style
	Subject     lipgloss.Style
	Count       lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	StateLoad   lipgloss.Style
	ModalFrame  lipgloss.Style
	ModalTitle  lipgloss.Style
	InputPrompt lipgloss.Style

	TitlePlain    lipgloss.Style
	TitleSaved    lipgloss.Style
	TitleFavorite lipgloss.Style
	TitleBoth     lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:    lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Subject:     lipgloss.NewStyle().Foreground(cpTeal),
		Count:       lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		ActiveLine:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:   lipgloss.NewStyle().Foreground(cpPeach),
		ModalFrame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(cpMauve).Padding(0, 1),
		ModalTitle:  lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		InputPrompt: lipgloss.NewStyle().Foreground(cpLavender),

		TitlePlain: lipgloss.NewStyle().Foreground(cpText),
		TitleSaved: lipgloss.NewStyle().
			Italic(true).
			Foreground(cpLavender),
		TitleFavorite: lipgloss.NewStyle().Bold(true).Foreground(cpGreen),
		TitleBoth:     lipgloss.NewStyle().Bold(true).Italic(true).Foreground(cpRosewater),
	}
}

// StyleArticleTitle colors a paper title by its session state: saved to the
// reading list, written by a favorite author, both, or neither.
func (t Theme) StyleArticleTitle(saved, favorite bool, title string) string {
	if title == "" {
		return title
	}
	switch {
	case saved && favorite:
		return t.TitleBoth.Render(title)
	case favorite:
		return t.TitleFavorite.Render(title)
	case saved:
		return t.TitleSaved.Render(title)
	default:
		return t.TitlePlain.Render(title)
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
