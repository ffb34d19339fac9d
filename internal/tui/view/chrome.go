package view

import (
	"fmt"
	"strings"

	"github.com/pvieira/arxdigest/internal/session"
	tuitheme "github.com/pvieira/arxdigest/internal/tui/theme"
)

// PaneName is the footer label for each tab.
var PaneNames = []string{"statistics", "papers", "favorites", "keywords", "read list"}

func Toolbar(pane string, modalOpen bool) string {
	if modalOpen {
		return "j/k scroll | s save | n note | o open | y copy | esc close"
	}
	switch pane {
	case "papers":
		return "j/k move | tab pane | 1-5 jump | enter abstract | space fold | x expand | m mode | s save | S source | D date | e prefs | q quit"
	case "read list":
		return "j/k move | tab pane | enter abstract | n note | d remove | o open | q quit"
	default:
		return "j/k move | tab pane | 1-5 jump | enter abstract | c category | m mode | s save | e prefs | q quit"
	}
}

func Header(title, sourceLabel, sourceDate string, mode session.DisplayMode, th tuitheme.Theme) string {
	pill := th.ModePill.Render(string(mode))
	source := th.MetaLabel.Render("source") + " " + th.MetaValue.Render(sourceLabel)
	if sourceDate != "" {
		source += " " + th.MetaLabel.Render("(") + th.MetaValue.Render(sourceDate) + th.MetaLabel.Render(")")
	}
	return th.Title.Render(title) + "  " + source + "  " + pill
}

func Footer(pane string, paneIndex, shown int, th tuitheme.Theme) string {
	tabs := make([]string, 0, len(PaneNames))
	for i, name := range PaneNames {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if i == paneIndex {
			label = th.Count.Render(label)
		} else {
			label = th.MetaLabel.Render(label)
		}
		tabs = append(tabs, label)
	}
	parts := []string{
		strings.Join(tabs, " "),
		th.MetaValue.Render(fmt.Sprintf("%d shown", shown)),
	}
	return strings.Join(parts, " • ")
}

func Message(loading, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
