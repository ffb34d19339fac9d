package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/pvieira/arxdigest/internal/session"
	tuitheme "github.com/pvieira/arxdigest/internal/tui/theme"
)

type ReadingLineParams struct {
	Entry  session.ReadingEntry
	Active bool
	Width  int
	Now    time.Time
}

// RenderReadingLines renders one saved paper with its source tag, saved-at
// date, and note when present.
func RenderReadingLines(p ReadingLineParams, th tuitheme.Theme) []string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := fmt.Sprintf(" %s  ", cursorMarker)

	added := time.Unix(p.Entry.AddedAt, 0).UTC().Format(time.DateOnly)
	dateLabel := "[" + added + "]"

	available := p.Width - visibleLen(prefix) - 1 - visibleLen(dateLabel)
	if available < 1 {
		available = 1
	}
	title := strings.TrimSpace(p.Entry.Title)
	if title == "" {
		title = p.Entry.ID
	}
	title = truncateRunes(title, available)
	gap := p.Width - visibleLen(prefix) - visibleLen(title) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}

	lines := make([]string, 0, 3)
	lines = append(lines, th.RenderActiveLine(p.Active, prefix+th.TitleSaved.Render(title)+strings.Repeat(" ", gap)+dateLabel))

	meta := p.Entry.ID
	if p.Entry.Source != "" {
		meta += " · " + p.Entry.Source
	}
	lines = append(lines, "     "+th.MetaLabel.Render(meta))

	if note := strings.TrimSpace(p.Entry.Note); note != "" {
		bodyWidth := p.Width - 5
		if bodyWidth < 10 {
			bodyWidth = 10
		}
		for _, line := range WrapText("note: "+note, bodyWidth) {
			lines = append(lines, "     "+th.MetaValue.Render(line))
		}
	}
	return lines
}
