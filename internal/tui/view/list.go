package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pvieira/arxdigest/internal/arxiv"
	"github.com/pvieira/arxdigest/internal/session"
	tuitheme "github.com/pvieira/arxdigest/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ArticleLineParams struct {
	Article  arxiv.Article
	Mode     session.DisplayMode
	Expanded bool
	Saved    bool
	Favorite bool
	Active   bool
	Indent   int
	Width    int
}

// RenderArticleLines renders one paper row. The title line always shows; the
// author line shows in authors and full modes; the abstract shows when the
// row is expanded, either by the full mode or per-paper.
func RenderArticleLines(p ArticleLineParams, th tuitheme.Theme) []string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	savedMarker := " "
	if p.Saved {
		savedMarker = "*"
	}

	indent := strings.Repeat(" ", p.Indent)
	prefix := fmt.Sprintf("%s%s%s ", indent, cursorMarker, savedMarker)
	idLabel := "[" + p.Article.ID + "]"

	available := p.Width - visibleLen(prefix) - 1 - visibleLen(idLabel)
	if available < 1 {
		available = 1
	}
	title := truncateRunes(strings.TrimSpace(p.Article.Title), available)
	styledTitle := th.StyleArticleTitle(p.Saved, p.Favorite, title)
	gap := p.Width - visibleLen(prefix) - visibleLen(title) - visibleLen(idLabel)
	if gap < 1 {
		gap = 1
	}

	lines := make([]string, 0, 4)
	lines = append(lines, th.RenderActiveLine(p.Active, prefix+styledTitle+strings.Repeat(" ", gap)+idLabel))

	bodyIndent := indent + "   "
	bodyWidth := p.Width - visibleLen(bodyIndent)
	if bodyWidth < 10 {
		bodyWidth = 10
	}

	if p.Mode != session.ModeTitle {
		authors := strings.Join(p.Article.Authors, ", ")
		if authors == "" {
			authors = "(no authors listed)"
		}
		for _, line := range WrapText("by "+authors, bodyWidth) {
			lines = append(lines, bodyIndent+th.MetaValue.Render(line))
		}
	}

	showAbstract := p.Mode == session.ModeFull || p.Expanded
	if showAbstract && strings.TrimSpace(p.Article.Abstract) != "" {
		for _, line := range WrapText(FlattenMarkup(p.Article.Abstract), bodyWidth) {
			lines = append(lines, bodyIndent+line)
		}
	}
	return lines
}

func RenderSectionLine(label string, count, width int, collapsed, active bool, th tuitheme.Theme) string {
	prefix := "▾ "
	if collapsed {
		prefix = "▸ "
	}
	left := th.Section.Render(prefix + label)
	return renderCountedLine(left, count, width, active, th)
}

func RenderSubjectLine(label string, count, width int, collapsed, active bool, th tuitheme.Theme) string {
	prefix := "  ▾ "
	if collapsed {
		prefix = "  ▸ "
	}
	left := th.Subject.Render(prefix + label)
	return renderCountedLine(left, count, width, active, th)
}

func renderCountedLine(left string, count, width int, active bool, th tuitheme.Theme) string {
	if count <= 0 {
		return th.RenderActiveLine(active, left)
	}
	right := th.Count.Render(fmt.Sprintf("%d", count))
	available := width - visibleLen(right) - 1
	if available < 1 {
		available = 1
	}
	left = truncateRunes(left, available)
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(active, left+strings.Repeat(" ", gap)+right)
}

// WrapText greedily wraps words to the width. Words longer than the width
// end up on their own line untruncated.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, 8)
	current := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
