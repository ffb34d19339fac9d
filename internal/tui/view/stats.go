package view

import (
	"fmt"
	"sort"

	"github.com/pvieira/arxdigest/internal/arxiv"
	tuitheme "github.com/pvieira/arxdigest/internal/tui/theme"
)

// StatsLines renders the statistics pane body for one source snapshot.
func StatsLines(label, date string, stats arxiv.Stats, th tuitheme.Theme) []string {
	lines := make([]string, 0, 24)
	lines = append(lines, th.Section.Render(fmt.Sprintf("%s, %s", label, date)))
	lines = append(lines, "")
	lines = append(lines, metaLine("Papers", fmt.Sprintf("%d", stats.Total), th))
	lines = append(lines, metaLine("Unique authors", fmt.Sprintf("%d", stats.UniqueAuthors), th))
	lines = append(lines, metaLine("Avg authors per paper", fmt.Sprintf("%.1f", stats.AverageAuthors), th))

	if len(stats.SectionCounts) > 0 {
		lines = append(lines, "")
		lines = append(lines, th.Section.Render("By section"))
		sections := make([]string, 0, len(stats.SectionCounts))
		for section := range stats.SectionCounts {
			sections = append(sections, section)
		}
		sort.Strings(sections)
		for _, section := range sections {
			lines = append(lines, metaLine("  "+section, fmt.Sprintf("%d", stats.SectionCounts[section]), th))
		}
	}

	if len(stats.TopAuthors) > 0 {
		lines = append(lines, "")
		lines = append(lines, th.Section.Render("Most prolific authors"))
		for _, ac := range stats.TopAuthors {
			lines = append(lines, metaLine("  "+ac.Author, fmt.Sprintf("%d", ac.Count), th))
		}
	}

	if len(stats.TopPhrases) > 0 {
		lines = append(lines, "")
		lines = append(lines, th.Section.Render("Trending topics"))
		for _, pc := range stats.TopPhrases {
			lines = append(lines, metaLine("  "+pc.Phrase, fmt.Sprintf("%d", pc.Count), th))
		}
	}
	return lines
}

func metaLine(label, value string, th tuitheme.Theme) string {
	return th.MetaLabel.Render(label) + " " + th.MetaValue.Render(value)
}
