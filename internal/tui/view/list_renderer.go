package view

import (
	"strings"

	tuitree "github.com/pvieira/arxdigest/internal/tui/tree"
)

type ListRenderInput struct {
	Rows              []tuitree.Row
	Start             int
	End               int
	TreeCursor        int
	CollapsedSections map[string]bool
	CollapsedSubjects map[string]bool

	RenderSectionLine  func(row tuitree.Row, collapsed, active bool) string
	RenderSubjectLine  func(row tuitree.Row, collapsed, active bool) string
	RenderArticleLines func(row tuitree.Row, active bool) []string
}

func RenderListBody(in ListRenderInput) string {
	if len(in.Rows) == 0 || in.Start >= in.End || in.Start < 0 {
		return ""
	}
	var b strings.Builder
	for i := in.Start; i < in.End; i++ {
		row := in.Rows[i]
		active := i == in.TreeCursor
		switch row.Kind {
		case tuitree.RowSection:
			b.WriteString(in.RenderSectionLine(row, in.CollapsedSections[row.SectionID], active))
			b.WriteString("\n")
		case tuitree.RowSubject:
			b.WriteString(in.RenderSubjectLine(row, in.CollapsedSubjects[row.SubjectID], active))
			b.WriteString("\n")
		case tuitree.RowArticle:
			for _, line := range in.RenderArticleLines(row, active) {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
