package tree

import (
	"github.com/pvieira/arxdigest/internal/arxiv"
	"github.com/pvieira/arxdigest/internal/digest"
)

type RowKind string

const (
	RowSection RowKind = "section"
	RowSubject RowKind = "subject"
	RowArticle RowKind = "article"
)

// Row is one rendered line of the paper tree. Section and subject rows carry
// their collapse keys; article rows carry the paper itself.
type Row struct {
	Kind      RowKind
	Label     string
	SectionID string
	SubjectID string
	Count     int
	Article   arxiv.Article
}

type BuildOptions struct {
	CollapsedSections map[string]bool
	CollapsedSubjects map[string]bool
}

// BuildRows flattens the grouped taxonomy into the visible row list,
// skipping the children of collapsed sections and subjects.
func BuildRows(groups []digest.SectionGroup, opts BuildOptions) []Row {
	rows := make([]Row, 0, 64)
	for _, section := range groups {
		rows = append(rows, Row{
			Kind:      RowSection,
			Label:     section.Label,
			SectionID: section.ID,
			Count:     section.Count,
		})
		if opts.CollapsedSections[section.ID] {
			continue
		}
		for _, subject := range section.Subjects {
			rows = append(rows, Row{
				Kind:      RowSubject,
				Label:     subject.Label,
				SectionID: section.ID,
				SubjectID: subject.ID,
				Count:     len(subject.Articles),
			})
			if opts.CollapsedSubjects[subject.ID] {
				continue
			}
			for _, article := range subject.Articles {
				rows = append(rows, Row{
					Kind:      RowArticle,
					SectionID: section.ID,
					SubjectID: subject.ID,
					Article:   article,
				})
			}
		}
	}
	return rows
}

// FlatRows renders a plain article list, used by the derived panes where the
// taxonomy does not apply.
func FlatRows(articles []arxiv.Article) []Row {
	rows := make([]Row, 0, len(articles))
	for _, article := range articles {
		rows = append(rows, Row{Kind: RowArticle, Article: article})
	}
	return rows
}

func FirstArticleRow(rows []Row) int {
	for i, row := range rows {
		if row.Kind == RowArticle {
			return i
		}
	}
	return 0
}

// RowIndexForSubject locates the subject header row, for jumping from a
// derived pane back into the taxonomy.
func RowIndexForSubject(rows []Row, subjectID string) int {
	for i, row := range rows {
		if row.Kind == RowSubject && row.SubjectID == subjectID {
			return i
		}
	}
	return -1
}

func RowIndexForArticle(rows []Row, id string) int {
	for i, row := range rows {
		if row.Kind == RowArticle && row.Article.ID == id {
			return i
		}
	}
	return -1
}

// SubjectIDForArticle finds the taxonomy bucket holding the paper.
func SubjectIDForArticle(groups []digest.SectionGroup, id string) (sectionID, subjectID string, ok bool) {
	for _, section := range groups {
		for _, subject := range section.Subjects {
			for _, article := range subject.Articles {
				if article.ID == id {
					return section.ID, subject.ID, true
				}
			}
		}
	}
	return "", "", false
}
