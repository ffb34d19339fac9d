package state

import (
	tuitree "github.com/pvieira/arxdigest/internal/tui/tree"
)

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

func ArticleRowsBefore(rows []tuitree.Row, end int) int {
	if end <= 0 || len(rows) == 0 {
		return 0
	}
	if end > len(rows) {
		end = len(rows)
	}
	count := 0
	for i := 0; i < end; i++ {
		if rows[i].Kind == tuitree.RowArticle {
			count++
		}
	}
	return count
}

func VisibleArticleIDs(rows []tuitree.Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Kind == tuitree.RowArticle {
			out = append(out, row.Article.ID)
		}
	}
	return out
}

// NearestArticleRow resolves the cursor to an article row, scanning forward
// first and then backward, for actions that only make sense on a paper.
func NearestArticleRow(rows []tuitree.Row, cursor int) int {
	if len(rows) == 0 {
		return -1
	}
	cursor = ClampCursor(cursor, len(rows))
	if rows[cursor].Kind == tuitree.RowArticle {
		return cursor
	}
	for i := cursor + 1; i < len(rows); i++ {
		if rows[i].Kind == tuitree.RowArticle {
			return i
		}
	}
	for i := cursor - 1; i >= 0; i-- {
		if rows[i].Kind == tuitree.RowArticle {
			return i
		}
	}
	return -1
}
