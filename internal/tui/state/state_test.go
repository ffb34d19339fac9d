package state

import (
	"reflect"
	"testing"

	"github.com/pvieira/arxdigest/internal/arxiv"
	tuitree "github.com/pvieira/arxdigest/internal/tui/tree"
)

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, false); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(12, false); got != 6 {
		t.Fatalf("expected step 6, got %d", got)
	}
	if got := PageStep(12, true); got != 4 {
		t.Fatalf("expected step 4 with status, got %d", got)
	}
}

func TestCenteredWindowAndVisibleCounts(t *testing.T) {
	rows := []tuitree.Row{
		{Kind: tuitree.RowSection},
		{Kind: tuitree.RowArticle, Article: arxiv.Article{ID: "a"}},
		{Kind: tuitree.RowArticle, Article: arxiv.Article{ID: "b"}},
		{Kind: tuitree.RowSubject},
		{Kind: tuitree.RowArticle, Article: arxiv.Article{ID: "c"}},
	}
	start, end := CenteredWindow(len(rows), 3, 3)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	if got := ArticleRowsBefore(rows, start); got != 1 {
		t.Fatalf("expected 1 article row before start, got %d", got)
	}
	visible := VisibleArticleIDs(rows)
	if !reflect.DeepEqual(visible, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected visible article ids: %v", visible)
	}
}

func TestNearestArticleRow(t *testing.T) {
	rows := []tuitree.Row{
		{Kind: tuitree.RowSection},
		{Kind: tuitree.RowSubject},
		{Kind: tuitree.RowArticle, Article: arxiv.Article{ID: "a"}},
	}
	if got := NearestArticleRow(rows, 0); got != 2 {
		t.Fatalf("expected forward scan to 2, got %d", got)
	}

	rows = []tuitree.Row{
		{Kind: tuitree.RowArticle, Article: arxiv.Article{ID: "a"}},
		{Kind: tuitree.RowSection},
	}
	if got := NearestArticleRow(rows, 1); got != 0 {
		t.Fatalf("expected backward scan to 0, got %d", got)
	}

	if got := NearestArticleRow([]tuitree.Row{{Kind: tuitree.RowSection}}, 0); got != -1 {
		t.Fatalf("expected -1 without articles, got %d", got)
	}
	if got := NearestArticleRow(nil, 0); got != -1 {
		t.Fatalf("expected -1 for empty rows, got %d", got)
	}
}
