package view

import (
	"strings"
	"testing"
	"time"

	"github.com/pvieira/arxdigest/internal/arxiv"
	"github.com/pvieira/arxdigest/internal/session"
	tuitheme "github.com/pvieira/arxdigest/internal/tui/theme"
)

func TestStatsLines(t *testing.T) {
	th := tuitheme.Default()
	stats := arxiv.Stats{
		Total:          12,
		UniqueAuthors:  30,
		AverageAuthors: 2.5,
		SectionCounts:  map[string]int{"New submissions": 8, "Cross submissions": 4},
		TopAuthors:     []arxiv.AuthorCount{{Author: "Ada Lovelace", Count: 3}},
		TopPhrases:     []arxiv.PhraseCount{{Phrase: "neural rendering", Count: 5}},
	}
	joined := stripANSI(strings.Join(StatsLines("Computer Vision", "2025-08-04", stats, th), "\n"))
	for _, want := range []string{
		"Computer Vision, 2025-08-04",
		"Papers 12",
		"Unique authors 30",
		"Avg authors per paper 2.5",
		"Cross submissions 4",
		"Ada Lovelace 3",
		"neural rendering 5",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("stats missing %q:\n%s", want, joined)
		}
	}
}

func TestStatsLinesSectionsSorted(t *testing.T) {
	th := tuitheme.Default()
	stats := arxiv.Stats{
		SectionCounts: map[string]int{"Replacements": 1, "Cross submissions": 1},
	}
	joined := stripANSI(strings.Join(StatsLines("CV", "2025-08-04", stats, th), "\n"))
	if strings.Index(joined, "Cross submissions") > strings.Index(joined, "Replacements") {
		t.Fatalf("sections out of order:\n%s", joined)
	}
}

func TestRenderReadingLines(t *testing.T) {
	th := tuitheme.Default()
	entry := session.ReadingEntry{
		ID:      "2508.00001",
		Title:   "Sparse Voxel Rendering",
		Source:  "cs.CV",
		Note:    "read before friday",
		AddedAt: time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC).Unix(),
	}
	lines := RenderReadingLines(ReadingLineParams{Entry: entry, Width: 70}, th)
	if len(lines) < 3 {
		t.Fatalf("expected title, meta, and note lines, got %v", lines)
	}
	title := stripANSI(lines[0])
	if !strings.Contains(title, "Sparse Voxel Rendering") || !strings.HasSuffix(title, "[2025-08-05]") {
		t.Fatalf("title line = %q", title)
	}
	meta := stripANSI(lines[1])
	if !strings.Contains(meta, "2508.00001") || !strings.Contains(meta, "cs.CV") {
		t.Fatalf("meta line = %q", meta)
	}
	if !strings.Contains(stripANSI(lines[2]), "note: read before friday") {
		t.Fatalf("note line = %q", lines[2])
	}
}

func TestRenderReadingLinesWithoutNote(t *testing.T) {
	th := tuitheme.Default()
	lines := RenderReadingLines(ReadingLineParams{
		Entry: session.ReadingEntry{ID: "x", AddedAt: 1},
		Width: 40,
	}, th)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines without note, got %v", lines)
	}
	if !strings.Contains(stripANSI(lines[0]), "x") {
		t.Fatalf("title fallback to id missing: %q", lines[0])
	}
}
