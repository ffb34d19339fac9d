package session

import (
	"reflect"
	"testing"
	"time"
)

func TestSplitList_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{name: "nil", raw: nil, want: nil},
		{name: "list", raw: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "newline string", raw: "a\nb", want: []string{"a", "b"}},
		{name: "comma string", raw: "a, b,c", want: []string{"a", " b", "c"}},
		{name: "mixed any list", raw: []any{"a", 7, "b"}, want: []string{"a", "b"}},
		{name: "unsupported", raw: 42, want: nil},
	}
	for _, tt := range tests {
		got := SplitList(tt.raw)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: got %v want %v", tt.name, got, tt.want)
		}
	}
}

func TestNormalizePreferences_TrimsDedupesKeepsOrder(t *testing.T) {
	prefs := NormalizePreferences("  Jitendra Malik \nmalik\n\nKaiming He", []string{"Diffusion", " diffusion ", "", "nerf"})
	wantAuthors := []string{"Jitendra Malik", "malik", "Kaiming He"}
	if !reflect.DeepEqual(prefs.FavoriteAuthors, wantAuthors) {
		t.Fatalf("unexpected authors: %v", prefs.FavoriteAuthors)
	}
	wantKeywords := []string{"Diffusion", "nerf"}
	if !reflect.DeepEqual(prefs.Keywords, wantKeywords) {
		t.Fatalf("unexpected keywords: %v", prefs.Keywords)
	}
}

func TestNormalizePreferences_Idempotent(t *testing.T) {
	inputs := []any{
		"a, b\nc",
		[]string{" x ", "X", ""},
		nil,
		12.5,
	}
	for _, raw := range inputs {
		once := NormalizePreferences(raw, raw)
		twice := NormalizePreferences(once.FavoriteAuthors, once.Keywords)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("normalization not idempotent for %v: %v vs %v", raw, once, twice)
		}
	}
}

func TestNormalizeReadingEntry_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, ok := NormalizeReadingEntry(ReadingEntry{ID: "   "}, now); ok {
		t.Fatal("expected entry without usable id to be dropped")
	}

	entry, ok := NormalizeReadingEntry(ReadingEntry{ID: "2401.0001"}, now)
	if !ok {
		t.Fatal("expected entry to survive")
	}
	if entry.Title != "2401.0001" {
		t.Fatalf("expected title fallback to id, got %q", entry.Title)
	}
	if entry.AddedAt != now.Unix() {
		t.Fatalf("expected AddedAt fallback to now, got %d", entry.AddedAt)
	}

	entry, _ = NormalizeReadingEntry(ReadingEntry{ID: "x", Title: "T", AddedAt: 99}, now)
	if entry.AddedAt != 99 {
		t.Fatalf("expected AddedAt preserved, got %d", entry.AddedAt)
	}
}

func TestNormalizeReadingList_LastWriteWinsOnID(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	list := NormalizeReadingList([]ReadingEntry{
		{ID: "2401.0001", Note: "first", AddedAt: 10},
		{ID: "", Note: "dropped"},
		{ID: "2401.0002", AddedAt: 20},
		{ID: "2401.0001", Note: "second", AddedAt: 30},
	}, now)
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[1].ID != "2401.0001" || list[1].Note != "second" || list[1].AddedAt != 30 {
		t.Fatalf("expected last write to win, got %+v", list[1])
	}
}

func TestNormalizeDisplayMode(t *testing.T) {
	tests := []struct {
		raw  string
		want DisplayMode
	}{
		{raw: "title", want: ModeTitle},
		{raw: "authors", want: ModeAuthors},
		{raw: "full", want: ModeFull},
		{raw: " full ", want: ModeFull},
		{raw: "bogus", want: ModeFull},
		{raw: "", want: ModeFull},
	}
	for _, tt := range tests {
		if got := NormalizeDisplayMode(tt.raw); got != tt.want {
			t.Fatalf("NormalizeDisplayMode(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
