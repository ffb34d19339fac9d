package session

import (
	"testing"
	"time"
)

func TestAddEntry_ReplacesSameID(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	list := AddEntry(nil, ReadingEntry{ID: "2401.0001", Title: "Paper", Note: "first", AddedAt: 10}, now)
	list = AddEntry(list, ReadingEntry{ID: "2401.0002", Title: "Other", AddedAt: 20}, now)
	list = AddEntry(list, ReadingEntry{ID: "2401.0001", Title: "Paper", Note: "second", AddedAt: 30}, now)

	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[1].ID != "2401.0001" || list[1].Note != "second" {
		t.Fatalf("expected re-add to replace with latest note, got %+v", list[1])
	}
}

func TestAddEntry_DropsUnusableID(t *testing.T) {
	list := AddEntry(nil, ReadingEntry{ID: "  "}, time.Now())
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestRemoveEntry(t *testing.T) {
	list := []ReadingEntry{{ID: "a", AddedAt: 1}, {ID: "b", AddedAt: 2}}
	got := RemoveEntry(list, "a")
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected list after remove: %+v", got)
	}
	if got := RemoveEntry(list, "missing"); len(got) != 2 {
		t.Fatalf("expected remove of unknown id to keep list, got %+v", got)
	}
}

func TestSetNote_NoOpWhenAbsent(t *testing.T) {
	list := []ReadingEntry{{ID: "a", Note: "old"}}
	got := SetNote(list, "a", "new")
	if got[0].Note != "new" {
		t.Fatalf("expected note update, got %+v", got[0])
	}
	got = SetNote(list, "missing", "new")
	if got[0].Note != "old" {
		t.Fatalf("expected no-op for unknown id, got %+v", got[0])
	}
	if list[0].Note != "old" {
		t.Fatal("SetNote mutated its input")
	}
}

func TestSortedByAdded_NewestFirstWithoutMutating(t *testing.T) {
	list := []ReadingEntry{{ID: "a", AddedAt: 1}, {ID: "c", AddedAt: 3}, {ID: "b", AddedAt: 2}}
	got := SortedByAdded(list)
	if got[0].ID != "c" || got[1].ID != "b" || got[2].ID != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if list[0].ID != "a" {
		t.Fatal("SortedByAdded mutated its input")
	}
}

func TestContains(t *testing.T) {
	list := []ReadingEntry{{ID: "a"}}
	if !Contains(list, "a") {
		t.Fatal("expected membership for a")
	}
	if Contains(list, "b") {
		t.Fatal("unexpected membership for b")
	}
}
