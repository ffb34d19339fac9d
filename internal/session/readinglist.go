package session

import (
	"sort"
	"time"
)

// AddEntry appends entry to the list, replacing any existing entry with the
// same id. The returned slice is a copy; the input is never mutated.
func AddEntry(list []ReadingEntry, entry ReadingEntry, now time.Time) []ReadingEntry {
	normalized, ok := NormalizeReadingEntry(entry, now)
	if !ok {
		return append([]ReadingEntry(nil), list...)
	}
	out := make([]ReadingEntry, 0, len(list)+1)
	for _, existing := range list {
		if existing.ID == normalized.ID {
			continue
		}
		out = append(out, existing)
	}
	return append(out, normalized)
}

// RemoveEntry filters out the entry with the given id.
func RemoveEntry(list []ReadingEntry, id string) []ReadingEntry {
	out := make([]ReadingEntry, 0, len(list))
	for _, entry := range list {
		if entry.ID == id {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// SetNote replaces the note on the matching entry. Unknown ids are a no-op.
func SetNote(list []ReadingEntry, id, note string) []ReadingEntry {
	out := append([]ReadingEntry(nil), list...)
	for i := range out {
		if out[i].ID == id {
			out[i].Note = note
			break
		}
	}
	return out
}

// Contains reports whether an entry with the given id is on the list.
func Contains(list []ReadingEntry, id string) bool {
	for _, entry := range list {
		if entry.ID == id {
			return true
		}
	}
	return false
}

// SortedByAdded returns a copy ordered newest-AddedAt-first. The stored
// order is insertion order; display order is computed here at render time.
func SortedByAdded(list []ReadingEntry) []ReadingEntry {
	out := append([]ReadingEntry(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt > out[j].AddedAt
	})
	return out
}
