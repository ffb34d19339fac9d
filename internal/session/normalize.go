// Package session holds the persisted user-state values and the total
// normalization functions that turn untrusted input (payload defaults,
// stored rows, form text) into canonical records. Nothing here fails:
// malformed input collapses to a well-formed default.
package session

import (
	"strings"
	"time"
)

// DisplayMode selects how much of each article card is shown.
type DisplayMode string

const (
	ModeTitle   DisplayMode = "title"
	ModeAuthors DisplayMode = "authors"
	ModeFull    DisplayMode = "full"
)

// Preferences are the user's favorite authors and watched keywords.
// Entries are stored with their original casing and matched
// case-insensitively by the derivation layer.
type Preferences struct {
	FavoriteAuthors []string `json:"favorite_authors"`
	Keywords        []string `json:"keywords"`
}

// ReadingEntry is one saved paper. AddedAt is set once on creation and is
// the sort key for display (newest first).
type ReadingEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	AbsURL  string `json:"abs_url"`
	PDFURL  string `json:"pdf_url"`
	Authors string `json:"authors"`
	Source  string `json:"source"`
	Note    string `json:"note"`
	AddedAt int64  `json:"added_at"`
}

// SplitList accepts a sequence or a newline/comma delimited string and
// returns the raw items. Any other shape yields nil.
func SplitList(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.FieldsFunc(v, func(r rune) bool {
			return r == '\n' || r == ','
		})
	default:
		return nil
	}
}

// NormalizeList trims entries, drops empties, and deduplicates on the
// lower-cased form keeping the first-seen spelling and order.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// NormalizePreferences builds a canonical Preferences value from loosely
// shaped input. Each field may be a list or a delimited string.
func NormalizePreferences(favoriteAuthors, keywords any) Preferences {
	return Preferences{
		FavoriteAuthors: NormalizeList(SplitList(favoriteAuthors)),
		Keywords:        NormalizeList(SplitList(keywords)),
	}
}

// NormalizeReadingEntry validates one stored reading-list record. The second
// return value is false when the entry has no usable id.
func NormalizeReadingEntry(entry ReadingEntry, now time.Time) (ReadingEntry, bool) {
	entry.ID = strings.TrimSpace(entry.ID)
	if entry.ID == "" {
		return ReadingEntry{}, false
	}
	entry.Title = strings.TrimSpace(entry.Title)
	if entry.Title == "" {
		entry.Title = entry.ID
	}
	if entry.AddedAt <= 0 {
		entry.AddedAt = now.Unix()
	}
	return entry, true
}

// NormalizeReadingList drops unusable records and keeps the last entry for
// each id, preserving the order of last appearance.
func NormalizeReadingList(entries []ReadingEntry, now time.Time) []ReadingEntry {
	out := make([]ReadingEntry, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, raw := range entries {
		entry, ok := NormalizeReadingEntry(raw, now)
		if !ok {
			continue
		}
		if i, exists := index[entry.ID]; exists {
			out = append(out[:i], out[i+1:]...)
			for id, j := range index {
				if j > i {
					index[id] = j - 1
				}
			}
		}
		index[entry.ID] = len(out)
		out = append(out, entry)
	}
	return out
}

// NormalizeDisplayMode maps unknown or non-mode input to ModeFull. The
// persistence adapter handles the distinct absent-value default separately.
func NormalizeDisplayMode(raw string) DisplayMode {
	switch DisplayMode(strings.TrimSpace(raw)) {
	case ModeTitle:
		return ModeTitle
	case ModeAuthors:
		return ModeAuthors
	case ModeFull:
		return ModeFull
	default:
		return ModeFull
	}
}
