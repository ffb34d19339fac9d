// Package digest holds the pure derivation functions computed from the
// article collection and the current preferences. Rendering consumes only
// their outputs; nothing in this package touches state or the terminal.
package digest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pvieira/arxdigest/internal/arxiv"
)

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases text, collapses non-alphanumeric runs to single
// hyphens, and trims the ends. An empty result yields the fallback token.
func Slugify(text, fallback string) string {
	slug := strings.Trim(reNonAlnum.ReplaceAllString(strings.ToLower(text), "-"), "-")
	if slug == "" {
		return fallback
	}
	return slug
}

// FilterByAuthors returns every article where at least one author name
// contains one of the favorite entries, case-insensitively. Substring
// matching is deliberate: "malik" matches "Jitendra Malik". An empty
// favorites list yields an empty result.
func FilterByAuthors(articles []arxiv.Article, favorites []string) []arxiv.Article {
	lowered := lowerAll(favorites)
	if len(lowered) == 0 {
		return nil
	}
	matched := make([]arxiv.Article, 0)
	for _, article := range articles {
		if authorMatches(article.Authors, lowered) {
			matched = append(matched, article)
		}
	}
	return matched
}

func authorMatches(authors, favoritesLower []string) bool {
	for _, author := range authors {
		authorLower := strings.ToLower(author)
		for _, fav := range favoritesLower {
			if strings.Contains(authorLower, fav) {
				return true
			}
		}
	}
	return false
}

// FilterByKeywords returns every article matching one of the watched
// keywords. Articles carrying explicit keyword tags are matched by exact
// membership against those tags; articles without tags fall back to a
// substring search over title plus abstract. An empty keyword list yields
// an empty result.
func FilterByKeywords(articles []arxiv.Article, keywords []string) []arxiv.Article {
	lowered := lowerAll(keywords)
	if len(lowered) == 0 {
		return nil
	}
	matched := make([]arxiv.Article, 0)
	for _, article := range articles {
		if keywordMatches(article, lowered) {
			matched = append(matched, article)
		}
	}
	return matched
}

func keywordMatches(article arxiv.Article, keywordsLower []string) bool {
	if len(article.Keywords) > 0 {
		tags := make(map[string]struct{}, len(article.Keywords))
		for _, tag := range article.Keywords {
			tags[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
		}
		for _, keyword := range keywordsLower {
			if _, ok := tags[keyword]; ok {
				return true
			}
		}
		return false
	}
	haystack := strings.ToLower(article.Title + " " + article.Abstract)
	for _, keyword := range keywordsLower {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.ToLower(strings.TrimSpace(item))
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// SubjectGroup is one primary-subject bucket inside a section. Articles keep
// their payload insertion order.
type SubjectGroup struct {
	ID       string
	Label    string
	Articles []arxiv.Article
}

// SectionGroup is one taxonomy bucket with its subject groups in
// lexicographic label order.
type SectionGroup struct {
	ID       string
	Label    string
	Count    int
	Subjects []SubjectGroup
}

// GroupArticles partitions articles by section type, then by primary
// subject. Sections and subjects are sorted lexicographically by label;
// articles preserve insertion order within each bucket. Ids are slugs,
// subject ids scoped under their section id; duplicate slugs within one
// grouping pass get a numeric suffix so they stay usable as unique row and
// collapse keys.
func GroupArticles(articles []arxiv.Article) []SectionGroup {
	sectionOrder := make([]string, 0, 8)
	subjectOrder := make(map[string][]string, 8)
	buckets := make(map[string]map[string][]arxiv.Article, 8)

	for _, article := range articles {
		section := article.Section()
		subject := article.Subject()
		if _, ok := buckets[section]; !ok {
			buckets[section] = make(map[string][]arxiv.Article, 8)
			sectionOrder = append(sectionOrder, section)
		}
		if _, ok := buckets[section][subject]; !ok {
			subjectOrder[section] = append(subjectOrder[section], subject)
		}
		buckets[section][subject] = append(buckets[section][subject], article)
	}

	sort.Strings(sectionOrder)

	sectionSlugs := newSlugSet()
	groups := make([]SectionGroup, 0, len(sectionOrder))
	for _, section := range sectionOrder {
		sectionID := sectionSlugs.claim(Slugify(section, "section"))

		labels := subjectOrder[section]
		sort.Strings(labels)

		subjectSlugs := newSlugSet()
		subjects := make([]SubjectGroup, 0, len(labels))
		count := 0
		for _, label := range labels {
			members := buckets[section][label]
			count += len(members)
			subjects = append(subjects, SubjectGroup{
				ID:       sectionID + "-" + subjectSlugs.claim(Slugify(label, "subject")),
				Label:    label,
				Articles: members,
			})
		}

		groups = append(groups, SectionGroup{
			ID:       sectionID,
			Label:    section,
			Count:    count,
			Subjects: subjects,
		})
	}
	return groups
}

type slugSet map[string]int

func newSlugSet() slugSet {
	return make(slugSet)
}

// claim returns slug unchanged on first use and slug-N on collisions.
func (s slugSet) claim(slug string) string {
	s[slug]++
	if n := s[slug]; n > 1 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}
