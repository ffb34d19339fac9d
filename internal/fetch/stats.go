package fetch

import (
	"sort"
	"strings"

	"github.com/pvieira/arxdigest/internal/arxiv"
)

// ComputeStats builds the per-source statistics block. Section counts come
// from SectionType, top authors from a plain counter, and top phrases from
// explicit article keywords when any exist, falling back to the n-gram
// phrase extractor otherwise.
func ComputeStats(articles []arxiv.Article) arxiv.Stats {
	total := len(articles)
	totalAuthorships := 0
	uniqueAuthors := make(map[string]struct{})
	sectionCounts := make(map[string]int, 4)
	authorCounts := make(map[string]int)
	keywordCounts := make(map[string]int)

	for _, article := range articles {
		totalAuthorships += len(article.Authors)
		for _, author := range article.Authors {
			uniqueAuthors[strings.ToLower(author)] = struct{}{}
			authorCounts[author]++
		}
		sectionCounts[article.Section()]++
		for _, keyword := range article.Keywords {
			if keyword != "" {
				keywordCounts[keyword]++
			}
		}
	}

	topPhrases := rankCounts(keywordCounts, 5, func(phrase string, count int) arxiv.PhraseCount {
		return arxiv.PhraseCount{Phrase: phrase, Count: count}
	})
	if len(topPhrases) == 0 {
		topPhrases = ExtractTopPhrases(articles, 3)
	}

	avgAuthors := 0.0
	if total > 0 {
		avgAuthors = float64(totalAuthorships) / float64(total)
	}

	return arxiv.Stats{
		Total:            total,
		TotalAuthorships: totalAuthorships,
		UniqueAuthors:    len(uniqueAuthors),
		AverageAuthors:   avgAuthors,
		SectionCounts:    sectionCounts,
		TopAuthors:       topAuthors(authorCounts, 5),
		TopPhrases:       topPhrases,
	}
}

func topAuthors(counts map[string]int, topN int) []arxiv.AuthorCount {
	ranked := make([]arxiv.AuthorCount, 0, len(counts))
	for author, count := range counts {
		ranked = append(ranked, arxiv.AuthorCount{Author: author, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Author < ranked[j].Author
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func rankCounts(counts map[string]int, topN int, mk func(string, int) arxiv.PhraseCount) []arxiv.PhraseCount {
	if len(counts) == 0 {
		return nil
	}
	ranked := make([]arxiv.PhraseCount, 0, len(counts))
	for key, count := range counts {
		ranked = append(ranked, mk(key, count))
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Phrase < ranked[j].Phrase
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
