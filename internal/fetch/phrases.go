package fetch

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pvieira/arxdigest/internal/arxiv"
)

const phraseMaxWords = 4

var reToken = regexp.MustCompile(`[^a-z0-9]+`)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "with", "from", "that", "this", "have", "has",
		"are", "was", "were", "can", "will", "into", "than", "when", "what",
		"which", "using", "used", "been", "also", "such", "their", "our",
		"between", "other", "more", "less", "these", "those", "while",
		"where", "whose", "they", "them", "towards", "toward", "your",
		"about", "over", "both", "each", "two", "three", "four", "five",
		"new", "per", "via", "upon", "onto", "within", "without", "across",
		"through", "throughout", "among", "amongst", "because", "since",
		"after", "before", "during", "whereas", "however", "there",
		"therein", "thereof", "thereby", "here", "herein", "hereof",
		"hereby", "very", "many", "much", "most", "any", "all", "some",
		"none", "few", "either", "neither", "not", "nor", "yet", "but",
		"though", "although", "ever", "every", "even", "still", "quite",
		"rather", "further", "around", "outside", "inside",
	} {
		stopwords[w] = struct{}{}
	}
}

func splitLongPhrase(words []string, maxWords int) [][]string {
	if len(words) <= maxWords {
		return [][]string{words}
	}
	out := make([][]string, 0, len(words)-maxWords+1)
	for i := 0; i+maxWords <= len(words); i++ {
		out = append(out, words[i:i+maxWords])
	}
	return out
}

// candidatePhrases splits text on stopwords and short alpha tokens, then
// windows the surviving runs to at most phraseMaxWords words.
func candidatePhrases(text string) []string {
	tokens := reToken.Split(strings.ToLower(text), -1)
	phrases := make([][]string, 0, 16)
	current := make([]string, 0, 8)

	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, splitLongPhrase(current, phraseMaxWords)...)
			current = nil
		}
	}

	for _, token := range tokens {
		if token == "" {
			continue
		}
		_, stop := stopwords[token]
		if stop || (len(token) <= 2 && isAlpha(token)) {
			flush()
			continue
		}
		if isDigits(token) {
			continue
		}
		current = append(current, token)
	}
	flush()

	out := make([]string, 0, len(phrases))
	for _, words := range phrases {
		if len(words) > 0 {
			out = append(out, strings.Join(words, " "))
		}
	}
	return out
}

// ExtractTopPhrases counts candidate phrases over title+abstract and returns
// the topN by score, where score is count times phrase length in words.
// Ties break by raw count, then lexicographically.
func ExtractTopPhrases(articles []arxiv.Article, topN int) []arxiv.PhraseCount {
	counts := make(map[string]int)
	lengths := make(map[string]int)
	for _, article := range articles {
		text := article.Title + " " + article.Abstract
		for _, phrase := range candidatePhrases(text) {
			counts[phrase]++
			if _, ok := lengths[phrase]; !ok {
				lengths[phrase] = len(strings.Fields(phrase))
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	ranked := make([]arxiv.PhraseCount, 0, len(counts))
	for phrase, count := range counts {
		ranked = append(ranked, arxiv.PhraseCount{Phrase: phrase, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		si := ranked[i].Count * lengths[ranked[i].Phrase]
		sj := ranked[j].Count * lengths[ranked[j].Phrase]
		if si != sj {
			return si > sj
		}
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

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
