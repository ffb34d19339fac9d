package fetch

import (
	"testing"

	"github.com/pvieira/arxdigest/internal/arxiv"
)

func TestComputeStatsCountsAuthorsAndSections(t *testing.T) {
	articles := []arxiv.Article{
		{
			SectionType: "New submissions",
			Authors:     []string{"Ada Lovelace", "Grace Hopper"},
		},
		{
			SectionType: "New submissions",
			Authors:     []string{"ada lovelace"},
		},
		{
			SectionType: "Cross submissions",
			Authors:     []string{"Alan Turing"},
		},
	}

	stats := ComputeStats(articles)

	if stats.Total != 3 {
		t.Fatalf("Total = %d, want 3", stats.Total)
	}
	if stats.TotalAuthorships != 4 {
		t.Fatalf("TotalAuthorships = %d, want 4", stats.TotalAuthorships)
	}
	// "Ada Lovelace" and "ada lovelace" collapse to one unique author.
	if stats.UniqueAuthors != 3 {
		t.Fatalf("UniqueAuthors = %d, want 3", stats.UniqueAuthors)
	}
	if stats.SectionCounts["New submissions"] != 2 || stats.SectionCounts["Cross submissions"] != 1 {
		t.Fatalf("SectionCounts = %v", stats.SectionCounts)
	}
	if got := stats.AverageAuthors; got < 1.33 || got > 1.34 {
		t.Fatalf("AverageAuthors = %f", got)
	}
}

func TestComputeStatsSectionDefaultsToOther(t *testing.T) {
	stats := ComputeStats([]arxiv.Article{{Authors: []string{"X Y"}}})
	if stats.SectionCounts["Other"] != 1 {
		t.Fatalf("SectionCounts = %v, want Other bucket", stats.SectionCounts)
	}
}

func TestComputeStatsTopAuthorsLimitAndOrder(t *testing.T) {
	articles := make([]arxiv.Article, 0, 4)
	for i := 0; i < 3; i++ {
		articles = append(articles, arxiv.Article{Authors: []string{"Frequent Author", "Solo A"}})
	}
	articles = append(articles, arxiv.Article{
		Authors: []string{"Solo B", "Solo C", "Solo D", "Solo E"},
	})

	stats := ComputeStats(articles)
	if len(stats.TopAuthors) != 5 {
		t.Fatalf("len(TopAuthors) = %d, want 5", len(stats.TopAuthors))
	}
	if stats.TopAuthors[0].Author != "Frequent Author" || stats.TopAuthors[0].Count != 3 {
		t.Fatalf("TopAuthors[0] = %+v", stats.TopAuthors[0])
	}
	if stats.TopAuthors[1].Author != "Solo A" {
		t.Fatalf("TopAuthors[1] = %+v", stats.TopAuthors[1])
	}
}

func TestComputeStatsPrefersExplicitKeywords(t *testing.T) {
	articles := []arxiv.Article{
		{Title: "transformer attention", Keywords: []string{"attention"}},
		{Title: "transformer attention", Keywords: []string{"attention", "transformers"}},
	}
	stats := ComputeStats(articles)
	if len(stats.TopPhrases) != 2 {
		t.Fatalf("TopPhrases = %v", stats.TopPhrases)
	}
	if stats.TopPhrases[0].Phrase != "attention" || stats.TopPhrases[0].Count != 2 {
		t.Fatalf("TopPhrases[0] = %+v", stats.TopPhrases[0])
	}
}

func TestComputeStatsFallsBackToPhrases(t *testing.T) {
	articles := []arxiv.Article{
		{Title: "the neural rendering", Abstract: "and neural rendering for scenes"},
	}
	stats := ComputeStats(articles)
	if len(stats.TopPhrases) == 0 {
		t.Fatal("expected phrase fallback when no keywords are present")
	}
	if stats.TopPhrases[0].Phrase != "neural rendering" {
		t.Fatalf("TopPhrases[0] = %+v", stats.TopPhrases[0])
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.Total != 0 || stats.AverageAuthors != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}
