package fetch

import (
	"reflect"
	"testing"

	"github.com/pvieira/arxdigest/internal/arxiv"
)

func TestCandidatePhrasesSplitsOnStopwords(t *testing.T) {
	phrases := candidatePhrases("Diffusion models for the generation of images")
	want := []string{"diffusion models", "generation", "images"}
	if !reflect.DeepEqual(phrases, want) {
		t.Fatalf("candidatePhrases = %v, want %v", phrases, want)
	}
}

func TestCandidatePhrasesKeepsRunsTogether(t *testing.T) {
	phrases := candidatePhrases("neural radiance fields improve scene reconstruction")
	if len(phrases) == 0 {
		t.Fatal("expected at least one phrase")
	}
	if phrases[0] != "neural radiance fields improve" {
		t.Fatalf("first phrase = %q, want windowed run", phrases[0])
	}
}

func TestCandidatePhrasesWindowsLongRuns(t *testing.T) {
	phrases := candidatePhrases("one1x two2x three3x four4x five5x")
	want := []string{
		"one1x two2x three3x four4x",
		"two2x three3x four4x five5x",
	}
	if !reflect.DeepEqual(phrases, want) {
		t.Fatalf("candidatePhrases = %v, want %v", phrases, want)
	}
}

func TestCandidatePhrasesDropsDigitsAndShortTokens(t *testing.T) {
	phrases := candidatePhrases("we train on 2024 GPUs at 93 fps")
	for _, phrase := range phrases {
		if phrase == "2024" || phrase == "93" {
			t.Fatalf("digit token survived: %v", phrases)
		}
	}
}

func TestExtractTopPhrasesScoresByCountTimesLength(t *testing.T) {
	articles := []arxiv.Article{
		{Title: "learning with graph neural networks", Abstract: "the graph neural networks"},
		{Title: "pruning", Abstract: "for pruning and pruning"},
	}
	ranked := ExtractTopPhrases(articles, 3)
	if len(ranked) == 0 {
		t.Fatal("expected ranked phrases")
	}
	// "graph neural networks" repeats across articles and is three words
	// long, so it outranks the single-word phrases.
	if ranked[0].Phrase != "graph neural networks" {
		t.Fatalf("top phrase = %q", ranked[0].Phrase)
	}
	if ranked[0].Count < 2 {
		t.Fatalf("top phrase count = %d, want >= 2", ranked[0].Count)
	}
}

func TestExtractTopPhrasesEmptyInput(t *testing.T) {
	if got := ExtractTopPhrases(nil, 3); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestExtractTopPhrasesHonorsLimit(t *testing.T) {
	articles := []arxiv.Article{
		{Title: "alpha9 beta9", Abstract: "gamma9 delta9 epsilon9 zeta9 eta9"},
	}
	if got := ExtractTopPhrases(articles, 2); len(got) > 2 {
		t.Fatalf("expected at most 2 phrases, got %d", len(got))
	}
}
