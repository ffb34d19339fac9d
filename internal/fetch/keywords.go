package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pvieira/arxdigest/internal/config"
)

const keywordPrompt = "Extract exactly 2 short topical keywords from this paper abstract. " +
	"Reply with a JSON array of 2 strings and nothing else.\n\nAbstract: %s"

// KeywordExtractor asks an OpenAI-compatible chat endpoint for topical tags.
// It is entirely optional: any failure yields nil keywords and the digest
// falls back to the local phrase counter.
type KeywordExtractor struct {
	cfg    config.KeywordAPIConfig
	client *http.Client
	log    *slog.Logger
	cache  map[string][]string
}

// NewKeywordExtractor returns nil when no API key is configured, which
// disables remote extraction.
func NewKeywordExtractor(cfg config.KeywordAPIConfig, client *http.Client, logger *slog.Logger) *KeywordExtractor {
	if cfg.APIKey == "" || cfg.Endpoint == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KeywordExtractor{cfg: cfg, client: client, log: logger, cache: make(map[string][]string)}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract returns up to two keywords for the abstract, or nil on any failure.
func (e *KeywordExtractor) Extract(ctx context.Context, abstract string) []string {
	abstract = strings.TrimSpace(abstract)
	if abstract == "" {
		return nil
	}
	if cached, ok := e.cache[abstract]; ok {
		return cached
	}

	keywords, err := e.request(ctx, abstract)
	if err != nil {
		e.log.Debug("keyword extraction failed", "err", err)
		return nil
	}
	e.cache[abstract] = keywords
	return keywords
}

func (e *KeywordExtractor) request(ctx context.Context, abstract string) ([]string, error) {
	body, err := json.Marshal(chatRequest{
		Model: e.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(keywordPrompt, abstract)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call keyword api: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keyword api returned %s", resp.Status)
	}

	var decoded chatResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("keyword api returned no choices")
	}
	return parseKeywordReply(decoded.Choices[0].Message.Content), nil
}

// parseKeywordReply accepts a JSON array, optionally wrapped in a code fence
// or surrounding prose, and falls back to comma splitting.
func parseKeywordReply(content string) []string {
	content = strings.TrimSpace(content)
	if start, end := strings.Index(content, "["), strings.LastIndex(content, "]"); start >= 0 && end > start {
		var arr []string
		if err := json.Unmarshal([]byte(content[start:end+1]), &arr); err == nil {
			return normalizeKeywords(arr)
		}
	}
	return normalizeKeywords(strings.Split(content, ","))
}

func normalizeKeywords(raw []string) []string {
	out := make([]string, 0, 2)
	for _, kw := range raw {
		kw = strings.Trim(strings.TrimSpace(kw), `"'`)
		if kw == "" {
			continue
		}
		out = append(out, kw)
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
