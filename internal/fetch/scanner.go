package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pvieira/arxdigest/internal/arxiv"
	"github.com/pvieira/arxdigest/internal/config"
)

const arxivBaseURL = "https://arxiv.org"

var listingDateLayouts = []string{"Mon, 2 Jan 2006", "2 Jan 2006"}

// Scanner crawls arXiv listing pages and assembles the digest payload.
type Scanner struct {
	client        *http.Client
	log           *slog.Logger
	keywords      *KeywordExtractor
	abstractCache map[string]string
	nowFn         func() time.Time
}

func NewScanner(client *http.Client, logger *slog.Logger, keywords *KeywordExtractor) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		client:        client,
		log:           logger,
		keywords:      keywords,
		abstractCache: make(map[string]string),
		nowFn:         time.Now,
	}
}

// BuildPayload scrapes every configured source for the target date and
// returns the full digest payload.
func (s *Scanner) BuildPayload(ctx context.Context, sources []config.SourceConfig, targetDate time.Time, prefs config.PreferenceConfig) (arxiv.Payload, error) {
	if len(sources) == 0 {
		return arxiv.Payload{}, fmt.Errorf("no sources configured")
	}

	payload := arxiv.Payload{
		GeneratedAt:   s.nowFn().Format("2006-01-02 15:04 MST"),
		DefaultSource: sources[0].Key,
		Sources:       make(map[string]arxiv.Source, len(sources)),
		Preferences: arxiv.PreferenceDefaults{
			FavoriteAuthors: arxiv.StringList(prefs.FavoriteAuthors),
			Keywords:        arxiv.StringList(prefs.Keywords),
		},
	}

	for _, source := range sources {
		articles, pageDate, err := s.scanSource(ctx, source, targetDate)
		if err != nil {
			return arxiv.Payload{}, fmt.Errorf("source %s: %w", source.Key, err)
		}
		if len(articles) == 0 {
			return arxiv.Payload{}, fmt.Errorf("source %s: no papers parsed from %s", source.Key, source.URL)
		}
		payload.Sources[source.Key] = arxiv.Source{
			Label:    source.Label,
			URL:      source.URL,
			Date:     pageDate.Format("2006-01-02"),
			Stats:    ComputeStats(articles),
			Articles: articles,
		}
		s.log.Info("scanned source", "key", source.Key, "articles", len(articles), "date", pageDate.Format("2006-01-02"))
	}

	return payload, nil
}

func (s *Scanner) scanSource(ctx context.Context, source config.SourceConfig, targetDate time.Time) ([]arxiv.Article, time.Time, error) {
	doc, err := s.fetchDocument(ctx, source.URL)
	if err != nil {
		return nil, time.Time{}, err
	}
	if doc.Find("div#dlpage").Length() == 0 {
		return nil, time.Time{}, fmt.Errorf("page %s does not contain the expected paper list; the request may have been blocked", source.URL)
	}

	sections := parseSections(doc, s.nowFn())
	matching := sectionsForDate(sections, targetDate)
	if len(matching) == 0 && len(sections) > 0 {
		latest := latestSectionDate(sections)
		s.log.Warn("no entries for requested date, falling back to newest listed date",
			"requested", targetDate.Format("2006-01-02"), "fallback", latest.Format("2006-01-02"))
		matching = sectionsForDate(sections, latest)
	}

	articles := make([]arxiv.Article, 0, 64)
	seen := make(map[string]struct{})
	pageDate := targetDate
	for _, section := range matching {
		pageDate = section.date
		section.list.Find("dt").Each(func(_ int, dt *goquery.Selection) {
			dd := dt.NextFiltered("dd")
			if dd.Length() == 0 {
				return
			}
			article, ok := s.extractArticle(ctx, dt, dd, section.sectionType, section.date)
			if !ok {
				return
			}
			if _, dup := seen[article.ID]; dup {
				return
			}
			seen[article.ID] = struct{}{}
			articles = append(articles, article)
		})
	}
	return articles, pageDate, nil
}

func (s *Scanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "arxdigest/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned %s", resp.Status)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

type listingSection struct {
	date        time.Time
	sectionType string
	list        *goquery.Selection
}

// parseSections walks the listing headers of the form "<section> for <date>"
// and pairs each with its following <dl>. When no header matches, it falls
// back to raw <dl> traversal using the list-dateline divs.
func parseSections(doc *goquery.Document, now time.Time) []listingSection {
	dlpage := doc.Find("div#dlpage")
	sections := make([]listingSection, 0, 8)
	claimed := make(map[*goquery.Selection]bool)

	dlpage.Find("h2, h3").Each(func(_ int, header *goquery.Selection) {
		heading := squashSpace(header.Text())
		sectionType, remainder, found := strings.Cut(heading, " for ")
		if !found {
			return
		}
		dateStr, _, _ := strings.Cut(remainder, "(")
		sectionDate := parseListingDate(strings.TrimSpace(dateStr), now)

		dl := header.NextAllFiltered("dl").First()
		if dl.Length() == 0 {
			return
		}
		for seen := range claimed {
			if seen.Length() > 0 && dl.Length() > 0 && seen.Get(0) == dl.Get(0) {
				return
			}
		}
		claimed[dl] = true
		sections = append(sections, listingSection{
			date:        sectionDate,
			sectionType: strings.TrimSpace(sectionType),
			list:        dl,
		})
	})
	if len(sections) > 0 {
		return sections
	}

	dlpage.Find("dl").Each(func(_ int, dl *goquery.Selection) {
		sectionDate := now
		if dateline := dl.PrevAllFiltered("div.list-dateline").First(); dateline.Length() > 0 {
			sectionDate = parseListingDate(squashSpace(dateline.Text()), now)
		}
		sectionType := "Unlabeled"
		if heading := dl.PrevAllFiltered("h2, h3").First(); heading.Length() > 0 {
			text := squashSpace(heading.Text())
			if before, _, found := strings.Cut(text, " for "); found {
				sectionType = before
			} else {
				sectionType = text
			}
		}
		sections = append(sections, listingSection{date: sectionDate, sectionType: sectionType, list: dl})
	})
	return sections
}

func sectionsForDate(sections []listingSection, date time.Time) []listingSection {
	out := make([]listingSection, 0, len(sections))
	for _, section := range sections {
		if sameDay(section.date, date) {
			out = append(out, section)
		}
	}
	return out
}

func latestSectionDate(sections []listingSection) time.Time {
	dates := make([]time.Time, 0, len(sections))
	for _, section := range sections {
		dates = append(dates, section.date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates[0]
}

func (s *Scanner) extractArticle(ctx context.Context, dt, dd *goquery.Selection, sectionType string, sectionDate time.Time) (arxiv.Article, bool) {
	anchor := dt.Find(`a[title="Abstract"]`).First()
	if anchor.Length() == 0 {
		anchor = dt.Find(`a[href*="/abs/"]`).First()
	}
	if anchor.Length() == 0 {
		return arxiv.Article{}, false
	}

	id := strings.TrimSpace(anchor.Text())
	href, _ := anchor.Attr("href")
	if id == "" {
		parts := strings.Split(strings.TrimRight(href, "/"), "/")
		id = parts[len(parts)-1]
	}
	if id == "" {
		return arxiv.Article{}, false
	}
	absURL := resolveURL(href)

	pdfURL := ""
	if pdfAnchor := dt.Find(`a[title="Download PDF"]`).First(); pdfAnchor.Length() > 0 {
		if pdfHref, ok := pdfAnchor.Attr("href"); ok {
			pdfURL = resolveURL(pdfHref)
		}
	}

	title := cleanDescriptor(dd.Find("div.list-title").First(), "Title:")
	authorsRaw := cleanDescriptor(dd.Find("div.list-authors").First(), "Authors:")
	authors := splitNonEmpty(authorsRaw, ",")

	abstractSel := dd.Find("p.mathjax").First()
	if abstractSel.Length() == 0 {
		abstractSel = dd.Find("div.mathjax").First()
	}
	abstract := cleanDescriptor(abstractSel, "Abstract:")
	if full := s.fetchFullAbstract(ctx, absURL); full != "" {
		abstract = full
	}

	subjectsSel := dd.Find("div.list-subjects").First()
	subjectsText := cleanDescriptor(subjectsSel, "Subjects:")
	subjects := splitNonEmpty(subjectsText, ";")
	primarySubject := squashSpace(subjectsSel.Find("span.primary-subject").First().Text())
	if primarySubject == "" && len(subjects) > 0 {
		primarySubject = subjects[0]
	}

	var keywords []string
	if s.keywords != nil {
		keywords = s.keywords.Extract(ctx, abstract)
	}

	return arxiv.Article{
		ID:             id,
		AbsURL:         absURL,
		PDFURL:         pdfURL,
		Title:          title,
		Authors:        authors,
		Abstract:       abstract,
		PrimarySubject: primarySubject,
		Subjects:       subjects,
		SectionType:    sectionType,
		SubmissionDate: sectionDate.Format("2006-01-02"),
		Keywords:       keywords,
	}, true
}

// fetchFullAbstract loads the abs page for the complete abstract text; the
// listing page often truncates it. Failures degrade to the listing snippet.
func (s *Scanner) fetchFullAbstract(ctx context.Context, absURL string) string {
	if absURL == "" {
		return ""
	}
	if cached, ok := s.abstractCache[absURL]; ok {
		return cached
	}
	doc, err := s.fetchDocument(ctx, absURL)
	if err != nil {
		s.log.Debug("abstract fetch failed", "url", absURL, "err", err)
		return ""
	}
	text := squashSpace(doc.Find("blockquote.abstract").First().Text())
	if lower := strings.ToLower(text); strings.HasPrefix(lower, "abstract:") {
		text = strings.TrimSpace(text[len("abstract:"):])
	}
	s.abstractCache[absURL] = text
	return text
}

func parseListingDate(raw string, fallback time.Time) time.Time {
	for _, layout := range listingDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func cleanDescriptor(sel *goquery.Selection, prefix string) string {
	text := squashSpace(sel.Text())
	if strings.HasPrefix(text, prefix) {
		return strings.TrimSpace(text[len(prefix):])
	}
	return text
}

func resolveURL(href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(arxivBaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func splitNonEmpty(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func squashSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
