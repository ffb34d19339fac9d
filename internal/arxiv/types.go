package arxiv

// Article is one paper scraped from an arXiv listing page. Articles are
// immutable after the payload is loaded; every consumer works on the shared
// slice without copying.
type Article struct {
	ID             string   `json:"arxiv_id"`
	Title          string   `json:"title"`
	AbsURL         string   `json:"abs_url"`
	PDFURL         string   `json:"pdf_url,omitempty"`
	Authors        []string `json:"authors"`
	Abstract       string   `json:"abstract"`
	Summary        string   `json:"summary,omitempty"`
	PrimarySubject string   `json:"primary_subject"`
	Subjects       []string `json:"subjects"`
	SectionType    string   `json:"section_type"`
	SubmissionDate string   `json:"submission_date"`
	Keywords       []string `json:"keywords,omitempty"`
}

// Section returns the taxonomy bucket, defaulting to "Other".
func (a Article) Section() string {
	if a.SectionType == "" {
		return "Other"
	}
	return a.SectionType
}

// Subject returns the primary subject, defaulting to "Other".
func (a Article) Subject() string {
	if a.PrimarySubject == "" {
		return "Other"
	}
	return a.PrimarySubject
}

// AuthorCount pairs an author name with the number of papers it appears on.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// PhraseCount pairs a keyword or candidate phrase with its frequency.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// Stats holds the precomputed statistics for one source snapshot. They are
// produced by the fetch pipeline and only formatted downstream.
type Stats struct {
	Total            int            `json:"total"`
	TotalAuthorships int            `json:"total_authorships"`
	UniqueAuthors    int            `json:"unique_authors"`
	AverageAuthors   float64        `json:"average_authors"`
	SectionCounts    map[string]int `json:"section_counts"`
	TopAuthors       []AuthorCount  `json:"top_authors"`
	TopPhrases       []PhraseCount  `json:"top_phrases"`
}

// Source is a named collection of articles for one listing page and date.
type Source struct {
	Label    string    `json:"label"`
	URL      string    `json:"url"`
	Date     string    `json:"date"`
	Stats    Stats     `json:"stats"`
	Articles []Article `json:"articles"`
}

// PreferenceDefaults carries the payload-declared starting preferences.
// Both fields tolerate either a JSON list or a delimited string.
type PreferenceDefaults struct {
	FavoriteAuthors StringList `json:"favorite_authors"`
	Keywords        StringList `json:"keywords"`
}

// Payload is the full digest document written by `arxdigest fetch` and
// loaded exactly once per browse session.
type Payload struct {
	GeneratedAt   string             `json:"generated_at"`
	DefaultSource string             `json:"default_source"`
	Sources       map[string]Source  `json:"sources"`
	Preferences   PreferenceDefaults `json:"preferences"`
}
