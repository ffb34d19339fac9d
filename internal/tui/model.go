package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pvieira/arxdigest/internal/arxiv"
	"github.com/pvieira/arxdigest/internal/digest"
	"github.com/pvieira/arxdigest/internal/session"
	"github.com/pvieira/arxdigest/internal/tui/actions"
	"github.com/pvieira/arxdigest/internal/tui/platform"
	tuistate "github.com/pvieira/arxdigest/internal/tui/state"
	tuitheme "github.com/pvieira/arxdigest/internal/tui/theme"
	tuitree "github.com/pvieira/arxdigest/internal/tui/tree"
	tuiview "github.com/pvieira/arxdigest/internal/tui/view"
)

const (
	paneStatistics = iota
	panePapers
	paneFavorites
	paneKeywords
	paneReadList
	paneCount
)

const appTitle = "arxdigest"

type Model struct {
	payload arxiv.Payload
	store   actions.Store
	th      tuitheme.Theme

	sourceKeys []string
	sourceKey  string
	articles   []arxiv.Article
	groups     []digest.SectionGroup
	favorites  []arxiv.Article
	watched    []arxiv.Article

	prefs       session.Preferences
	readingList []session.ReadingEntry
	displayMode session.DisplayMode
	expanded    map[string]bool

	pane              int
	cursors           [paneCount]int
	statsScroll       int
	collapsedSections map[string]bool
	collapsedSubjects map[string]bool

	width  int
	height int

	status  string
	warning string

	modalOpen          bool
	modalArticle       arxiv.Article
	modalScroll        int
	modalTriggerPane   int
	modalTriggerCursor int

	editingPrefs bool
	favInput     textarea.Model
	kwInput      textarea.Model
	prefsFocus   int

	noteEditing bool
	noteTarget  string
	noteInput   textinput.Model

	datePrompt bool
	dateInput  textinput.Model

	openURLFn func(string) error
	copyURLFn func(string) error
	nowFn     func() time.Time
}

type Options struct {
	Payload     arxiv.Payload
	Store       actions.Store
	SourceKey   string
	Preferences session.Preferences
	ReadingList []session.ReadingEntry
	DisplayMode session.DisplayMode
}

func NewModel(opts Options) Model {
	favInput := textarea.New()
	favInput.Placeholder = "one author per line"
	favInput.SetHeight(5)

	kwInput := textarea.New()
	kwInput.Placeholder = "one keyword per line"
	kwInput.SetHeight(5)

	noteInput := textinput.New()
	noteInput.Placeholder = "note"
	noteInput.CharLimit = 300

	dateInput := textinput.New()
	dateInput.Placeholder = "YYYY-MM-DD"
	dateInput.CharLimit = 10

	m := Model{
		payload:           opts.Payload,
		store:             opts.Store,
		th:                tuitheme.Default(),
		sourceKeys:        opts.Payload.SourceKeys(),
		prefs:             opts.Preferences,
		readingList:       opts.ReadingList,
		displayMode:       opts.DisplayMode,
		expanded:          make(map[string]bool),
		collapsedSections: make(map[string]bool),
		collapsedSubjects: make(map[string]bool),
		favInput:          favInput,
		kwInput:           kwInput,
		noteInput:         noteInput,
		dateInput:         dateInput,
		openURLFn:         platform.OpenURLInBrowser,
		copyURLFn:         platform.CopyURLToClipboard,
		nowFn:             time.Now,
	}
	if m.displayMode == "" {
		m.displayMode = session.ModeAuthors
	}
	m.setSource(opts.Payload.ResolveSource(opts.SourceKey))
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// setSource swaps the active source and resets the transient view state:
// expansion cleared, collapse cleared, active pane back to statistics.
func (m *Model) setSource(key string) {
	m.sourceKey = key
	source := m.payload.Sources[key]
	m.articles = source.Articles
	m.groups = digest.GroupArticles(m.articles)
	m.expanded = make(map[string]bool)
	m.collapsedSections = make(map[string]bool)
	m.collapsedSubjects = make(map[string]bool)
	m.pane = paneStatistics
	m.cursors = [paneCount]int{}
	m.statsScroll = 0
	m.recomputeDerived()
}

func (m *Model) recomputeDerived() {
	m.favorites = digest.FilterByAuthors(m.articles, m.prefs.FavoriteAuthors)
	m.watched = digest.FilterByKeywords(m.articles, m.prefs.Keywords)
}

func (m Model) currentSource() arxiv.Source {
	return m.payload.Sources[m.sourceKey]
}

func (m Model) currentRows() []tuitree.Row {
	switch m.pane {
	case panePapers:
		return tuitree.BuildRows(m.groups, tuitree.BuildOptions{
			CollapsedSections: m.collapsedSections,
			CollapsedSubjects: m.collapsedSubjects,
		})
	case paneFavorites:
		return tuitree.FlatRows(m.favorites)
	case paneKeywords:
		return tuitree.FlatRows(m.watched)
	default:
		return nil
	}
}

func (m Model) sortedReadingList() []session.ReadingEntry {
	return session.SortedByAdded(m.readingList)
}

func (m Model) articleByID(id string) (arxiv.Article, bool) {
	for _, article := range m.articles {
		if article.ID == id {
			return article, true
		}
	}
	return arxiv.Article{}, false
}

// articleForEntry prefers the live source article; a reading-list entry
// saved from another source is reconstructed from its stored display fields.
func (m Model) articleForEntry(entry session.ReadingEntry) arxiv.Article {
	if article, ok := m.articleByID(entry.ID); ok {
		return article
	}
	article := arxiv.Article{
		ID:     entry.ID,
		Title:  entry.Title,
		AbsURL: entry.AbsURL,
		PDFURL: entry.PDFURL,
	}
	if entry.Authors != "" {
		article.Authors = []string{entry.Authors}
	}
	return article
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.favInput.SetWidth(msg.Width - 8)
		m.kwInput.SetWidth(msg.Width - 8)
		return m, nil

	case actions.SaveDoneMsg:
		if msg.Err != nil {
			m.warning = fmt.Sprintf("Could not save %s (session continues)", msg.What)
		}
		return m, nil

	case actions.OpenURLSuccessMsg:
		m.status = msg.Status
		return m, nil

	case actions.OpenURLErrorMsg:
		m.warning = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch {
	case m.editingPrefs:
		return m.updatePrefsForm(msg)
	case m.noteEditing:
		return m.updateNoteEditor(msg)
	case m.datePrompt:
		return m.updateDatePrompt(msg)
	case m.modalOpen:
		return m.updateModal(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit

	case "tab":
		m.pane = (m.pane + 1) % paneCount
		return m, nil
	case "shift+tab":
		m.pane = (m.pane + paneCount - 1) % paneCount
		return m, nil
	case "1", "2", "3", "4", "5":
		m.pane = int(key[0] - '1')
		return m, nil

	case "j", "down":
		return m.moveCursor(1), nil
	case "k", "up":
		return m.moveCursor(-1), nil
	case "g":
		return m.cursorToEdge(true), nil
	case "G":
		return m.cursorToEdge(false), nil
	case "pgdown":
		return m.moveCursor(tuistate.PageStep(m.height, m.warning != "")), nil
	case "pgup":
		return m.moveCursor(-tuistate.PageStep(m.height, m.warning != "")), nil

	case "m":
		return m.cycleDisplayMode()
	case "S":
		return m.cycleSource()
	case "e":
		return m.openPrefsForm()
	case "D":
		m.datePrompt = true
		m.dateInput.SetValue("")
		m.dateInput.Focus()
		return m, textinput.Blink

	case " ":
		if m.pane == panePapers {
			return m.toggleCollapse(), nil
		}
		return m, nil
	case "x":
		return m.toggleExpansion()
	case "enter":
		return m.handleEnter()
	case "s":
		return m.toggleReadingList()
	case "c":
		return m.jumpToCategory(), nil
	case "o":
		return m.openCurrentURL()
	case "y":
		return m.copyCurrentURL()

	case "n":
		if m.pane == paneReadList {
			return m.openNoteEditor()
		}
		return m, nil
	case "d":
		if m.pane == paneReadList {
			return m.removeCurrentEntry()
		}
		return m, nil
	case "C":
		if m.pane == paneReadList && len(m.readingList) > 0 {
			m.readingList = nil
			m.status = "Reading list cleared"
			return m, actions.SaveReadingListCmd(m.store, m.readingList)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) paneSize() int {
	switch m.pane {
	case paneStatistics:
		return len(m.statsLines())
	case paneReadList:
		return len(m.readingList)
	default:
		return len(m.currentRows())
	}
}

func (m Model) moveCursor(delta int) Model {
	if m.pane == paneStatistics {
		m.statsScroll = tuistate.ClampCursor(m.statsScroll+delta, m.paneSize())
		return m
	}
	m.cursors[m.pane] = tuistate.ClampCursor(m.cursors[m.pane]+delta, m.paneSize())
	return m
}

func (m Model) cursorToEdge(top bool) Model {
	if top {
		m.statsScroll = 0
		m.cursors[m.pane] = 0
		return m
	}
	size := m.paneSize()
	if m.pane == paneStatistics {
		m.statsScroll = tuistate.ClampCursor(size-1, size)
		return m
	}
	m.cursors[m.pane] = tuistate.ClampCursor(size-1, size)
	return m
}

func (m Model) cycleDisplayMode() (tea.Model, tea.Cmd) {
	switch m.displayMode {
	case session.ModeTitle:
		m.displayMode = session.ModeAuthors
	case session.ModeAuthors:
		m.displayMode = session.ModeFull
	default:
		m.displayMode = session.ModeTitle
	}
	m.status = "Display mode: " + string(m.displayMode)
	return m, actions.SaveDisplayModeCmd(m.store, m.displayMode)
}

func (m Model) cycleSource() (tea.Model, tea.Cmd) {
	if len(m.sourceKeys) < 2 {
		m.status = "Only one source in this digest"
		return m, nil
	}
	next := 0
	for i, key := range m.sourceKeys {
		if key == m.sourceKey {
			next = (i + 1) % len(m.sourceKeys)
			break
		}
	}
	m.setSource(m.sourceKeys[next])
	m.status = "Source: " + m.currentSource().Label
	return m, actions.SaveSelectedSourceCmd(m.store, m.sourceKey)
}

func (m Model) toggleCollapse() Model {
	rows := m.currentRows()
	if len(rows) == 0 {
		return m
	}
	cursor := tuistate.ClampCursor(m.cursors[m.pane], len(rows))
	row := rows[cursor]
	switch row.Kind {
	case tuitree.RowSection:
		m.collapsedSections[row.SectionID] = !m.collapsedSections[row.SectionID]
	case tuitree.RowSubject:
		m.collapsedSubjects[row.SubjectID] = !m.collapsedSubjects[row.SubjectID]
	default:
		return m
	}
	m.cursors[m.pane] = tuistate.ClampCursor(cursor, len(m.currentRows()))
	return m
}

// toggleExpansion flips the per-paper expansion bit. While the display mode
// is full every row is already expanded, so the toggle is a no-op and the
// set is left untouched.
func (m Model) toggleExpansion() (tea.Model, tea.Cmd) {
	if m.displayMode == session.ModeFull {
		m.status = "Full mode already shows every abstract"
		return m, nil
	}
	article, ok := m.articleUnderCursor()
	if !ok {
		return m, nil
	}
	if m.expanded[article.ID] {
		delete(m.expanded, article.ID)
	} else {
		m.expanded[article.ID] = true
	}
	return m, nil
}

func (m Model) articleUnderCursor() (arxiv.Article, bool) {
	if m.pane == paneReadList {
		entries := m.sortedReadingList()
		if len(entries) == 0 {
			return arxiv.Article{}, false
		}
		cursor := tuistate.ClampCursor(m.cursors[m.pane], len(entries))
		return m.articleForEntry(entries[cursor]), true
	}
	rows := m.currentRows()
	idx := tuistate.NearestArticleRow(rows, m.cursors[m.pane])
	if idx < 0 {
		return arxiv.Article{}, false
	}
	return rows[idx].Article, true
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.pane == panePapers {
		rows := m.currentRows()
		if len(rows) > 0 {
			cursor := tuistate.ClampCursor(m.cursors[m.pane], len(rows))
			if rows[cursor].Kind != tuitree.RowArticle {
				return m.toggleCollapse(), nil
			}
		}
	}
	return m.openModal()
}

func (m Model) openModal() (tea.Model, tea.Cmd) {
	article, ok := m.articleUnderCursor()
	if !ok {
		return m, nil
	}
	m.modalOpen = true
	m.modalArticle = article
	m.modalScroll = 0
	m.modalTriggerPane = m.pane
	m.modalTriggerCursor = m.cursors[m.pane]
	return m, nil
}

// closeModal is the single close routine: every dismiss path funnels here
// and restores the trigger position.
func (m Model) closeModal() Model {
	m.modalOpen = false
	m.pane = m.modalTriggerPane
	m.cursors[m.pane] = tuistate.ClampCursor(m.modalTriggerCursor, m.paneSize())
	return m
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		return m.closeModal(), nil
	case "j", "down":
		max := tuiview.ModalMaxScroll(m.modalParams())
		if m.modalScroll < max {
			m.modalScroll++
		}
		return m, nil
	case "k", "up":
		if m.modalScroll > 0 {
			m.modalScroll--
		}
		return m, nil
	case "s":
		return m.toggleReadingListFor(m.modalArticle)
	case "n":
		if session.Contains(m.readingList, m.modalArticle.ID) {
			return m.openNoteEditorFor(m.modalArticle.ID)
		}
		m.status = "Save the paper before adding a note"
		return m, nil
	case "o":
		return m.openURLFor(m.modalArticle)
	case "y":
		return m.copyURLFor(m.modalArticle)
	}
	return m, nil
}

func (m Model) toggleReadingList() (tea.Model, tea.Cmd) {
	article, ok := m.articleUnderCursor()
	if !ok {
		return m, nil
	}
	return m.toggleReadingListFor(article)
}

func (m Model) toggleReadingListFor(article arxiv.Article) (tea.Model, tea.Cmd) {
	if session.Contains(m.readingList, article.ID) {
		m.readingList = session.RemoveEntry(m.readingList, article.ID)
		if m.noteTarget == article.ID {
			m.noteTarget = ""
			m.noteEditing = false
		}
		m.status = "Removed from reading list"
	} else {
		m.readingList = session.AddEntry(m.readingList, session.ReadingEntry{
			ID:      article.ID,
			Title:   article.Title,
			AbsURL:  article.AbsURL,
			PDFURL:  article.PDFURL,
			Authors: strings.Join(article.Authors, ", "),
			Source:  m.currentSource().Label,
		}, m.nowFn())
		m.noteTarget = ""
		m.status = "Saved to reading list"
	}
	return m, actions.SaveReadingListCmd(m.store, m.readingList)
}

func (m Model) removeCurrentEntry() (tea.Model, tea.Cmd) {
	entries := m.sortedReadingList()
	if len(entries) == 0 {
		return m, nil
	}
	cursor := tuistate.ClampCursor(m.cursors[m.pane], len(entries))
	id := entries[cursor].ID
	m.readingList = session.RemoveEntry(m.readingList, id)
	if m.noteTarget == id {
		m.noteTarget = ""
		m.noteEditing = false
	}
	m.cursors[m.pane] = tuistate.ClampCursor(cursor, len(m.readingList))
	m.status = "Removed from reading list"
	return m, actions.SaveReadingListCmd(m.store, m.readingList)
}

// jumpToCategory moves from a derived pane to the paper's place in the
// taxonomy, expanding every collapsed ancestor on the way.
func (m Model) jumpToCategory() Model {
	if m.pane != paneFavorites && m.pane != paneKeywords && m.pane != paneReadList {
		return m
	}
	article, ok := m.articleUnderCursor()
	if !ok {
		return m
	}
	sectionID, subjectID, found := tuitree.SubjectIDForArticle(m.groups, article.ID)
	if !found {
		m.warning = "Paper is not in the current source"
		return m
	}
	delete(m.collapsedSections, sectionID)
	delete(m.collapsedSubjects, subjectID)
	m.pane = panePapers
	rows := m.currentRows()
	if idx := tuitree.RowIndexForArticle(rows, article.ID); idx >= 0 {
		m.cursors[panePapers] = idx
	} else if idx := tuitree.RowIndexForSubject(rows, subjectID); idx >= 0 {
		m.cursors[panePapers] = idx
	}
	return m
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	article, ok := m.articleUnderCursor()
	if !ok {
		return m, nil
	}
	return m.openURLFor(article)
}

func (m Model) openURLFor(article arxiv.Article) (tea.Model, tea.Cmd) {
	url, err := platform.ValidateLinkURL(article.AbsURL)
	if err != nil {
		m.warning = err.Error()
		return m, nil
	}
	return m, actions.OpenURLCmd(article.ID, url, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	article, ok := m.articleUnderCursor()
	if !ok {
		return m, nil
	}
	return m.copyURLFor(article)
}

func (m Model) copyURLFor(article arxiv.Article) (tea.Model, tea.Cmd) {
	url, err := platform.ValidateLinkURL(article.AbsURL)
	if err != nil {
		m.warning = err.Error()
		return m, nil
	}
	return m, actions.CopyURLCmd(url, m.copyURLFn)
}

func (m Model) openPrefsForm() (tea.Model, tea.Cmd) {
	m.editingPrefs = true
	m.prefsFocus = 0
	m.favInput.SetValue(strings.Join(m.prefs.FavoriteAuthors, "\n"))
	m.kwInput.SetValue(strings.Join(m.prefs.Keywords, "\n"))
	m.favInput.Focus()
	m.kwInput.Blur()
	return m, textarea.Blink
}

func (m Model) updatePrefsForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingPrefs = false
		m.status = "Preference edit cancelled"
		return m, nil
	case "tab", "shift+tab":
		m.prefsFocus = 1 - m.prefsFocus
		if m.prefsFocus == 0 {
			m.favInput.Focus()
			m.kwInput.Blur()
		} else {
			m.kwInput.Focus()
			m.favInput.Blur()
		}
		return m, textarea.Blink
	case "ctrl+s":
		m.prefs = session.NormalizePreferences(m.favInput.Value(), m.kwInput.Value())
		m.editingPrefs = false
		m.recomputeDerived()
		m.status = "Preferences saved"
		return m, actions.SavePreferencesCmd(m.store, m.prefs)
	case "ctrl+r":
		defaults := m.payload.Preferences
		m.prefs = session.NormalizePreferences([]string(defaults.FavoriteAuthors), []string(defaults.Keywords))
		m.editingPrefs = false
		m.recomputeDerived()
		m.status = "Preferences reset to digest defaults"
		return m, actions.SavePreferencesCmd(m.store, m.prefs)
	}

	var cmd tea.Cmd
	if m.prefsFocus == 0 {
		m.favInput, cmd = m.favInput.Update(msg)
	} else {
		m.kwInput, cmd = m.kwInput.Update(msg)
	}
	return m, cmd
}

func (m Model) openNoteEditor() (tea.Model, tea.Cmd) {
	entries := m.sortedReadingList()
	if len(entries) == 0 {
		return m, nil
	}
	cursor := tuistate.ClampCursor(m.cursors[m.pane], len(entries))
	return m.openNoteEditorFor(entries[cursor].ID)
}

func (m Model) openNoteEditorFor(id string) (tea.Model, tea.Cmd) {
	note := ""
	for _, entry := range m.readingList {
		if entry.ID == id {
			note = entry.Note
			break
		}
	}
	m.noteEditing = true
	m.noteTarget = id
	m.noteInput.SetValue(note)
	m.noteInput.Focus()
	return m, textinput.Blink
}

func (m Model) updateNoteEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.noteEditing = false
		m.noteTarget = ""
		return m, nil
	case "enter":
		m.readingList = session.SetNote(m.readingList, m.noteTarget, m.noteInput.Value())
		m.noteEditing = false
		m.noteTarget = ""
		m.status = "Note saved"
		return m, actions.SaveReadingListCmd(m.store, m.readingList)
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m Model) updateDatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.datePrompt = false
		return m, nil
	case "enter":
		raw := strings.TrimSpace(m.dateInput.Value())
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			m.warning = fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", raw)
			return m, nil
		}
		m.warning = ""
		m.datePrompt = false
		want := parsed.Format("2006-01-02")
		for _, key := range m.sourceKeys {
			if m.payload.Sources[key].Date == want {
				if key != m.sourceKey {
					m.setSource(key)
				}
				m.status = "Showing digest for " + want
				return m, actions.SaveSelectedSourceCmd(m.store, m.sourceKey)
			}
		}
		m.status = fmt.Sprintf("No digest loaded for %s, run 'arxdigest fetch --date %s'", want, want)
		return m, nil
	}
	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m Model) statsLines() []string {
	source := m.currentSource()
	return tuiview.StatsLines(source.Label, source.Date, source.Stats, m.th)
}

func (m Model) bodyHeight() int {
	// header + blank + message + toolbar + footer
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var body string
	switch {
	case m.editingPrefs:
		body = m.prefsFormView()
	case m.modalOpen:
		body = tuiview.RenderModal(m.modalParams(), m.th)
	default:
		body = m.paneView(width)
	}

	header := tuiview.Header(appTitle, m.currentSource().Label, m.currentSource().Date, m.displayMode, m.th)
	message := tuiview.Message(false, m.warning != "", m.status, m.warning, m.th)
	toolbar := m.th.MetaLabel.Render(tuiview.Toolbar(tuiview.PaneNames[m.pane], m.modalOpen))
	footer := tuiview.Footer(tuiview.PaneNames[m.pane], m.pane, m.shownCount(), m.th)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	if m.noteEditing {
		b.WriteString(m.th.InputPrompt.Render("note> ") + m.noteInput.View())
		b.WriteString("\n")
	}
	if m.datePrompt {
		b.WriteString(m.th.InputPrompt.Render("date> ") + m.dateInput.View())
		b.WriteString("\n")
	}
	b.WriteString(message)
	b.WriteString("\n")
	b.WriteString(toolbar)
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

func (m Model) shownCount() int {
	switch m.pane {
	case paneStatistics:
		return m.currentSource().Stats.Total
	case panePapers:
		return len(m.articles)
	case paneFavorites:
		return len(m.favorites)
	case paneKeywords:
		return len(m.watched)
	default:
		return len(m.readingList)
	}
}

func (m Model) modalParams() tuiview.ModalParams {
	width := m.width - 10
	if width < 40 {
		width = 40
	}
	height := m.bodyHeight() - 6
	if height < 5 {
		height = 5
	}
	return tuiview.ModalParams{
		Article: m.modalArticle,
		Saved:   session.Contains(m.readingList, m.modalArticle.ID),
		Width:   width,
		Height:  height,
		Scroll:  m.modalScroll,
	}
}

func (m Model) prefsFormView() string {
	focusFav := " "
	focusKw := " "
	if m.prefsFocus == 0 {
		focusFav = ">"
	} else {
		focusKw = ">"
	}
	var b strings.Builder
	b.WriteString(m.th.Section.Render("Edit preferences"))
	b.WriteString("\n\n")
	b.WriteString(m.th.MetaLabel.Render(focusFav + " Favorite authors"))
	b.WriteString("\n")
	b.WriteString(m.favInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.th.MetaLabel.Render(focusKw + " Watched keywords"))
	b.WriteString("\n")
	b.WriteString(m.kwInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.th.MetaValue.Render("tab switch field | ctrl+s save | ctrl+r reset to defaults | esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) paneView(width int) string {
	switch m.pane {
	case paneStatistics:
		return m.statsView()
	case paneReadList:
		return m.readListView(width)
	default:
		return m.treeView(width)
	}
}

func (m Model) statsView() string {
	lines := m.statsLines()
	start, end := tuistate.CenteredWindow(len(lines), m.statsScroll, m.bodyHeight())
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n") + "\n"
}

func (m Model) treeView(width int) string {
	rows := m.currentRows()
	if len(rows) == 0 {
		switch m.pane {
		case paneFavorites:
			if len(m.prefs.FavoriteAuthors) == 0 {
				return m.th.MetaValue.Render("No favorite authors configured. Press e to add some.") + "\n"
			}
			return m.th.MetaValue.Render("No papers by favorite authors today.") + "\n"
		case paneKeywords:
			if len(m.prefs.Keywords) == 0 {
				return m.th.MetaValue.Render("No watched keywords configured. Press e to add some.") + "\n"
			}
			return m.th.MetaValue.Render("No keyword matches today.") + "\n"
		}
		return m.th.MetaValue.Render("No papers in this source.") + "\n"
	}

	cursor := tuistate.ClampCursor(m.cursors[m.pane], len(rows))
	start, end := tuistate.CenteredWindow(len(rows), cursor, m.bodyHeight())

	return tuiview.RenderListBody(tuiview.ListRenderInput{
		Rows:              rows,
		Start:             start,
		End:               end,
		TreeCursor:        cursor,
		CollapsedSections: m.collapsedSections,
		CollapsedSubjects: m.collapsedSubjects,
		RenderSectionLine: func(row tuitree.Row, collapsed, active bool) string {
			return tuiview.RenderSectionLine(row.Label, row.Count, width, collapsed, active, m.th)
		},
		RenderSubjectLine: func(row tuitree.Row, collapsed, active bool) string {
			return tuiview.RenderSubjectLine(row.Label, row.Count, width, collapsed, active, m.th)
		},
		RenderArticleLines: func(row tuitree.Row, active bool) []string {
			indent := 4
			if m.pane != panePapers {
				indent = 1
			}
			return tuiview.RenderArticleLines(tuiview.ArticleLineParams{
				Article:  row.Article,
				Mode:     m.displayMode,
				Expanded: m.expanded[row.Article.ID],
				Saved:    session.Contains(m.readingList, row.Article.ID),
				Favorite: m.isFavorite(row.Article.ID),
				Active:   active,
				Indent:   indent,
				Width:    width,
			}, m.th)
		},
	})
}

func (m Model) isFavorite(id string) bool {
	for _, article := range m.favorites {
		if article.ID == id {
			return true
		}
	}
	return false
}

func (m Model) readListView(width int) string {
	entries := m.sortedReadingList()
	if len(entries) == 0 {
		return m.th.MetaValue.Render("Reading list is empty. Press s on a paper to save it.") + "\n"
	}
	cursor := tuistate.ClampCursor(m.cursors[m.pane], len(entries))
	start, end := tuistate.CenteredWindow(len(entries), cursor, m.bodyHeight()/2)

	var b strings.Builder
	for i := start; i < end; i++ {
		for _, line := range tuiview.RenderReadingLines(tuiview.ReadingLineParams{
			Entry:  entries[i],
			Active: i == cursor,
			Width:  width,
			Now:    m.nowFn(),
		}, m.th) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
