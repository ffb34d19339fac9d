package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pvieira/arxdigest/internal/session"
)

// Store is the slice of the repository the TUI persists through. Saves are
// best effort: a failed save surfaces as an advisory status message and the
// in-memory session keeps going.
type Store interface {
	SaveSelectedSource(ctx context.Context, key string) error
	SavePreferences(ctx context.Context, prefs session.Preferences) error
	SaveReadingList(ctx context.Context, list []session.ReadingEntry) error
	SaveDisplayMode(ctx context.Context, mode session.DisplayMode) error
}

type SaveDoneMsg struct {
	What string
	Err  error
}

type OpenURLSuccessMsg struct {
	Status    string
	ArticleID string
	Opened    bool
}

type OpenURLErrorMsg struct {
	Err error
}

func saveCmd(what string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return SaveDoneMsg{What: what, Err: fn(ctx)}
	}
}

func SaveSelectedSourceCmd(store Store, key string) tea.Cmd {
	return saveCmd("source", func(ctx context.Context) error {
		return store.SaveSelectedSource(ctx, key)
	})
}

func SavePreferencesCmd(store Store, prefs session.Preferences) tea.Cmd {
	return saveCmd("preferences", func(ctx context.Context) error {
		return store.SavePreferences(ctx, prefs)
	})
}

func SaveReadingListCmd(store Store, list []session.ReadingEntry) tea.Cmd {
	return saveCmd("reading list", func(ctx context.Context) error {
		return store.SaveReadingList(ctx, list)
	})
}

func SaveDisplayModeCmd(store Store, mode session.DisplayMode) tea.Cmd {
	return saveCmd("display mode", func(ctx context.Context) error {
		return store.SaveDisplayMode(ctx, mode)
	})
}

func OpenURLCmd(articleID, url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened URL in browser", ArticleID: articleID, Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard", ArticleID: articleID}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
