package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestStyleArticleTitle_ByState(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	plain := th.StyleArticleTitle(false, false, "Plain")
	if !strings.Contains(plain, "\x1b[") {
		t.Fatalf("expected styled plain title, got %q", plain)
	}

	saved := th.StyleArticleTitle(true, false, "Saved")
	if !strings.Contains(saved, "\x1b[") {
		t.Fatalf("expected styled saved title, got %q", saved)
	}

	favorite := th.StyleArticleTitle(false, true, "Favorite")
	if !strings.Contains(favorite, "\x1b[") {
		t.Fatalf("expected styled favorite title, got %q", favorite)
	}

	both := th.StyleArticleTitle(true, true, "Both")
	if !strings.Contains(both, "\x1b[") {
		t.Fatalf("expected styled saved+favorite title, got %q", both)
	}

	if got := th.StyleArticleTitle(true, true, ""); got != "" {
		t.Fatalf("expected empty title untouched, got %q", got)
	}
}

func TestRenderActiveLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()
	if got := th.RenderActiveLine(false, "line"); got != "line" {
		t.Fatalf("inactive line changed: %q", got)
	}
	if got := th.RenderActiveLine(true, "line"); got == "line" {
		t.Fatal("active line not styled")
	}
}
