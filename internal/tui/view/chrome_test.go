package view

import (
	"regexp"
	"strings"
	"testing"

	"github.com/pvieira/arxdigest/internal/session"
	tuitheme "github.com/pvieira/arxdigest/internal/tui/theme"
)

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiStrip.ReplaceAllString(s, "")
}

func TestToolbar(t *testing.T) {
	if !strings.Contains(Toolbar("papers", false), "space fold") {
		t.Fatal("papers toolbar missing fold hint")
	}
	if !strings.Contains(Toolbar("read list", false), "d remove") {
		t.Fatal("read list toolbar missing remove hint")
	}
	if !strings.Contains(Toolbar("papers", true), "esc close") {
		t.Fatal("modal toolbar missing close hint")
	}
}

func TestHeader(t *testing.T) {
	th := tuitheme.Default()
	header := stripANSI(Header("arxdigest", "Computer Vision", "2025-08-04", session.ModeAuthors, th))
	for _, want := range []string{"arxdigest", "Computer Vision", "2025-08-04", "authors"} {
		if !strings.Contains(header, want) {
			t.Fatalf("header %q missing %q", header, want)
		}
	}
}

func TestFooter(t *testing.T) {
	th := tuitheme.Default()
	footer := stripANSI(Footer("papers", 1, 42, th))
	if !strings.Contains(footer, "2:papers") {
		t.Fatalf("footer missing pane tab: %q", footer)
	}
	if !strings.Contains(footer, "42 shown") {
		t.Fatalf("footer missing count: %q", footer)
	}
}

func TestMessage(t *testing.T) {
	th := tuitheme.Default()

	idle := stripANSI(Message(false, false, "", "", th))
	if !strings.Contains(idle, "idle") || !strings.Contains(idle, "Ready") {
		t.Fatalf("idle message = %q", idle)
	}

	warn := stripANSI(Message(false, true, "", "payload stale", th))
	if !strings.Contains(warn, "warning") || !strings.Contains(warn, "payload stale") {
		t.Fatalf("warning message = %q", warn)
	}

	status := stripANSI(Message(false, false, "Saved to reading list", "", th))
	if !strings.Contains(status, "Saved to reading list") {
		t.Fatalf("status message = %q", status)
	}
}
