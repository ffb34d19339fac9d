package view

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pvieira/arxdigest/internal/arxiv"
	tuitheme "github.com/pvieira/arxdigest/internal/tui/theme"
)

// FlattenMarkup strips any HTML tags from abstract text and decodes
// entities, collapsing whitespace runs. Plain text passes through unchanged
// apart from the whitespace collapse.
func FlattenMarkup(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return strings.Join(strings.Fields(raw), " ")
	}
	nodes, err := html.ParseFragment(strings.NewReader(raw), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}
	var b strings.Builder
	for _, node := range nodes {
		collectText(node, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(node *html.Node, b *strings.Builder) {
	if node.Type == html.TextNode {
		b.WriteString(node.Data)
		b.WriteString(" ")
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, b)
	}
}

type ModalParams struct {
	Article arxiv.Article
	Saved   bool
	Width   int
	Height  int
	Scroll  int
}

// ModalBodyLines builds the scrollable content of the abstract overlay.
func ModalBodyLines(p ModalParams) []string {
	width := p.Width
	if width < 20 {
		width = 20
	}

	lines := make([]string, 0, 32)
	lines = append(lines, WrapText(strings.TrimSpace(p.Article.Title), width)...)
	lines = append(lines, "")

	authors := strings.Join(p.Article.Authors, ", ")
	if authors == "" {
		authors = "(no authors listed)"
	}
	lines = append(lines, WrapText("Authors: "+authors, width)...)
	if subject := p.Article.Subject(); subject != "" {
		lines = append(lines, WrapText("Subject: "+subject, width)...)
	}
	if p.Article.SubmissionDate != "" {
		lines = append(lines, "Listed: "+p.Article.SubmissionDate)
	}
	lines = append(lines, "")

	abstract := FlattenMarkup(p.Article.Abstract)
	if abstract == "" {
		abstract = "(no abstract available)"
	}
	lines = append(lines, WrapText(abstract, width)...)
	lines = append(lines, "")

	if p.Article.AbsURL != "" {
		lines = append(lines, WrapText("Abs: "+p.Article.AbsURL, width)...)
	}
	if p.Article.PDFURL != "" {
		lines = append(lines, WrapText("PDF: "+p.Article.PDFURL, width)...)
	}
	return lines
}

// RenderModal draws the abstract overlay frame with its title bar, the
// visible slice of body lines, and the key hint footer.
func RenderModal(p ModalParams, th tuitheme.Theme) string {
	body := ModalBodyLines(p)

	visible := p.Height
	if visible <= 0 {
		visible = len(body)
	}
	top := p.Scroll
	maxTop := len(body) - visible
	if maxTop < 0 {
		maxTop = 0
	}
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	end := top + visible
	if end > len(body) {
		end = len(body)
	}

	header := th.ModalTitle.Render("Abstract")
	if p.Saved {
		header += " " + th.Count.Render("[saved]")
	}
	hint := th.MetaLabel.Render("j/k scroll | s save | o open | y copy | esc close")

	content := header + "\n\n" + strings.Join(body[top:end], "\n") + "\n\n" + hint
	return th.ModalFrame.Width(p.Width + 2).Render(content)
}

func ModalMaxScroll(p ModalParams) int {
	maxTop := len(ModalBodyLines(p)) - p.Height
	if maxTop < 0 {
		return 0
	}
	return maxTop
}
