// Package markdown renders bot replies to ANSI-styled terminal output.
// Parsing is done by goldmark; styling and wrapping by lipgloss.
package markdown

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/locallink"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 80

// Render parses markdown source and returns ANSI-styled text wrapped to
// width. Code blocks keep their line structure and are not reflowed.
func Render(source string, width int, theme locallink.Theme) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	doc := goldmark.DefaultParser().Parse(text.NewReader([]byte(source)))
	w := &writer{
		src:    []byte(source),
		styles: newStyles(theme),
	}
	w.blocks(doc, width, "")
	return strings.TrimRight(w.buf.String(), "\n")
}

type styles struct {
	bold    lipgloss.Style
	italic  lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
	code    lipgloss.Style
}

func newStyles(t locallink.Theme) styles {
	return styles{
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		heading: lipgloss.NewStyle().Foreground(color(t.Accent)).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(color(t.Muted)).Faint(true),
		link:    lipgloss.NewStyle().Underline(true),
		code:    lipgloss.NewStyle().Background(color(t.CodeBg)),
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
