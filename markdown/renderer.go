package markdown

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark/ast"
)

// writer accumulates rendered output while walking the goldmark AST.
// prefix is prepended to every emitted line (used for quotes and list
// continuation).
type writer struct {
	src    []byte
	styles styles
	buf    strings.Builder
}

func (w *writer) blocks(parent ast.Node, width int, prefix string) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, width, prefix)
		if n.NextSibling() != nil {
			w.line(prefix, "")
		}
	}
}

func (w *writer) block(n ast.Node, width int, prefix string) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		w.wrapped(prefix, w.inline(n), width)

	case *ast.Heading:
		w.wrapped(prefix, w.styles.heading.Render(w.inline(n)), width)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(w.src)); lang != "" {
			w.line(prefix, w.styles.muted.Render(lang))
		}
		w.code(n, prefix)

	case *ast.CodeBlock:
		w.code(n, prefix)

	case *ast.Blockquote:
		w.blocks(n, width-2, prefix+w.styles.muted.Render("│")+" ")

	case *ast.List:
		w.list(n, width, prefix)

	case *ast.ThematicBreak:
		w.line(prefix, w.styles.muted.Render(strings.Repeat("─", max(width, 3))))

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			w.line(prefix, strings.TrimRight(string(seg.Value(w.src)), "\n"))
		}

	default:
		w.blocks(n, width, prefix)
	}
}

func (w *writer) code(n ast.Node, prefix string) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content := strings.TrimRight(string(seg.Value(w.src)), "\n")
		w.line(prefix, "  "+w.styles.code.Render(content))
	}
}

func (w *writer) list(l *ast.List, width int, prefix string) {
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		markerWidth := runewidth.StringWidth(marker)
		indent := strings.Repeat(" ", markerWidth)
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				w.list(nested, width-markerWidth, prefix+indent)
				continue
			}
			if !first && !l.IsTight {
				w.line(prefix, "")
			}
			var inner writer
			inner.src, inner.styles = w.src, w.styles
			inner.block(c, max(width-markerWidth, 10), "")
			out := strings.Split(strings.TrimRight(inner.buf.String(), "\n"), "\n")
			for i, ln := range out {
				lead := indent
				if first && i == 0 {
					lead = marker
				}
				w.line(prefix, lead+ln)
			}
			first = false
		}
	}
}

func (w *writer) wrapped(prefix, s string, width int) {
	if width < 10 {
		width = 10
	}
	for _, ln := range strings.Split(lipgloss.NewStyle().Width(width).Render(s), "\n") {
		w.line(prefix, strings.TrimRight(ln, " "))
	}
}

func (w *writer) line(prefix, s string) {
	w.buf.WriteString(prefix)
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// inline renders the inline children of n as a single styled string.
func (w *writer) inline(n ast.Node) string {
	var b bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.span(c, &b)
	}
	return b.String()
}

func (w *writer) span(n ast.Node, b *bytes.Buffer) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(w.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		if n.Level >= 2 {
			b.WriteString(w.styles.bold.Render(w.inline(n)))
		} else {
			b.WriteString(w.styles.italic.Render(w.inline(n)))
		}
	case *ast.CodeSpan:
		b.WriteString(w.styles.code.Render(w.inline(n)))
	case *ast.Link:
		label := w.inline(n)
		dest := string(n.Destination)
		b.WriteString(w.styles.link.Render(label))
		if dest != "" && dest != label {
			b.WriteString(" " + w.styles.muted.Render("("+dest+")"))
		}
	case *ast.AutoLink:
		b.WriteString(w.styles.link.Render(string(n.URL(w.src))))
	case *ast.Image:
		b.WriteString(w.styles.muted.Render("[image: " + w.inline(n) + "]"))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(w.src))
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.span(c, b)
		}
	}
}
