package markdown_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/locallink"
	"github.com/fwojciec/locallink/markdown"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string { return ansi.ReplaceAllString(s, "") }

func TestMain(m *testing.M) {
	// Force ANSI output so styled spans produce escape codes.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()
	theme := locallink.DarkTheme()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render("", 80, theme))
		assert.Equal(t, "", markdown.Render("  \n ", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Tutoring runs daily.", stripANSI(markdown.Render("Tutoring runs daily.", 80, theme)))
	})

	t.Run("paragraphs separated by blank line", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("first\n\nsecond", 80, theme))
		assert.Equal(t, "first\n\nsecond", got)
	})

	t.Run("soft line break joins lines", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("one\ntwo", 80, theme))
		assert.Equal(t, "one two", got)
	})

	t.Run("heading is styled differently from paragraph", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render("# Events", 80, theme)
		para := markdown.Render("Events", 80, theme)
		assert.Equal(t, "Events", stripANSI(heading))
		assert.NotEqual(t, heading, para)
	})

	t.Run("bold and italic keep text", func(t *testing.T) {
		t.Parallel()
		got := markdown.Render("**Gold** and *Silver*", 80, theme)
		assert.Equal(t, "Gold and Silver", stripANSI(got))
		assert.NotEqual(t, "Gold and Silver", got)
	})

	t.Run("unordered list", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("- Silver\n- Gold\n- Premium", 80, theme))
		assert.Equal(t, "• Silver\n• Gold\n• Premium", got)
	})

	t.Run("ordered list honors start", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("3. three\n4. four", 80, theme))
		assert.Equal(t, "3. three\n4. four", got)
	})

	t.Run("nested list is indented", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("- outer\n  - inner", 80, theme))
		lines := strings.Split(got, "\n")
		assert.Equal(t, "• outer", lines[0])
		assert.Equal(t, "  • inner", lines[1])
	})

	t.Run("wrapped list item continues under its text", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("- alpha beta gamma delta epsilon zeta eta theta iota kappa", 24, theme))
		lines := strings.Split(got, "\n")
		require.Greater(t, len(lines), 1)
		assert.True(t, strings.HasPrefix(lines[0], "• alpha"))
		for _, ln := range lines[1:] {
			assert.True(t, strings.HasPrefix(ln, "  "), "line %q", ln)
			assert.False(t, strings.HasPrefix(ln, "   "), "line %q", ln)
			assert.LessOrEqual(t, runewidth.StringWidth(ln), 24)
		}
	})

	t.Run("fenced code keeps lines and language", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("```go\nfmt.Println(1)\nreturn\n```", 80, theme))
		lines := strings.Split(got, "\n")
		assert.Equal(t, "go", lines[0])
		assert.Equal(t, "  fmt.Println(1)", lines[1])
		assert.Equal(t, "  return", lines[2])
	})

	t.Run("link shows destination", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("[Book now](https://locallink.example/book)", 80, theme))
		assert.Equal(t, "Book now (https://locallink.example/book)", got)
	})

	t.Run("autolink", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("<https://locallink.example>", 80, theme))
		assert.Equal(t, "https://locallink.example", got)
	})

	t.Run("blockquote is prefixed", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("> quoted", 80, theme))
		assert.Equal(t, "│ quoted", got)
	})

	t.Run("long paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("short words that keep going and going beyond the width easily", 20, theme))
		lines := strings.Split(got, "\n")
		assert.Greater(t, len(lines), 1)
		for _, ln := range lines {
			assert.LessOrEqual(t, lipgloss.Width(ln), 20)
		}
		assert.Contains(t, got, "easily")
	})

	t.Run("non-positive width uses default", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("hello", 0, theme))
		assert.Equal(t, "hello", got)
	})

	t.Run("thematic break spans width", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(markdown.Render("---", 12, theme))
		assert.Equal(t, strings.Repeat("─", 12), got)
	})
}
