package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/locallink"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserLabel  lipgloss.Style
	BotLabel   lipgloss.Style
	Timestamp  lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
	Header     lipgloss.Style
	Subheader  lipgloss.Style
	QuickReply lipgloss.Style
	QuickKey   lipgloss.Style
	Typing     lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t locallink.Theme) Styles {
	return Styles{
		UserLabel:  lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		BotLabel:   lipgloss.NewStyle().Foreground(ansiColor(t.BotMsg)).Bold(true),
		Timestamp:  lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Error:      lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:      lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Header:     lipgloss.NewStyle().Foreground(ansiColor(t.HeaderFg)).Background(ansiColor(t.HeaderBg)).Bold(true).PaddingLeft(1),
		Subheader:  lipgloss.NewStyle().Foreground(ansiColor(t.HeaderFg)).Background(ansiColor(t.HeaderBg)).PaddingLeft(1),
		QuickReply: lipgloss.NewStyle().Foreground(ansiColor(t.QuickReply)),
		QuickKey:   lipgloss.NewStyle().Foreground(ansiColor(t.QuickReply)).Bold(true),
		Typing:     lipgloss.NewStyle().Foreground(ansiColor(t.BotMsg)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
