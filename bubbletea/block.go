package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/locallink"
	"github.com/mattn/go-runewidth"
)

// MessageBlock is a renderable element in the conversation.
// View takes a width parameter so the root model controls layout and
// blocks are testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// newBlock creates the block for msg.
func newBlock(msg locallink.Message, theme locallink.Theme, styles Styles) MessageBlock {
	if msg.Sender == locallink.SenderBot {
		return NewBotMessageBlock(msg, theme, styles)
	}
	return NewUserMessageBlock(msg, styles)
}

// headerLine renders "label ... timestamp" with the timestamp flush right.
// Widths are measured on the unstyled text.
func headerLine(label, timestamp string, labelStyle, tsStyle lipgloss.Style, width int) string {
	gap := width - runewidth.StringWidth(label) - runewidth.StringWidth(timestamp)
	if gap < 1 {
		gap = 1
	}
	return labelStyle.Render(label) + strings.Repeat(" ", gap) + tsStyle.Render(timestamp)
}
