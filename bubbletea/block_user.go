package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/locallink"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user record: a "You" header with the
// timestamp, then the text wrapped to width.
type UserMessageBlock struct {
	msg    locallink.Message
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(msg locallink.Message, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{msg: msg, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	header := headerLine("You", b.msg.Timestamp, b.styles.UserLabel, b.styles.Timestamp, width)
	body := lipgloss.NewStyle().Width(width).Render(b.msg.Text)
	return header + "\n" + body
}
