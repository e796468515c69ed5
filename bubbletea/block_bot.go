package bubbletea

import (
	"github.com/fwojciec/locallink"
	"github.com/fwojciec/locallink/markdown"
)

var _ MessageBlock = (*BotMessageBlock)(nil)

// BotMessageBlock renders a bot record with markdown formatting. The
// rendered body is cached per width since replies never change once
// recorded.
type BotMessageBlock struct {
	msg     locallink.Message
	theme   locallink.Theme
	styles  Styles
	byWidth map[int]string
}

// NewBotMessageBlock creates a BotMessageBlock.
func NewBotMessageBlock(msg locallink.Message, theme locallink.Theme, styles Styles) *BotMessageBlock {
	return &BotMessageBlock{
		msg:     msg,
		theme:   theme,
		styles:  styles,
		byWidth: make(map[int]string),
	}
}

func (b *BotMessageBlock) View(width int) string {
	header := headerLine("LocalLink", b.msg.Timestamp, b.styles.BotLabel, b.styles.Timestamp, width)
	body, ok := b.byWidth[width]
	if !ok {
		body = markdown.Render(b.msg.Text, width, b.theme)
		b.byWidth[width] = body
	}
	if body == "" {
		return header
	}
	return header + "\n" + body
}
