package bubbletea

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Send       key.Binding
	Quit       key.Binding
	Theme      key.Binding
	Latest     key.Binding
	QuickReply []key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "send")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "quit")),
		Theme:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("Ctrl+T", "theme")),
		Latest: key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("Ctrl+E", "latest")),
		QuickReply: []key.Binding{
			key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "")),
			key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "")),
			key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "")),
			key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "")),
		},
	}
}

// quickReplyIndex returns the index of the quick reply bound to msg, or -1.
func (k keyMap) quickReplyIndex(msg string) int {
	for i, b := range k.QuickReply {
		for _, s := range b.Keys() {
			if s == msg {
				return i
			}
		}
	}
	return -1
}
