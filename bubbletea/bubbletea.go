// Package bubbletea provides the LocalLink chat panel as a Bubble Tea TUI.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/locallink"
)

// SendFunc runs one turn for text. The onEvent callback is called for each
// transcript change. The function blocks until the turn settles or the
// context is cancelled.
type SendFunc func(ctx context.Context, text string, onEvent func(locallink.Event)) error

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TurnEventMsg wraps a turn event for delivery to the model.
type TurnEventMsg struct {
	Event locallink.Event
}

// TurnDoneMsg signals that a turn has settled.
type TurnDoneMsg struct {
	Err error
}
