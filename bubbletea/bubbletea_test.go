package bubbletea_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/locallink"
	bt "github.com/fwojciec/locallink/bubbletea"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 3, 1, 14, 5, 0, 0, time.UTC)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, send bt.SendFunc) bt.Model {
	t.Helper()
	return initModelWithSize(t, send, 80, 24)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, send bt.SendFunc, width, height int) bt.Model {
	t.Helper()
	m := bt.New(send, nil, bt.DefaultConfig())
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// appended wraps a message in a TurnEventMsg.
func appended(msg locallink.Message) bt.TurnEventMsg {
	return bt.TurnEventMsg{Event: locallink.EventMessageAppended{Message: msg}}
}

// nopSend is a SendFunc that does nothing.
func nopSend(_ context.Context, _ string, _ func(locallink.Event)) error {
	return nil
}

// echoSend emits a full turn that answers with "echo: <text>".
func echoSend(_ context.Context, text string, onEvent func(locallink.Event)) error {
	onEvent(locallink.EventMessageAppended{Message: locallink.NewUserMessage(text, fixedTime)})
	onEvent(locallink.EventPendingChanged{Pending: true})
	onEvent(locallink.EventMessageAppended{Message: locallink.NewBotMessage("echo: "+text, fixedTime)})
	onEvent(locallink.EventPendingChanged{Pending: false})
	return nil
}
