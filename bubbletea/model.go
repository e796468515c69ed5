package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/locallink"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var _ tea.Model = Model{}

// Default header text.
const (
	DefaultTitle    = "LocalLink Assistant"
	DefaultSubtitle = "Connecting campus services and students"
)

// queuePreviewLen is the number of grapheme clusters of a queued
// submission shown in the status line.
const queuePreviewLen = 24

// Config holds presentation settings for the panel.
type Config struct {
	Theme        locallink.ThemeMode
	Title        string
	Subtitle     string
	QuickReplies []locallink.QuickReply
}

// DefaultConfig returns the dark theme with the standard header and quick
// replies.
func DefaultConfig() Config {
	return Config{
		Theme:        locallink.ThemeDark,
		Title:        DefaultTitle,
		Subtitle:     DefaultSubtitle,
		QuickReplies: locallink.QuickReplies(),
	}
}

// Model is the Bubble Tea model for the LocalLink chat panel.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates the typing indicator. Exported for test access.
	Spinner spinner.Model

	send   SendFunc
	config Config
	theme  locallink.Theme
	styles Styles
	keys   keyMap

	messages locallink.Transcript
	blocks   []MessageBlock

	// pending mirrors the flow's pending flag and drives the typing
	// indicator. running is true while a SendFunc call is in flight.
	pending bool
	running bool
	queue   []string
	unseen  bool

	cancel  context.CancelFunc
	eventCh chan locallink.Event
	doneCh  chan error
	err     error
	ready   bool
}

// New creates a panel that submits through send and starts with history
// already on screen.
func New(send SendFunc, history locallink.Transcript, cfg Config) Model {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.Subtitle == "" {
		cfg.Subtitle = DefaultSubtitle
	}
	if cfg.QuickReplies == nil {
		cfg.QuickReplies = locallink.QuickReplies()
	}

	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0

	theme := locallink.ThemeFor(cfg.Theme)
	styles := NewStyles(theme)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Typing

	m := Model{
		Input:    ti,
		Spinner:  sp,
		send:     send,
		config:   cfg,
		theme:    theme,
		styles:   styles,
		keys:     defaultKeyMap(),
		messages: history.Clone(),
	}
	m.blocks = m.buildBlocks()
	return m
}

// Running returns whether a submission is in flight.
func (m Model) Running() bool { return m.running }

// Pending returns whether the typing indicator is shown.
func (m Model) Pending() bool { return m.pending }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Messages returns a copy of the records shown on screen.
func (m Model) Messages() locallink.Transcript { return m.messages.Clone() }

// Queued returns the submissions waiting for the current turn to settle.
func (m Model) Queued() []string { return append([]string(nil), m.queue...) }

// ThemeMode returns the active theme mode.
func (m Model) ThemeMode() locallink.ThemeMode { return m.config.Theme }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TurnEventMsg:
		var cmd tea.Cmd
		m, cmd = m.processEvent(msg.Event)
		cmds = append(cmds, cmd)
		if m.eventCh != nil {
			cmds = append(cmds, listenForEvent(m.eventCh, m.doneCh))
		}
		return m, tea.Batch(cmds...)

	case TurnDoneMsg:
		m.running = false
		m.pending = false
		m.cancel = nil
		m.eventCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		m = m.refresh()
		if len(m.queue) > 0 {
			next := m.queue[0]
			m.queue = m.queue[1:]
			return m.startSend(next)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m = m.refresh()
		return m, cmd
	}

	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if m.Viewport.AtBottom() {
		m.unseen = false
	}

	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.quickReplyBar())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	headerH := 2
	quickH := 1
	statusH := 1
	inputH := 1
	vpHeight := msg.Height - headerH - quickH - statusH - inputH
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	m.unseen = false

	m.Input.Width = msg.Width - runewidth.StringWidth(m.Input.Prompt) - 1
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.running {
			m.queue = nil
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Send):
		text := m.Input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.Input.SetValue("")
		return m.submit(text)

	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme(), nil

	// End jumps only from an empty input; otherwise it moves the cursor.
	case key.Matches(msg, m.keys.Latest) && (msg.Type != tea.KeyEnd || m.Input.Value() == ""):
		m.Viewport.GotoBottom()
		m.unseen = false
		return m, nil
	}

	if i := m.keys.quickReplyIndex(msg.String()); i >= 0 && i < len(m.config.QuickReplies) {
		return m.submit(locallink.QuickReplyUtterance(m.config.QuickReplies[i].Topic))
	}

	// Only forward non-character keys to the viewport so typing 'j' or 'k'
	// does not scroll. Home and End belong to the input.
	var cmd tea.Cmd
	var cmds []tea.Cmd
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyHome, tea.KeyEnd:
	default:
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
		if m.Viewport.AtBottom() {
			m.unseen = false
		}
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit starts a turn for text, or queues it behind the running one.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	m.err = nil
	if m.running {
		m.queue = append(m.queue, text)
		return m, nil
	}
	return m.startSend(text)
}

func (m Model) startSend(text string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	// A turn emits at most four events, so the buffer never fills.
	m.eventCh = make(chan locallink.Event, 16)
	m.doneCh = make(chan error, 1)
	m.running = true

	return m, tea.Batch(
		startTurn(m.send, ctx, text, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
	)
}

func (m Model) processEvent(evt locallink.Event) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch e := evt.(type) {
	case locallink.EventMessageAppended:
		m.messages = append(m.messages, e.Message)
		m.blocks = append(m.blocks, newBlock(e.Message, m.theme, m.styles))
	case locallink.EventPendingChanged:
		if e.Pending && !m.pending {
			cmd = m.Spinner.Tick
		}
		m.pending = e.Pending
	}
	return m.refresh(), cmd
}

// refresh re-renders the viewport. It follows the latest record when the
// user was already at the bottom and otherwise flags unseen content.
func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	follow := m.Viewport.AtBottom()
	before := m.Viewport.TotalLineCount()
	m.Viewport.SetContent(m.renderContent())
	if follow {
		m.Viewport.GotoBottom()
		return m
	}
	if m.Viewport.TotalLineCount() > before {
		m.unseen = true
	}
	return m
}

func (m Model) toggleTheme() Model {
	m.config.Theme = m.config.Theme.Toggle()
	m.theme = locallink.ThemeFor(m.config.Theme)
	m.styles = NewStyles(m.theme)
	m.Spinner.Style = m.styles.Typing
	m.blocks = m.buildBlocks()
	if m.ready {
		m.Viewport.SetContent(m.renderContent())
	}
	return m
}

func (m Model) buildBlocks() []MessageBlock {
	blocks := make([]MessageBlock, 0, len(m.messages))
	for _, msg := range m.messages {
		blocks = append(blocks, newBlock(msg, m.theme, m.styles))
	}
	return blocks
}

func (m Model) renderContent() string {
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	if m.pending {
		if len(m.blocks) > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Spinner.View())
		b.WriteString(m.styles.Typing.Render(" LocalLink is typing..."))
	}
	return b.String()
}

func (m Model) header() string {
	width := m.Viewport.Width
	title := m.styles.Header.Width(width).Render(runewidth.Truncate(m.config.Title, width-1, "…"))
	sub := m.styles.Subheader.Width(width).Render(runewidth.Truncate(m.config.Subtitle, width-1, "…"))
	return title + "\n" + sub
}

func (m Model) quickReplyBar() string {
	var parts []string
	for i, qr := range m.config.QuickReplies {
		if i >= len(m.keys.QuickReply) {
			break
		}
		parts = append(parts, m.styles.QuickKey.Render(m.keys.QuickReply[i].Help().Key)+" "+m.styles.QuickReply.Render(qr.Label))
	}
	return lipgloss.NewStyle().MaxWidth(m.Viewport.Width).Render(strings.Join(parts, "  "))
}

func (m Model) statusLine() string {
	width := m.Viewport.Width
	var line string
	switch {
	case m.err != nil:
		line = m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case len(m.queue) > 0:
		line = m.styles.Muted.Render(fmt.Sprintf("%d queued: %s", len(m.queue), previewText(m.queue[len(m.queue)-1], queuePreviewLen)))
	case m.unseen:
		line = m.styles.QuickKey.Render("↓ New messages below (Ctrl+E)")
	default:
		bindings := []key.Binding{m.keys.Send, m.keys.Theme, m.keys.Latest, m.keys.Quit}
		hints := make([]string, 0, len(bindings))
		for _, b := range bindings {
			hints = append(hints, b.Help().Key+" "+b.Help().Desc)
		}
		line = m.styles.Muted.Render(strings.Join(hints, " · "))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// previewText shortens s to n grapheme clusters.
func previewText(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	g := uniseg.NewGraphemes(s)
	var b strings.Builder
	count := 0
	for g.Next() {
		if count == n {
			return b.String() + "…"
		}
		b.WriteString(g.Str())
		count++
	}
	return b.String()
}

// startTurn runs send in a goroutine and signals completion.
func startTurn(send SendFunc, ctx context.Context, text string, eventCh chan<- locallink.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := send(ctx, text, func(e locallink.Event) {
			eventCh <- e
		})
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it reads the error from doneCh and returns TurnDoneMsg.
func listenForEvent(ch <-chan locallink.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return TurnDoneMsg{Err: err}
		}
		return TurnEventMsg{Event: evt}
	}
}
