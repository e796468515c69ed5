package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// PreviewText exports previewText for testing.
func PreviewText(s string, n int) string {
	return previewText(s, n)
}

// Unseen reports whether the new-messages hint is showing.
func Unseen(m Model) bool {
	return m.unseen
}

// SetRunningWithCancel puts the model in a running state with a cancel
// function.
func SetRunningWithCancel(m Model, cancel func()) Model {
	m.running = true
	m.cancel = cancel
	return m
}
