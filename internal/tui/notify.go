package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/mediavote/internal/model"
)

const notifyTimeout = 3000 * time.Millisecond

var toastColors = map[model.NotificationKind]lipgloss.Color{
	model.NotifySuccess: lipgloss.Color("#4CAF50"),
	model.NotifyError:   lipgloss.Color("#f44336"),
	model.NotifyInfo:    lipgloss.Color("#2196F3"),
}

type notification struct {
	Message string
	Kind    model.NotificationKind
}

// notifyExpiredMsg fires when a toast's lifetime is over. Only the toast
// with the same id is removed, so a stale timer never hides a newer toast.
type notifyExpiredMsg struct{ id int }

// notifier is a single slot: showing a toast evicts the previous one and
// invalidates its pending removal.
type notifier struct {
	current *notification
	id      int
}

func (n *notifier) show(message string, kind model.NotificationKind) tea.Cmd {
	if _, ok := toastColors[kind]; !ok {
		kind = model.NotifyInfo
	}
	n.id++
	n.current = &notification{Message: message, Kind: kind}
	id := n.id
	return tea.Tick(notifyTimeout, func(time.Time) tea.Msg { return notifyExpiredMsg{id: id} })
}

func (n *notifier) expire(id int) {
	if id == n.id {
		n.current = nil
	}
}

func (n notifier) view() string {
	if n.current == nil {
		return ""
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(toastColors[n.current.Kind]).
		Padding(0, 2).
		Render(n.current.Message)
}
