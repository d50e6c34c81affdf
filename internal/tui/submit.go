package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/mediavote/internal/api"
	"github.com/Makepad-fr/mediavote/internal/model"
)

const (
	msgAdded     = "Item adicionado com sucesso!"
	msgAddFailed = "Erro ao adicionar item"
)

type submitDoneMsg struct{ err error }

// submitForm validates the dialog like a browser would for required
// fields, then hands the snapshot to addItem.
func (m *Model) submitForm() tea.Cmd {
	if m.modal.submitting {
		return nil
	}
	sub := m.modal.Snapshot()
	if err := sub.Validate(); err != nil {
		m.modal.errMsg = err.Error()
		return nil
	}
	m.modal.errMsg = ""
	return m.addItem(sub)
}

// addItem builds the multipart payload and posts it. The cover goes along
// only when a non-empty file was picked.
func (m *Model) addItem(sub model.Submission) tea.Cmd {
	form, err := api.NewItemForm(sub)
	if err != nil {
		log.Errorf("Erro ao adicionar item: %v", err)
		return m.notice.show(msgAddFailed, model.NotifyError)
	}
	m.modal.submitting = true

	ctx, gw := m.ctx, m.gw
	return func() tea.Msg {
		return submitDoneMsg{err: gw.AddItem(ctx, form)}
	}
}

// finishSubmit closes the dialog and reloads on success; the success toast
// follows the reload. On failure the dialog stays open with its values so
// the user can retry.
func (m *Model) finishSubmit(msg submitDoneMsg) tea.Cmd {
	m.modal.submitting = false
	if msg.err != nil {
		log.Errorf("Erro ao adicionar item: %v", msg.err)
		return m.notice.show(msgAddFailed, model.NotifyError)
	}
	m.modal.Close()
	return m.reloadCmd(&notification{Message: msgAdded, Kind: model.NotifySuccess})
}
