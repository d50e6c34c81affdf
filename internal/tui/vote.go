package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/mediavote/internal/model"
	"github.com/Makepad-fr/mediavote/internal/ui"
)

// voteDoneMsg ends the pending state of one control. snap is set only when
// the vote succeeded and a reload followed.
type voteDoneMsg struct {
	key  ui.ControlKey
	err  error
	snap *snapshot
}

// handleVote moves the control to pending and returns the command that
// posts the vote and, on success, reloads items and stats. A control that
// is already pending ignores the activation.
func (m *Model) handleVote(itemID string, vt model.VoteType) tea.Cmd {
	key := ui.ControlKey{ItemID: itemID, Vote: vt}
	if m.pending[key] {
		return nil
	}
	m.pending[key] = true

	ctx, gw := m.ctx, m.gw
	return func() tea.Msg {
		if err := gw.Vote(ctx, itemID, vt); err != nil {
			return voteDoneMsg{key: key, err: err}
		}
		s := reload(ctx, gw)
		return voteDoneMsg{key: key, snap: &s}
	}
}

// finishVote re-enables the control whatever the outcome. On failure the
// label goes back to its resting text since nothing is re-rendered from
// new data.
func (m *Model) finishVote(msg voteDoneMsg) tea.Cmd {
	delete(m.pending, msg.key)
	if msg.err != nil {
		log.Errorf("Erro ao registrar voto em %s (%s): %v", msg.key.ItemID, msg.key.Vote, msg.err)
		return nil
	}
	return m.applySnapshot(*msg.snap)
}

// voteSelected votes on the highlighted card.
func (m *Model) voteSelected(vt model.VoteType) tea.Cmd {
	if m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return m.handleVote(m.items[m.selected].ID, vt)
}
