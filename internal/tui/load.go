package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/mediavote/internal/api"
	"github.com/Makepad-fr/mediavote/internal/logging"
	"github.com/Makepad-fr/mediavote/internal/model"
	"github.com/Makepad-fr/mediavote/internal/ui"
)

var log = logging.NewLogger("tui")

// Gateway is the part of the API client the TUI needs.
type Gateway interface {
	Items(ctx context.Context) ([]model.Item, error)
	Stats(ctx context.Context) (model.Stats, error)
	Vote(ctx context.Context, itemID string, vt model.VoteType) error
	AddItem(ctx context.Context, form *api.Form) error
	ProbeImage(ctx context.Context, imageURL string) bool
}

// snapshot is the result of one full reload. Either half may have failed
// independently; a failed half leaves the current view as it is.
type snapshot struct {
	items    []model.Item
	itemsErr error
	stats    model.Stats
	statsErr error
}

// reloadedMsg carries a snapshot and, optionally, the toast to show once
// it is on screen.
type reloadedMsg struct {
	snap   snapshot
	notice *notification
}

type probedMsg struct {
	url string
	ok  bool
}

// reload fetches items, then stats.
func reload(ctx context.Context, gw Gateway) snapshot {
	var s snapshot
	s.items, s.itemsErr = gw.Items(ctx)
	s.stats, s.statsErr = gw.Stats(ctx)
	return s
}

func (m Model) reloadCmd(then *notification) tea.Cmd {
	ctx, gw := m.ctx, m.gw
	return func() tea.Msg { return reloadedMsg{snap: reload(ctx, gw), notice: then} }
}

// applySnapshot replaces the view state with s wholesale and returns the
// image probes for the covers of the new items.
func (m *Model) applySnapshot(s snapshot) tea.Cmd {
	m.loaded = true
	if s.itemsErr != nil {
		log.Errorf("Erro ao carregar itens: %v", s.itemsErr)
	} else {
		m.items = s.items
		// every rebuild loads covers afresh, so earlier failures are forgotten
		clear(m.probed)
		clear(m.broken)
		if m.selected >= len(m.items) {
			m.selected = len(m.items) - 1
		}
		if m.selected < 0 && len(m.items) > 0 {
			m.selected = 0
		}
	}
	if s.statsErr != nil {
		log.Errorf("Erro ao carregar estatísticas: %v", s.statsErr)
	} else {
		st := s.stats
		m.stats = &st
	}
	return m.probeCovers()
}

func (m *Model) probeCovers() tea.Cmd {
	var cmds []tea.Cmd
	for _, it := range m.items {
		u := ui.ResolveImageURL(it.Imagem, m.opts.AssetHost, m.opts.Placeholder)
		if m.probed[u] {
			continue
		}
		m.probed[u] = true
		ctx, gw := m.ctx, m.gw
		cmds = append(cmds, func() tea.Msg {
			return probedMsg{url: u, ok: gw.ProbeImage(ctx, u)}
		})
	}
	return tea.Batch(cmds...)
}
