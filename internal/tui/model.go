package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/mediavote/internal/model"
	"github.com/Makepad-fr/mediavote/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options are the fixed settings of a session.
type Options struct {
	AssetHost   string
	Placeholder string
	ShowStats   bool
}

// Model is the whole application state. Rendering reads from it; the
// controllers (vote, submit, modal, notify) are methods that mutate it.
type Model struct {
	ctx  context.Context
	gw   Gateway
	opts Options

	items  []model.Item
	stats  *model.Stats
	loaded bool

	selected int
	control  model.VoteType

	pending map[ui.ControlKey]bool
	probed  map[string]bool
	broken  map[string]bool

	modal  modal
	dialog string // modal as last laid out
	notice notifier

	keys     keyMap
	help     help.Model
	viewport viewport.Model

	width, height int
}

func New(ctx context.Context, gw Gateway, opts Options) Model {
	return Model{
		ctx:      ctx,
		gw:       gw,
		opts:     opts,
		selected: -1,
		control:  model.VoteLike,
		pending:  make(map[ui.ControlKey]bool),
		probed:   make(map[string]bool),
		broken:   make(map[string]bool),
		modal:    newModal(),
		keys:     defaultKeys(),
		help:     help.New(),
		viewport: viewport.New(defaultWidth, defaultHeight),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Init loads items, then stats.
func (m Model) Init() tea.Cmd { return m.reloadCmd(nil) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return nil

	case reloadedMsg:
		cmd := m.applySnapshot(msg.snap)
		if msg.notice != nil {
			return tea.Batch(cmd, m.notice.show(msg.notice.Message, msg.notice.Kind))
		}
		return cmd

	case voteDoneMsg:
		return m.finishVote(msg)

	case submitDoneMsg:
		return m.finishSubmit(msg)

	case probedMsg:
		if !msg.ok {
			log.Warningf("capa indisponível, usando placeholder: %s", msg.url)
			m.broken[msg.url] = true
		}
		return nil

	case notifyExpiredMsg:
		m.notice.expire(msg.id)
		return nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.modal.IsOpen() {
			return m.handleModalKey(msg)
		}
		return m.handleListKey(msg)
	}

	if m.modal.IsOpen() {
		return m.modal.updateField(msg)
	}
	return nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.items)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Left):
		m.control = model.VoteLike
	case key.Matches(msg, m.keys.Right):
		m.control = model.VoteDislike
	case key.Matches(msg, m.keys.Vote):
		return m.voteSelected(m.control)
	case key.Matches(msg, m.keys.Like):
		return m.voteSelected(model.VoteLike)
	case key.Matches(msg, m.keys.Dislike):
		return m.voteSelected(model.VoteDislike)
	case key.Matches(msg, m.keys.Add):
		return m.modal.Open()
	case key.Matches(msg, m.keys.Reload):
		return m.reloadCmd(nil)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.modal.Close()
		return nil
	case msg.String() == "ctrl+c":
		return tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	case key.Matches(msg, m.keys.NextField):
		return m.modal.move(1)
	case key.Matches(msg, m.keys.PrevField):
		return m.modal.move(-1)
	case msg.Type == tea.KeyEnter:
		switch m.modal.focus {
		case buttonSubmit:
			return m.submitForm()
		case buttonClose:
			m.modal.Close()
			return nil
		case fieldDescription:
			// newlines belong to the description
			return m.modal.updateField(msg)
		default:
			return m.modal.move(1)
		}
	}
	return m.modal.updateField(msg)
}

// handleMouse closes the dialog on a press on its backdrop and scrolls the
// list with the wheel otherwise.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.modal.IsOpen() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.modal.Contains(msg.X, msg.Y) {
			m.modal.Close()
		}
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m Model) renderOptions() ui.RenderOptions {
	return ui.RenderOptions{
		AssetHost:   m.opts.AssetHost,
		Placeholder: m.opts.Placeholder,
		Width:       m.contentWidth(),
		Selected:    m.selected,
		Control:     m.control,
		Pending:     m.pending,
		Broken:      m.broken,
	}
}

func (m Model) contentWidth() int { return max(20, m.width-4) }

func (m Model) header() string {
	title := ui.TitleStyle.Render("Filmes & Séries")
	if st := ui.RenderStats(m.stats, m.opts.ShowStats); st != "" {
		title += "   " + st
	}
	title += "   " + ui.AccentStyle.Render(fmt.Sprintf("Total %d", len(m.items)))
	if toast := m.notice.view(); toast != "" {
		title += "\n" + toast
	}
	return title
}

// layout runs after every update: it places the dialog when open, else it
// lays the cards into the viewport and scrolls so the highlighted card is
// visible. View only reads what layout produced.
func (m *Model) layout() {
	if m.modal.IsOpen() {
		m.dialog = m.modal.layout(m.width, m.height-2)
		return
	}
	m.dialog = ""

	headerH := lipgloss.Height(m.header())
	helpH := lipgloss.Height(m.help.View(listKeys{m.keys}))
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = max(3, m.height-headerH-helpH-3) // panel border and spacer

	if !m.loaded {
		m.viewport.SetContent(ui.MutedStyle.Render("Carregando..."))
		return
	}
	opt := m.renderOptions()
	cards := ui.RenderCards(m.items, opt)
	if len(cards) == 0 {
		m.viewport.SetContent(ui.RenderItems(nil, opt))
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent(strings.Join(cards, "\n"))

	top := 0
	for i := 0; i < m.selected && i < len(cards); i++ {
		top += lipgloss.Height(cards[i])
	}
	if m.selected < 0 || m.selected >= len(cards) {
		return
	}
	bottom := top + lipgloss.Height(cards[m.selected])
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m Model) View() string {
	if m.modal.IsOpen() {
		// the toast goes below the dialog so the box keeps its laid-out position
		view := m.dialog + "\n"
		if toast := m.notice.view(); toast != "" {
			view += toast + "\n"
		}
		return view + ui.HelpStyle.Render(m.help.View(formKeys{m.keys}))
	}
	content := m.header() + "\n\n" + m.viewport.View() + "\n" + ui.HelpStyle.Render(m.help.View(listKeys{m.keys}))
	return ui.PanelStyle.Render(content)
}

// Items returns the current snapshot of items (for callers and tests).
func (m Model) Items() []model.Item { return m.items }

func (m Model) Stats() *model.Stats { return m.stats }

// ControlPending reports whether the vote control is disabled.
func (m Model) ControlPending(itemID string, vt model.VoteType) bool {
	return m.pending[ui.ControlKey{ItemID: itemID, Vote: vt}]
}

func (m Model) ModalOpen() bool { return m.modal.IsOpen() }

func (m Model) Notification() (string, model.NotificationKind, bool) {
	if m.notice.current == nil {
		return "", "", false
	}
	return m.notice.current.Message, m.notice.current.Kind, true
}
