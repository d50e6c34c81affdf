package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/mediavote/internal/model"
	"github.com/Makepad-fr/mediavote/internal/ui"
)

// focus order inside the dialog
const (
	fieldName = iota
	fieldCategory
	fieldDescription
	fieldCover
	buttonSubmit
	buttonClose
	focusCount
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 2)
	labelStyle        = lipgloss.NewStyle().Bold(true)
	buttonIdle        = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder())
	buttonFocused     = buttonIdle.BorderForeground(lipgloss.Color("12")).Bold(true).Reverse(true)
	buttonUnavailable = buttonIdle.Faint(true)
)

// modal is the add-item dialog. Visibility is mirrored in ariaHidden for
// screen readers that follow the view's accessibility hints.
type modal struct {
	open       bool
	ariaHidden bool
	focus      int
	submitting bool
	errMsg     string

	name        textinput.Model
	category    textinput.Model
	description textarea.Model
	cover       textinput.Model

	// top-left corner and size of the dialog box as last laid out,
	// used to tell backdrop clicks from clicks inside the box
	x, y, w, h int
}

func newModal() modal {
	m := modal{ariaHidden: true}

	m.name = textinput.New()
	m.name.Prompt = "> "
	m.name.Placeholder = "Título"
	m.name.CharLimit = 200

	m.category = textinput.New()
	m.category.Prompt = "> "
	m.category.Placeholder = "Gênero"
	m.category.CharLimit = 100

	m.description = textarea.New()
	m.description.Placeholder = "Descrição (opcional)"
	m.description.ShowLineNumbers = false
	m.description.SetHeight(3)
	m.description.CharLimit = 1000

	m.cover = textinput.New()
	m.cover.Prompt = "> "
	m.cover.Placeholder = "caminho da capa (opcional)"
	return m
}

func (m *modal) Open() tea.Cmd {
	m.open = true
	m.ariaHidden = false
	m.focus = fieldName
	return m.applyFocus()
}

// Close hides the dialog and resets every field to its default.
func (m *modal) Close() {
	m.open = false
	m.ariaHidden = true
	m.submitting = false
	m.errMsg = ""
	m.name.Reset()
	m.category.Reset()
	m.description.Reset()
	m.cover.Reset()
	m.focus = fieldName
	m.applyFocus()
}

func (m modal) IsOpen() bool     { return m.open }
func (m modal) AriaHidden() bool { return m.ariaHidden }

// Snapshot maps the form fields onto the API's names. Values are sent as
// typed; only the cover path is trimmed since it names a local file.
func (m modal) Snapshot() model.Submission {
	return model.Submission{
		Titulo:    m.name.Value(),
		Genero:    m.category.Value(),
		Descricao: m.description.Value(),
		CoverPath: strings.TrimSpace(m.cover.Value()),
	}
}

func (m *modal) move(delta int) tea.Cmd {
	m.focus = (m.focus + delta + focusCount) % focusCount
	return m.applyFocus()
}

func (m *modal) applyFocus() tea.Cmd {
	m.name.Blur()
	m.category.Blur()
	m.description.Blur()
	m.cover.Blur()
	if !m.open {
		return nil
	}
	switch m.focus {
	case fieldName:
		return m.name.Focus()
	case fieldCategory:
		return m.category.Focus()
	case fieldDescription:
		return m.description.Focus()
	case fieldCover:
		return m.cover.Focus()
	}
	return nil
}

// updateField forwards msg to the focused input.
func (m *modal) updateField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldCategory:
		m.category, cmd = m.category.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldCover:
		m.cover, cmd = m.cover.Update(msg)
	}
	return cmd
}

// layout centers the dialog in a w×h screen and returns it padded into
// place. The box position is kept for Contains.
func (m *modal) layout(width, height int) string {
	box := m.box(width)
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	m.x, m.y, m.w, m.h = max(0, (width-bw)/2), max(0, (height-bh)/2), bw, bh
	return lipgloss.NewStyle().MarginLeft(m.x).MarginTop(m.y).Render(box)
}

// Contains reports whether the screen cell (x, y) lies inside the box.
func (m modal) Contains(x, y int) bool {
	return x >= m.x && x < m.x+m.w && y >= m.y && y < m.y+m.h
}

func (m *modal) box(screenWidth int) string {
	inner := 50
	if screenWidth > 0 && screenWidth-10 < inner {
		inner = max(20, screenWidth-10)
	}
	m.name.Width = inner - 4
	m.category.Width = inner - 4
	m.cover.Width = inner - 4
	m.description.SetWidth(inner)

	submit := buttonIdle
	if m.submitting {
		submit = buttonUnavailable
	} else if m.focus == buttonSubmit {
		submit = buttonFocused
	}
	closeBtn := buttonIdle
	if m.focus == buttonClose {
		closeBtn = buttonFocused
	}
	submitLabel := "Adicionar"
	if m.submitting {
		submitLabel = "Enviando..."
	}

	rows := []string{
		ui.TitleStyle.Render("Adicionar filme ou série"),
		"",
		labelStyle.Render("Nome *"), m.name.View(),
		labelStyle.Render("Categoria *"), m.category.View(),
		labelStyle.Render("Descrição"), m.description.View(),
		labelStyle.Render("Capa"), m.cover.View(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, submit.Render(submitLabel), " ", closeBtn.Render("Fechar")),
	}
	if m.errMsg != "" {
		rows = append(rows, ui.ErrorStyle.Render(m.errMsg))
	}
	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
