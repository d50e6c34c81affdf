package ui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"github.com/Makepad-fr/mediavote/internal/model"
)

const (
	EmptyStateTitle = "Nenhum filme ou série cadastrado ainda."
	EmptyStateHint  = "Seja o primeiro a adicionar um!"
	NoDescription   = "Sem descrição disponível."
	VotingLabel     = "⏳ Votando..."
)

// ControlKey identifies one vote control: the item plus the vote it casts.
type ControlKey struct {
	ItemID string
	Vote   model.VoteType
}

// RenderOptions carries everything the card renderer needs besides the
// items themselves. The zero value renders unselected cards with no width
// limit.
type RenderOptions struct {
	AssetHost   string
	Placeholder string
	Width       int

	Selected int            // index of the highlighted card, -1 for none
	Control  model.VoteType // focused control on the highlighted card

	Pending map[ControlKey]bool // controls with a vote in flight
	Broken  map[string]bool     // cover URLs that failed to load
}

var strict = bluemonday.StrictPolicy()

// Plain strips any markup from API-provided text.
func Plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// ResolveImageURL applies the cover policy: no image means the
// placeholder, absolute URLs pass through, anything else is a path on the
// asset host.
func ResolveImageURL(imagem, assetHost, placeholder string) string {
	if imagem == "" {
		return placeholder
	}
	if strings.HasPrefix(imagem, "http") {
		return imagem
	}
	return assetHost + imagem
}

// CoverURL is ResolveImageURL plus the load-failure fallback.
func CoverURL(it model.Item, opt RenderOptions) string {
	u := ResolveImageURL(it.Imagem, opt.AssetHost, opt.Placeholder)
	if opt.Broken[u] {
		return opt.Placeholder
	}
	return u
}

// VoteLabel is the resting label of a vote control.
func VoteLabel(vt model.VoteType, count int) string {
	if vt == model.VoteDislike {
		return fmt.Sprintf("👎 Não gostei (%d)", count)
	}
	return fmt.Sprintf("👍 Gostei (%d)", count)
}

// RenderCards renders one card per item. The output depends only on the
// arguments, so rendering the same data twice yields the same cards.
func RenderCards(items []model.Item, opt RenderOptions) []string {
	if len(items) == 0 {
		return nil
	}
	cards := make([]string, 0, len(items))
	for i, it := range items {
		cards = append(cards, renderCard(it, i == opt.Selected, opt))
	}
	return cards
}

// RenderItems renders the whole item region: the cards, or the empty state.
func RenderItems(items []model.Item, opt RenderOptions) string {
	cards := RenderCards(items, opt)
	if len(cards) == 0 {
		return MutedStyle.Render(EmptyStateTitle + "\n" + EmptyStateHint)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderCard(it model.Item, selected bool, opt RenderOptions) string {
	title := Plain(it.Titulo)
	desc := Plain(it.Descricao)
	if desc == "" {
		desc = NoDescription
	}

	header := TitleStyle.Render(title) + "  " + categoryStyle.Render("["+Plain(it.Genero)+"]")
	cover := MutedStyle.Render("capa: " + CoverURL(it, opt))

	like := renderControl(it, model.VoteLike, it.Gostei, selected, opt)
	dislike := renderControl(it, model.VoteDislike, it.NaoGostei, selected, opt)
	actions := lipgloss.JoinHorizontal(lipgloss.Top, like, " ", dislike)

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if opt.Width > 4 {
		style = style.Width(opt.Width - 2)
	}
	return style.Render(strings.Join([]string{header, desc, cover, actions}, "\n"))
}

func renderControl(it model.Item, vt model.VoteType, count int, selected bool, opt RenderOptions) string {
	if opt.Pending[ControlKey{ItemID: it.ID, Vote: vt}] {
		return disabledButtonStyle.Render(VotingLabel)
	}
	label := VoteLabel(vt, count)
	if selected && controlOrLike(opt.Control) == vt {
		return focusedButtonStyle.Render(label)
	}
	style := PositiveStyle
	if vt == model.VoteDislike {
		style = NegativeStyle
	}
	return buttonStyle.Inherit(style).Render(label)
}

func controlOrLike(vt model.VoteType) model.VoteType {
	if vt == "" {
		return model.VoteLike
	}
	return vt
}
