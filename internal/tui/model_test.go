package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/Makepad-fr/mediavote/internal/api"
	"github.com/Makepad-fr/mediavote/internal/apitest"
	"github.com/Makepad-fr/mediavote/internal/logging"
	"github.com/Makepad-fr/mediavote/internal/model"
	"github.com/Makepad-fr/mediavote/internal/ui"
)

func TestMain(m *testing.M) {
	logging.Discard()
	os.Exit(m.Run())
}

const placeholder = "./assets/placeholder.jpg"

func dune() []model.Item {
	return []model.Item{{ID: "1", Titulo: "Dune", Genero: "Sci-Fi", Gostei: 5, NaoGostei: 1}}
}

func newFake(t *testing.T, items []model.Item) *apitest.Server {
	t.Helper()
	fake := apitest.New(items, model.Stats{TotalGostei: 5, TotalNaoGostei: 1})
	t.Cleanup(fake.Close)
	return fake
}

func newModel(fake *apitest.Server) Model {
	return New(context.Background(), api.NewClient(fake.BaseURL()), Options{
		AssetHost:   "http://localhost:3003",
		Placeholder: placeholder,
		ShowStats:   true,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// loaded runs the startup reload against the fake.
func loaded(t *testing.T, fake *apitest.Server) Model {
	t.Helper()
	m := newModel(fake)
	m, _ = update(t, m, m.Init()())
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestInitialLoadRendersItems(t *testing.T) {
	fake := newFake(t, dune())
	m := loaded(t, fake)

	if diff := cmp.Diff(dune(), m.Items()); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&model.Stats{TotalGostei: 5, TotalNaoGostei: 1}, m.Stats()); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	view := ui.StripANSI(m.View())
	for _, want := range []string{"Dune", "[Sci-Fi]", "(5)", "(1)", "👍 5", "👎 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestLoadFailureKeepsPreviousView(t *testing.T) {
	fake := newFake(t, dune())
	m := loaded(t, fake)

	fake.SetFail(http.StatusInternalServerError, http.StatusInternalServerError, 0, 0)
	m, _ = update(t, m, m.reloadCmd(nil)())
	if len(m.Items()) != 1 || m.Stats() == nil {
		t.Fatal("a failed reload must leave the last snapshot in place")
	}
}

func TestEmptyListShowsEmptyState(t *testing.T) {
	fake := newFake(t, nil)
	m := loaded(t, fake)
	view := ui.StripANSI(m.View())
	if !strings.Contains(view, ui.EmptyStateTitle) {
		t.Errorf("view should show the empty state:\n%s", view)
	}
}

func TestVoteSuccessReloadsOnce(t *testing.T) {
	fake := newFake(t, dune())
	m := loaded(t, fake)

	m, cmd := update(t, m, runes("+"))
	if cmd == nil {
		t.Fatal("vote should return a command")
	}
	if !m.ControlPending("1", model.VoteLike) {
		t.Fatal("control should be pending while the vote is in flight")
	}
	if !strings.Contains(ui.StripANSI(m.View()), ui.VotingLabel) {
		t.Error("pending control should show the voting label")
	}

	// a second activation of a disabled control does nothing
	if _, again := update(t, m, runes("+")); again != nil {
		t.Error("pending control should ignore activation")
	}

	m, _ = update(t, m, cmd())

	if m.ControlPending("1", model.VoteLike) {
		t.Error("control should be re-enabled after the vote")
	}
	items, stats := fake.Calls()
	if items != 2 || stats != 2 {
		t.Errorf("calls = items %d stats %d, want one reload after startup (2, 2)", items, stats)
	}
	want := []apitest.Vote{{ItemID: "1", Body: model.VoteRequest{Type: model.VoteLike}, ContentType: "application/json"}}
	if diff := cmp.Diff(want, fake.Votes()); diff != "" {
		t.Errorf("votes (-want +got):\n%s", diff)
	}
	if got := m.Items()[0].Gostei; got != 6 {
		t.Errorf("gostei after reload = %d, want 6", got)
	}
}

func TestVoteFailureRestoresLabel(t *testing.T) {
	fake := newFake(t, dune())
	m := loaded(t, fake)
	before := ui.StripANSI(m.View())

	fake.SetFail(0, 0, http.StatusInternalServerError, 0)
	m, cmd := update(t, m, runes("+"))
	m, _ = update(t, m, cmd())

	if m.ControlPending("1", model.VoteLike) {
		t.Error("control should be re-enabled after a failed vote")
	}
	items, stats := fake.Calls()
	if items != 1 || stats != 1 {
		t.Errorf("failed vote must not reload, calls = %d/%d", items, stats)
	}
	if after := ui.StripANSI(m.View()); after != before {
		t.Errorf("view should be back to its pre-click state:\nbefore:\n%s\nafter:\n%s", before, after)
	}
	if _, _, ok := m.Notification(); ok {
		t.Error("vote failures are not toasted")
	}
}

func TestEnterVotesFocusedControl(t *testing.T) {
	fake := newFake(t, dune())
	m := loaded(t, fake)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	cmd()

	votes := fake.Votes()
	if len(votes) != 1 || votes[0].Body.Type != model.VoteDislike {
		t.Errorf("votes = %+v, want one dislike", votes)
	}
}

func TestConcurrentVotesOnDifferentItems(t *testing.T) {
	fake := newFake(t, []model.Item{
		{ID: "1", Titulo: "Dune", Genero: "Sci-Fi"},
		{ID: "2", Titulo: "Heat", Genero: "Crime"},
	})
	m := loaded(t, fake)

	m, first := update(t, m, runes("+"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, second := update(t, m, runes("-"))
	if first == nil || second == nil {
		t.Fatal("both votes should be issued")
	}
	if !m.ControlPending("1", model.VoteLike) || !m.ControlPending("2", model.VoteDislike) {
		t.Fatal("both controls should be pending")
	}
	m, _ = update(t, m, second())
	m, _ = update(t, m, first())
	if m.ControlPending("1", model.VoteLike) || m.ControlPending("2", model.VoteDislike) {
		t.Error("both controls should be released")
	}
}

func TestModalOpenClose(t *testing.T) {
	fake := newFake(t, dune())

	tests := []struct {
		name  string
		close func(t *testing.T, m Model) Model
	}{
		{"escape", func(t *testing.T, m Model) Model {
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			return m
		}},
		{"close button", func(t *testing.T, m Model) Model {
			for m.modal.focus != buttonClose {
				m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
			}
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			return m
		}},
		{"backdrop click", func(t *testing.T, m Model) Model {
			m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			return m
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, fake)
			if !m.modal.AriaHidden() {
				t.Error("closed modal should be aria-hidden")
			}
			m, _ = update(t, m, runes("a"))
			if !m.ModalOpen() || m.modal.AriaHidden() {
				t.Fatal("modal should be open and visible")
			}
			m, _ = update(t, m, runes("Dune"))
			if got := m.modal.Snapshot().Titulo; got != "Dune" {
				t.Fatalf("typed title = %q", got)
			}

			m = tt.close(t, m)
			if m.ModalOpen() || !m.modal.AriaHidden() {
				t.Fatal("modal should be closed and hidden")
			}
			if diff := cmp.Diff(model.Submission{}, m.modal.Snapshot()); diff != "" {
				t.Errorf("closing should reset the form (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClickInsideDialogKeepsItOpen(t *testing.T) {
	fake := newFake(t, dune())
	m := loaded(t, fake)
	m, _ = update(t, m, runes("a"))
	m, _ = update(t, m, tea.MouseMsg{X: m.modal.x + 1, Y: m.modal.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.ModalOpen() {
		t.Error("a click inside the dialog must not close it")
	}
}

func openWith(t *testing.T, m Model, sub model.Submission) Model {
	t.Helper()
	m, _ = update(t, m, runes("a"))
	m.modal.name.SetValue(sub.Titulo)
	m.modal.category.SetValue(sub.Genero)
	m.modal.description.SetValue(sub.Descricao)
	m.modal.cover.SetValue(sub.CoverPath)
	return m
}

func TestSubmitCover(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.png")
	cover := filepath.Join(dir, "cover.png")
	os.WriteFile(empty, nil, 0o644)
	os.WriteFile(cover, []byte("png"), 0o644)

	for _, tc := range []struct {
		name     string
		path     string
		wantFile bool
	}{
		{"zero-size cover omitted", empty, false},
		{"cover attached", cover, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fake := newFake(t, nil)
			m := loaded(t, fake)
			m = openWith(t, m, model.Submission{Titulo: "Arrival", Genero: "Sci-Fi", Descricao: "Heptapods", CoverPath: tc.path})

			m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
			if cmd == nil {
				t.Fatal("submit should return a command")
			}
			m, reload := update(t, m, cmd())
			if m.ModalOpen() {
				t.Error("modal should close after a successful submit")
			}
			m, _ = update(t, m, reload())

			ups := fake.Uploads()
			if len(ups) != 1 {
				t.Fatalf("uploads = %d", len(ups))
			}
			if ups[0].HasFile != tc.wantFile {
				t.Errorf("imagem sent = %v, want %v", ups[0].HasFile, tc.wantFile)
			}
			wantFields := map[string]string{"titulo": "Arrival", "genero": "Sci-Fi", "descricao": "Heptapods"}
			if diff := cmp.Diff(wantFields, ups[0].Fields); diff != "" {
				t.Errorf("fields (-want +got):\n%s", diff)
			}
			if len(m.Items()) != 1 {
				t.Errorf("items after reload = %d, want 1", len(m.Items()))
			}
			msg, kind, ok := m.Notification()
			if !ok || msg != msgAdded || kind != model.NotifySuccess {
				t.Errorf("notification = %q %q %v", msg, kind, ok)
			}
		})
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	fake := newFake(t, nil)
	m := loaded(t, fake)
	fake.SetFail(0, 0, 0, http.StatusBadRequest)

	sub := model.Submission{Titulo: "Arrival", Genero: "Sci-Fi"}
	m = openWith(t, m, sub)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = update(t, m, cmd())

	if !m.ModalOpen() {
		t.Fatal("modal must stay open after a failed submit")
	}
	if diff := cmp.Diff(sub, m.modal.Snapshot()); diff != "" {
		t.Errorf("form should keep its values (-want +got):\n%s", diff)
	}
	msg, kind, ok := m.Notification()
	if !ok || msg != msgAddFailed || kind != model.NotifyError {
		t.Errorf("notification = %q %q %v", msg, kind, ok)
	}
	if !strings.Contains(ui.StripANSI(m.View()), msgAddFailed) {
		t.Error("error toast should be visible over the dialog")
	}
}

func TestSubmitRequiresNameAndCategory(t *testing.T) {
	fake := newFake(t, nil)
	m := loaded(t, fake)
	m = openWith(t, m, model.Submission{Genero: "Sci-Fi"})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("invalid form must not be sent")
	}
	if m.modal.errMsg != "Nome é obrigatório" {
		t.Errorf("errMsg = %q", m.modal.errMsg)
	}
	if len(fake.Uploads()) != 0 {
		t.Error("nothing should reach the API")
	}
}

func TestNotifyEvictsPrevious(t *testing.T) {
	var n notifier
	n.show("first", model.NotifyInfo)
	firstID := n.id
	n.show("second", model.NotifyError)

	if n.current == nil || n.current.Message != "second" || n.current.Kind != model.NotifyError {
		t.Fatalf("current = %+v", n.current)
	}
	view := ui.StripANSI(n.view())
	if strings.Contains(view, "first") || strings.Count(view, "second") != 1 {
		t.Errorf("exactly one toast expected, got %q", view)
	}

	n.expire(firstID)
	if n.current == nil {
		t.Error("a stale timer must not remove the newer toast")
	}
	n.expire(n.id)
	if n.current != nil {
		t.Error("the toast should expire on its own timer")
	}
}

func TestNotifyUnknownKindFallsBackToInfo(t *testing.T) {
	var n notifier
	n.show("hi", model.NotificationKind("warning"))
	if n.current.Kind != model.NotifyInfo {
		t.Errorf("kind = %q, want info", n.current.Kind)
	}
}

func TestBrokenCoverFallsBack(t *testing.T) {
	fake := newFake(t, []model.Item{{ID: "1", Titulo: "Dune", Genero: "Sci-Fi", Imagem: "http://nowhere.invalid/d.jpg"}})
	m := loaded(t, fake)
	m, _ = update(t, m, probedMsg{url: "http://nowhere.invalid/d.jpg", ok: false})
	view := ui.StripANSI(m.View())
	if !strings.Contains(view, "capa: "+placeholder) {
		t.Errorf("broken cover should fall back to the placeholder:\n%s", view)
	}
}

// drain runs cmd and feeds every resulting message back into the model,
// following batches one level deep.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				m, _ = update(t, m, c())
			}
		}
		return m
	}
	m, _ = update(t, m, msg)
	return m
}

func TestCoverRecoversOnReload(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer images.Close()
	cover := images.URL + "/dune.jpg"

	fake := newFake(t, []model.Item{{ID: "1", Titulo: "Dune", Genero: "Sci-Fi", Imagem: cover}})
	m := newModel(fake)
	m, probe := update(t, m, m.Init()())
	m = drain(t, m, probe)
	if view := ui.StripANSI(m.View()); !strings.Contains(view, "capa: "+placeholder) {
		t.Fatalf("unreachable cover should show the placeholder:\n%s", view)
	}

	down.Store(false)
	m, reload := update(t, m, runes("r"))
	m, probe = update(t, m, reload())
	if probe == nil {
		t.Fatal("reload should probe the covers again")
	}
	m = drain(t, m, probe)
	view := ui.StripANSI(m.View())
	if !strings.Contains(view, "capa: "+cover) || strings.Contains(view, "capa: "+placeholder) {
		t.Errorf("cover should be back after the host recovered:\n%s", view)
	}
}

func TestSubmitSendsDescriptionAsTyped(t *testing.T) {
	fake := newFake(t, nil)
	m := loaded(t, fake)
	desc := "  Heptapods\nchegam à Terra  "
	m = openWith(t, m, model.Submission{Titulo: "Arrival", Genero: "Sci-Fi", Descricao: desc})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	update(t, m, cmd())

	ups := fake.Uploads()
	if len(ups) != 1 {
		t.Fatalf("uploads = %d", len(ups))
	}
	if got := ups[0].Fields["descricao"]; got != desc {
		t.Errorf("descricao = %q, want %q", got, desc)
	}
}
