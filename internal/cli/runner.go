package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/mediavote/internal/api"
	"github.com/Makepad-fr/mediavote/internal/model"
	"github.com/Makepad-fr/mediavote/internal/tui"
	"github.com/Makepad-fr/mediavote/internal/ui"
)

// Options tune output behavior and carry the API client.
type Options struct {
	Client tui.Gateway
	Out    io.Writer
	Err    io.Writer

	AssetHost   string
	Placeholder string
	ShowStats   bool
	Group       bool // ls: split by majority vote

	// Interactive starts the full-screen UI; replaced in tests.
	Interactive func(ctx context.Context, gw tui.Gateway, opts tui.Options) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Interactive == nil {
		opt.Interactive = tui.Run
	}
	if len(args) == 0 {
		return doInteractive(ctx, opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ui":
		return doInteractive(ctx, opt)

	case "ls":
		return doList(ctx, opt)

	case "stats":
		return doStats(ctx, opt)

	case "vote":
		if len(a) != 2 {
			ui.Fail(opt.Err, "usage: mediavote vote <id> <like|dislike>")
			return 2
		}
		vt, err := model.ParseVoteType(a[1])
		if err != nil {
			ui.Fail(opt.Err, "vote: "+err.Error())
			return 2
		}
		return doVote(ctx, opt, a[0], vt)

	case "add":
		sub, err := parseAdd(a, opt.Err)
		if err != nil {
			ui.Fail(opt.Err, "add: "+err.Error())
			return 2
		}
		return doAdd(ctx, opt, sub)
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `mediavote - vote on movies and series

Usage:
  mediavote [flags] [subcommand] [args]

Subcommands:
  ui                           Interactive voting screen (default)
  ls                           List items with their votes
  stats                        Show vote totals
  vote <id> <like|dislike>     Vote on an item
  add -name N -category C [-description D] [-cover FILE]
                               Add a movie or series

Flags:
  -api URL          API base URL (MEDIAVOTE_API_URL)
  -assets URL       host for relative cover paths (MEDIAVOTE_ASSET_HOST)
  -no-stats         hide the vote totals
  -group            ls: group by majority vote
  -theme NAME       classic, neon or mono
  -color MODE       auto, always or never (MEDIAVOTE_COLOR, NO_COLOR)

Examples:
  mediavote
  mediavote ls
  mediavote vote 1 like
  mediavote add -name Dune -category Sci-Fi -cover ./dune.jpg
`)
}

// -------------- subcommand impls ----------------

func doInteractive(ctx context.Context, opt Options) int {
	err := opt.Interactive(ctx, opt.Client, tui.Options{
		AssetHost:   opt.AssetHost,
		Placeholder: opt.Placeholder,
		ShowStats:   opt.ShowStats,
	})
	if err != nil {
		ui.Fail(opt.Err, "ui: "+err.Error())
		return 1
	}
	return 0
}

func doList(ctx context.Context, opt Options) int {
	items, err := opt.Client.Items(ctx)
	if err != nil {
		ui.Fail(opt.Err, "load items: "+err.Error())
		return 1
	}

	t := ui.Current()
	header := ui.C(t.Title, "Filmes & Séries")
	if opt.ShowStats {
		// a stats failure only drops the totals from the header
		if st, err := opt.Client.Stats(ctx); err == nil {
			header += fmt.Sprintf("  %s %d  %s %d",
				ui.C(t.Positive, t.SymLike), st.TotalGostei,
				ui.C(t.Negative, t.SymDislike), st.TotalNaoGostei)
		} else {
			fmt.Fprintln(opt.Err, ui.C(t.Muted, "stats unavailable: "+err.Error()))
		}
	}
	header += fmt.Sprintf("  %s %d", ui.C(t.Accent, "Total"), len(items))

	lines := []string{header, ""}
	if opt.Group {
		lines = append(lines, groupLines(items, opt)...)
	} else {
		lines = append(lines, flatLines(items, opt)...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: vote with `mediavote vote <id> like`"))
	ui.Panel(opt.Out, lines)
	return 0
}

func doStats(ctx context.Context, opt Options) int {
	st, err := opt.Client.Stats(ctx)
	if err != nil {
		ui.Fail(opt.Err, "load stats: "+err.Error())
		return 1
	}
	t := ui.Current()
	ui.Panel(opt.Out, []string{
		ui.C(t.Title, "Votos"),
		fmt.Sprintf("%s Gostei      %d", ui.C(t.Positive, t.SymLike), st.TotalGostei),
		fmt.Sprintf("%s Não gostei  %d", ui.C(t.Negative, t.SymDislike), st.TotalNaoGostei),
		ui.C(t.Muted, ui.ApprovalBar(st.TotalGostei, st.TotalNaoGostei, 28)),
	})
	return 0
}

func doVote(ctx context.Context, opt Options, id string, vt model.VoteType) int {
	if err := opt.Client.Vote(ctx, id, vt); err != nil {
		ui.Fail(opt.Err, "vote: "+err.Error())
		if api.StatusCode(err) == 404 {
			fmt.Fprintln(opt.Err, ui.C(ui.Current().Muted, "Hint: run `mediavote ls` to see valid ids"))
		}
		return 1
	}
	ui.OK(opt.Out, "voto registrado")
	return 0
}

func parseAdd(args []string, errOut io.Writer) (model.Submission, error) {
	var sub model.Submission
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&sub.Titulo, "name", "", "title")
	fs.StringVar(&sub.Genero, "category", "", "genre")
	fs.StringVar(&sub.Descricao, "description", "", "description")
	fs.StringVar(&sub.CoverPath, "cover", "", "cover image file")
	if err := fs.Parse(args); err != nil {
		return sub, err
	}
	// bare words after the flags form the title
	if sub.Titulo == "" && fs.NArg() > 0 {
		sub.Titulo = strings.Join(fs.Args(), " ")
	}
	return sub, sub.Validate()
}

func doAdd(ctx context.Context, opt Options, sub model.Submission) int {
	form, err := api.NewItemForm(sub)
	if err != nil {
		ui.Fail(opt.Err, "add: "+err.Error())
		return 1
	}
	if err := opt.Client.AddItem(ctx, form); err != nil {
		ui.Fail(opt.Err, "Erro ao adicionar item: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, "Item adicionado com sucesso!")
	return 0
}

// -------------- rendering helpers --------------

func flatLines(items []model.Item, opt Options) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, ui.EmptyStateTitle), ui.C(t.Muted, ui.EmptyStateHint)}
	}
	out := make([]string, 0, len(items)*2)
	for _, it := range items {
		title := ui.Plain(it.Titulo)
		if r := []rune(title); len(r) > 60 {
			title = string(r[:57]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s %d  %s %d  %s",
			ui.C(t.Muted, "["+it.ID+"]"),
			title,
			ui.C(t.Accent, "("+ui.Plain(it.Genero)+")"),
			ui.C(t.Positive, t.SymLike), it.Gostei,
			ui.C(t.Negative, t.SymDislike), it.NaoGostei,
			ui.C(t.Muted, ui.ApprovalBar(it.Gostei, it.NaoGostei, 10)),
		))
		out = append(out, ui.C(t.Muted, "    capa: "+ui.ResolveImageURL(it.Imagem, opt.AssetHost, opt.Placeholder)))
	}
	return out
}

func groupLines(items []model.Item, opt Options) []string {
	var liked, disliked []model.Item
	for _, it := range items {
		if it.Gostei >= it.NaoGostei {
			liked = append(liked, it)
		} else {
			disliked = append(disliked, it)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Mais gostei"))
	if len(liked) == 0 {
		lines = append(lines, ui.C(t.Muted, "(nenhum)"))
	} else {
		lines = append(lines, flatLines(liked, opt)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Mais não gostei"))
	if len(disliked) == 0 {
		lines = append(lines, ui.C(t.Muted, "(nenhum)"))
	} else {
		lines = append(lines, flatLines(disliked, opt)...)
	}
	return lines
}
