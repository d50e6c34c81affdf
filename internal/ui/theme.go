package ui

import "strings"

// Theme bundles palette, vote symbols and box borders for the plain
// (non-interactive) output. All helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Positive, Negative string
	SymLike, SymDislike                      string
	CornerTL, CornerTR, CornerBL, CornerBR   string
	H, V                                     string
	BarFull, BarEmpty                        string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		monochrome = false
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Positive: "\033[92m", Negative: "\033[91m",
			SymLike: "▲", SymDislike: "▼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			BarFull: "█", BarEmpty: "░",
		}
	case "mono":
		monochrome = true
		current = Theme{
			SymLike: "+", SymDislike: "-",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			BarFull: "#", BarEmpty: ".",
		}
	default: // classic
		monochrome = false
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Positive: fgGreen, Negative: fgRed,
			SymLike: "👍", SymDislike: "👎",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			BarFull: "█", BarEmpty: "░",
		}
	}
}

func Current() Theme { return current }
