package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURL  = "http://localhost:3003/api"
	DefaultAssetHost   = "http://localhost:3003"
	DefaultPlaceholder = "./assets/placeholder.jpg"
	DefaultLogFile     = "mediavote.log"
	DefaultLogLevel    = "INFO"
	DefaultColor       = "auto"
)

type Config struct {
	APIBaseURL  string
	AssetHost   string
	Placeholder string

	LogFile  string
	LogLevel string

	ShowStats bool
	Theme     string // classic | neon | mono, for non-interactive output
	Group     bool   // ls: split liked/disliked
	Color     string // auto | always | never

	// Args holds whatever followed the flags (the subcommand).
	Args []string
}

// Parse reads an optional .env, then flags. Flags win over environment,
// environment wins over defaults. -h and -help yield flag.ErrHelp.
func Parse(args []string) (Config, error) {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	var cfg Config
	var noStats bool

	fs := flag.NewFlagSet("mediavote", flag.ContinueOnError)
	// the caller reports errors and prints the full help
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.APIBaseURL, "api", "", "API base URL")
	fs.StringVar(&cfg.AssetHost, "assets", "", "host prefixed to relative image paths")
	fs.StringVar(&cfg.Placeholder, "placeholder", "", "cover shown when an item has no image")
	fs.StringVar(&cfg.LogFile, "log", "", "log file")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "DEBUG, INFO, WARNING or ERROR")
	fs.BoolVar(&noStats, "no-stats", false, "hide the stats counters")
	fs.StringVar(&cfg.Theme, "theme", "classic", "classic, neon or mono")
	fs.BoolVar(&cfg.Group, "group", false, "ls: group items by majority vote")
	fs.StringVar(&cfg.Color, "color", "", "auto, always or never")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.ShowStats = !noStats
	cfg.Args = fs.Args()

	cfg.APIBaseURL = pick(cfg.APIBaseURL, "MEDIAVOTE_API_URL", DefaultAPIBaseURL)
	cfg.AssetHost = pick(cfg.AssetHost, "MEDIAVOTE_ASSET_HOST", DefaultAssetHost)
	cfg.Placeholder = pick(cfg.Placeholder, "MEDIAVOTE_PLACEHOLDER", DefaultPlaceholder)
	cfg.LogFile = pick(cfg.LogFile, "MEDIAVOTE_LOG_FILE", DefaultLogFile)
	cfg.LogLevel = strings.ToUpper(pick(cfg.LogLevel, "MEDIAVOTE_LOG_LEVEL", DefaultLogLevel))
	cfg.Color = strings.ToLower(pick(cfg.Color, "MEDIAVOTE_COLOR", DefaultColor))
	if cfg.Color == "auto" && os.Getenv("NO_COLOR") != "" {
		cfg.Color = "never"
	}

	// Endpoints are appended verbatim, so a trailing slash would double up.
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.AssetHost = strings.TrimRight(cfg.AssetHost, "/")

	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return Config{}, errors.New("API base URL must start with http:// or https://")
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return Config{}, fmt.Errorf("color must be auto, always or never, got %q", cfg.Color)
	}
	return cfg, nil
}

func pick(flagValue, env, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	return fallback
}
