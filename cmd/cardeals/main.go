package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/gemini"
	cdgoquery "github.com/nicoselucafi/cardeals-ai/goquery"
	cdhttp "github.com/nicoselucafi/cardeals-ai/http"
	"github.com/nicoselucafi/cardeals-ai/rod"
	"github.com/nicoselucafi/cardeals-ai/scrape"
	cdslog "github.com/nicoselucafi/cardeals-ai/slog"
	"github.com/nicoselucafi/cardeals-ai/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DealerService cardeals.DealerService
	OfferService  cardeals.OfferService
	RunService    cardeals.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cardeals"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cardeals --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CARDEALS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DealerService = sqlite.NewDealerService(m.DB)
	m.OfferService = sqlite.NewOfferService(m.DB)
	m.RunService = sqlite.NewRunService(m.DB)
	deps.DB = m.DB
	deps.Dealers = m.DealerService
	deps.Offers = m.OfferService
	deps.Runs = m.RunService

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))
	deps.Logger = logger

	// The scrape command needs the full pipeline: fetch tiers, extractor
	// registry, and the optional generative fallback.
	if cmd == "scrape" {
		fetcher, err := buildFetcher(cli, logger, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		registry := cdgoquery.NewRegistry(cdgoquery.NewDetector())
		registry.Register(cardeals.PlatformOctane, cdgoquery.NewOctaneExtractor())
		registry.Register(cardeals.PlatformDealerOn, cdgoquery.NewDealerOnExtractor())
		registry.Register(cardeals.PlatformDealerInspire, cdgoquery.NewDealerInspireExtractor())

		generative, err := buildGenerative(ctx, stderr)
		if err != nil {
			return err
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher: fetcher,
			Extractor: &scrape.Extractor{
				Registry:   cdslog.NewLoggingRegistry(registry, logger),
				Generative: generative,
				Logger:     logger,
			},
			Offers:      m.OfferService,
			Runs:        m.RunService,
			Limiter:     scrape.NewDomainLimiter(0.5),
			Concurrency: cli.Scrape.Concurrency,
			Logger:      logger,
		}
	}

	return kongCtx.Run(deps)
}

// buildFetcher assembles the tiered fetcher. Rendered fetching comes first
// by default since most dealer specials pages hydrate client-side; --no-render
// flips to HTTP-only for cheap runs against server-rendered sites.
func buildFetcher(cli *CLI, logger *slog.Logger, stderr io.Writer) (cardeals.Fetcher, error) {
	httpFetcher := cdhttp.NewFetcher()

	if cli.Scrape.NoRender {
		return scrape.NewTieredFetcher([]cardeals.Fetcher{httpFetcher}), nil
	}

	rodFetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-render")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	tiers := []cardeals.Fetcher{
		rod.NewLoggingFetcher(rodFetcher, logger),
		httpFetcher,
	}
	return scrape.NewTieredFetcher(tiers), nil
}

// buildGenerative wires the Gemini fallback when an API key is present.
// Without a key the scraper runs CSS-only, which is a supported mode.
func buildGenerative(ctx context.Context, stderr io.Writer) (cardeals.GenerativeExtractor, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set; generative fallback disabled")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewExtractor(client, gemini.DefaultModel), nil
}

func defaultDBPath() string {
	if path := os.Getenv("CARDEALS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cardeals.db"
	}
	dir := filepath.Join(home, ".cardeals")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cardeals.db")
}
