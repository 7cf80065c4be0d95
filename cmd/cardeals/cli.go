package main

import (
	"context"
	"io"
	"log/slog"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/scrape"
	"github.com/nicoselucafi/cardeals-ai/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DB      *sqlite.DB
	Dealers cardeals.DealerService
	Offers  cardeals.OfferService
	Runs    cardeals.RunService
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape dealer specials pages and save offers"`
	Dealers DealersCmd `cmd:"" help:"List registered dealers"`
	Seed    SeedCmd    `cmd:"" help:"Seed the dealer registry with the built-in roster"`
	Offers  OffersCmd  `cmd:"" help:"List saved offers"`
	Runs    RunsCmd    `cmd:"" help:"List recent scrape runs"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Dealer      []string `short:"d" help:"Scrape only these dealer slugs (repeatable)"`
	NoRender    bool     `help:"Skip browser rendering and fetch with plain HTTP"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent dealer limit"`
}

// DealersCmd is the "dealers" subcommand.
type DealersCmd struct {
	Make string `help:"Filter by make"`
	All  bool   `help:"Include inactive dealers"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct{}

// OffersCmd is the "offers" subcommand.
type OffersCmd struct {
	Dealer string `short:"d" help:"Filter by dealer slug"`
	Model  string `help:"Filter by model"`
	Type   string `help:"Filter by offer type (lease or finance)"`
	All    bool   `help:"Include inactive offers"`
	Limit  int    `default:"50" help:"Maximum offers to show"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Dealer string `short:"d" help:"Filter by dealer slug"`
	Limit  int    `default:"20" help:"Maximum runs to show"`
}
