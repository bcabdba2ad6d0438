package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/depthchart/internal/sampledata"
	"github.com/okian/depthchart/pkg/logger"
)

// Default configuration constants.
const (
	defaultSeed        = 2019
	defaultTeams       = 32
	defaultTraded      = 4
	defaultShortSeason = 6
	defaultTimeout     = time.Minute
)

func main() {
	var (
		outDir  = flag.String("out", ".", "Output directory")
		name    = flag.String("name", "sample_season", "File name without extension")
		format  = flag.String("format", "csv", "Output format: csv or xlsx")
		seed    = flag.Int64("seed", defaultSeed, "Random seed")
		teams   = flag.Int("teams", defaultTeams, "Number of teams (1-32)")
		traded  = flag.Int("traded", defaultTraded, "Combined rows for traded players")
		short   = flag.Int("short", defaultShortSeason, "Players with fewer than five games")
		kickers = flag.Bool("kickers", false, "Add a kicker row per team")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := &sampledata.Config{
		OutputDir:   *outDir,
		Name:        *name,
		Format:      *format,
		Seed:        *seed,
		Teams:       *teams,
		MultiTeam:   *traded,
		ShortSeason: *short,
		Kickers:     *kickers,
	}
	if _, err := sampledata.Run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString("Sample season failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1) //nolint:gocritic // cancel already called
	}
}
