package sampledata

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/okian/depthchart/internal/adapters/tableio"
	"github.com/okian/depthchart/pkg/logger"
)

// Config holds the sample-season tool settings.
type Config struct {
	OutputDir   string
	Name        string
	Format      string
	Seed        int64
	Teams       int
	MultiTeam   int
	ShortSeason int
	Kickers     bool
}

// Run generates a season and writes it as CSV or a one-sheet workbook.
// It returns the written path.
func Run(ctx context.Context, cfg *Config) (string, error) {
	g := NewGenerator(
		WithSeed(cfg.Seed),
		WithTeams(cfg.Teams),
		WithMultiTeamRows(cfg.MultiTeam),
		WithShortSeasonRows(cfg.ShortSeason),
		WithKickers(cfg.Kickers),
	)
	tbl := g.Generate()
	exp := tableio.NewExporter(cfg.OutputDir)

	var (
		path string
		err  error
	)
	switch strings.ToLower(cfg.Format) {
	case "", "csv":
		path, err = exp.WriteCSV(ctx, cfg.Name, tbl)
	case "xlsx":
		path, err = exp.WriteWorkbook(ctx, cfg.Name, []tableio.Sheet{{Name: "season", Table: tbl}})
	default:
		return "", fmt.Errorf("%w: %q", tableio.ErrUnsupportedFormat, cfg.Format)
	}
	if err != nil {
		return "", fmt.Errorf("write sample season: %w", err)
	}

	logger.Get().Info(ctx, "sample season written",
		logger.String("path", path),
		logger.Int("rows", tbl.Len()),
		logger.Int("teams", g.teams))
	return path, nil
}

// ShowHelp prints usage information for the sample-season tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Depth Chart Sample Season
=========================

Writes a synthetic season table in the source column layout, suitable as
pipeline input.

Usage:
  go run ./cmd/sample-season [options]

Options:
  -out string
        Output directory (default ".")
  -name string
        File name without extension (default "sample_season")
  -format string
        csv or xlsx (default "csv")
  -seed int
        Random seed; the same seed gives the same season (default 2019)
  -teams int
        Number of teams, 1 to 32 (default 32)
  -traded int
        Combined rows for traded players (default 4)
  -short int
        Players with fewer than five games (default 6)
  -kickers
        Add a kicker row per team
  -help
        Show this help message

Examples:
  go run ./cmd/sample-season -out data
  DEPTHCHART_INPUT_PATH=data/sample_season.csv go run ./cmd
`)
}
