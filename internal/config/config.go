// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load(ctx) layers a YAML file and environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// InputPath is the season table to ingest (.csv or .xlsx).
	InputPath string `koanf:"input_path"`

	// OutputDir receives exported tables and plot figures.
	OutputDir string `koanf:"output_dir"`

	// ExportFormats lists table exports to write: csv, xlsx.
	ExportFormats []string `koanf:"export_formats"`

	// RenderPlots writes scatter and heatmap figures when true.
	RenderPlots bool `koanf:"render_plots"`

	// MinGames drops players with fewer games played.
	MinGames int `koanf:"min_games"`

	// MultiTeamSentinels are team values marking a traded player's combined row.
	MultiTeamSentinels []string `koanf:"multi_team_sentinels"`

	// VolumeCutoffs maps a role to its exclusive volume cutoff.
	VolumeCutoffs map[string]int `koanf:"volume_cutoffs"`

	// StrictPerGame makes every role's metrics per game and rounded.
	StrictPerGame bool `koanf:"strict_per_game"`

	// ShortGroupPolicy decides what happens to teams with fewer than N players
	// at a depth chart slot: error, exclude or legacy.
	ShortGroupPolicy string `koanf:"short_group_policy"`

	// DepthChartSource picks the subsets fed to the depth chart:
	// derived (before volume cutoffs) or thresholded.
	DepthChartSource string `koanf:"depth_chart_source"`

	// ScoringWeights overrides fantasy scoring weights by stat name.
	ScoringWeights map[string]float64 `koanf:"scoring_weights"`

	// Serve keeps the process running with the report API after a run.
	Serve bool `koanf:"serve"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// MaxReports bounds how many reports the store keeps.
	MaxReports int `koanf:"max_reports"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		InputPath:          "2019.csv",
		OutputDir:          "out",
		ExportFormats:      []string{"csv", "xlsx"},
		RenderPlots:        true,
		MinGames:           5,
		MultiTeamSentinels: []string{"2TM", "3TM"},
		VolumeCutoffs: map[string]int{
			"QB": 20,
			"RB": 20,
			"WR": 20,
			"TE": 10,
		},
		StrictPerGame:       false,
		ShortGroupPolicy:    "error",
		DepthChartSource:    "derived",
		ScoringWeights:      map[string]float64{},
		Serve:               false,
		Addr:                ":9080",
		MaxLeaderboardLimit: 100,
		MaxReports:          16,
	}
}
