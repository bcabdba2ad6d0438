package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names read by Load.
const (
	EnvPrefix     = "DEPTHCHART_"
	EnvConfigFile = "DEPTHCHART_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if DEPTHCHART_CONFIG is set
//  3. env (prefix DEPTHCHART_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// DEPTHCHART_MIN_GAMES -> min_games. Keys stay flat; underscores are
	// preserved to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize upper-cases role keys and lower-cases enum values.
func (c *Config) normalize() {
	// Defaults are stored upper-case, so keys that need rewriting came from
	// the file and are applied last.
	cutoffs := make(map[string]int, len(c.VolumeCutoffs))
	for role, v := range c.VolumeCutoffs {
		if role == strings.ToUpper(role) {
			cutoffs[role] = v
		}
	}
	for role, v := range c.VolumeCutoffs {
		if role != strings.ToUpper(role) {
			cutoffs[strings.ToUpper(strings.TrimSpace(role))] = v
		}
	}
	c.VolumeCutoffs = cutoffs

	formats := make([]string, 0, len(c.ExportFormats))
	for _, f := range c.ExportFormats {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	c.ExportFormats = formats

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.ShortGroupPolicy = strings.ToLower(strings.TrimSpace(c.ShortGroupPolicy))
	c.DepthChartSource = strings.ToLower(strings.TrimSpace(c.DepthChartSource))
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.InputPath == "":
		return fmt.Errorf("%w: input_path must not be empty", ErrInvalidConfig)
	case c.MinGames < 0:
		return fmt.Errorf("%w: min_games must not be negative", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format %q (want text or json)", ErrInvalidConfig, c.LogFormat)
	case c.Serve && c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	case c.MaxReports < 1:
		return fmt.Errorf("%w: max_reports must be positive", ErrInvalidConfig)
	}

	switch c.ShortGroupPolicy {
	case "error", "exclude", "legacy":
	default:
		return fmt.Errorf("%w: short_group_policy %q (want error, exclude or legacy)", ErrInvalidConfig, c.ShortGroupPolicy)
	}

	switch c.DepthChartSource {
	case "derived", "thresholded":
	default:
		return fmt.Errorf("%w: depth_chart_source %q (want derived or thresholded)", ErrInvalidConfig, c.DepthChartSource)
	}

	for _, f := range c.ExportFormats {
		if f != "csv" && f != "xlsx" {
			return fmt.Errorf("%w: export format %q (want csv or xlsx)", ErrInvalidConfig, f)
		}
	}

	for role, v := range c.VolumeCutoffs {
		switch role {
		case "QB", "RB", "WR", "TE":
		default:
			return fmt.Errorf("%w: volume_cutoffs role %q", ErrInvalidConfig, role)
		}
		if v < 0 {
			return fmt.Errorf("%w: volume_cutoffs[%s] must not be negative", ErrInvalidConfig, role)
		}
	}
	return nil
}
