package sampledata

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed sets the random seed. The same seed yields the same table.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithTeams limits the season to the first n teams. Values outside
// 1..32 are ignored.
func WithTeams(n int) Option {
	return func(g *Generator) {
		if n > 0 && n <= len(Teams) {
			g.teams = n
		}
	}
}

// WithMultiTeamRows adds n combined rows for traded players.
func WithMultiTeamRows(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.multiTeam = n
		}
	}
}

// WithShortSeasonRows adds n players with fewer than five games.
func WithShortSeasonRows(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.shortSeason = n
		}
	}
}

// WithKickers adds one kicker row per team, which the splitter discards.
func WithKickers(enabled bool) Option {
	return func(g *Generator) {
		g.kickers = enabled
	}
}
