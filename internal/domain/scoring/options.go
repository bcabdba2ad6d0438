package scoring

// Option applies a configuration option to the Deriver.
type Option func(*Deriver)

// WithWeightsFromConfig overrides scoring weights by stat name. Names not
// in WeightNames are ignored; see UnknownWeights.
func WithWeightsFromConfig(weights map[string]float64) Option {
	return func(d *Deriver) {
		for name, w := range weights {
			if _, ok := d.weights[name]; ok {
				d.weights[name] = w
			}
		}
	}
}

// WithStrictPerGame makes every metric per game and rounded to two
// decimals, including tight end usage.
func WithStrictPerGame(strict bool) Option {
	return func(d *Deriver) {
		d.strict = strict
	}
}
