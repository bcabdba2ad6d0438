package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// LinearFit is an ordinary least squares line y = Slope*x + Intercept.
type LinearFit struct {
	X         string  `json:"x"`
	Y         string  `json:"y"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	N         int     `json:"n"`
}

// FitLine fits y on x. It fails with ErrDegenerateFit when there are
// fewer than two points or x does not vary.
func FitLine(x, y Series) (LinearFit, error) {
	if len(x.Values) != len(y.Values) {
		return LinearFit{}, fmt.Errorf("%w: %s has %d rows, %s has %d", ErrShape, x.Name, len(x.Values), y.Name, len(y.Values))
	}
	xs, ys := complete(x, y)
	fit := LinearFit{X: x.Name, Y: y.Name, N: len(xs)}
	if len(xs) < minPairs {
		return LinearFit{}, fmt.Errorf("%w: %s vs %s has %d points", ErrDegenerateFit, y.Name, x.Name, len(xs))
	}
	if constant(xs) {
		return LinearFit{}, fmt.Errorf("%w: %s does not vary", ErrDegenerateFit, x.Name)
	}

	fit.Intercept, fit.Slope = stat.LinearRegression(xs, ys, nil, false)
	return fit, nil
}

// Predict evaluates the line at x.
func (f LinearFit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}
