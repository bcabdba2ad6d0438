// Package render defines the plot sink and a renderer that writes
// Plotly-compatible figure JSON files.
package render

import (
	"context"

	"github.com/okian/depthchart/internal/domain/stats"
)

// Point is one scatter marker.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// ScatterPlot is a scatter of Points with an optional regression line.
type ScatterPlot struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	Points []Point
	Fit    *stats.LinearFit
}

// Heatmap is a labelled square matrix. NaN cells are drawn empty.
type Heatmap struct {
	Name   string
	Title  string
	Labels []string
	Values [][]float64
}

// Renderer draws plots. Implementations must not retain the arguments.
type Renderer interface {
	Scatter(ctx context.Context, p ScatterPlot) error
	Heatmap(ctx context.Context, h Heatmap) error
}

// Nop discards every plot.
type Nop struct{}

// Scatter implements Renderer.
func (Nop) Scatter(context.Context, ScatterPlot) error { return nil }

// Heatmap implements Renderer.
func (Nop) Heatmap(context.Context, Heatmap) error { return nil }
