package render

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// JSONRenderer writes one <name>.json figure per plot under a directory.
type JSONRenderer struct {
	dir string
}

// NewJSONRenderer creates a renderer that writes into dir.
func NewJSONRenderer(dir string) *JSONRenderer {
	return &JSONRenderer{dir: dir}
}

type axis struct {
	Title title `json:"title"`
}

type title struct {
	Text string `json:"text"`
}

type layout struct {
	Title title `json:"title"`
	XAxis axis  `json:"xaxis"`
	YAxis axis  `json:"yaxis"`
}

type trace struct {
	Type string      `json:"type"`
	Mode string      `json:"mode,omitempty"`
	Name string      `json:"name,omitempty"`
	X    interface{} `json:"x"`
	Y    interface{} `json:"y"`
	Z    interface{} `json:"z,omitempty"`
	Text []string    `json:"text,omitempty"`
	ZMin *float64    `json:"zmin,omitempty"`
	ZMax *float64    `json:"zmax,omitempty"`
}

type figure struct {
	Data   []trace `json:"data"`
	Layout layout  `json:"layout"`
}

// Scatter implements Renderer.
func (r *JSONRenderer) Scatter(ctx context.Context, p ScatterPlot) error {
	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	text := make([]string, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i], text[i] = pt.X, pt.Y, pt.Label
	}

	fig := figure{
		Data: []trace{{Type: "scatter", Mode: "markers", Name: p.YLabel, X: xs, Y: ys, Text: text}},
		Layout: layout{
			Title: title{Text: p.Title},
			XAxis: axis{Title: title{Text: p.XLabel}},
			YAxis: axis{Title: title{Text: p.YLabel}},
		},
	}
	if p.Fit != nil && len(xs) > 0 {
		lo, hi := xs[0], xs[0]
		for _, x := range xs[1:] {
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
		fig.Data = append(fig.Data, trace{
			Type: "scatter",
			Mode: "lines",
			Name: "OLS",
			X:    []float64{lo, hi},
			Y:    []float64{p.Fit.Predict(lo), p.Fit.Predict(hi)},
		})
	}
	return r.write(ctx, p.Name, fig)
}

// Heatmap implements Renderer.
func (r *JSONRenderer) Heatmap(ctx context.Context, h Heatmap) error {
	z := make([][]*float64, len(h.Values))
	for i, row := range h.Values {
		z[i] = make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) {
				v := row[j]
				z[i][j] = &v
			}
		}
	}
	lo, hi := -1.0, 1.0
	fig := figure{
		Data:   []trace{{Type: "heatmap", X: h.Labels, Y: h.Labels, Z: z, ZMin: &lo, ZMax: &hi}},
		Layout: layout{Title: title{Text: h.Title}},
	}
	return r.write(ctx, h.Name, fig)
}

func (r *JSONRenderer) write(ctx context.Context, name string, fig figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(fig, "", "  ")
	if err != nil {
		return fmt.Errorf("encode figure %s: %w", name, err)
	}
	b = append(b, '\n')
	return os.WriteFile(filepath.Join(r.dir, name+".json"), b, 0o644)
}
