package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/depthchart/internal/adapters/render"
	"github.com/okian/depthchart/internal/adapters/tableio"
	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/report"
	"github.com/okian/depthchart/pkg/logger"
)

// workbookName is the file stem of the combined XLSX export.
const workbookName = "depthchart_report"

// reportSheets lists every exported table in workbook order.
func reportSheets(rep *report.Report) []tableio.Sheet {
	sheets := make([]tableio.Sheet, 0, 2*len(model.Roles)+3)
	for _, phase := range []struct {
		name        string
		thresholded bool
	}{{"derived", false}, {"thresholded", true}} {
		for _, role := range model.Roles {
			subset, ok := rep.Subset(role, phase.thresholded)
			if !ok {
				continue
			}
			sheets = append(sheets, tableio.Sheet{
				Name:  strings.ToLower(string(role)) + "_" + phase.name,
				Table: report.SubsetTable(subset),
			})
		}
	}
	return append(sheets,
		tableio.Sheet{Name: "depth_chart", Table: rep.DepthChart.Table()},
		tableio.Sheet{Name: "correlation", Table: rep.Correlation.Table()},
		tableio.Sheet{Name: "fits", Table: rep.FitsTable()},
	)
}

func (s *Service) export(ctx context.Context, rep *report.Report) error {
	sheets := reportSheets(rep)
	for _, format := range s.exportFormats {
		switch format {
		case "csv":
			for _, sh := range sheets {
				if _, err := s.exporter.WriteCSV(ctx, sh.Name, sh.Table); err != nil {
					return err
				}
			}
		case "xlsx":
			if _, err := s.exporter.WriteWorkbook(ctx, workbookName, sheets); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %q", tableio.ErrUnsupportedFormat, format)
		}
	}
	s.logger.Debug(ctx, "exported report tables",
		logger.String("dir", s.exporter.Dir()),
		logger.Int("tables", len(sheets)),
		logger.Any("formats", s.exportFormats),
	)
	return nil
}

var metricLabels = map[model.Metric]string{
	model.MetricUsage:         "Usage per game",
	model.MetricFantasyPoints: "Fantasy points per game",
	model.MetricTouchdowns:    "Touchdowns per game",
}

func (s *Service) render(ctx context.Context, rep *report.Report) error {
	fits := make(map[string]int, len(rep.Fits))
	for i, f := range rep.Fits {
		fits[f.X+"|"+f.Y] = i
	}

	for _, def := range scatterDefs {
		subset := rep.Thresholded[def.role]
		plot := render.ScatterPlot{
			Name:   def.name,
			Title:  def.title,
			XLabel: metricLabels[def.x],
			YLabel: metricLabels[def.y],
			Points: make([]render.Point, len(subset.Rows)),
		}
		for i, p := range subset.Rows {
			plot.Points[i] = render.Point{X: p.Value(def.x), Y: p.Value(def.y), Label: p.Player}
		}
		x, y := metricSeries(subset, def.x), metricSeries(subset, def.y)
		if i, ok := fits[x.Name+"|"+y.Name]; ok {
			plot.Fit = &rep.Fits[i]
		}
		if err := s.renderer.Scatter(ctx, plot); err != nil {
			return fmt.Errorf("scatter %s: %w", def.name, err)
		}
	}

	if err := s.renderer.Heatmap(ctx, render.Heatmap{
		Name:   "depth_chart_correlation",
		Title:  "Correlation of fantasy points per game across depth chart slots",
		Labels: rep.Correlation.Labels,
		Values: rep.Correlation.Values,
	}); err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}
	return nil
}
