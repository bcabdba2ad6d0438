package service_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/okian/depthchart/internal/adapters/render"
	"github.com/okian/depthchart/internal/adapters/repository"
	"github.com/okian/depthchart/internal/adapters/tableio"
	service "github.com/okian/depthchart/internal/app"
	"github.com/okian/depthchart/internal/domain/depth"
	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/schema"
	"github.com/okian/depthchart/internal/domain/table"
	"github.com/okian/depthchart/internal/sampledata"
	"github.com/okian/depthchart/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

// recordingRenderer keeps the names of every plot it receives.
type recordingRenderer struct {
	mu       sync.Mutex
	scatters []render.ScatterPlot
	heatmaps []render.Heatmap
}

func (r *recordingRenderer) Scatter(_ context.Context, p render.ScatterPlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scatters = append(r.scatters, p)
	return nil
}

func (r *recordingRenderer) Heatmap(_ context.Context, h render.Heatmap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heatmaps = append(r.heatmaps, h)
	return nil
}

func TestService_Run(t *testing.T) {
	Convey("Given a service and a generated season", t, func() {
		ctx := context.Background()
		rec := &recordingRenderer{}
		svc := service.New(service.WithRenderer(rec))
		season := sampledata.NewGenerator(sampledata.WithKickers(true)).Generate()

		Convey("When the pipeline runs", func() {
			rep, err := svc.Run(ctx, season)

			Convey("Then it produces a full depth chart", func() {
				So(err, ShouldBeNil)
				So(rep.RunID, ShouldNotBeEmpty)
				So(rep.DepthChart.Teams, ShouldHaveLength, 32)
				So(rep.DepthChart.Labels(), ShouldResemble, []string{"QB1", "RB1", "RB2", "WR1", "WR2", "WR3", "TE1"})
				So(rep.Correlation.Labels, ShouldHaveLength, 7)
				qb, ok := rep.Correlation.At("QB1", "QB1")
				So(ok, ShouldBeTrue)
				So(qb, ShouldEqual, 1.0)
			})

			Convey("And the counts describe each stage", func() {
				So(rep.Counts.Ingested, ShouldEqual, 32*12+4+6)
				So(rep.Counts.Dropped["multi_team"], ShouldEqual, 4)
				So(rep.Counts.Dropped["min_games"], ShouldEqual, 6)
				So(rep.Counts.Discarded, ShouldEqual, 32)
				So(rep.Counts.Derived["QB"], ShouldEqual, 64)
				So(rep.Counts.Derived["WR"], ShouldEqual, 128)
				So(rep.Counts.Thresholded["WR"], ShouldBeLessThanOrEqualTo, 128)
			})

			Convey("And every scatter and the heatmap are rendered", func() {
				So(rec.scatters, ShouldHaveLength, 3)
				So(rec.scatters[0].Name, ShouldEqual, "rb_usage_vs_fppg")
				So(rec.scatters[0].Fit, ShouldNotBeNil)
				So(rec.scatters[2].Title, ShouldEqual, "Wide Receiver Usage vs Fantasy Points")
				So(rec.heatmaps, ShouldHaveLength, 1)
				So(rep.Fits, ShouldHaveLength, 3)
			})

			Convey("And the report is published", func() {
				latest, err := svc.Latest(ctx)
				So(err, ShouldBeNil)
				So(latest.RunID, ShouldEqual, rep.RunID)

				byID, err := svc.Report(ctx, rep.RunID)
				So(err, ShouldBeNil)
				So(byID, ShouldEqual, latest)

				board, err := svc.Leaderboard(ctx, model.RoleRB, 5)
				So(err, ShouldBeNil)
				So(board, ShouldHaveLength, 5)
				So(board[0].Rank, ShouldEqual, 1)
				So(board[0].Score, ShouldBeGreaterThanOrEqualTo, board[4].Score)

				entry, err := svc.Rank(ctx, model.RoleRB, "  "+board[2].Player+" ")
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 3)
			})

			Convey("And the stats reflect the run", func() {
				st := svc.GetStats()
				So(st["runs"], ShouldEqual, 1)
				So(st["failures"], ShouldEqual, 0)
				So(st["reports"], ShouldEqual, 1)
				So(st["last_run_id"], ShouldEqual, rep.RunID)
				So(st["short_group_policy"], ShouldEqual, "error")
			})
		})

		Convey("When the same table is run", func() {
			before := season.Clone()
			_, err := svc.Run(ctx, season)

			Convey("Then the raw table is untouched", func() {
				So(err, ShouldBeNil)
				So(season.Columns, ShouldResemble, before.Columns)
				So(season.Rows, ShouldResemble, before.Rows)
			})
		})
	})
}

func TestService_Failures(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		svc := service.New()

		Convey("When the table lacks an expected column", func() {
			_, err := svc.Run(ctx, table.New([]string{"Player", "Tm"}, [][]string{{"A", "KAN"}}))

			Convey("Then the run fails with a schema error and nothing is published", func() {
				So(errors.Is(err, schema.ErrSchema), ShouldBeTrue)
				So(err.Error(), ShouldStartWith, "map:")
				_, err := svc.Latest(ctx)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

				st := svc.GetStats()
				So(st["failures"], ShouldEqual, 1)
				So(st["last_error"], ShouldNotBeEmpty)
			})
		})

		Convey("When a team is short a wide receiver", func() {
			season := sampledata.NewGenerator(
				sampledata.WithTeams(2),
				sampledata.WithMultiTeamRows(0),
				sampledata.WithShortSeasonRows(0),
			).Generate()
			// Drop ARI's third and fourth receivers.
			rows := make([][]string, 0, len(season.Rows))
			for _, r := range season.Rows {
				if r[1] == "ARI WR3" || r[1] == "ARI WR4" {
					continue
				}
				rows = append(rows, r)
			}
			season.Rows = rows

			_, errDefault := svc.Run(ctx, season)
			rep, errExclude := service.New(service.WithShortGroupPolicy(depth.PolicyExclude)).Run(ctx, season)

			Convey("Then the error policy fails and exclude leaves the slot empty", func() {
				So(errors.Is(errDefault, depth.ErrEmptyGroup), ShouldBeTrue)
				So(errExclude, ShouldBeNil)
				So(rep.DepthChart.Teams, ShouldResemble, []string{"ARI", "ATL"})
				So(rep.DepthChart.Cells[0][5].Present, ShouldBeFalse)
				So(rep.DepthChart.Cells[1][5].Present, ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Run(cctx, sampledata.NewGenerator(sampledata.WithTeams(1)).Generate())

			Convey("Then the run stops", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestService_ThresholdedSource(t *testing.T) {
	Convey("Given a service charting thresholded subsets", t, func() {
		svc := service.New(
			service.WithDepthChartSource(service.SourceThresholded),
			service.WithShortGroupPolicy(depth.PolicyExclude),
		)

		Convey("When the pipeline runs", func() {
			rep, err := svc.Run(context.Background(), sampledata.NewGenerator().Generate())

			Convey("Then only players above the cutoffs are charted", func() {
				So(err, ShouldBeNil)
				kept := map[string]bool{}
				for _, p := range rep.Thresholded[model.RoleWR].Rows {
					kept[p.Player] = true
				}
				for i := range rep.DepthChart.Teams {
					for j, slot := range rep.DepthChart.Slots {
						cell := rep.DepthChart.Cells[i][j]
						if slot.Role == model.RoleWR && cell.Present {
							So(kept[cell.Player], ShouldBeTrue)
						}
					}
				}
				So(svc.GetStats()["depth_chart_source"], ShouldEqual, "thresholded")
			})
		})
	})
}

func TestService_Export(t *testing.T) {
	Convey("Given a service exporting CSV and XLSX", t, func() {
		dir := t.TempDir()
		svc := service.New(service.WithExporter(tableio.NewExporter(dir), "csv", "xlsx"))
		ctx := context.Background()

		Convey("When a run completes", func() {
			path := filepath.Join(dir, "season.csv")
			_, err := tableio.NewExporter(dir).WriteCSV(ctx, "season", sampledata.NewGenerator().Generate())
			So(err, ShouldBeNil)

			rep, err := svc.RunFile(ctx, path)

			Convey("Then every table is written", func() {
				So(err, ShouldBeNil)
				So(rep.Source, ShouldEqual, path)
				for _, name := range []string{
					"qb_derived.csv", "te_thresholded.csv", "depth_chart.csv",
					"correlation.csv", "fits.csv", "depthchart_report.xlsx",
				} {
					_, statErr := os.Stat(filepath.Join(dir, name))
					So(statErr, ShouldBeNil)
				}

				chart, err := tableio.Read(ctx, filepath.Join(dir, "depth_chart.csv"))
				So(err, ShouldBeNil)
				So(chart.Len(), ShouldEqual, 32)
			})
		})

		Convey("When the input file does not exist", func() {
			_, err := svc.RunFile(ctx, filepath.Join(dir, "missing.csv"))

			Convey("Then the read stage fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, "read:")
				So(svc.GetStats()["failures"], ShouldEqual, 1)
			})
		})
	})
}

func TestService_ExportFailureIsNotPublished(t *testing.T) {
	Convey("Given a service whose export directory is a regular file", t, func() {
		blocker := filepath.Join(t.TempDir(), "not-a-dir")
		So(os.WriteFile(blocker, []byte("x"), 0o600), ShouldBeNil)
		svc := service.New(service.WithExporter(tableio.NewExporter(blocker), "csv"))
		ctx := context.Background()

		Convey("When the pipeline runs", func() {
			rep, err := svc.Run(ctx, sampledata.NewGenerator().Generate())

			Convey("Then the export stage fails and no report is published", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, "export:")
				So(rep, ShouldBeNil)

				_, latestErr := svc.Latest(ctx)
				So(errors.Is(latestErr, repository.ErrNotFound), ShouldBeTrue)
				So(svc.GetStats()["failures"], ShouldEqual, 1)
			})
		})
	})
}

func TestService_ConcurrentRuns(t *testing.T) {
	Convey("Given one service shared by several goroutines", t, func() {
		svc := service.New()
		season := sampledata.NewGenerator().Generate()
		const workers = 8

		Convey("When they run the pipeline at the same time", func() {
			var wg sync.WaitGroup
			errs := make([]error, workers)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = svc.Run(context.Background(), season)
				}(i)
			}
			wg.Wait()

			Convey("Then every run succeeds and is counted", func() {
				for _, err := range errs {
					So(err, ShouldBeNil)
				}
				So(svc.GetStats()["runs"], ShouldEqual, workers)
				_, err := svc.Latest(context.Background())
				So(err, ShouldBeNil)
			})
		})
	})
}
