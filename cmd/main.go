package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/okian/depthchart/internal/adapters/http/api"
	"github.com/okian/depthchart/internal/adapters/http/swagger"
	"github.com/okian/depthchart/internal/adapters/render"
	repository "github.com/okian/depthchart/internal/adapters/repository"
	"github.com/okian/depthchart/internal/adapters/tableio"
	app "github.com/okian/depthchart/internal/app"
	"github.com/okian/depthchart/internal/config"
	"github.com/okian/depthchart/internal/domain/depth"
	"github.com/okian/depthchart/internal/domain/filter"
	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/scoring"
	"github.com/okian/depthchart/pkg/logger"
	"github.com/okian/depthchart/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

// plotsDir is the subdirectory of the output directory holding figures.
const plotsDir = "plots"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithJSON(cfg.LogFormat == "json")); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, loggerInstance); err != nil {
		loggerInstance.Error(ctx, "depthchart failed", logger.Error(err))
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}

// run executes the pipeline once and, when configured, serves the report
// API until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}

	rep, err := svc.RunFile(ctx, cfg.InputPath)
	if err != nil {
		return fmt.Errorf("run %s: %w", cfg.InputPath, err)
	}
	log.Info(ctx, "report ready",
		logger.String("runID", rep.RunID),
		logger.String("output_dir", cfg.OutputDir),
	)

	if !cfg.Serve {
		return nil
	}
	return serve(ctx, cfg, svc, log)
}

// newService builds the pipeline service from configuration.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, error) {
	policy, err := depth.ParsePolicy(cfg.ShortGroupPolicy)
	if err != nil {
		return nil, err
	}

	cutoffs := make(map[model.Role]int, len(cfg.VolumeCutoffs))
	for name, v := range cfg.VolumeCutoffs {
		role, ok := model.ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("%w: volume_cutoffs role %q", config.ErrInvalidConfig, name)
		}
		cutoffs[role] = v
	}

	if unknown := scoring.UnknownWeights(cfg.ScoringWeights); len(unknown) > 0 {
		log.Warn(ctx, "ignoring unknown scoring weights",
			logger.String("weights", strings.Join(unknown, ",")),
			logger.String("known", strings.Join(scoring.WeightNames(), ",")),
		)
	}

	opts := []app.Option{
		app.WithLogger(log.Named("pipeline")),
		app.WithRowFilter(filter.NewRowFilter(
			filter.WithMinGames(cfg.MinGames),
			filter.WithSentinels(cfg.MultiTeamSentinels...),
		)),
		app.WithThresholds(filter.NewThresholds(filter.WithCutoffs(cutoffs))),
		app.WithDeriver(scoring.NewDeriver(
			scoring.WithWeightsFromConfig(cfg.ScoringWeights),
			scoring.WithStrictPerGame(cfg.StrictPerGame),
		)),
		app.WithShortGroupPolicy(policy),
		app.WithDepthChartSource(app.Source(cfg.DepthChartSource)),
		app.WithStore(repository.NewMemoryStore(repository.WithMaxReports(cfg.MaxReports))),
	}
	if len(cfg.ExportFormats) > 0 {
		opts = append(opts, app.WithExporter(tableio.NewExporter(cfg.OutputDir), cfg.ExportFormats...))
	}
	if cfg.RenderPlots {
		opts = append(opts, app.WithRenderer(render.NewJSONRenderer(filepath.Join(cfg.OutputDir, plotsDir))))
	}
	return app.New(opts...), nil
}

// newMux registers the documentation and report API routes.
func newMux(ctx context.Context, cfg *config.Config, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, cfg.MaxLeaderboardLimit).Register(ctx, mux)
	return mux
}

func serve(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) error {
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater refreshes process gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
