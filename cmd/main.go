package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/diarisk/internal/adapters/artifacts"
	"github.com/okian/diarisk/internal/adapters/http/api"
	"github.com/okian/diarisk/internal/adapters/http/site"
	"github.com/okian/diarisk/internal/adapters/http/swagger"
	"github.com/okian/diarisk/internal/adapters/remote"
	"github.com/okian/diarisk/internal/app"
	"github.com/okian/diarisk/internal/config"
	"github.com/okian/diarisk/internal/domain/estimate"
	"github.com/okian/diarisk/internal/domain/i18n"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
	"github.com/okian/diarisk/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithJSON(cfg.LogJSON)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	predictor, err := buildPredictor(ctx, cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to build predictor", logger.Error(err))
		stop()
		os.Exit(1)
	}

	skin, _ := estimate.ParseSkinFormula(cfg.SkinFormula) // checked by cfg.Validate
	svcOpts := []app.Option{app.WithLogger(loggerInstance.Named("app")), app.WithSkinFormula(skin)}
	if predictor != nil {
		svcOpts = append(svcOpts, app.WithPredictor(predictor))
	}
	svc := app.New(svcOpts...)

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("predictor", cfg.Predictor),
			logger.Bool("prediction_enabled", svc.PredictionEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildPredictor assembles the configured predictor. A nil predictor with a
// nil error means prediction is disabled: either by configuration or because
// the artifacts are not on disk.
func buildPredictor(ctx context.Context, cfg *config.Config) (predict.Predictor, error) {
	log := logger.Named("startup")
	loader := artifacts.NewLoader()

	switch cfg.Predictor {
	case config.PredictorNone:
		log.Info(ctx, "prediction disabled by configuration")
		return nil, nil

	case config.PredictorRemote:
		scaler, err := loader.LoadScaler(ctx, cfg.ScalerPath)
		if errors.Is(err, artifacts.ErrArtifactNotFound) {
			log.Warn(ctx, i18n.Lookup(i18n.English, i18n.KeyArtifactsMissing), logger.Error(err))
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		classifier, err := remote.New(cfg.RemoteURL,
			remote.WithTimeout(time.Duration(cfg.RemoteTimeoutMS)*time.Millisecond),
			remote.WithLogger(logger.Named("remote")),
		)
		if err != nil {
			return nil, fmt.Errorf("remote classifier: %w", err)
		}
		pipeline, err := predict.NewPipeline(scaler, classifier)
		if err != nil {
			return nil, err
		}
		return pipeline, nil

	default:
		set, err := loader.Load(ctx, cfg.ModelPath, cfg.ScalerPath)
		if errors.Is(err, artifacts.ErrArtifactNotFound) {
			log.Warn(ctx, i18n.Lookup(i18n.English, i18n.KeyArtifactsMissing), logger.Error(err))
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		log.Info(ctx, i18n.Lookup(i18n.English, i18n.KeyArtifactsLoaded),
			logger.String("model", cfg.ModelPath),
			logger.String("scaler", cfg.ScalerPath),
		)
		pipeline, err := set.Predictor()
		if err != nil {
			return nil, err
		}
		return pipeline, nil
	}
}

// newMux registers the API, docs and form routes.
func newMux(ctx context.Context, cfg *config.Config, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	skin, _ := estimate.ParseSkinFormula(cfg.SkinFormula)
	api.NewServer(svc, svc,
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithLanguage(i18n.ParseLang(cfg.Language)),
		api.WithSkinFormula(skin),
		api.WithLogger(logger.Named("api")),
	).Register(mux)
	return mux
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
