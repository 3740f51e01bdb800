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

	"github.com/okian/cookoff/internal/adapters/artwork"
	"github.com/okian/cookoff/internal/adapters/http/api"
	"github.com/okian/cookoff/internal/adapters/http/swagger"
	"github.com/okian/cookoff/internal/adapters/repository"
	"github.com/okian/cookoff/internal/adapters/sqlscript"
	service "github.com/okian/cookoff/internal/app"
	"github.com/okian/cookoff/internal/config"
	"github.com/okian/cookoff/internal/domain/sampler"
	"github.com/okian/cookoff/pkg/logger"
	"github.com/okian/cookoff/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	os.Exit(run())
}

// run returns the process exit code.
func run() int {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.String("store", cfg.Store), logger.Error(err))
		return 1
	}
	defer closeStore()

	svc := newService(cfg, store, log)

	switch cfg.Mode {
	case config.ModeServe:
		if err := serve(ctx, cfg, svc, log); err != nil {
			log.Error(ctx, "server failed", logger.Error(err))
			return 1
		}
	default:
		if _, err := svc.Generate(ctx); err != nil {
			return 1
		}
	}
	return 0
}

// openStore returns the configured store and a func releasing it.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := repository.Connect(ctx, cfg.DatabaseURL, repository.DefaultOptions())
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() { _ = db.Close() }
		if cfg.Migrate {
			if err := repository.Migrate(ctx, db); err != nil {
				closeDB()
				return nil, nil, err
			}
		}
		return repository.NewPostgresStore(db), closeDB, nil
	default:
		if cfg.DatasetPath == "" {
			return repository.NewMemoryStore(), func() {}, nil
		}
		store, err := repository.NewMemoryStoreFromFile(cfg.DatasetPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

// newService maps configuration onto service options.
func newService(cfg *config.Config, store repository.Store, log logger.Logger) *service.Service {
	opts := []service.Option{
		service.WithLogger(log.Named("generator")),
		service.WithSeed(cfg.Seed),
		service.WithRenderer(artwork.New(cfg.ImageDir)),
		service.WithImageURLPrefix(cfg.ImageURLPrefix),
		service.WithWindowSize(cfg.WindowSize),
		service.WithOverrepresentationLimit(cfg.OverrepresentationLimit),
		service.WithMaxAttempts(cfg.MaxAttempts),
		service.WithQuota(sampler.Quota{Nationalities: cfg.NationalityQuota, Judges: cfg.JudgeQuota}),
		service.WithEpisodesPerSeason(cfg.EpisodesPerSeason),
		service.WithQueueSize(cfg.QueueSize),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithIdempotencyCacheSize(cfg.IdempotencyCacheSize),
	}
	if cfg.SQLScriptPath != "" {
		opts = append(opts, service.WithScriptWriter(sqlscript.New(cfg.SQLScriptPath)))
	}
	return service.New(store, opts...)
}

// newMux registers every HTTP route.
func newMux(ctx context.Context, svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)
	return mux
}

// serve runs the HTTP API and the batch workers until ctx is canceled.
func serve(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) error {
	svc.Start(ctx)
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen %s: %w", cfg.Addr, err)
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down server...")
	case serveErr = <-errCh:
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	if err := svc.Stop(shutdownCtx); err != nil {
		log.Error(ctx, "worker shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return serveErr
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
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

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
