package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"covrecord/internal/console"
	"covrecord/internal/doctor/resolver"
	"covrecord/internal/intake"
	"covrecord/internal/intake/tube"
	"covrecord/internal/platform/config"
	"covrecord/internal/platform/httpserver"
	"covrecord/internal/platform/logger"
	"covrecord/internal/platform/metrics"
	platformredis "covrecord/internal/platform/redis"
	"covrecord/internal/registry"
	registrymetrics "covrecord/internal/registry/metrics"
	"covrecord/internal/registry/providers/inami"
	"covrecord/internal/registry/store"
	"covrecord/pkg/requestcontext"
)

const purgeInterval = time.Minute

// main wires the registry pipeline, the operator console and the optional ops
// server, then runs the patient loop until the operator quits.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "covrecord:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLog(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()
	log, err := logger.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = requestcontext.WithOperator(ctx, cfg.Intake.Operator)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	workflowMetrics := metrics.New(reg)
	registryMetrics := registrymetrics.New(reg)

	healthChecks := map[string]httpserver.HealthCheck{}
	var cache registry.Cache
	var memCache *store.InMemoryCache
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	switch {
	case err != nil:
		return err
	case redisClient != nil:
		defer redisClient.Close()
		cache = store.NewRedisCache(redisClient.Client, cfg.Registry.CacheTTL, registryMetrics)
		healthChecks["redis"] = redisClient.Health
		log.InfoContext(ctx, "registry cache backed by redis")
	default:
		memCache = store.NewInMemoryCache(cfg.Registry.CacheTTL)
		cache = memCache
	}

	provider := inami.New("inami",
		inami.WithLogger(log),
		inami.WithTimeout(cfg.Registry.Timeout),
		inami.WithRetries(cfg.Registry.Retries),
		inami.WithBackoff(cfg.Registry.Backoff),
	)
	registryService, err := registry.New(provider,
		registry.WithLogger(log),
		registry.WithCache(cache),
		registry.WithMetrics(registryMetrics),
		registry.WithBaseURL(cfg.Registry.BaseURL),
	)
	if err != nil {
		return err
	}

	operator := console.New(os.Stdin, os.Stdout)
	doctors, err := resolver.New(registryService, operator,
		resolver.WithLogger(log),
		resolver.WithMetrics(workflowMetrics),
		resolver.WithMaxAttempts(cfg.MaxAttempts),
	)
	if err != nil {
		return err
	}

	eidOpts := []intake.EIDOption{intake.WithEIDLogger(log)}
	if len(cfg.Intake.ExportCommand) > 0 {
		eidOpts = append(eidOpts, intake.WithExportCommand(cfg.Intake.ExportCommand[0], cfg.Intake.ExportCommand[1:]...))
	}
	identities := intake.NewEIDFile(cfg.Intake.EIDPath, eidOpts...)
	if err := identities.Reset(); err != nil {
		return err
	}

	formFile, err := os.OpenFile(cfg.Intake.FormOutput, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open form output: %w", err)
	}
	defer formFile.Close()

	workflow, err := intake.New(identities, intake.NewConsoleContacts(operator), doctors, intake.NewJSONSink(formFile), operator,
		intake.WithLogger(log),
		intake.WithMetrics(workflowMetrics),
		intake.WithScheduling(intake.NewLogSink("scheduling", log)),
	)
	if err != nil {
		return err
	}

	var predicted tube.ID
	if cfg.Intake.FirstTube != "" {
		if predicted, err = tube.Parse(cfg.Intake.FirstTube); err != nil {
			return fmt.Errorf("COVRECORD_FIRST_TUBE: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, loopDone := context.WithCancel(gctx)
	g.Go(func() error {
		defer loopDone()
		return workflow.Run(loopCtx, predicted)
	})
	if cfg.MetricsAddr != "" {
		srv := httpserver.New(cfg.MetricsAddr, httpserver.NewRouter(reg, healthChecks))
		g.Go(func() error {
			return httpserver.Serve(loopCtx, srv, log)
		})
	}
	if memCache != nil {
		g.Go(func() error {
			purgeExpired(loopCtx, memCache, log)
			return nil
		})
	}

	log.InfoContext(ctx, "covrecord started", "operator", cfg.Intake.Operator, "first_tube", predicted.String())
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.ErrorContext(ctx, "covrecord stopped", "error", err)
		return err
	}
	log.InfoContext(ctx, "covrecord stopped")
	return nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func purgeExpired(ctx context.Context, cache *store.InMemoryCache, log *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := cache.Purge(); n > 0 {
				log.DebugContext(ctx, "purged expired registry searches", "count", n)
			}
		}
	}
}
