package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/revopsstack/revleak/internal/api"
	"github.com/revopsstack/revleak/internal/audit"
	"github.com/revopsstack/revleak/internal/config"
	"github.com/revopsstack/revleak/internal/engine"
	"github.com/revopsstack/revleak/internal/metrics"
	"github.com/revopsstack/revleak/internal/notify"
	"github.com/revopsstack/revleak/internal/policy"
	"github.com/revopsstack/revleak/internal/services"
	"github.com/revopsstack/revleak/internal/store"
	"github.com/revopsstack/revleak/internal/utils"
)

func main() {
	var configPath string
	var loadDemo bool
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&loadDemo, "demo", false, "Seed the engine with demo data on startup")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	slog.SetDefault(logger)
	logger.Info("starting leak-engine", slog.String("address", cfg.Server.Address))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		os.Exit(1)
	}

	loader, err := policy.NewLoader(cfg.Policy.Path)
	if err != nil {
		logger.Error("failed to load scan policy", slog.String("path", cfg.Policy.Path), slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Policy.Watch {
		loader.OnChange(func(pol policy.Policy) {
			logger.Info("scan policy reloaded",
				slog.Int("sla_minutes", pol.SLAMinutes),
				slog.Int("stale_days", pol.StaleDays),
				slog.Int64("error_budget_usd", pol.ErrorBudgetUSD))
		})
		stopWatch, err := loader.Watch()
		if err != nil {
			logger.Warn("policy watcher unavailable (hot-reload disabled)", slog.Any("error", err))
		} else {
			defer stopWatch()
		}
	}

	var notifier *notify.SlackNotifier
	if cfg.Slack.WebhookURL != "" {
		notifier = notify.NewSlackNotifier(cfg.Slack.WebhookURL, cfg.Slack.Channel, cfg.Slack.Timeout, logger)
	}

	pipeline := engine.NewPipeline(logger, engine.NewAggregator(logger))
	svc := services.NewLeakService(logger, loader, store.New(), pipeline, notifier, audit.NewLog("leak-engine"))

	if loadDemo {
		svc.LoadSampleData()
		svc.Scan()
	}

	var scheduler *services.Scheduler
	if cfg.Scan.Schedule != "" {
		scheduler, err = services.NewScheduler(logger, svc, cfg.Scan.Schedule)
		if err != nil {
			logger.Error("invalid scan schedule", slog.String("schedule", cfg.Scan.Schedule), slog.Any("error", err))
			os.Exit(1)
		}
		scheduler.Start()
	}

	server, err := api.NewServer(cfg.Server, api.New(svc))
	if err != nil {
		logger.Error("failed to create HTTP server", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("HTTP server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	server.Shutdown(shutdownCtx)

	// Give remaining goroutines time to finish logging
	time.Sleep(100 * time.Millisecond)
	logger.Info("leak-engine stopped")
}
