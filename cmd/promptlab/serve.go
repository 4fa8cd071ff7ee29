package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/wonwomen07/prompt-engineering/internal/compare"
	"github.com/wonwomen07/prompt-engineering/internal/config"
	"github.com/wonwomen07/prompt-engineering/internal/httpapi"
	"github.com/wonwomen07/prompt-engineering/internal/httpapi/handlers"
	"github.com/wonwomen07/prompt-engineering/internal/httpapi/middleware"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
	"github.com/wonwomen07/prompt-engineering/internal/logger"
	"github.com/wonwomen07/prompt-engineering/internal/metrics"
	"github.com/wonwomen07/prompt-engineering/internal/service"
	"github.com/wonwomen07/prompt-engineering/internal/tracing"
	"github.com/wonwomen07/prompt-engineering/internal/usage"
)

const shutdownGrace = 15 * time.Second

type serveFlags struct {
	configFile string
	addr       string
}

func newServeCmd() *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.configFile, _ = cmd.Flags().GetString("config")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, f)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func runServe(ctx context.Context, f serveFlags) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return &exitError{code: exitCodeBadInput, err: err}
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return err
	}
	defer log.Sync()

	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := tracing.Init(ctx, log, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     handlers.Version,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	var collector metrics.Collector = metrics.NewNoopCollector()
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		mc := metrics.NewCollector()
		collector = mc
		metricsHandler = mc.Handler()
	}
	observers := []llm.Observer{collector}

	var usageHandler *handlers.UsageHandler
	if cfg.Usage.Enabled {
		tracker, db, err := usage.Open(ctx, cfg.Usage.DBPath, log)
		if err != nil {
			return err
		}
		defer db.Close()
		observers = append(observers, tracker)
		usageHandler = handlers.NewUsageHandler(tracker)
	}

	gw, err := llm.Open(llm.ProviderConfig{
		Name:    cfg.LLM.Provider,
		Model:   cfg.LLM.Model,
		APIKey:  cfg.LLM.APIKey(),
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	}, llm.WithObservers(observers...))
	if err != nil {
		return &exitError{code: exitCodeBadInput, err: err}
	}

	svc := service.New(gw, service.Options{
		Logger:  log,
		Compare: compare.Options{Parallel: cfg.Compare.Parallel},
	})

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	var serviceName string
	if cfg.Tracing.Enabled {
		serviceName = cfg.Tracing.ServiceName
	}

	srv := httpapi.NewServer(cfg.Server.Addr, httpapi.RouterConfig{
		Logger:         log,
		Metrics:        collector,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimiter:    limiter,
		ServiceName:    serviceName,
		PromptHandler:  handlers.NewPromptHandler(svc, collector),
		CatalogHandler: handlers.NewCatalogHandler(svc.Registry()),
		UsageHandler:   usageHandler,
		HealthHandler:  handlers.NewHealthHandler(gw.Provider(), gw.Model()),
		MetricsHandler: metricsHandler,
	})

	log.Info("server listening",
		"addr", srv.Addr(),
		"provider", gw.Provider(),
		"model", gw.Model(),
		"parallel_compare", cfg.Compare.Parallel,
		"usage_tracking", cfg.Usage.Enabled,
	)
	if err := srv.Run(ctx, shutdownGrace); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
