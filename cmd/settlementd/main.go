package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Systemsaholic/tailfire-sub005/pkg/kafka"
	"github.com/Systemsaholic/tailfire-sub005/pkg/observability"
	"github.com/Systemsaholic/tailfire-sub005/pkg/postgres"

	"github.com/Systemsaholic/tailfire-sub005/internal/application/usecase"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/internal/infrastructure/cache"
	"github.com/Systemsaholic/tailfire-sub005/internal/infrastructure/config"
	infraKafka "github.com/Systemsaholic/tailfire-sub005/internal/infrastructure/kafka"
	infraPostgres "github.com/Systemsaholic/tailfire-sub005/internal/infrastructure/postgres"
	"github.com/Systemsaholic/tailfire-sub005/internal/infrastructure/provider"
	grpcPresentation "github.com/Systemsaholic/tailfire-sub005/internal/presentation/grpc"
	"github.com/Systemsaholic/tailfire-sub005/internal/presentation/rest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "settlementd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting settlement engine",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database pool.
	dbCfg := postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	}
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()
	logger.Info("database pool created")

	if migErr := postgres.RunMigrations(dbCfg.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "settlement",
	})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	metrics, err := observability.NewSettlementMetrics(meterProvider.Meter("settlement"))
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// Kafka is optional: no brokers, no publisher.
	var publisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
		defer producer.Close()
		publisher = infraKafka.NewEventPublisher(producer)
		logger.Info("kafka producer created", "brokers", cfg.Kafka.Brokers)
	}

	// Repositories.
	tripRepo := infraPostgres.NewTripRepo(pool)
	activityRepo := infraPostgres.NewActivityRepo(pool)
	feeRepo := infraPostgres.NewServiceFeeRepo(pool)
	travellerRepo := infraPostgres.NewTravellerRepo(pool)
	commissionRepo := infraPostgres.NewCommissionRepo(pool)
	rateRepo := infraPostgres.NewExchangeRateRepo(pool)

	// Rate provider: "static" serves dev/CI, a URL selects the HTTP client,
	// empty disables provider lookups entirely.
	var rateProvider port.RateProvider
	switch cfg.Rates.ProviderURL {
	case "":
		logger.Info("no rate provider configured")
	case "static":
		rateProvider = provider.NewStaticRateProvider()
		logger.Info("using static rate provider")
	default:
		rateProvider = provider.NewHTTPRateProvider(cfg.Rates.ProviderURL, nil)
		logger.Info("using HTTP rate provider", "url", cfg.Rates.ProviderURL)
	}

	rateCache := cache.New(cfg.Rates.CacheSize, cfg.Rates.CacheTTL)

	// Use cases.
	resolver := usecase.NewRateResolver(rateRepo, rateProvider, rateCache, metrics, logger)
	refresh := usecase.NewRefreshRates(rateRepo, rateProvider, rateCache, publisher, metrics, logger, nil, nil)
	summary := usecase.NewGetTripFinancialSummary(
		tripRepo,
		usecase.NewSummarizeActivities(activityRepo, travellerRepo, resolver, logger),
		usecase.NewSummarizeFees(feeRepo, resolver, logger),
		usecase.NewTravellerBreakdown(travellerRepo, feeRepo, resolver, logger),
		usecase.NewSummarizeCommissions(activityRepo, commissionRepo, logger),
		metrics,
		logger,
	)

	// Scheduled rate refresh.
	scheduler := cron.New(cron.WithChain(cron.Recover(cronLogger{logger})))
	if _, cronErr := scheduler.AddFunc(cfg.Rates.RefreshSchedule, func() {
		jobCtx, jobCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer jobCancel()
		if err := refresh.Execute(jobCtx); err != nil {
			logger.Error("scheduled rate refresh failed", "error", err)
		}
	}); cronErr != nil {
		return fmt.Errorf("schedule rate refresh %q: %w", cfg.Rates.RefreshSchedule, cronErr)
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Info("rate refresh scheduled", "schedule", cfg.Rates.RefreshSchedule)

	// gRPC server.
	handler := grpcPresentation.NewHandler(summary, resolver, refresh, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger, cfg.GRPCPort)

	// HTTP server: health probes and metrics.
	healthHandler := rest.NewHealthHandler(pool, logger)
	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("shutting down")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	cancel()
	logger.Info("settlement engine stopped")
	return nil
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
