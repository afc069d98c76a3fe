package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscope/internal/config"
	dbPostgres "github.com/kailas-cloud/leadscope/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/leadscope/internal/db/redis"
	logpkg "github.com/kailas-cloud/leadscope/internal/logger"
	"github.com/kailas-cloud/leadscope/internal/metrics"
	campaignrepo "github.com/kailas-cloud/leadscope/internal/repository/campaign"
	contactrepo "github.com/kailas-cloud/leadscope/internal/repository/contact"
	chiTransport "github.com/kailas-cloud/leadscope/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/leadscope/internal/transport/openai"
	analyzeuc "github.com/kailas-cloud/leadscope/internal/usecase/analyze"
	campaignuc "github.com/kailas-cloud/leadscope/internal/usecase/campaign"
	exportuc "github.com/kailas-cloud/leadscope/internal/usecase/export"
	healthuc "github.com/kailas-cloud/leadscope/internal/usecase/health"
	searchuc "github.com/kailas-cloud/leadscope/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/leadscope/internal/usecase/suggest"
	"github.com/kailas-cloud/leadscope/internal/version"
)

func newServeCmd() *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env == "" {
				env = config.GetEnv()
			}
			return serve(cmd.Context(), env)
		},
	}
	cmd.Flags().StringVar(&env, "env", "", "config environment (local, dev, docker, prod); defaults to $ENV")
	return cmd
}

func serve(ctx context.Context, env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting leadscope API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("campaigns", cfg.Campaigns.Enabled),
		zap.Bool("assistant", cfg.Assistant.Enabled),
	)

	metrics.RegisterSearchMetrics()

	pool, err := dbPostgres.Open(ctx, dbPostgres.Config{
		DSN:              cfg.Database.DSN,
		MinConns:         cfg.Database.MinConns,
		MaxConns:         cfg.Database.MaxConns,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime(),
		AcquireTimeout:   cfg.Database.AcquireTimeout(),
		StatementTimeout: cfg.Database.StatementTimeout(),
	})
	if err != nil {
		return fmt.Errorf("open contact store: %w", err)
	}
	defer pool.Close()

	if err := pool.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("contact store not ready: %w", err)
	}
	logger.Info("Connected to contact store")

	var assistant analyzeuc.Assistant
	if cfg.Assistant.Enabled {
		assistant = openaiTransport.NewAssistant(&openaiTransport.Config{
			APIKey:  cfg.Assistant.APIKey,
			BaseURL: cfg.Assistant.BaseURL,
			Model:   cfg.Assistant.Model,
		})
		logger.Info("Query assistant enabled", zap.String("model", cfg.Assistant.Model))
	}

	contacts := contactrepo.New(pool)
	searchSvc := searchuc.New(contacts, analyzeuc.New(assistant)).
		WithLimits(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	exportSvc := exportuc.New(contacts).WithMaxRows(cfg.Search.MaxExportRows)
	suggestSvc := suggestuc.New(contacts).WithMaxLimit(cfg.Search.SuggestionLimit)

	svc := chiTransport.Services{
		Search:  searchSvc,
		Export:  exportSvc,
		Suggest: suggestSvc,
	}

	// Pass a nil interface, not a typed nil pointer, when campaigns are off.
	var campaignPinger healthuc.Pinger
	if cfg.Campaigns.Enabled {
		store, campaignSvc, err := openCampaigns(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		campaignPinger = store
		svc.Campaigns = campaignSvc.WithLimits(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	svc.Health = healthuc.New(pool, campaignPinger)

	server := chiTransport.NewServer(svc, logger)
	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func openCampaigns(ctx context.Context, cfg config.Config, logger *zap.Logger) (*dbRedis.Store, *campaignuc.Service, error) {
	key, err := cfg.Campaigns.Key()
	if err != nil {
		return nil, nil, err
	}
	cipher, err := campaignrepo.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("campaign cipher: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Campaigns.Addrs,
		Username:   cfg.Campaigns.Username,
		Password:   cfg.Campaigns.Password,
		DB:         cfg.Campaigns.DB,
		Standalone: cfg.Campaigns.Standalone,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open campaign store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("campaign store not ready: %w", err)
	}
	logger.Info("Connected to campaign store", zap.Strings("addrs", cfg.Campaigns.Addrs))

	repo := campaignrepo.New(store, cipher, cfg.Campaigns.KeyPrefix)
	return store, campaignuc.New(repo), nil
}
