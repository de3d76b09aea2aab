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

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"portfolio_aggregator/internal/app/service"
	"portfolio_aggregator/internal/infrastructure/configloader"
	"portfolio_aggregator/internal/infrastructure/connector"
	"portfolio_aggregator/internal/infrastructure/httpclient"
	"portfolio_aggregator/internal/infrastructure/pricecache"
	"portfolio_aggregator/internal/infrastructure/restapi"
	"portfolio_aggregator/internal/infrastructure/walletstore"
	"portfolio_aggregator/internal/pkg/logger"
	"portfolio_aggregator/internal/pkg/metrics"
)

const defaultConfigPath = "config/config.yaml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Third-party code logging through slog ends up in the same zap sink.
	slog.SetDefault(slog.New(zapslog.NewHandler(log.Core())))

	metrics.MustRegisterMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	store := walletstore.NewPostgres(pool, log)

	coingecko := httpclient.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.APIKey,
		time.Duration(cfg.CoinGecko.RequestTimeoutMillis)*time.Millisecond,
		cfg.CoinGecko.RequestsPerSecond,
		log,
	)
	priceResolver := service.NewPriceResolver(pricecache.NewMemory(), coingecko, log)

	registry := connector.NewRegistry(cfg.Chains, log)
	aggregator := service.NewAggregator(store, registry, priceResolver, log)
	auth := service.NewAuthService(store, []byte(cfg.Auth.JWTSecret),
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute, log)

	router := restapi.SetupRouter(
		restapi.NewPortfolioHandler(aggregator, log),
		restapi.NewWalletHandler(store, registry, log),
		restapi.NewAuthHandler(auth, log),
		restapi.AuthRequired(auth),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownGraceSeconds)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
