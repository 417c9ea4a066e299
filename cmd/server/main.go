package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/leozw/domain-scout/internal/api"
	"github.com/leozw/domain-scout/internal/config"
	"github.com/leozw/domain-scout/internal/manager"
	"github.com/leozw/domain-scout/internal/monitor"
	"github.com/leozw/domain-scout/internal/portfolio"
	"github.com/leozw/domain-scout/internal/registrar"
	"github.com/leozw/domain-scout/internal/storage/postgres"
	"github.com/leozw/domain-scout/internal/storage/redis"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup logger
	logger, _ := zap.NewProduction()
	if cfg.Server.Mode == "debug" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// Portfolio store: Postgres when configured, in-memory otherwise
	var store portfolio.Store = portfolio.NewMemoryStore()
	if cfg.Database.URL != "" {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		repo, err := postgres.NewPortfolioRepo(db)
		if err != nil {
			logger.Fatal("Failed to prepare portfolio table", zap.Error(err))
		}
		store = repo
	}

	// Optional availability cache
	var cache registrar.Cache
	if cfg.Redis.URL != "" {
		redisCache := redis.NewCache(cfg.Redis.URL, cfg.Redis.CacheTTL)
		defer redisCache.Close()
		cache = redisCache
	}

	// Registrar client
	client := registrar.NewClient(cfg.Registrar, cache, logger)

	// Performance monitor, one per process
	mon := monitor.New(cfg.Monitor, logger)

	// Log alert transitions
	alerts := mon.Subscribe()
	go func() {
		for ev := range alerts {
			logger.Info("Alert event",
				zap.String("kind", ev.Kind),
				zap.String("type", ev.Type),
				zap.String("message", ev.Message),
			)
		}
	}()

	// Bot manager
	mgr, err := manager.New(cfg.Bots, client, store, mon, logger)
	if err != nil {
		logger.Fatal("Failed to initialize bot manager", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	go mon.Start(ctx)

	// API server
	server := api.NewServer(cfg, mgr, client, store, mon, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Server.Port),
		zap.Bool("registrar_demo_mode", client.DemoMode()),
	)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	mgr.StopAllBots()
	cancel()
	mon.Unsubscribe(alerts)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
