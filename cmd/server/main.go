package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/finledger/cashmatch/internal/infrastructure/config"
	"github.com/finledger/cashmatch/internal/infrastructure/logger"
	"github.com/finledger/cashmatch/internal/infrastructure/persistence"
	"github.com/finledger/cashmatch/internal/infrastructure/queue"
	"github.com/finledger/cashmatch/internal/interfaces/http/handler"
	"github.com/finledger/cashmatch/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting cashmatch API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	jobs, err := queue.NewRedisMatchQueue(&cfg.Redis, &cfg.Matching)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := jobs.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()

	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	tenantConfig := persistence.NewGormTenantConfigSource(db.DB)
	candidateSource := persistence.NewGormCandidateSource(db.DB)

	matchHandler := handler.NewMatchHandler(paymentRepo, tenantConfig, candidateSource, jobs, log)
	healthHandler := handler.NewHealthHandler(db)

	engine := router.New(cfg.App.Env, log, matchHandler, healthHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
