package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	appmatching "github.com/finledger/cashmatch/internal/application/matching"
	"github.com/finledger/cashmatch/internal/infrastructure/config"
	"github.com/finledger/cashmatch/internal/infrastructure/logger"
	"github.com/finledger/cashmatch/internal/infrastructure/persistence"
	"github.com/finledger/cashmatch/internal/infrastructure/queue"
	"github.com/finledger/cashmatch/internal/infrastructure/token"
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

	log.Info("Starting cashmatch worker",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
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

	service := appmatching.NewService(
		persistence.NewGormPaymentRepository(db.DB),
		persistence.NewGormCandidateSource(db.DB),
		persistence.NewGormTenantConfigSource(db.DB),
		persistence.NewGormUnitOfWork(db.DB),
		token.NewRandomGenerator(),
		appmatching.WithLogger(log),
		appmatching.WithCombinationBudget(cfg.Matching.CombinationBudget),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Worker consuming", zap.String("queue", cfg.Matching.QueueKey))
	consume(ctx, log, jobs, service)
	log.Info("Worker exited gracefully")
}

// consume pulls jobs until the context is cancelled. Each job runs under the
// per-payment lock so two workers never process the same payment at once; a
// locked job is requeued instead of dropped.
func consume(ctx context.Context, log *zap.Logger, jobs *queue.RedisMatchQueue, service *appmatching.Service) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := jobs.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			log.Error("Failed to dequeue job", zap.Error(err))
			continue
		}

		runJob(ctx, log, jobs, service, job)
	}
}

func runJob(ctx context.Context, log *zap.Logger, jobs *queue.RedisMatchQueue, service *appmatching.Service, job queue.MatchJob) {
	jobLog := log.With(
		zap.String("payment_id", job.PaymentID.String()),
		zap.Bool("edit", job.Edit),
	)

	locked, err := jobs.AcquireRunLock(ctx, job.PaymentID)
	if err != nil {
		jobLog.Error("Failed to acquire run lock", zap.Error(err))
		return
	}
	if !locked {
		jobLog.Warn("Payment locked by another worker, requeueing")
		if err := jobs.Enqueue(ctx, job); err != nil {
			jobLog.Error("Failed to requeue job", zap.Error(err))
		}
		return
	}
	defer func() {
		if err := jobs.ReleaseRunLock(ctx, job.PaymentID); err != nil {
			jobLog.Error("Failed to release run lock", zap.Error(err))
		}
	}()

	result, err := service.Run(ctx, appmatching.RunRequest{PaymentID: job.PaymentID, Edit: job.Edit})
	if err != nil {
		jobLog.Error("Matching run failed", zap.Error(err))
		return
	}

	jobLog.Info("Matching run completed",
		zap.Bool("matched", result.Matched),
		zap.Int("reported", result.Reported),
		zap.String("certainty", result.Certainty.String()),
	)
}
