package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/bootstrap"
	"github.com/okestraai/DocuIntelli-sub005/internal/config"
	"github.com/okestraai/DocuIntelli-sub005/internal/infrastructure/scheduler"
	"github.com/okestraai/DocuIntelli-sub005/internal/observability/logging"
	"github.com/okestraai/DocuIntelli-sub005/internal/observability/metrics"
)

const serviceName = "engagement-worker"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	sched := scheduler.New(app.Repo, app.Queue, app.EngagementUC, logger)
	if err := sched.Register(ctx, cfg.RecomputeCron, cfg.WeeklyAuditCron); err != nil {
		logger.Error("scheduler_register_failed", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeRecompute(ctx, func(handlerCtx context.Context, userID string) error {
		recomputeCtx, cancel := context.WithTimeout(handlerCtx, 2*time.Minute)
		defer cancel()

		workerMetrics.StartRecompute()
		start := time.Now()
		result, err := app.RecomputeUC.RecomputeForUser(recomputeCtx, userID)
		workerMetrics.FinishRecompute(serviceName, time.Since(start), err)
		if err != nil {
			return err
		}

		workerMetrics.ObservePortfolioScore(serviceName, result.Score)
		logger.Info("recompute_done",
			"user_id", userID,
			"score", result.Score,
			"trend", string(result.Trend),
		)
		return nil
	})
	if err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}
