// Package bootstrap wires the infrastructure and use cases shared by
// the api and worker binaries.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/okestraai/DocuIntelli-sub005/internal/config"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/ports"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/usecase"
	"github.com/okestraai/DocuIntelli-sub005/internal/infrastructure/extractor/doctext"
	"github.com/okestraai/DocuIntelli-sub005/internal/infrastructure/queue/nats"
	"github.com/okestraai/DocuIntelli-sub005/internal/infrastructure/report/xlsx"
	"github.com/okestraai/DocuIntelli-sub005/internal/infrastructure/repository/postgres"
	"github.com/okestraai/DocuIntelli-sub005/internal/infrastructure/resilience"
	"github.com/okestraai/DocuIntelli-sub005/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC     ports.DocumentIngestor
	ReviewUC     ports.DocumentReviewer
	EngagementUC *usecase.EngagementUseCase
	RecomputeUC  ports.EngagementRecomputer

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	snapshots := postgres.NewSnapshotRepository(db)
	dismissals := postgres.NewDismissalRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultPolicy())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	extractor := doctext.NewExtractor(storage)
	exporter := xlsx.NewExporter()
	clock := ports.Clock(func() time.Time { return time.Now().UTC() })

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, extractor, queue, clock)
	reviewUC := usecase.NewReviewDocumentUseCase(repo, queue, clock)
	engagementUC := usecase.NewEngagementUseCase(repo, snapshots, dismissals, exporter, clock)
	recomputeUC := usecase.NewRecomputeEngagementUseCase(repo, snapshots, clock)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:     ingestUC,
		ReviewUC:     reviewUC,
		EngagementUC: engagementUC,
		RecomputeUC:  recomputeUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
