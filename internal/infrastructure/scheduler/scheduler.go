// Package scheduler drives the periodic engagement jobs: the nightly
// recompute fan-out and the weekly audit sweep.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
	"github.com/okestraai/DocuIntelli-sub005/internal/core/ports"
)

type Scheduler struct {
	cron   *cron.Cron
	repo   ports.DocumentRepository
	queue  ports.MessageQueue
	audits ports.EngagementReader
	logger *slog.Logger
}

func New(repo ports.DocumentRepository, queue ports.MessageQueue, audits ports.EngagementReader, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		repo:   repo,
		queue:  queue,
		audits: audits,
		logger: logger,
	}
}

// Register installs the two jobs. Specs use the standard five-field
// cron format.
func (s *Scheduler) Register(ctx context.Context, recomputeSpec, weeklyAuditSpec string) error {
	if _, err := s.cron.AddFunc(recomputeSpec, func() { s.enqueueRecomputes(ctx) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(weeklyAuditSpec, func() { s.runWeeklyAudits(ctx) }); err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// enqueueRecomputes publishes one recompute event per known user so the
// worker pool spreads the rescoring instead of one process doing it all.
func (s *Scheduler) enqueueRecomputes(ctx context.Context) {
	userIDs, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		s.logger.Error("recompute_fanout_failed", "error", err)
		return
	}

	published := 0
	for _, userID := range userIDs {
		if err := s.queue.PublishRecompute(ctx, userID); err != nil {
			s.logger.Error("recompute_publish_failed", "user_id", userID, "error", err)
			continue
		}
		published++
	}
	s.logger.Info("recompute_fanout_done", "users", len(userIDs), "published", published)
}

// runWeeklyAudits compiles each user's audit and logs its headline
// numbers. The audit itself stays retrievable through the API.
func (s *Scheduler) runWeeklyAudits(ctx context.Context) {
	userIDs, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		s.logger.Error("weekly_audit_sweep_failed", "error", err)
		return
	}

	for _, userID := range userIDs {
		audit, err := s.audits.WeeklyAudit(ctx, userID)
		if err != nil {
			s.logger.Error("weekly_audit_failed", "user_id", userID, "error", err)
			continue
		}
		s.logger.Info("weekly_audit_compiled",
			"user_id", userID,
			"nearing_expiration", len(audit.NearingExpiration),
			"missing_expirations", len(audit.MissingExpirations),
			"open_gaps", len(audit.OpenGaps),
			"critical", audit.HealthSummary[domain.HealthCritical],
			"preparedness", audit.Preparedness.Score,
			"trend", string(audit.Preparedness.Trend),
		)
	}
}
