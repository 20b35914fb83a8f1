package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
)

// batchAuditRunner runs the advance audit for every configured company.
type batchAuditRunner interface {
	RunAll(ctx context.Context, year, month int) (advance.BatchAuditResponse, error)
}

// RegisterBatchAudit schedules a recurring advance audit of the current
// competence month across all configured companies. Per-company failures are
// logged and never abort the batch.
func RegisterBatchAudit(s *Scheduler, runner batchAuditRunner, interval time.Duration) {
	s.AddJob("batch-advance-audit", interval, func(ctx context.Context) error {
		now := time.Now()
		year, month := now.Year(), int(now.Month())

		batch, err := runner.RunAll(ctx, year, month)
		if err != nil {
			return err
		}
		for company, reason := range batch.Failures {
			slog.Warn("Scheduled audit skipped company",
				"company", company, "reason", reason, "year", year, "month", month)
		}
		slog.Info("Scheduled batch audit completed",
			"year", year, "month", month,
			"companies", len(batch.Results), "failed_companies", len(batch.Failures))
		return nil
	})
}
