package taxaudit

import "context"

// EventRepository fetches the raw per-employee event lists from the source
// payroll system for one company and competence month.
type EventRepository interface {
	GetEmployeeEvents(ctx context.Context, companyExternalID, year, month int) ([]EmployeeEvents, error)
}

// AuditRepository persists tax audit results per run.
type AuditRepository interface {
	SaveAudits(ctx context.Context, runID string, audits []EmployeeAudit) error
	GetAudits(ctx context.Context, runID string) ([]EmployeeAudit, error)
}
