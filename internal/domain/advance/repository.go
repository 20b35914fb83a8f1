package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

// SourceRepository fetches read-only snapshots from the source payroll
// system. Leave rows arrive pre-aggregated to at most one window per
// employee and loan rows pre-summed per employee, so the calculators never
// see raw multi-row data.
type SourceRepository interface {
	GetEmployees(ctx context.Context, companyExternalID, year, month int) ([]EmployeeRecord, error)
	GetLeaveWindows(ctx context.Context, companyExternalID, year, month int) (map[string]LeaveWindow, error)
	GetLoanInstallments(ctx context.Context, companyExternalID, year, month int) (map[string]decimal.Decimal, error)
	GetExternalAdvances(ctx context.Context, companyExternalID, year, month int) ([]ExternalAdvance, error)
}

// RunRepository persists audit runs and their results so reports can be
// produced after the fact. It never touches source-of-truth tables.
type RunRepository interface {
	CreateRun(ctx context.Context, run AuditRun) (AuditRun, error)
	SaveRows(ctx context.Context, runID string, rows []AuditRow) error
	SaveCorrections(ctx context.Context, runID string, corrections []ParameterCorrection) error
	GetRun(ctx context.Context, runID string) (AuditRun, error)
	GetRows(ctx context.Context, runID string) ([]AuditRow, error)
	GetCorrections(ctx context.Context, runID string) ([]ParameterCorrection, error)
	ListRuns(ctx context.Context, companyCode string, limit int) ([]AuditRun, error)
}
