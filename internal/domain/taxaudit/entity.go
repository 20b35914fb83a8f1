package taxaudit

import (
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// PayrollEvent is one raw pay event posted for an employee in the source
// system. Code is the canonical (normalized) event code; RawCode preserves
// the source string for diagnostics.
type PayrollEvent struct {
	RawCode     string
	Code        int
	Description string
	Nature      catalog.EventNature
	Value       decimal.Decimal
	// Reference is the event's quantity column: hours for time-based events,
	// a percentage for graduated ones.
	Reference decimal.Decimal
	// Incidence carries the catalog's statutory-base flags, resolved once at
	// ingestion.
	Incidence catalog.EventIncidence
}

// EmployeeEvents is the full event list posted for one employee in the
// competence month, plus the contract attributes the statutory computation
// needs.
type EmployeeEvents struct {
	EmployeeID string
	Name       string
	Dependents int
	Apprentice bool
	Events     []PayrollEvent
}

// ItemStatus enum
type ItemStatus string

const (
	ItemOK ItemStatus = "OK"
	// ItemError marks a divergence beyond tolerance. It never aborts the run.
	ItemError ItemStatus = "ERROR"
	// ItemUnverified marks a weekly-rest reflex whose recomputation fell
	// outside the acceptance window: the posted value is kept, flagged as
	// unverified rather than wrong.
	ItemUnverified ItemStatus = "UNVERIFIED"
)

// TaxAuditItem compares one recomputed value against the posted one.
type TaxAuditItem struct {
	Code       int
	Name       string
	Expected   decimal.Decimal
	Posted     decimal.Decimal
	Difference decimal.Decimal
	Status     ItemStatus
	Formula    string
	Memo       string
}

// Totals aggregates one employee's audited month.
type Totals struct {
	Earnings   decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
}

// EmployeeAudit is the tax audit output for one employee. EventCount is kept
// even when zero so an employee with no processed events stays visible in
// diagnostics.
type EmployeeAudit struct {
	EmployeeID string
	Name       string
	EventCount int
	Items      []TaxAuditItem
	Totals     Totals
}
