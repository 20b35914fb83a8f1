package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvanceEnabledMarker is the flag value the source system uses for
// employees enrolled in the mid-month advance.
const AdvanceEnabledMarker = "S"

// EmployeeRecord is a read-only snapshot of one employee fetched from the
// source payroll system for the competence month. The core never mutates it.
type EmployeeRecord struct {
	ID              string
	Name            string
	JobTitle        string
	AdmissionDate   time.Time
	TerminationDate *time.Time
	Salary          decimal.Decimal
	// AdvanceFlag is the raw source-system flag; only AdvanceEnabledMarker
	// counts as enabled.
	AdvanceFlag string
	// AdvancePercent is the configured advance percentage (0-100).
	AdvancePercent decimal.Decimal
	// AdvanceFixed is a configured fixed advance value; non-zero wins over
	// the percentage.
	AdvanceFixed decimal.Decimal
	// Allowance flags feeding the gross-value surcharges.
	HasTillShortage  bool
	HasGratification bool
}

// LeaveType enum
type LeaveType string

const (
	LeaveVacation  LeaveType = "vacation"
	LeaveMaternity LeaveType = "maternity"
	LeaveMedical   LeaveType = "medical"
	LeaveOther     LeaveType = "other"
)

// ParseLeaveType maps the source system's leave codes onto the enum.
func ParseLeaveType(code string) LeaveType {
	switch code {
	case "F", "FERIAS":
		return LeaveVacation
	case "M", "MATERNIDADE":
		return LeaveMaternity
	case "D", "DOENCA", "AUXILIO_DOENCA":
		return LeaveMedical
	default:
		return LeaveOther
	}
}

// LeaveWindow is the single pre-aggregated leave window for one employee in
// the competence month (earliest start, latest end, first type code). A nil
// End means the leave is open-ended.
type LeaveWindow struct {
	EmployeeID string
	Type       LeaveType
	Start      time.Time
	End        *time.Time
}

// ExternalAdvance is one row of the advance already computed by the source
// system, used only for reconciliation.
type ExternalAdvance struct {
	EmployeeID string
	Name       string
	Gross      decimal.Decimal
}

// Status enum
type Status string

const (
	StatusEligible   Status = "eligible"
	StatusIneligible Status = "ineligible"
)

// Divergence classifications produced by the reconciliation differ.
const (
	ClassOK             = "OK"
	ClassOnlyComputed   = "computed by rules, absent from source"
	ClassRemovedByRules = "correctly removed by rules"
	ClassOnlySource     = "present in source, not computed by rules"
)

// AuditRow is the per-employee output of an advance audit run.
type AuditRow struct {
	EmployeeID    string
	Name          string
	JobTitle      string
	Status        Status
	Justification string
	EffectiveDays int
	// SpecialRole marks rows whose gross came from a per-title fixed value;
	// the discount applier and correction calculator treat them differently.
	SpecialRole    bool
	Gross          decimal.Decimal
	Discount       decimal.Decimal
	Net            decimal.Decimal
	ExternalGross  decimal.Decimal
	Classification string
	Analysis       string
}

// CorrectionMethod enum
type CorrectionMethod string

const (
	CorrectionPercent CorrectionMethod = "percent"
	CorrectionFixed   CorrectionMethod = "fixed"
)

// ParameterCorrection carries the source-system parameters that would
// reproduce the recomputed advance, for the human-supervised update step.
// The core never writes these back itself.
type ParameterCorrection struct {
	EmployeeID string
	Percent    *decimal.Decimal
	FixedValue *decimal.Decimal
	Method     CorrectionMethod
}

// RunKind enum
type RunKind string

const (
	RunAdvance RunKind = "advance"
	RunPayroll RunKind = "payroll"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// AuditRun is one persisted execution of the engine for one company and
// competence month.
type AuditRun struct {
	ID          string
	CompanyCode string
	Kind        RunKind
	Year        int
	Month       int
	Status      RunStatus
	Error       *string
	CreatedAt   time.Time
}
