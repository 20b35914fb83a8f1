package taxaudit

import (
	"strings"

	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/shopspring/decimal"
)

// eventGroup is the coarse classification driving the recompute strategy.
type eventGroup int

const (
	groupBaseSalary eventGroup = iota
	groupSalaryAddition
	groupOvertime
	groupNightShift
	groupAbsence
	groupWeeklyRest
	groupTransport
	groupFamilyAllowance
	groupPostedBase
	groupStatutory
	groupOther
)

// classify maps a payroll event to its recompute group. Reserved codes decide
// first; description keywords cover company-specific codes that were mapped
// into the catalog without a reserved number.
func classify(event taxaudit.PayrollEvent) eventGroup {
	switch event.Code {
	case catalog.CodeBaseSalary:
		return groupBaseSalary
	case catalog.CodeOvertime50, catalog.CodeOvertime60, catalog.CodeOvertime70, catalog.CodeOvertime100:
		return groupOvertime
	case catalog.CodeNightShift:
		return groupNightShift
	case catalog.CodeDSR:
		return groupWeeklyRest
	case catalog.CodeHazardPay, catalog.CodeUnhealthiness, catalog.CodeGratification,
		catalog.CodeTillShortage, catalog.CodeAnnuity:
		return groupSalaryAddition
	case catalog.CodeFamilyAllowance:
		return groupFamilyAllowance
	case catalog.CodeTransportAllow:
		return groupTransport
	case catalog.CodeAbsence, catalog.CodeTardiness:
		return groupAbsence
	case catalog.CodeSocialSecurity, catalog.CodeIncomeTax, catalog.CodeSeveranceFund:
		return groupStatutory
	case catalog.CodePostedSocialSecurityBase, catalog.CodePostedIncomeTaxBase, catalog.CodePostedSeveranceBase:
		return groupPostedBase
	}

	desc := strings.ToUpper(event.Description)
	switch {
	// "DSR S/ HORAS EXTRAS" style labels must resolve as weekly rest,
	// not as the overtime they reflect.
	case strings.Contains(desc, "DSR") || strings.Contains(desc, "REPOUSO"):
		return groupWeeklyRest
	case strings.Contains(desc, "HORA EXTRA") || strings.Contains(desc, "HORAS EXTRAS"):
		return groupOvertime
	case strings.Contains(desc, "ADICIONAL NOTURNO"):
		return groupNightShift
	case strings.Contains(desc, "PERICULOSIDADE"),
		strings.Contains(desc, "INSALUBRIDADE"),
		strings.Contains(desc, "GRATIFICACAO"),
		strings.Contains(desc, "QUEBRA DE CAIXA"),
		strings.Contains(desc, "ANUENIO"):
		return groupSalaryAddition
	case strings.Contains(desc, "SALARIO FAMILIA"):
		return groupFamilyAllowance
	case strings.Contains(desc, "VALE TRANSPORTE"):
		return groupTransport
	case strings.Contains(desc, "FALTA") || strings.Contains(desc, "ATRASO"):
		return groupAbsence
	}
	return groupOther
}

// overtimePercent resolves the overtime surcharge from the reserved code or,
// for unmapped codes, from the description. Defaults to 50%.
func overtimePercent(event taxaudit.PayrollEvent) decimal.Decimal {
	switch event.Code {
	case catalog.CodeOvertime60:
		return decimal.NewFromInt(60)
	case catalog.CodeOvertime70:
		return decimal.NewFromInt(70)
	case catalog.CodeOvertime100:
		return decimal.NewFromInt(100)
	case catalog.CodeOvertime50:
		return decimal.NewFromInt(50)
	}

	desc := event.Description
	switch {
	case strings.Contains(desc, "100"):
		return decimal.NewFromInt(100)
	case strings.Contains(desc, "70"):
		return decimal.NewFromInt(70)
	case strings.Contains(desc, "60"):
		return decimal.NewFromInt(60)
	}
	return decimal.NewFromInt(50)
}

// unhealthinessGrade selects the graduated 10/20/40 percentage from the
// event's reference ratio. The reference carries the grade itself when the
// source posts it; anything else falls back to the middle grade.
func unhealthinessGrade(reference decimal.Decimal) decimal.Decimal {
	switch {
	case reference.Equal(decimal.NewFromInt(10)):
		return decimal.NewFromFloat(0.10)
	case reference.Equal(decimal.NewFromInt(40)):
		return decimal.NewFromFloat(0.40)
	default:
		return decimal.NewFromFloat(0.20)
	}
}

// absenceUsesDailyRate reports whether an absence event is denominated in
// days rather than hours. Hour references above a month of workdays only make
// sense as hours; FALTA-described events with small references are day counts.
func absenceUsesDailyRate(event taxaudit.PayrollEvent) bool {
	if event.Reference.GreaterThan(decimal.NewFromInt(30)) {
		return false
	}
	desc := strings.ToUpper(event.Description)
	return strings.Contains(desc, "FALTA") || strings.Contains(desc, "DIA")
}
