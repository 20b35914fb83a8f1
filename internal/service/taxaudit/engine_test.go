package taxaudit

import (
	"testing"

	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// April 2024: Sundays fall on the 7th, 14th, 21st and 28th, giving 4 rest
// days and 26 workdays for the weekly-rest reflex.
const (
	auditYear  = 2024
	auditMonth = 4
)

var incidenceAll = catalog.EventIncidence{SocialSecurity: true, IncomeTax: true, SeveranceFund: true}

func baseSalaryEvent(value string) taxaudit.PayrollEvent {
	return taxaudit.PayrollEvent{
		Code:        catalog.CodeBaseSalary,
		Description: "SALARIO BASE",
		Nature:      catalog.NatureEarning,
		Value:       mustDec(value),
		Incidence:   incidenceAll,
	}
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func findItem(t *testing.T, items []taxaudit.TaxAuditItem, code int) taxaudit.TaxAuditItem {
	t.Helper()
	for _, item := range items {
		if item.Code == code {
			return item
		}
	}
	t.Fatalf("no item with code %d", code)
	return taxaudit.TaxAuditItem{}
}

func TestEngine_NoEvents(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	audit := engine.Audit(taxaudit.EmployeeEvents{EmployeeID: "1001", Name: "MARIA"},
		table2024(t), auditYear, auditMonth)

	assert.Equal(t, "1001", audit.EmployeeID)
	assert.Equal(t, 0, audit.EventCount)
	assert.Empty(t, audit.Items)
	assert.True(t, audit.Totals.Net.IsZero())
}

func TestEngine_OvertimeRecompute(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Name:       "MARIA",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{
				Code:        catalog.CodeOvertime50,
				Description: "HORA EXTRA 50%",
				Nature:      catalog.NatureEarning,
				Value:       mustDec("68.18"),
				Reference:   mustDec("10"),
				Incidence:   incidenceAll,
			},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	// 3000 x 50% x 10h / 220 = 68.18
	overtime := findItem(t, audit.Items, catalog.CodeOvertime50)
	assert.True(t, overtime.Expected.Equal(mustDec("68.18")), "expected = %s", overtime.Expected)
	assert.Equal(t, taxaudit.ItemOK, overtime.Status)

	assert.True(t, audit.Totals.Earnings.Equal(mustDec("3068.18")), "earnings = %s", audit.Totals.Earnings)
}

func TestEngine_OvertimeDivergence(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{
				Code:        catalog.CodeOvertime50,
				Description: "HORA EXTRA 50%",
				Nature:      catalog.NatureEarning,
				Value:       mustDec("90.00"),
				Reference:   mustDec("10"),
				Incidence:   incidenceAll,
			},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	overtime := findItem(t, audit.Items, catalog.CodeOvertime50)
	assert.Equal(t, taxaudit.ItemError, overtime.Status)
	assert.True(t, overtime.Difference.Equal(mustDec("-21.82")), "difference = %s", overtime.Difference)
}

func TestEngine_OvertimeBaseIncludesSalaryAdditions(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{
				Code:        catalog.CodeHazardPay,
				Description: "PERICULOSIDADE",
				Nature:      catalog.NatureEarning,
				Value:       mustDec("900.00"),
				Incidence:   incidenceAll,
			},
			{
				Code:        catalog.CodeOvertime50,
				Description: "HORA EXTRA 50%",
				Nature:      catalog.NatureEarning,
				Value:       mustDec("88.64"),
				Reference:   mustDec("10"),
				Incidence:   incidenceAll,
			},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	hazard := findItem(t, audit.Items, catalog.CodeHazardPay)
	assert.True(t, hazard.Expected.Equal(mustDec("900.00")), "hazard = %s", hazard.Expected)
	assert.Equal(t, taxaudit.ItemOK, hazard.Status)

	// The overtime base grows to 3900: 3900 x 50% x 10h / 220 = 88.64
	overtime := findItem(t, audit.Items, catalog.CodeOvertime50)
	assert.True(t, overtime.Expected.Equal(mustDec("88.64")), "overtime = %s", overtime.Expected)
	assert.Equal(t, taxaudit.ItemOK, overtime.Status)
}

func TestEngine_NightShift(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{
				Code:        catalog.CodeNightShift,
				Description: "ADICIONAL NOTURNO",
				Nature:      catalog.NatureEarning,
				Value:       mustDec("60.00"),
				Reference:   mustDec("22"),
				Incidence:   incidenceAll,
			},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	// 3000 x 20% x 22h / 220 = 60.00
	night := findItem(t, audit.Items, catalog.CodeNightShift)
	assert.True(t, night.Expected.Equal(mustDec("60.00")), "expected = %s", night.Expected)
	assert.Equal(t, taxaudit.ItemOK, night.Status)
}

func TestEngine_Absence(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{
				Code:        catalog.CodeAbsence,
				Description: "FALTAS INJUSTIFICADAS",
				Nature:      catalog.NatureDeduction,
				Value:       mustDec("200.00"),
				Reference:   mustDec("2"),
			},
			{
				Code:        catalog.CodeTardiness,
				Description: "ATRASOS",
				Nature:      catalog.NatureDeduction,
				Value:       mustDec("68.18"),
				Reference:   mustDec("5"),
			},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	// Days absent: 3000 / 30 x 2 = 200.00
	absence := findItem(t, audit.Items, catalog.CodeAbsence)
	assert.True(t, absence.Expected.Equal(mustDec("200.00")), "absence = %s", absence.Expected)
	assert.Equal(t, taxaudit.ItemOK, absence.Status)

	// Hours late: 3000 / 220 x 5 = 68.18
	tardiness := findItem(t, audit.Items, catalog.CodeTardiness)
	assert.True(t, tardiness.Expected.Equal(mustDec("68.18")), "tardiness = %s", tardiness.Expected)

	assert.True(t, audit.Totals.Deductions.Equal(mustDec("268.18")), "deductions = %s", audit.Totals.Deductions)
}

func TestEngine_Unhealthiness(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{
				Code:        catalog.CodeUnhealthiness,
				Description: "INSALUBRIDADE",
				Nature:      catalog.NatureEarning,
				Value:       mustDec("282.40"),
				Reference:   mustDec("20"),
				Incidence:   incidenceAll,
			},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	// Middle grade: 1412.00 x 20% = 282.40
	item := findItem(t, audit.Items, catalog.CodeUnhealthiness)
	assert.True(t, item.Expected.Equal(mustDec("282.40")), "expected = %s", item.Expected)
	assert.Equal(t, taxaudit.ItemOK, item.Status)
}

func TestEngine_FamilyAllowance(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	allowance := taxaudit.PayrollEvent{
		Code:        catalog.CodeFamilyAllowance,
		Description: "SALARIO FAMILIA",
		Nature:      catalog.NatureEarning,
		Value:       mustDec("124.08"),
	}

	t.Run("below the salary limit", func(t *testing.T) {
		t.Parallel()
		emp := taxaudit.EmployeeEvents{
			EmployeeID: "1001",
			Dependents: 2,
			Events:     []taxaudit.PayrollEvent{baseSalaryEvent("1500.00"), allowance},
		}

		audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

		// 62.04 x 2 dependents = 124.08
		item := findItem(t, audit.Items, catalog.CodeFamilyAllowance)
		assert.True(t, item.Expected.Equal(mustDec("124.08")), "expected = %s", item.Expected)
		assert.Equal(t, taxaudit.ItemOK, item.Status)
	})

	t.Run("above the salary limit", func(t *testing.T) {
		t.Parallel()
		emp := taxaudit.EmployeeEvents{
			EmployeeID: "1001",
			Dependents: 2,
			Events:     []taxaudit.PayrollEvent{baseSalaryEvent("3000.00"), allowance},
		}

		audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

		item := findItem(t, audit.Items, catalog.CodeFamilyAllowance)
		assert.True(t, item.Expected.IsZero(), "expected = %s", item.Expected)
		assert.Equal(t, taxaudit.ItemError, item.Status)
	})
}

func TestEngine_WeeklyRest(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	overtime := taxaudit.PayrollEvent{
		Code:        catalog.CodeOvertime50,
		Description: "HORA EXTRA 50%",
		Nature:      catalog.NatureEarning,
		Value:       mustDec("68.18"),
		Reference:   mustDec("10"),
		Incidence:   incidenceAll,
	}

	t.Run("within tolerance accepts the recomputed value", func(t *testing.T) {
		t.Parallel()
		emp := taxaudit.EmployeeEvents{
			EmployeeID: "1001",
			Events: []taxaudit.PayrollEvent{
				baseSalaryEvent("3000.00"),
				overtime,
				{
					Code:        catalog.CodeDSR,
					Description: "DSR SOBRE VARIAVEIS",
					Nature:      catalog.NatureEarning,
					Value:       mustDec("10.49"),
					Incidence:   incidenceAll,
				},
			},
		}

		audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

		// 68.18 x 4 rest days / 26 workdays = 10.49
		rest := findItem(t, audit.Items, catalog.CodeDSR)
		assert.True(t, rest.Expected.Equal(mustDec("10.49")), "expected = %s", rest.Expected)
		assert.Equal(t, taxaudit.ItemOK, rest.Status)
	})

	t.Run("absences reduce the reflex base", func(t *testing.T) {
		t.Parallel()
		emp := taxaudit.EmployeeEvents{
			EmployeeID: "1001",
			Events: []taxaudit.PayrollEvent{
				baseSalaryEvent("3000.00"),
				overtime,
				{
					Code:        5002,
					Description: "ATRASOS",
					Nature:      catalog.NatureDeduction,
					Value:       mustDec("27.27"),
					Reference:   mustDec("2"),
				},
				{
					Code:        catalog.CodeDSR,
					Description: "DSR SOBRE VARIAVEIS",
					Nature:      catalog.NatureEarning,
					Value:       mustDec("6.29"),
					Incidence:   incidenceAll,
				},
			},
		}

		audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

		// (68.18 - 27.27) x 4 rest days / 26 workdays = 6.29
		rest := findItem(t, audit.Items, catalog.CodeDSR)
		assert.True(t, rest.Expected.Equal(mustDec("6.29")), "expected = %s", rest.Expected)
		assert.Equal(t, taxaudit.ItemOK, rest.Status)
	})

	t.Run("far off keeps the posted value unverified", func(t *testing.T) {
		t.Parallel()
		emp := taxaudit.EmployeeEvents{
			EmployeeID: "1001",
			Events: []taxaudit.PayrollEvent{
				baseSalaryEvent("3000.00"),
				overtime,
				{
					Code:        catalog.CodeDSR,
					Description: "DSR SOBRE VARIAVEIS",
					Nature:      catalog.NatureEarning,
					Value:       mustDec("50.00"),
					Incidence:   incidenceAll,
				},
			},
		}

		audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

		rest := findItem(t, audit.Items, catalog.CodeDSR)
		assert.Equal(t, taxaudit.ItemUnverified, rest.Status)
		// The posted value feeds the totals when the recomputation is unverified.
		assert.True(t, audit.Totals.Earnings.Equal(mustDec("3118.18")), "earnings = %s", audit.Totals.Earnings)
	})
}

func TestEngine_StatutoryRecompute(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{Code: catalog.CodeSocialSecurity, Description: "INSS", Nature: catalog.NatureDeduction, Value: mustDec("258.82")},
			{Code: catalog.CodeIncomeTax, Description: "IRRF", Nature: catalog.NatureDeduction, Value: mustDec("36.15")},
			{Code: catalog.CodeSeveranceFund, Description: "FGTS", Nature: catalog.NatureInformational, Value: mustDec("240.00")},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	inss := findItem(t, audit.Items, catalog.CodeSocialSecurity)
	assert.True(t, inss.Expected.Equal(mustDec("258.82")), "inss = %s", inss.Expected)
	assert.Equal(t, taxaudit.ItemOK, inss.Status)

	irrf := findItem(t, audit.Items, catalog.CodeIncomeTax)
	assert.True(t, irrf.Expected.Equal(mustDec("36.15")), "irrf = %s", irrf.Expected)
	assert.Equal(t, taxaudit.ItemOK, irrf.Status)

	fgts := findItem(t, audit.Items, catalog.CodeSeveranceFund)
	assert.True(t, fgts.Expected.Equal(mustDec("240.00")), "fgts = %s", fgts.Expected)
	assert.Equal(t, taxaudit.ItemOK, fgts.Status)

	// Withholdings count as deductions; the severance deposit does not.
	assert.True(t, audit.Totals.Deductions.Equal(mustDec("294.97")), "deductions = %s", audit.Totals.Deductions)
}

func TestEngine_PostedBaseOverride(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{Code: catalog.CodePostedSocialSecurityBase, Description: "BASE INSS", Nature: catalog.NatureInformational, Value: mustDec("2500.00")},
			{Code: catalog.CodeSocialSecurity, Description: "INSS", Nature: catalog.NatureDeduction, Value: mustDec("203.82")},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	// The posted base wins over the composed one: INSS over 2500.00 = 203.82
	inss := findItem(t, audit.Items, catalog.CodeSocialSecurity)
	assert.True(t, inss.Expected.Equal(mustDec("203.82")), "inss = %s", inss.Expected)
	assert.Equal(t, taxaudit.ItemOK, inss.Status)
}

func TestEngine_StatutoryDivergence(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("3000.00"),
			{Code: catalog.CodeSocialSecurity, Description: "INSS", Nature: catalog.NatureDeduction, Value: mustDec("200.00")},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	inss := findItem(t, audit.Items, catalog.CodeSocialSecurity)
	assert.Equal(t, taxaudit.ItemError, inss.Status)
	assert.True(t, inss.Difference.Equal(mustDec("58.82")), "difference = %s", inss.Difference)
}

func TestEngine_ApprenticeSeverance(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	emp := taxaudit.EmployeeEvents{
		EmployeeID: "1001",
		Apprentice: true,
		Events: []taxaudit.PayrollEvent{
			baseSalaryEvent("1500.00"),
			{Code: catalog.CodeSeveranceFund, Description: "FGTS", Nature: catalog.NatureInformational, Value: mustDec("30.00")},
		},
	}

	audit := engine.Audit(emp, table2024(t), auditYear, auditMonth)

	// Apprentice contracts deposit 2%: 1500 x 0.02 = 30.00
	fgts := findItem(t, audit.Items, catalog.CodeSeveranceFund)
	assert.True(t, fgts.Expected.Equal(mustDec("30.00")), "fgts = %s", fgts.Expected)
	assert.Equal(t, taxaudit.ItemOK, fgts.Status)
}
