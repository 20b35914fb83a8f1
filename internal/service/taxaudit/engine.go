package taxaudit

import (
	"fmt"
	"time"

	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/shopspring/decimal"
)

const (
	// statutoryTolerance is the absolute acceptance band for recomputed
	// statutory values against the posted ones.
	statutoryTolerance = 0.10
	// weeklyRestTolerance is the wider absolute band inside which the
	// recomputed weekly-rest reflex replaces the posted value.
	weeklyRestTolerance = 5.00
	// weeklyRestRelativeTolerance accepts larger absolute gaps on large
	// variable totals.
	weeklyRestRelativeTolerance = 0.05
)

var (
	hazardRate        = decimal.NewFromFloat(0.30)
	nightShiftRate    = decimal.NewFromFloat(0.20)
	transportRate     = decimal.NewFromFloat(0.06)
	dailyRateDivisor  = decimal.NewFromInt(30)
	percentageDivisor = decimal.NewFromInt(100)
)

// Engine recomputes one employee's statutory month from raw pay events and
// diffs every recomputable value against what the source system posted.
// Events arrive already normalized and enriched with their catalog incidence
// flags; the engine itself is a pure fold over them.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// composition carries the running state while events are folded in order.
type composition struct {
	table      catalog.StatutoryTable
	dependents int

	baseSalary decimal.Decimal
	// overtimeBase is the cumulative base overtime percentages apply to:
	// base salary plus every salary-linked earning folded so far.
	overtimeBase  decimal.Decimal
	variableTotal decimal.Decimal

	ssBase   decimal.Decimal
	irBase   decimal.Decimal
	fgtsBase decimal.Decimal

	postedSSBase   decimal.Decimal
	postedIRBase   decimal.Decimal
	postedFGTSBase decimal.Decimal

	postedSS   decimal.Decimal
	postedIR   decimal.Decimal
	postedFGTS decimal.Decimal

	earnings   decimal.Decimal
	deductions decimal.Decimal

	items []taxaudit.TaxAuditItem
}

// Audit recomputes one employee's month. Employees with no events still yield
// a record so they stay visible in diagnostics.
func (e *Engine) Audit(emp taxaudit.EmployeeEvents, table catalog.StatutoryTable, year, month int) taxaudit.EmployeeAudit {
	audit := taxaudit.EmployeeAudit{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		EventCount: len(emp.Events),
	}
	if len(emp.Events) == 0 {
		return audit
	}

	c := &composition{table: table, dependents: emp.Dependents}

	// Base salary must be folded before anything that derives from it.
	for _, event := range emp.Events {
		if classify(event) == groupBaseSalary {
			c.foldBaseSalary(event)
		}
	}
	for _, event := range emp.Events {
		switch classify(event) {
		case groupBaseSalary:
			// already folded
		case groupSalaryAddition:
			c.foldSalaryAddition(event)
		case groupOvertime:
			c.foldOvertime(event)
		case groupNightShift:
			c.foldNightShift(event)
		case groupAbsence:
			c.foldAbsence(event)
		case groupTransport:
			c.foldTransport(event)
		case groupFamilyAllowance:
			c.foldFamilyAllowance(event)
		case groupPostedBase:
			c.capturePostedBase(event)
		case groupStatutory:
			c.capturePostedStatutory(event)
		case groupWeeklyRest:
			// folded after every variable event, below
		default:
			c.foldOther(event)
		}
	}
	for _, event := range emp.Events {
		if classify(event) == groupWeeklyRest {
			c.foldWeeklyRest(event, year, month)
		}
	}

	c.foldStatutory(emp)

	audit.Items = c.items
	audit.Totals = taxaudit.Totals{
		Earnings:   c.earnings,
		Deductions: c.deductions,
		Net:        c.earnings.Sub(c.deductions),
	}
	return audit
}

func (c *composition) foldBaseSalary(event taxaudit.PayrollEvent) {
	c.baseSalary = c.baseSalary.Add(event.Value)
	c.overtimeBase = c.overtimeBase.Add(event.Value)
	c.accumulate(event, event.Value)
	c.addItem(event, event.Value, "contractual salary", "")
}

func (c *composition) foldSalaryAddition(event taxaudit.PayrollEvent) {
	var expected decimal.Decimal
	var formula, memo string

	switch event.Code {
	case catalog.CodeHazardPay:
		expected = c.baseSalary.Mul(hazardRate).Round(2)
		formula = "30% of base salary"
		memo = fmt.Sprintf("%s x 0.30", c.baseSalary.StringFixed(2))
	case catalog.CodeUnhealthiness:
		grade := unhealthinessGrade(event.Reference)
		expected = c.table.MinimumWage.Mul(grade).Round(2)
		formula = "graduated percentage of minimum wage"
		memo = fmt.Sprintf("%s x %s", c.table.MinimumWage.StringFixed(2), grade.String())
	default:
		// Gratification, till shortage, annuity and unmapped additions pass
		// through at posted value.
		expected = event.Value
		formula = "posted value"
	}

	c.overtimeBase = c.overtimeBase.Add(expected)
	c.accumulate(event, expected)
	c.addItem(event, expected, formula, memo)
}

func (c *composition) foldOvertime(event taxaudit.PayrollEvent) {
	percent := overtimePercent(event)
	hours := event.Reference
	expected := c.overtimeBase.
		Mul(percent).Div(percentageDivisor).
		Mul(hours).Div(c.table.MonthlyHourDivisor).
		Round(2)

	c.variableTotal = c.variableTotal.Add(expected)
	c.accumulate(event, expected)
	c.addItem(event, expected, "overtime base x surcharge x hours / monthly divisor",
		fmt.Sprintf("%s x %s%% x %s / %s",
			c.overtimeBase.StringFixed(2), percent.String(), hours.String(), c.table.MonthlyHourDivisor.String()))
}

func (c *composition) foldNightShift(event taxaudit.PayrollEvent) {
	hours := event.Reference
	expected := c.baseSalary.
		Mul(nightShiftRate).
		Mul(hours).Div(c.table.MonthlyHourDivisor).
		Round(2)

	c.variableTotal = c.variableTotal.Add(expected)
	c.accumulate(event, expected)
	c.addItem(event, expected, "20% of base salary x hours / monthly divisor",
		fmt.Sprintf("%s x 0.20 x %s / %s",
			c.baseSalary.StringFixed(2), hours.String(), c.table.MonthlyHourDivisor.String()))
}

func (c *composition) foldAbsence(event taxaudit.PayrollEvent) {
	var expected decimal.Decimal
	var formula string
	if absenceUsesDailyRate(event) {
		expected = c.baseSalary.Div(dailyRateDivisor).Mul(event.Reference).Round(2)
		formula = "base salary / 30 x days absent"
	} else {
		expected = c.baseSalary.Div(c.table.MonthlyHourDivisor).Mul(event.Reference).Round(2)
		formula = "base salary / monthly divisor x hours absent"
	}

	// Absences reduce the weekly-rest reflex base alongside the variable
	// earnings that grow it.
	c.variableTotal = c.variableTotal.Sub(expected)
	c.accumulate(event, expected)
	c.addItem(event, expected, formula, "")
}

func (c *composition) foldTransport(event taxaudit.PayrollEvent) {
	expected := c.baseSalary.Mul(transportRate).Round(2)
	c.accumulate(event, expected)
	c.addItem(event, expected, "6% of base salary", "")
}

func (c *composition) foldFamilyAllowance(event taxaudit.PayrollEvent) {
	expected := decimal.Zero
	memo := "salary above allowance limit"
	if c.baseSalary.LessThanOrEqual(c.table.FamilyAllowanceLimit) {
		expected = c.table.FamilyAllowanceQuota.Mul(decimal.NewFromInt(int64(c.dependents))).Round(2)
		memo = fmt.Sprintf("%s x %d dependents", c.table.FamilyAllowanceQuota.StringFixed(2), c.dependents)
	}
	c.accumulate(event, expected)
	c.addItem(event, expected, "quota x dependents", memo)
}

func (c *composition) foldWeeklyRest(event taxaudit.PayrollEvent, year, month int) {
	rest, work := restAndWorkdays(year, month)
	expected := decimal.Zero
	if work > 0 {
		expected = c.variableTotal.
			Mul(decimal.NewFromInt(int64(rest))).
			Div(decimal.NewFromInt(int64(work))).
			Round(2)
	}

	diff := expected.Sub(event.Value)
	memo := fmt.Sprintf("variable total %s x %d rest days / %d workdays",
		c.variableTotal.StringFixed(2), rest, work)

	accepted := expected
	status := taxaudit.ItemOK
	if !withinWeeklyRestTolerance(diff, event.Value) {
		// Recomputation too far off to trust: the posted value stands.
		accepted = event.Value
		status = taxaudit.ItemUnverified
	}

	c.accumulate(event, accepted)
	c.items = append(c.items, taxaudit.TaxAuditItem{
		Code:       event.Code,
		Name:       event.Description,
		Expected:   expected,
		Posted:     event.Value,
		Difference: diff,
		Status:     status,
		Formula:    "variable total x rest days / workdays",
		Memo:       memo,
	})
}

// foldOther passes an unclassified event through at posted value. It still
// feeds the overtime base and the statutory bases when flagged as an earning.
func (c *composition) foldOther(event taxaudit.PayrollEvent) {
	if event.Nature == catalog.NatureEarning {
		c.overtimeBase = c.overtimeBase.Add(event.Value)
	}
	c.accumulate(event, event.Value)
	c.addItem(event, event.Value, "posted value", "")
}

func (c *composition) capturePostedBase(event taxaudit.PayrollEvent) {
	switch event.Code {
	case catalog.CodePostedSocialSecurityBase:
		c.postedSSBase = event.Value
	case catalog.CodePostedIncomeTaxBase:
		c.postedIRBase = event.Value
	case catalog.CodePostedSeveranceBase:
		c.postedFGTSBase = event.Value
	}
}

func (c *composition) capturePostedStatutory(event taxaudit.PayrollEvent) {
	switch event.Code {
	case catalog.CodeSocialSecurity:
		c.postedSS = event.Value
		c.deductions = c.deductions.Add(event.Value)
	case catalog.CodeIncomeTax:
		c.postedIR = event.Value
		c.deductions = c.deductions.Add(event.Value)
	case catalog.CodeSeveranceFund:
		c.postedFGTS = event.Value
	}
}

// foldStatutory recomputes the three statutory values over the composed (or
// posted, when present and non-zero) bases and registers the final items.
func (c *composition) foldStatutory(emp taxaudit.EmployeeEvents) {
	ssBase := c.ssBase
	if c.postedSSBase.IsPositive() {
		ssBase = c.postedSSBase
	}
	irBase := c.irBase
	if c.postedIRBase.IsPositive() {
		irBase = c.postedIRBase
	}
	fgtsBase := c.fgtsBase
	if c.postedFGTSBase.IsPositive() {
		fgtsBase = c.postedFGTSBase
	}

	expectedSS := ComputeSocialSecurity(ssBase, c.table)
	c.addStatutoryItem(catalog.CodeSocialSecurity, "INSS", expectedSS, c.postedSS,
		"progressive brackets over social-security base",
		fmt.Sprintf("base %s", ssBase.StringFixed(2)))

	// The posted withholding feeds the income-tax base when the source
	// recorded one; otherwise the recomputed value is used.
	ssForIncomeTax := expectedSS
	if c.postedSS.IsPositive() {
		ssForIncomeTax = c.postedSS
	}
	expectedIR := ComputeIncomeTax(irBase, ssForIncomeTax, emp.Dependents, c.table)
	c.addStatutoryItem(catalog.CodeIncomeTax, "IRRF", expectedIR, c.postedIR,
		"bracket rate minus deduction over taxable base",
		fmt.Sprintf("base %s - INSS %s - %d dependents", irBase.StringFixed(2), ssForIncomeTax.StringFixed(2), emp.Dependents))

	expectedFGTS := ComputeSeverance(fgtsBase, emp.Apprentice, c.table)
	c.addStatutoryItem(catalog.CodeSeveranceFund, "FGTS", expectedFGTS, c.postedFGTS,
		"flat rate over severance base",
		fmt.Sprintf("base %s", fgtsBase.StringFixed(2)))
}

// accumulate folds an event's accepted value into the statutory bases per its
// incidence flags and into the earnings/deductions totals per its nature.
// Informational events touch neither.
func (c *composition) accumulate(event taxaudit.PayrollEvent, value decimal.Decimal) {
	switch event.Nature {
	case catalog.NatureEarning:
		c.earnings = c.earnings.Add(value)
		if event.Incidence.SocialSecurity {
			c.ssBase = c.ssBase.Add(value)
		}
		if event.Incidence.IncomeTax {
			c.irBase = c.irBase.Add(value)
		}
		if event.Incidence.SeveranceFund {
			c.fgtsBase = c.fgtsBase.Add(value)
		}
	case catalog.NatureDeduction:
		c.deductions = c.deductions.Add(value)
		if event.Incidence.SocialSecurity {
			c.ssBase = c.ssBase.Sub(value)
		}
		if event.Incidence.IncomeTax {
			c.irBase = c.irBase.Sub(value)
		}
		if event.Incidence.SeveranceFund {
			c.fgtsBase = c.fgtsBase.Sub(value)
		}
	}
}

func (c *composition) addItem(event taxaudit.PayrollEvent, expected decimal.Decimal, formula, memo string) {
	diff := expected.Sub(event.Value)
	status := taxaudit.ItemOK
	if diff.Abs().GreaterThan(decimal.NewFromFloat(statutoryTolerance)) {
		status = taxaudit.ItemError
	}
	c.items = append(c.items, taxaudit.TaxAuditItem{
		Code:       event.Code,
		Name:       event.Description,
		Expected:   expected,
		Posted:     event.Value,
		Difference: diff,
		Status:     status,
		Formula:    formula,
		Memo:       memo,
	})
}

func (c *composition) addStatutoryItem(code int, name string, expected, posted decimal.Decimal, formula, memo string) {
	diff := expected.Sub(posted)
	status := taxaudit.ItemOK
	if diff.Abs().GreaterThan(decimal.NewFromFloat(statutoryTolerance)) {
		status = taxaudit.ItemError
	}
	c.items = append(c.items, taxaudit.TaxAuditItem{
		Code:       code,
		Name:       name,
		Expected:   expected,
		Posted:     posted,
		Difference: diff,
		Status:     status,
		Formula:    formula,
		Memo:       memo,
	})
}

func withinWeeklyRestTolerance(diff, posted decimal.Decimal) bool {
	if diff.Abs().LessThanOrEqual(decimal.NewFromFloat(weeklyRestTolerance)) {
		return true
	}
	if posted.IsPositive() {
		relative := diff.Abs().Div(posted)
		return relative.LessThanOrEqual(decimal.NewFromFloat(weeklyRestRelativeTolerance))
	}
	return false
}

// restAndWorkdays counts Sundays and non-Sundays in the competence month.
func restAndWorkdays(year, month int) (rest, work int) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	for d := 0; d < days; d++ {
		if first.AddDate(0, 0, d).Weekday() == time.Sunday {
			rest++
		} else {
			work++
		}
	}
	return rest, work
}
