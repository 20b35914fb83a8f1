package advance

import (
	"fmt"
	"strings"
	"time"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// The advance proration always divides by a commercial 30-day month, even in
// 28/31-day months, while day-window counts use the true month length. The
// source system behaves this way and the audit must reproduce it.
var commercialMonthDays = decimal.NewFromInt(30)

// roundingThreshold implements the source system's "half up at .500001"
// rule: a fractional part must strictly exceed this to round up.
var roundingThreshold = decimal.NewFromFloat(0.500001)

var (
	oneHundred             = decimal.NewFromInt(100)
	surchargeTillShortage  = decimal.NewFromFloat(1.10)
	surchargeGratification = decimal.NewFromFloat(1.40)
)

// Calculator recomputes one employee's advance eligibility and gross value
// from first principles. It is a pure function of its inputs: no state, no
// I/O.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Evaluate applies the ordered eligibility checks and, for rows still
// eligible, computes the proportional gross advance. The first failing check
// wins and short-circuits to an ineligible row with zero value.
func (c *Calculator) Evaluate(
	emp advance.EmployeeRecord,
	leave *advance.LeaveWindow,
	loan decimal.Decimal,
	rule catalog.CompanyRule,
	year, month int,
) advance.AuditRow {
	days := daysInMonth(year, month)
	payDate := time.Date(year, time.Month(month), rule.PayDay, 0, 0, 0, 0, time.UTC)

	row := advance.AuditRow{
		EmployeeID:    emp.ID,
		Name:          emp.Name,
		JobTitle:      emp.JobTitle,
		Status:        advance.StatusEligible,
		EffectiveDays: days,
		Gross:         decimal.Zero,
		Discount:      decimal.Zero,
		Net:           decimal.Zero,
	}
	var notes []string

	ineligible := func(reason string) advance.AuditRow {
		notes = append(notes, reason)
		row.Status = advance.StatusIneligible
		row.EffectiveDays = 0
		row.Gross = decimal.Zero
		row.Justification = strings.Join(notes, "; ")
		return row
	}

	// 1. Termination on or before the pay day of the competence month.
	if emp.TerminationDate != nil && !emp.TerminationDate.After(payDate) {
		return ineligible(fmt.Sprintf("terminated on %s, on or before pay day %d",
			emp.TerminationDate.Format("2006-01-02"), rule.PayDay))
	}

	// 2. Source-system advance flag.
	if emp.AdvanceFlag != advance.AdvanceEnabledMarker {
		return ineligible(fmt.Sprintf("advance flag %q is not enabled in the source system", emp.AdvanceFlag))
	}

	// 3. Admission within the competence month.
	if emp.AdmissionDate.Year() == year && int(emp.AdmissionDate.Month()) == month {
		admissionDay := emp.AdmissionDate.Day()
		cutoff := rule.EffectiveAdmissionCutoff()
		if admissionDay > cutoff {
			return ineligible(fmt.Sprintf("admitted on day %d, after the admission cutoff (day %d)", admissionDay, cutoff))
		}
		if admissionDay >= 2 {
			row.EffectiveDays = days - (admissionDay - 1)
			notes = append(notes, fmt.Sprintf("admitted on day %d: %d effective days", admissionDay, row.EffectiveDays))
		}
	}

	// 4. Leave window.
	if leave != nil {
		switch leave.Type {
		case advance.LeaveMaternity:
			// Maternity leave never blocks the advance and causes no
			// day reduction.
			notes = append(notes, "on maternity leave")

		case advance.LeaveVacation:
			outcome := evaluateVacation(*leave, rule.PayDay, year, month, loan.IsPositive())
			if outcome.note != "" {
				notes = append(notes, outcome.note)
			}
			if !outcome.eligible {
				return ineligible("vacation window blocks the advance")
			}
			if outcome.effectiveDays < row.EffectiveDays {
				row.EffectiveDays = outcome.effectiveDays
			}

		case advance.LeaveMedical:
			overlap := overlapDays(*leave, year, month, days)
			if overlap >= 16 {
				return ineligible(fmt.Sprintf("medical leave covers %d days of the competence month", overlap))
			}
			notes = append(notes, fmt.Sprintf("medical leave covers %d days", overlap))

		default:
			firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			if leave.Start.Before(firstDay) {
				return ineligible(fmt.Sprintf("on %s leave since %s", leave.Type, leave.Start.Format("2006-01-02")))
			}
		}
	}

	// Company overlay: restrict eligibility by name substring.
	if sub := rule.Overrides.NameContains; sub != "" {
		if !strings.Contains(strings.ToUpper(emp.Name), strings.ToUpper(sub)) {
			return ineligible("outside the company's restricted advance group")
		}
	}

	// Company overlay: special job titles get a fixed gross value.
	if fixed, ok := rule.SpecialRoleValues[emp.JobTitle]; ok {
		row.SpecialRole = true
		row.Gross = fixed
		row.Net = fixed
		notes = append(notes, fmt.Sprintf("special role %q: fixed advance %s", emp.JobTitle, fixed.StringFixed(2)))
		row.Justification = strings.Join(notes, "; ")
		return row
	}

	// Gross value: configured fixed value wins over the percentage.
	var gross decimal.Decimal
	if emp.AdvanceFixed.IsPositive() {
		gross = emp.AdvanceFixed
		notes = append(notes, fmt.Sprintf("fixed advance value %s", emp.AdvanceFixed.StringFixed(2)))
	} else {
		base := emp.Salary
		if emp.HasTillShortage {
			base = base.Mul(surchargeTillShortage)
		}
		if emp.HasGratification {
			base = base.Mul(surchargeGratification)
		}
		gross = base.Mul(emp.AdvancePercent).Div(oneHundred)
	}

	// Proration over the commercial 30-day month.
	if row.EffectiveDays < days {
		gross = gross.Mul(decimal.NewFromInt(int64(row.EffectiveDays))).Div(commercialMonthDays)
	}

	if !rule.Overrides.DisableRounding {
		gross = roundHalfUp(gross)
	}

	row.Gross = gross
	row.Net = gross
	row.Justification = strings.Join(notes, "; ")
	return row
}

// vacationOutcome carries the vacation sub-machine's verdict.
type vacationOutcome struct {
	eligible      bool
	effectiveDays int
	note          string
}

// evaluateVacation resolves advance eligibility for an employee with a
// vacation window touching the competence month. Branch order matters: each
// case assumes the previous ones did not match.
func evaluateVacation(leave advance.LeaveWindow, payDay, year, month int, hasLoan bool) vacationOutcome {
	days := daysInMonth(year, month)
	startInMonth := leave.Start.Year() == year && int(leave.Start.Month()) == month
	endInMonth := leave.End != nil && leave.End.Year() == year && int(leave.End.Month()) == month

	switch {
	case startInMonth && leave.Start.Day() > 15:
		return vacationOutcome{eligible: false, note: "vacation starts after mid-month, first half not worked"}

	case startInMonth && endInMonth:
		startDay := leave.Start.Day()
		endDay := leave.End.Day()
		// No days worked before the vacation began means no first-half work
		// to advance against.
		if startDay <= 1 {
			return vacationOutcome{eligible: false, note: "on vacation from the first day of the month, first half not worked"}
		}
		worked := (startDay - 1) + (days - endDay)
		return vacationOutcome{
			eligible:      true,
			effectiveDays: worked,
			note:          fmt.Sprintf("vacation from day %d to day %d: %d effective days", startDay, endDay, worked),
		}

	case endInMonth && leave.End.Day() >= payDay:
		return vacationOutcome{eligible: false, note: fmt.Sprintf("returned from vacation on day %d, on or after pay day %d", leave.End.Day(), payDay)}

	case endInMonth:
		endDay := leave.End.Day()
		if endDay >= 15 {
			return vacationOutcome{eligible: false, note: "returned from vacation after mid-month"}
		}
		return vacationOutcome{
			eligible:      true,
			effectiveDays: days - endDay,
			note:          fmt.Sprintf("returned from vacation on day %d: %d effective days", endDay, days-endDay),
		}

	case startInMonth && leave.Start.Day() == payDay:
		// Starting vacation exactly on the pay day keeps the full advance.
		return vacationOutcome{eligible: true, effectiveDays: days, note: "vacation starts on the pay day"}

	case startInMonth && leave.Start.Day() < payDay:
		startDay := leave.Start.Day()
		if startDay <= 1 {
			return vacationOutcome{eligible: false, note: "on vacation from the first day of the month"}
		}
		if !hasLoan {
			return vacationOutcome{eligible: false, note: "vacation before pay day and no consignado installment due"}
		}
		return vacationOutcome{
			eligible:      true,
			effectiveDays: startDay - 1,
			note:          fmt.Sprintf("vacation starts on day %d before pay day: %d effective days", startDay, startDay-1),
		}

	case !startInMonth && leave.Start.Before(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)) &&
		(leave.End == nil || !endInMonth):
		return vacationOutcome{eligible: false, note: "on vacation for the entire competence month"}

	default:
		return vacationOutcome{eligible: true, effectiveDays: days}
	}
}

// overlapDays counts how many days of the leave window fall inside the
// competence month. An open-ended window extends to the last day.
func overlapDays(leave advance.LeaveWindow, year, month, days int) int {
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(year, time.Month(month), days, 0, 0, 0, 0, time.UTC)

	start := leave.Start
	if start.Before(firstDay) {
		start = firstDay
	}
	end := lastDay
	if leave.End != nil && leave.End.Before(lastDay) {
		end = *leave.End
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// roundHalfUp rounds to a whole value, rounding up only when the fractional
// part strictly exceeds 0.500001. This matches the source system: not
// half-even, and not symmetric at exactly .5.
func roundHalfUp(v decimal.Decimal) decimal.Decimal {
	frac := v.Sub(v.Floor())
	if frac.GreaterThan(roundingThreshold) {
		return v.Ceil()
	}
	return v.Floor()
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
