package advance

import (
	"fmt"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// DiscountApplier derives the consignado discount for eligible rows and
// produces the net advance value.
type DiscountApplier struct{}

func NewDiscountApplier() *DiscountApplier {
	return &DiscountApplier{}
}

// Apply computes the discount for one eligible row. Ineligible rows pass
// through untouched.
func (d *DiscountApplier) Apply(
	row advance.AuditRow,
	emp advance.EmployeeRecord,
	loan decimal.Decimal,
	rule catalog.CompanyRule,
) advance.AuditRow {
	if row.Status != advance.StatusEligible {
		return row
	}

	if loan.IsZero() || rule.Overrides.ZeroProvision {
		row.Net = maxZero(row.Gross)
		return row
	}

	pct := resolveDiscountPercent(emp, rule)

	discount := loan.Mul(pct)
	if !rule.Overrides.DisableRounding {
		discount = discount.Round(2)
	}

	row.Discount = discount
	row.Net = maxZero(row.Gross.Sub(discount))
	row.Justification = appendJustification(row.Justification, fmt.Sprintf(
		"consignado installment %s at %s%%: discount %s",
		loan.StringFixed(2),
		pct.Mul(oneHundred).StringFixed(0),
		discount.StringFixed(2),
	))
	return row
}

// resolveDiscountPercent resolves the discount ratio in order: the
// employee's configured percentage, the ratio implied by a fixed advance
// value (truncated to two decimals, never rounded), then the company's
// default provision.
func resolveDiscountPercent(emp advance.EmployeeRecord, rule catalog.CompanyRule) decimal.Decimal {
	if emp.AdvancePercent.IsPositive() {
		return emp.AdvancePercent.Div(oneHundred)
	}
	if emp.AdvanceFixed.IsPositive() && emp.Salary.IsPositive() {
		ratio := emp.AdvanceFixed.Div(emp.Salary).Mul(oneHundred)
		return ratio.Floor().Div(oneHundred)
	}
	return rule.ProvisionPercent.Div(oneHundred)
}

func appendJustification(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "; " + note
}

func maxZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
