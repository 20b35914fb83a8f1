package taxaudit

import (
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ComputeSocialSecurity recomputes the social-security withholding over the
// given base using marginal progressive brackets, capped at the table ceiling.
func ComputeSocialSecurity(base decimal.Decimal, table catalog.StatutoryTable) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	capped := base
	ceiling := table.SocialSecurityCeilingBase()
	if capped.GreaterThan(ceiling) {
		capped = ceiling
	}

	total := decimal.Zero
	lower := decimal.Zero
	for _, bracket := range table.SocialSecurityBrackets {
		upper := bracket.UpTo
		if capped.LessThanOrEqual(lower) {
			break
		}
		slice := decimal.Min(capped, upper).Sub(lower)
		if slice.IsPositive() {
			total = total.Add(slice.Mul(bracket.Rate))
		}
		lower = upper
	}
	return total.Round(2)
}

// ComputeIncomeTax recomputes the income-tax withholding. The taxable base is
// the gross base minus the social-security withholding and the per-dependent
// deduction; the bracket table applies rate-minus-deduction, floored at zero.
func ComputeIncomeTax(base, socialSecurity decimal.Decimal, dependents int, table catalog.StatutoryTable) decimal.Decimal {
	taxable := base.
		Sub(socialSecurity).
		Sub(table.DependentDeduction.Mul(decimal.NewFromInt(int64(dependents))))
	if !taxable.IsPositive() {
		return decimal.Zero
	}

	for _, bracket := range table.IncomeTaxBrackets {
		if bracket.UpTo.IsZero() || taxable.LessThanOrEqual(bracket.UpTo) {
			tax := taxable.Mul(bracket.Rate).Sub(bracket.Deduction)
			if tax.IsNegative() {
				return decimal.Zero
			}
			return tax.Round(2)
		}
	}
	return decimal.Zero
}

// ComputeSeverance recomputes the severance-fund deposit as a flat percentage
// of its base. Apprentice contracts use the reduced rate.
func ComputeSeverance(base decimal.Decimal, apprentice bool, table catalog.StatutoryTable) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	rate := table.SeveranceRate
	if apprentice {
		rate = table.SeveranceApprenticeRate
	}
	return base.Mul(rate).Round(2)
}
