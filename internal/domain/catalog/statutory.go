package catalog

import "github.com/shopspring/decimal"

// TaxBracket is one row of a progressive table. UpTo is the bracket's upper
// bound; a zero UpTo marks the open-ended top bracket. Deduction is the
// cumulative deduction used by the rate-minus-deduction form (income tax).
type TaxBracket struct {
	UpTo      decimal.Decimal
	Rate      decimal.Decimal
	Deduction decimal.Decimal
}

// StatutoryTable carries every legally fixed value the tax audit needs for
// one competence year.
type StatutoryTable struct {
	Year int

	// Social-security withholding: marginal progressive brackets, capped at
	// the contribution salary ceiling (the last bracket's UpTo).
	SocialSecurityBrackets []TaxBracket

	// Income-tax withholding: rate-minus-deduction brackets plus the fixed
	// per-dependent deduction.
	IncomeTaxBrackets  []TaxBracket
	DependentDeduction decimal.Decimal

	// Severance fund: flat rate, reduced for apprentice contracts.
	SeveranceRate           decimal.Decimal
	SeveranceApprenticeRate decimal.Decimal

	// MinimumWage is the reference value for graduated unhealthiness pay.
	MinimumWage decimal.Decimal

	// Family allowance: fixed quota per dependent, payable up to the salary limit.
	FamilyAllowanceQuota decimal.Decimal
	FamilyAllowanceLimit decimal.Decimal

	// MonthlyHourDivisor converts a monthly salary into an hourly rate (220).
	MonthlyHourDivisor decimal.Decimal
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("catalog: bad statutory constant " + s)
	}
	return d
}

var statutoryTables = map[int]StatutoryTable{
	2024: {
		Year: 2024,
		SocialSecurityBrackets: []TaxBracket{
			{UpTo: dec("1412.00"), Rate: dec("0.075")},
			{UpTo: dec("2666.68"), Rate: dec("0.09")},
			{UpTo: dec("4000.03"), Rate: dec("0.12")},
			{UpTo: dec("7786.02"), Rate: dec("0.14")},
		},
		IncomeTaxBrackets: []TaxBracket{
			{UpTo: dec("2259.20"), Rate: dec("0"), Deduction: dec("0")},
			{UpTo: dec("2826.65"), Rate: dec("0.075"), Deduction: dec("169.44")},
			{UpTo: dec("3751.05"), Rate: dec("0.15"), Deduction: dec("381.44")},
			{UpTo: dec("4664.68"), Rate: dec("0.225"), Deduction: dec("662.77")},
			{Rate: dec("0.275"), Deduction: dec("896.00")},
		},
		DependentDeduction:      dec("189.59"),
		SeveranceRate:           dec("0.08"),
		SeveranceApprenticeRate: dec("0.02"),
		MinimumWage:             dec("1412.00"),
		FamilyAllowanceQuota:    dec("62.04"),
		FamilyAllowanceLimit:    dec("1819.26"),
		MonthlyHourDivisor:      dec("220"),
	},
	2025: {
		Year: 2025,
		SocialSecurityBrackets: []TaxBracket{
			{UpTo: dec("1518.00"), Rate: dec("0.075")},
			{UpTo: dec("2793.88"), Rate: dec("0.09")},
			{UpTo: dec("4190.83"), Rate: dec("0.12")},
			{UpTo: dec("8157.41"), Rate: dec("0.14")},
		},
		IncomeTaxBrackets: []TaxBracket{
			{UpTo: dec("2259.20"), Rate: dec("0"), Deduction: dec("0")},
			{UpTo: dec("2826.65"), Rate: dec("0.075"), Deduction: dec("169.44")},
			{UpTo: dec("3751.05"), Rate: dec("0.15"), Deduction: dec("381.44")},
			{UpTo: dec("4664.68"), Rate: dec("0.225"), Deduction: dec("662.77")},
			{Rate: dec("0.275"), Deduction: dec("896.00")},
		},
		DependentDeduction:      dec("189.59"),
		SeveranceRate:           dec("0.08"),
		SeveranceApprenticeRate: dec("0.02"),
		MinimumWage:             dec("1518.00"),
		FamilyAllowanceQuota:    dec("65.00"),
		FamilyAllowanceLimit:    dec("1906.04"),
		MonthlyHourDivisor:      dec("220"),
	},
}

// StatutoryFor returns the statutory table for a competence year.
func StatutoryFor(year int) (StatutoryTable, error) {
	table, ok := statutoryTables[year]
	if !ok {
		return StatutoryTable{}, ErrNoStatutoryTable
	}
	return table, nil
}

// SocialSecurityCeilingBase returns the contribution salary cap, the last
// bracket's upper bound. Bases above it contribute as if at the cap.
func (t StatutoryTable) SocialSecurityCeilingBase() decimal.Decimal {
	if len(t.SocialSecurityBrackets) == 0 {
		return decimal.Zero
	}
	return t.SocialSecurityBrackets[len(t.SocialSecurityBrackets)-1].UpTo
}

// SocialSecurityCeiling returns the maximum withholding: the progressive
// value at the contribution salary cap.
func (t StatutoryTable) SocialSecurityCeiling() decimal.Decimal {
	total := decimal.Zero
	lower := decimal.Zero
	for _, b := range t.SocialSecurityBrackets {
		total = total.Add(b.UpTo.Sub(lower).Mul(b.Rate))
		lower = b.UpTo
	}
	return total
}
