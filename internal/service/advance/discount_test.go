package advance

import (
	"testing"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eligibleRow(gross int64) advance.AuditRow {
	g := decimal.NewFromInt(gross)
	return advance.AuditRow{
		EmployeeID:    "1001",
		Name:          "MARIA SILVA",
		Status:        advance.StatusEligible,
		EffectiveDays: 30,
		Gross:         g,
		Net:           g,
	}
}

func TestDiscountApplier_EmployeePercent(t *testing.T) {
	t.Parallel()
	applier := NewDiscountApplier()

	emp := testEmployee()
	row := applier.Apply(eligibleRow(800), emp, decimal.NewFromInt(500), testRule())

	// 500 x 40% = 200.00
	assert.True(t, row.Discount.Equal(decimal.NewFromInt(200)), "discount = %s", row.Discount)
	assert.True(t, row.Net.Equal(decimal.NewFromInt(600)), "net = %s", row.Net)
	assert.Contains(t, row.Justification, "40%")
}

func TestDiscountApplier_FixedValueRatioIsTruncated(t *testing.T) {
	t.Parallel()
	applier := NewDiscountApplier()

	emp := testEmployee()
	emp.AdvancePercent = decimal.Zero
	emp.AdvanceFixed = decimal.NewFromInt(700)
	emp.Salary = decimal.NewFromInt(1800)

	row := applier.Apply(eligibleRow(700), emp, decimal.NewFromInt(500), testRule())

	// 700/1800 = 38.888...%, truncated to 38%: 500 x 0.38 = 190.00
	assert.True(t, row.Discount.Equal(decimal.NewFromInt(190)), "discount = %s", row.Discount)
	assert.Contains(t, row.Justification, "38%")
}

func TestDiscountApplier_CompanyProvisionFallback(t *testing.T) {
	t.Parallel()
	applier := NewDiscountApplier()

	emp := testEmployee()
	emp.AdvancePercent = decimal.Zero
	emp.AdvanceFixed = decimal.Zero

	row := applier.Apply(eligibleRow(800), emp, decimal.NewFromInt(500), testRule())

	// Falls back to the company's 40% provision.
	assert.True(t, row.Discount.Equal(decimal.NewFromInt(200)), "discount = %s", row.Discount)
}

func TestDiscountApplier_ZeroProvisionOverride(t *testing.T) {
	t.Parallel()
	applier := NewDiscountApplier()

	rule := testRule()
	rule.Overrides.ZeroProvision = true

	row := applier.Apply(eligibleRow(800), testEmployee(), decimal.NewFromInt(500), rule)

	assert.True(t, row.Discount.IsZero())
	assert.True(t, row.Net.Equal(decimal.NewFromInt(800)))
}

func TestDiscountApplier_NoInstallment(t *testing.T) {
	t.Parallel()
	applier := NewDiscountApplier()

	row := applier.Apply(eligibleRow(800), testEmployee(), decimal.Zero, testRule())

	assert.True(t, row.Discount.IsZero())
	assert.True(t, row.Net.Equal(decimal.NewFromInt(800)))
}

func TestDiscountApplier_IneligibleRowPassesThrough(t *testing.T) {
	t.Parallel()
	applier := NewDiscountApplier()

	in := advance.AuditRow{
		EmployeeID:    "1001",
		Status:        advance.StatusIneligible,
		Justification: "terminated before pay day",
	}

	out := applier.Apply(in, testEmployee(), decimal.NewFromInt(500), testRule())

	assert.Equal(t, in, out)
}

func TestDiscountApplier_NetNeverNegative(t *testing.T) {
	t.Parallel()
	applier := NewDiscountApplier()

	row := applier.Apply(eligibleRow(100), testEmployee(), decimal.NewFromInt(5000), testRule())

	// Discount 2000.00 exceeds the gross; the net clamps at zero.
	require.True(t, row.Discount.Equal(decimal.NewFromInt(2000)), "discount = %s", row.Discount)
	assert.True(t, row.Net.IsZero(), "net = %s", row.Net)
}
