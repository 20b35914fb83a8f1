package taxaudit

import (
	"testing"

	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table2024(t *testing.T) catalog.StatutoryTable {
	t.Helper()
	table, err := catalog.StatutoryFor(2024)
	require.NoError(t, err)
	return table
}

func TestComputeSocialSecurity(t *testing.T) {
	t.Parallel()
	table := table2024(t)

	tests := []struct {
		name string
		base string
		want string
	}{
		{"first bracket boundary", "1412.00", "105.90"},
		{"second bracket", "2000.00", "158.82"},
		{"third bracket", "3000.00", "258.82"},
		{"above the ceiling contributes at the cap", "10000.00", "908.86"},
		{"zero base", "0", "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			base, err := decimal.NewFromString(tt.base)
			require.NoError(t, err)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)

			got := ComputeSocialSecurity(base, table)
			assert.True(t, got.Equal(want), "ComputeSocialSecurity(%s) = %s, want %s", tt.base, got, tt.want)
		})
	}
}

func TestComputeIncomeTax(t *testing.T) {
	t.Parallel()
	table := table2024(t)

	tests := []struct {
		name           string
		base           string
		socialSecurity string
		dependents     int
		want           string
	}{
		// 3000 - 258.82 = 2741.18 taxable: 7.5% - 169.44 = 36.15
		{"second bracket", "3000.00", "258.82", 0, "36.15"},
		// dependents shrink the taxable base: 2741.18 - 2x189.59 = 2362.00
		{"dependent deduction", "3000.00", "258.82", 2, "7.71"},
		{"below the exemption line", "2000.00", "158.82", 0, "0"},
		{"negative taxable base", "300.00", "500.00", 0, "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			base, err := decimal.NewFromString(tt.base)
			require.NoError(t, err)
			ss, err := decimal.NewFromString(tt.socialSecurity)
			require.NoError(t, err)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)

			got := ComputeIncomeTax(base, ss, tt.dependents, table)
			assert.True(t, got.Equal(want), "ComputeIncomeTax(%s) = %s, want %s", tt.base, got, tt.want)
		})
	}
}

func TestComputeIncomeTax_TopBracket(t *testing.T) {
	t.Parallel()
	table := table2024(t)

	// 10000 - 908.86 = 9091.14 taxable: 27.5% - 896.00 = 1604.06 (rounded)
	got := ComputeIncomeTax(decimal.NewFromInt(10000), decimal.NewFromFloat(908.86), 0, table)
	assert.True(t, got.Equal(decimal.NewFromFloat(1604.06)), "tax = %s", got)
}

func TestComputeSeverance(t *testing.T) {
	t.Parallel()
	table := table2024(t)

	regular := ComputeSeverance(decimal.NewFromInt(3000), false, table)
	assert.True(t, regular.Equal(decimal.NewFromInt(240)), "severance = %s", regular)

	apprentice := ComputeSeverance(decimal.NewFromInt(3000), true, table)
	assert.True(t, apprentice.Equal(decimal.NewFromInt(60)), "severance = %s", apprentice)

	assert.True(t, ComputeSeverance(decimal.Zero, false, table).IsZero())
}
