package advance

import (
	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/shopspring/decimal"
)

// CorrectionCalculator derives the parameters the source system would need
// to reproduce the recomputed advance values. The output is handed to a
// human-supervised update step; nothing here writes to the source system.
type CorrectionCalculator struct{}

func NewCorrectionCalculator() *CorrectionCalculator {
	return &CorrectionCalculator{}
}

// Derive produces one correction per eligible row. Rows whose gross came
// from a fixed or special-role value map to the fixed-value method; the rest
// map to a percentage of salary.
func (c *CorrectionCalculator) Derive(rows []advance.AuditRow, employees map[string]advance.EmployeeRecord) []advance.ParameterCorrection {
	corrections := make([]advance.ParameterCorrection, 0, len(rows))

	for _, row := range rows {
		if row.Status != advance.StatusEligible {
			continue
		}

		emp, ok := employees[row.EmployeeID]
		if row.SpecialRole || (ok && emp.AdvanceFixed.IsPositive()) || !ok || !emp.Salary.IsPositive() {
			fixed := row.Gross
			corrections = append(corrections, advance.ParameterCorrection{
				EmployeeID: row.EmployeeID,
				FixedValue: &fixed,
				Method:     advance.CorrectionFixed,
			})
			continue
		}

		percent := row.Gross.Div(emp.Salary).Mul(decimal.NewFromInt(100)).Round(2)
		corrections = append(corrections, advance.ParameterCorrection{
			EmployeeID: row.EmployeeID,
			Percent:    &percent,
			Method:     advance.CorrectionPercent,
		})
	}

	return corrections
}
