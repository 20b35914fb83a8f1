package advance

import (
	"fmt"
	"sort"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/shopspring/decimal"
)

// reconcileTolerance is the absolute difference under which a recomputed net
// and the source system's gross are considered the same value.
var reconcileTolerance = decimal.NewFromFloat(0.01)

// Differ merges the recomputed rows with the source system's pre-computed
// advance and classifies each employee.
type Differ struct{}

func NewDiffer() *Differ {
	return &Differ{}
}

// Diff performs an outer join on employee identifier. Every employee present
// on either side appears exactly once in the result, classified. Missing
// numeric fields default to zero and missing text fields to empty before
// comparison.
func (d *Differ) Diff(rows []advance.AuditRow, external []advance.ExternalAdvance) []advance.AuditRow {
	externalByID := make(map[string]advance.ExternalAdvance, len(external))
	for _, e := range external {
		externalByID[e.EmployeeID] = e
	}

	seen := make(map[string]bool, len(rows))
	result := make([]advance.AuditRow, 0, len(rows)+len(external))

	for _, row := range rows {
		seen[row.EmployeeID] = true

		ext, ok := externalByID[row.EmployeeID]
		if !ok {
			if row.Status == advance.StatusIneligible {
				row.Classification = advance.ClassRemovedByRules
			} else {
				row.Classification = advance.ClassOnlyComputed
			}
			result = append(result, row)
			continue
		}

		row.ExternalGross = ext.Gross
		diff := row.Net.Sub(ext.Gross).Abs()
		if diff.LessThanOrEqual(reconcileTolerance) {
			row.Classification = advance.ClassOK
		} else {
			row.Classification = fmt.Sprintf("recomputed net %s diverges from source value %s",
				row.Net.StringFixed(2), ext.Gross.StringFixed(2))
			row.Analysis = fmt.Sprintf("difference %s", row.Net.Sub(ext.Gross).StringFixed(2))
		}
		result = append(result, row)
	}

	for _, ext := range external {
		if seen[ext.EmployeeID] {
			continue
		}
		result = append(result, advance.AuditRow{
			EmployeeID:     ext.EmployeeID,
			Name:           ext.Name,
			Status:         advance.StatusIneligible,
			ExternalGross:  ext.Gross,
			Gross:          decimal.Zero,
			Discount:       decimal.Zero,
			Net:            decimal.Zero,
			Classification: advance.ClassOnlySource,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
