package postgresql

import (
	"context"
	"fmt"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// sourceRepository reads employee, leave, loan and advance snapshots from the
// source payroll system's tables. Everything here is read-only: audits never
// write back to the source of truth.
type sourceRepository struct {
	db *database.DB
}

func NewSourceRepository(db *database.DB) advance.SourceRepository {
	return &sourceRepository{db: db}
}

func (r *sourceRepository) GetEmployees(ctx context.Context, companyExternalID, year, month int) ([]advance.EmployeeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, name, job_title, admission_date, termination_date,
			   salary, advance_flag, advance_percent, advance_fixed,
			   has_till_shortage, has_gratification
		FROM source_employees
		WHERE company_id = $1 AND competence_year = $2 AND competence_month = $3
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyExternalID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	var employees []advance.EmployeeRecord
	for rows.Next() {
		var e advance.EmployeeRecord
		var id, name, jobTitle, advanceFlag *string
		var salary, percent, fixed *decimal.Decimal

		err := rows.Scan(
			&id, &name, &jobTitle, &e.AdmissionDate, &e.TerminationDate,
			&salary, &advanceFlag, &percent, &fixed,
			&e.HasTillShortage, &e.HasGratification,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if id == nil || *id == "" {
			return nil, fmt.Errorf("company %d: %w", companyExternalID, advance.ErrEmployeeKeyMissing)
		}
		e.ID = *id

		// Legacy source tables carry NULLs in non-key columns; coerce to safe
		// defaults so one bad row does not fail the company's run.
		e.Name = stringOrEmpty(name)
		e.JobTitle = stringOrEmpty(jobTitle)
		e.AdvanceFlag = stringOrEmpty(advanceFlag)
		e.Salary = decimalOrZero(salary)
		e.AdvancePercent = decimalOrZero(percent)
		e.AdvanceFixed = decimalOrZero(fixed)

		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetLeaveWindows returns at most one window per employee: earliest start,
// latest end, first leave type.
func (r *sourceRepository) GetLeaveWindows(ctx context.Context, companyExternalID, year, month int) (map[string]advance.LeaveWindow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id,
			   (array_agg(leave_type ORDER BY start_date))[1],
			   MIN(start_date),
			   MAX(end_date)
		FROM source_leaves
		WHERE company_id = $1 AND competence_year = $2 AND competence_month = $3
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, companyExternalID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave windows: %w", err)
	}
	defer rows.Close()

	windows := make(map[string]advance.LeaveWindow)
	for rows.Next() {
		var w advance.LeaveWindow
		var rawType *string

		if err := rows.Scan(&w.EmployeeID, &rawType, &w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("failed to scan leave window: %w", err)
		}
		w.Type = advance.ParseLeaveType(stringOrEmpty(rawType))

		windows[w.EmployeeID] = w
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave windows: %w", err)
	}

	return windows, nil
}

// GetLoanInstallments returns the summed consignado installment due per
// employee in the competence month.
func (r *sourceRepository) GetLoanInstallments(ctx context.Context, companyExternalID, year, month int) (map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COALESCE(SUM(installment_value), 0)
		FROM source_loans
		WHERE company_id = $1 AND competence_year = $2 AND competence_month = $3
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, companyExternalID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan installments: %w", err)
	}
	defer rows.Close()

	loans := make(map[string]decimal.Decimal)
	for rows.Next() {
		var employeeID string
		var installment decimal.Decimal

		if err := rows.Scan(&employeeID, &installment); err != nil {
			return nil, fmt.Errorf("failed to scan loan installment: %w", err)
		}
		loans[employeeID] = installment
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loan installments: %w", err)
	}

	return loans, nil
}

func (r *sourceRepository) GetExternalAdvances(ctx context.Context, companyExternalID, year, month int) ([]advance.ExternalAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, name, gross_value
		FROM source_advances
		WHERE company_id = $1 AND competence_year = $2 AND competence_month = $3
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyExternalID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get source advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.ExternalAdvance
	for rows.Next() {
		var a advance.ExternalAdvance
		var name *string
		var gross *decimal.Decimal

		if err := rows.Scan(&a.EmployeeID, &name, &gross); err != nil {
			return nil, fmt.Errorf("failed to scan source advance: %w", err)
		}
		a.Name = stringOrEmpty(name)
		a.Gross = decimalOrZero(gross)

		advances = append(advances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate source advances: %w", err)
	}

	return advances, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
