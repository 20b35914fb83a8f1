package postgresql

import (
	"context"
	"fmt"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type runRepository struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) advance.RunRepository {
	return &runRepository{db: db}
}

// ========== RUNS ==========

func (r *runRepository) CreateRun(ctx context.Context, run advance.AuditRun) (advance.AuditRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_runs (id, company_code, kind, competence_year, competence_month, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_code, kind, competence_year, competence_month, status, error, created_at
	`

	var created advance.AuditRun
	err := q.QueryRow(ctx, query,
		run.ID, run.CompanyCode, run.Kind, run.Year, run.Month, run.Status, run.Error,
	).Scan(
		&created.ID, &created.CompanyCode, &created.Kind, &created.Year, &created.Month,
		&created.Status, &created.Error, &created.CreatedAt,
	)
	if err != nil {
		return advance.AuditRun{}, fmt.Errorf("failed to create audit run: %w", err)
	}

	return created, nil
}

func (r *runRepository) GetRun(ctx context.Context, runID string) (advance.AuditRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_code, kind, competence_year, competence_month, status, error, created_at
		FROM audit_runs
		WHERE id = $1
	`

	var run advance.AuditRun
	err := q.QueryRow(ctx, query, runID).Scan(
		&run.ID, &run.CompanyCode, &run.Kind, &run.Year, &run.Month,
		&run.Status, &run.Error, &run.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.AuditRun{}, advance.ErrRunNotFound
		}
		return advance.AuditRun{}, fmt.Errorf("failed to get audit run: %w", err)
	}

	return run, nil
}

func (r *runRepository) ListRuns(ctx context.Context, companyCode string, limit int) ([]advance.AuditRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_code, kind, competence_year, competence_month, status, error, created_at
		FROM audit_runs
		WHERE company_code = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, companyCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit runs: %w", err)
	}
	defer rows.Close()

	var runs []advance.AuditRun
	for rows.Next() {
		var run advance.AuditRun
		err := rows.Scan(
			&run.ID, &run.CompanyCode, &run.Kind, &run.Year, &run.Month,
			&run.Status, &run.Error, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit runs: %w", err)
	}

	return runs, nil
}

// ========== ROWS ==========

func (r *runRepository) SaveRows(ctx context.Context, runID string, rows []advance.AuditRow) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO audit_rows (
				run_id, employee_id, name, job_title, status, justification,
				effective_days, special_role, gross, discount, net,
				external_gross, classification, analysis
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`
		for _, row := range rows {
			_, err := tx.Exec(ctx, query,
				runID, row.EmployeeID, row.Name, row.JobTitle, row.Status, row.Justification,
				row.EffectiveDays, row.SpecialRole, row.Gross, row.Discount, row.Net,
				row.ExternalGross, row.Classification, row.Analysis,
			)
			if err != nil {
				return fmt.Errorf("failed to save audit row for %s: %w", row.EmployeeID, err)
			}
		}
		return nil
	})
}

func (r *runRepository) GetRows(ctx context.Context, runID string) ([]advance.AuditRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, name, job_title, status, justification,
			   effective_days, special_role, gross, discount, net,
			   external_gross, classification, analysis
		FROM audit_rows
		WHERE run_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit rows: %w", err)
	}
	defer rows.Close()

	var result []advance.AuditRow
	for rows.Next() {
		var row advance.AuditRow
		err := rows.Scan(
			&row.EmployeeID, &row.Name, &row.JobTitle, &row.Status, &row.Justification,
			&row.EffectiveDays, &row.SpecialRole, &row.Gross, &row.Discount, &row.Net,
			&row.ExternalGross, &row.Classification, &row.Analysis,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit rows: %w", err)
	}

	return result, nil
}

// ========== CORRECTIONS ==========

func (r *runRepository) SaveCorrections(ctx context.Context, runID string, corrections []advance.ParameterCorrection) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO audit_corrections (run_id, employee_id, percent, fixed_value, method)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, c := range corrections {
			_, err := tx.Exec(ctx, query, runID, c.EmployeeID, c.Percent, c.FixedValue, c.Method)
			if err != nil {
				return fmt.Errorf("failed to save correction for %s: %w", c.EmployeeID, err)
			}
		}
		return nil
	})
}

func (r *runRepository) GetCorrections(ctx context.Context, runID string) ([]advance.ParameterCorrection, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, percent, fixed_value, method
		FROM audit_corrections
		WHERE run_id = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get corrections: %w", err)
	}
	defer rows.Close()

	var result []advance.ParameterCorrection
	for rows.Next() {
		var c advance.ParameterCorrection
		if err := rows.Scan(&c.EmployeeID, &c.Percent, &c.FixedValue, &c.Method); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	return result, nil
}
