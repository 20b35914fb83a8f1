package postgresql

import (
	"context"
	"fmt"

	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taxAuditRepository struct {
	db *database.DB
}

func NewTaxAuditRepository(db *database.DB) taxaudit.AuditRepository {
	return &taxAuditRepository{db: db}
}

func (r *taxAuditRepository) SaveAudits(ctx context.Context, runID string, audits []taxaudit.EmployeeAudit) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		employeeQuery := `
			INSERT INTO tax_audit_employees (
				run_id, employee_id, name, event_count, earnings, deductions, net
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		itemQuery := `
			INSERT INTO tax_audit_items (
				run_id, employee_id, code, name, expected, posted, difference, status, formula, memo
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		for _, audit := range audits {
			_, err := tx.Exec(ctx, employeeQuery,
				runID, audit.EmployeeID, audit.Name, audit.EventCount,
				audit.Totals.Earnings, audit.Totals.Deductions, audit.Totals.Net,
			)
			if err != nil {
				return fmt.Errorf("failed to save tax audit for %s: %w", audit.EmployeeID, err)
			}

			for _, item := range audit.Items {
				_, err := tx.Exec(ctx, itemQuery,
					runID, audit.EmployeeID, item.Code, item.Name,
					item.Expected, item.Posted, item.Difference, item.Status, item.Formula, item.Memo,
				)
				if err != nil {
					return fmt.Errorf("failed to save tax audit item %d for %s: %w", item.Code, audit.EmployeeID, err)
				}
			}
		}
		return nil
	})
}

func (r *taxAuditRepository) GetAudits(ctx context.Context, runID string) ([]taxaudit.EmployeeAudit, error) {
	q := GetQuerier(ctx, r.db)

	employeeQuery := `
		SELECT employee_id, name, event_count, earnings, deductions, net
		FROM tax_audit_employees
		WHERE run_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, employeeQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax audits: %w", err)
	}
	defer rows.Close()

	var audits []taxaudit.EmployeeAudit
	index := make(map[string]int)
	for rows.Next() {
		var a taxaudit.EmployeeAudit
		err := rows.Scan(
			&a.EmployeeID, &a.Name, &a.EventCount,
			&a.Totals.Earnings, &a.Totals.Deductions, &a.Totals.Net,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax audit: %w", err)
		}
		index[a.EmployeeID] = len(audits)
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tax audits: %w", err)
	}

	itemQuery := `
		SELECT employee_id, code, name, expected, posted, difference, status, formula, memo
		FROM tax_audit_items
		WHERE run_id = $1
		ORDER BY employee_id, code
	`

	itemRows, err := q.Query(ctx, itemQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax audit items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var employeeID string
		var item taxaudit.TaxAuditItem
		err := itemRows.Scan(
			&employeeID, &item.Code, &item.Name,
			&item.Expected, &item.Posted, &item.Difference, &item.Status, &item.Formula, &item.Memo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax audit item: %w", err)
		}
		if i, ok := index[employeeID]; ok {
			audits[i].Items = append(audits[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tax audit items: %w", err)
	}

	return audits, nil
}
