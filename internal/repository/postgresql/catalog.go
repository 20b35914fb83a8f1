package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/database"
)

type catalogRepository struct {
	db *database.DB
}

func NewCatalogRepository(db *database.DB) catalog.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) LoadCompanyRules(ctx context.Context) ([]catalog.CompanyRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT code, name, external_id, pay_day, admission_cutoff_day,
			   provision_percent, special_role_values,
			   disable_rounding, zero_provision, name_contains, admission_cutoff_override
		FROM company_rules
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load company rules: %w", err)
	}
	defer rows.Close()

	var rules []catalog.CompanyRule
	for rows.Next() {
		var rule catalog.CompanyRule
		var specialRoles []byte
		var nameContains *string

		err := rows.Scan(
			&rule.Code, &rule.Name, &rule.ExternalID, &rule.PayDay, &rule.AdmissionCutoffDay,
			&rule.ProvisionPercent, &specialRoles,
			&rule.Overrides.DisableRounding, &rule.Overrides.ZeroProvision,
			&nameContains, &rule.Overrides.AdmissionCutoffDay,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company rule: %w", err)
		}

		if len(specialRoles) > 0 {
			if err := json.Unmarshal(specialRoles, &rule.SpecialRoleValues); err != nil {
				return nil, fmt.Errorf("failed to decode special role values for %s: %w", rule.Code, err)
			}
		}
		if nameContains != nil {
			rule.Overrides.NameContains = *nameContains
		}

		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company rules: %w", err)
	}

	return rules, nil
}

func (r *catalogRepository) LoadEventEntries(ctx context.Context) ([]catalog.EventEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT code, description, nature,
			   incidence_social_security, incidence_income_tax, incidence_severance_fund
		FROM event_catalog
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load event catalog: %w", err)
	}
	defer rows.Close()

	var entries []catalog.EventEntry
	for rows.Next() {
		var e catalog.EventEntry
		var nature int

		err := rows.Scan(
			&e.Code, &e.Description, &nature,
			&e.Incidence.SocialSecurity, &e.Incidence.IncomeTax, &e.Incidence.SeveranceFund,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event entry: %w", err)
		}
		e.Nature = catalog.EventNature(nature)

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event catalog: %w", err)
	}

	return entries, nil
}
