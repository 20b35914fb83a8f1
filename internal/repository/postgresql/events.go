package postgresql

import (
	"context"
	"fmt"

	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// eventRepository reads the raw pay-event postings from the source payroll
// system and enriches each event with its catalog classification. Code
// normalization happens here, once at ingestion.
type eventRepository struct {
	db           *database.DB
	eventCatalog *catalog.EventCatalog
}

func NewEventRepository(db *database.DB, eventCatalog *catalog.EventCatalog) taxaudit.EventRepository {
	return &eventRepository{db: db, eventCatalog: eventCatalog}
}

func (r *eventRepository) GetEmployeeEvents(ctx context.Context, companyExternalID, year, month int) ([]taxaudit.EmployeeEvents, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.employee_id, e.name, e.dependents, e.apprentice,
			   v.event_code, v.description, v.nature, v.value, v.reference
		FROM source_payroll_employees e
		LEFT JOIN source_payroll_events v
			ON v.employee_id = e.employee_id
			AND v.company_id = e.company_id
			AND v.competence_year = e.competence_year
			AND v.competence_month = e.competence_month
		WHERE e.company_id = $1 AND e.competence_year = $2 AND e.competence_month = $3
		ORDER BY e.name, v.event_code
	`

	rows, err := q.Query(ctx, query, companyExternalID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll events: %w", err)
	}
	defer rows.Close()

	byEmployee := make(map[string]*taxaudit.EmployeeEvents)
	var order []string
	for rows.Next() {
		var employeeID string
		var name *string
		var dependents *int
		var apprentice *bool
		var rawCode, description *string
		var nature *int
		var value, reference *decimal.Decimal

		err := rows.Scan(
			&employeeID, &name, &dependents, &apprentice,
			&rawCode, &description, &nature, &value, &reference,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll event: %w", err)
		}

		emp, ok := byEmployee[employeeID]
		if !ok {
			emp = &taxaudit.EmployeeEvents{
				EmployeeID: employeeID,
				Name:       stringOrEmpty(name),
			}
			if dependents != nil {
				emp.Dependents = *dependents
			}
			if apprentice != nil {
				emp.Apprentice = *apprentice
			}
			byEmployee[employeeID] = emp
			order = append(order, employeeID)
		}

		// Employees without postings come back with a NULL event row; they
		// stay in the result with an empty event list.
		if rawCode == nil {
			continue
		}

		emp.Events = append(emp.Events, r.buildEvent(*rawCode, stringOrEmpty(description), nature, value, reference))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll events: %w", err)
	}

	result := make([]taxaudit.EmployeeEvents, 0, len(order))
	for _, id := range order {
		result = append(result, *byEmployee[id])
	}
	return result, nil
}

// buildEvent normalizes the raw code and resolves nature and incidence flags
// from the catalog. The posted nature column wins over the catalog's when the
// source recorded one; malformed numerics coerce to zero.
func (r *eventRepository) buildEvent(rawCode, description string, nature *int, value, reference *decimal.Decimal) taxaudit.PayrollEvent {
	event := taxaudit.PayrollEvent{
		RawCode:     rawCode,
		Description: description,
		Value:       decimalOrZero(value),
		Reference:   decimalOrZero(reference),
	}

	code, err := catalog.NormalizeCode(rawCode)
	if err == nil {
		event.Code = code
		if entry, ok := r.eventCatalog.Lookup(code); ok {
			event.Nature = entry.Nature
			event.Incidence = entry.Incidence
			if event.Description == "" {
				event.Description = entry.Description
			}
		}
	}
	if nature != nil {
		event.Nature = catalog.EventNature(*nature)
	}

	return event
}
