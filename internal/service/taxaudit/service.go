package taxaudit

import (
	"context"
	"fmt"
	"sort"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/google/uuid"
)

type TaxAuditService struct {
	ruleCatalog *catalog.RuleCatalog
	eventRepo   taxaudit.EventRepository
	auditRepo   taxaudit.AuditRepository
	runRepo     advance.RunRepository
	engine      *Engine
}

func NewTaxAuditService(
	ruleCatalog *catalog.RuleCatalog,
	eventRepo taxaudit.EventRepository,
	auditRepo taxaudit.AuditRepository,
	runRepo advance.RunRepository,
) *TaxAuditService {
	return &TaxAuditService{
		ruleCatalog: ruleCatalog,
		eventRepo:   eventRepo,
		auditRepo:   auditRepo,
		runRepo:     runRepo,
		engine:      NewEngine(),
	}
}

// RunCompany audits one company's full payroll for the competence month and
// persists the per-employee results.
func (s *TaxAuditService) RunCompany(ctx context.Context, companyCode string, year, month int) (taxaudit.PayrollAuditResponse, error) {
	rule, err := s.ruleCatalog.Get(companyCode)
	if err != nil {
		return taxaudit.PayrollAuditResponse{}, fmt.Errorf("company %s: %w", companyCode, err)
	}
	table, err := catalog.StatutoryFor(year)
	if err != nil {
		return taxaudit.PayrollAuditResponse{}, fmt.Errorf("competence year %d: %w", year, err)
	}

	employees, err := s.eventRepo.GetEmployeeEvents(ctx, *rule.ExternalID, year, month)
	if err != nil {
		return taxaudit.PayrollAuditResponse{}, fmt.Errorf("failed to fetch payroll events: %w", err)
	}
	if len(employees) == 0 {
		return taxaudit.PayrollAuditResponse{}, taxaudit.ErrNoEvents
	}

	audits := make([]taxaudit.EmployeeAudit, 0, len(employees))
	for _, emp := range employees {
		audits = append(audits, s.engine.Audit(emp, table, year, month))
	}
	sort.Slice(audits, func(i, j int) bool { return audits[i].Name < audits[j].Name })

	run := advance.AuditRun{
		ID:          uuid.NewString(),
		CompanyCode: companyCode,
		Kind:        advance.RunPayroll,
		Year:        year,
		Month:       month,
		Status:      advance.RunStatusCompleted,
	}
	created, err := s.runRepo.CreateRun(ctx, run)
	if err != nil {
		return taxaudit.PayrollAuditResponse{}, fmt.Errorf("failed to persist audit run: %w", err)
	}
	if err := s.auditRepo.SaveAudits(ctx, created.ID, audits); err != nil {
		return taxaudit.PayrollAuditResponse{}, fmt.Errorf("failed to persist audit items: %w", err)
	}

	return taxaudit.PayrollAuditResponse{
		RunID:       created.ID,
		CompanyCode: companyCode,
		Year:        year,
		Month:       month,
		Employees:   taxaudit.MapEmployeeAuditResponses(audits),
	}, nil
}

// GetRun returns a previously persisted payroll audit.
func (s *TaxAuditService) GetRun(ctx context.Context, runID string) (taxaudit.PayrollAuditResponse, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return taxaudit.PayrollAuditResponse{}, err
	}
	audits, err := s.auditRepo.GetAudits(ctx, runID)
	if err != nil {
		return taxaudit.PayrollAuditResponse{}, err
	}
	return taxaudit.PayrollAuditResponse{
		RunID:       run.ID,
		CompanyCode: run.CompanyCode,
		Year:        run.Year,
		Month:       run.Month,
		Employees:   taxaudit.MapEmployeeAuditResponses(audits),
	}, nil
}
