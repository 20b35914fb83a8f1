package advance

import (
	"context"
	"fmt"
	"sync"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentCompanies bounds the multi-company fan-out.
const maxConcurrentCompanies = 4

type AdvanceService struct {
	ruleCatalog *catalog.RuleCatalog
	sourceRepo  advance.SourceRepository
	runRepo     advance.RunRepository
	calculator  *Calculator
	discounts   *DiscountApplier
	differ      *Differ
	corrections *CorrectionCalculator
}

func NewAdvanceService(
	ruleCatalog *catalog.RuleCatalog,
	sourceRepo advance.SourceRepository,
	runRepo advance.RunRepository,
) *AdvanceService {
	return &AdvanceService{
		ruleCatalog: ruleCatalog,
		sourceRepo:  sourceRepo,
		runRepo:     runRepo,
		calculator:  NewCalculator(),
		discounts:   NewDiscountApplier(),
		differ:      NewDiffer(),
		corrections: NewCorrectionCalculator(),
	}
}

// RunCompany executes one advance audit for a single company and competence
// month and persists the results.
func (s *AdvanceService) RunCompany(ctx context.Context, companyCode string, year, month int) (advance.CompanyAuditResponse, error) {
	rule, err := s.ruleCatalog.Get(companyCode)
	if err != nil {
		return advance.CompanyAuditResponse{}, fmt.Errorf("company %s: %w", companyCode, err)
	}

	rows, corrections, err := s.audit(ctx, rule, year, month)
	if err != nil {
		return advance.CompanyAuditResponse{}, err
	}

	run := advance.AuditRun{
		ID:          uuid.NewString(),
		CompanyCode: companyCode,
		Kind:        advance.RunAdvance,
		Year:        year,
		Month:       month,
		Status:      advance.RunStatusCompleted,
	}
	created, err := s.runRepo.CreateRun(ctx, run)
	if err != nil {
		return advance.CompanyAuditResponse{}, fmt.Errorf("failed to persist audit run: %w", err)
	}
	if err := s.runRepo.SaveRows(ctx, created.ID, rows); err != nil {
		return advance.CompanyAuditResponse{}, fmt.Errorf("failed to persist audit rows: %w", err)
	}
	if err := s.runRepo.SaveCorrections(ctx, created.ID, corrections); err != nil {
		return advance.CompanyAuditResponse{}, fmt.Errorf("failed to persist corrections: %w", err)
	}

	return advance.CompanyAuditResponse{
		RunID:       created.ID,
		CompanyCode: companyCode,
		Year:        year,
		Month:       month,
		Rows:        advance.MapRowResponses(rows),
		Corrections: advance.MapCorrectionResponses(corrections),
	}, nil
}

// RunAll audits every configured company for the competence month. Companies
// run in parallel with per-company isolation: one company's configuration
// failure is collected into the response, never propagated to siblings.
func (s *AdvanceService) RunAll(ctx context.Context, year, month int) (advance.BatchAuditResponse, error) {
	companies := s.ruleCatalog.Companies()

	var mu sync.Mutex
	response := advance.BatchAuditResponse{Failures: make(map[string]string)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCompanies)

	for _, company := range companies {
		code := company.Code
		g.Go(func() error {
			result, err := s.RunCompany(gctx, code, year, month)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				response.Failures[code] = err.Error()
				return nil
			}
			response.Results = append(response.Results, result)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return advance.BatchAuditResponse{}, err
	}
	if len(response.Failures) == 0 {
		response.Failures = nil
	}
	return response, nil
}

// GetRun returns a previously persisted advance audit.
func (s *AdvanceService) GetRun(ctx context.Context, runID string) (advance.CompanyAuditResponse, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return advance.CompanyAuditResponse{}, err
	}
	rows, err := s.runRepo.GetRows(ctx, runID)
	if err != nil {
		return advance.CompanyAuditResponse{}, err
	}
	corrections, err := s.runRepo.GetCorrections(ctx, runID)
	if err != nil {
		return advance.CompanyAuditResponse{}, err
	}
	return advance.CompanyAuditResponse{
		RunID:       run.ID,
		CompanyCode: run.CompanyCode,
		Year:        run.Year,
		Month:       run.Month,
		Rows:        advance.MapRowResponses(rows),
		Corrections: advance.MapCorrectionResponses(corrections),
	}, nil
}

// ListRuns returns recent audit runs for a company, newest first.
func (s *AdvanceService) ListRuns(ctx context.Context, companyCode string, limit int) ([]advance.AuditRun, error) {
	return s.runRepo.ListRuns(ctx, companyCode, limit)
}

// audit runs the full recompute-and-reconcile pipeline for one company.
func (s *AdvanceService) audit(ctx context.Context, rule catalog.CompanyRule, year, month int) ([]advance.AuditRow, []advance.ParameterCorrection, error) {
	externalID := *rule.ExternalID

	employees, err := s.sourceRepo.GetEmployees(ctx, externalID, year, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, nil, advance.ErrNoEmployees
	}
	leaves, err := s.sourceRepo.GetLeaveWindows(ctx, externalID, year, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch leave windows: %w", err)
	}
	loans, err := s.sourceRepo.GetLoanInstallments(ctx, externalID, year, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch loan installments: %w", err)
	}
	external, err := s.sourceRepo.GetExternalAdvances(ctx, externalID, year, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch source advances: %w", err)
	}

	employeesByID := make(map[string]advance.EmployeeRecord, len(employees))
	rows := make([]advance.AuditRow, 0, len(employees))
	for _, emp := range employees {
		employeesByID[emp.ID] = emp

		var leave *advance.LeaveWindow
		if window, ok := leaves[emp.ID]; ok {
			leave = &window
		}
		loan := loans[emp.ID]

		rows = append(rows, s.evaluateSafely(emp, leave, loan, rule, year, month))
	}

	rows = s.differ.Diff(rows, external)
	corrections := s.corrections.Derive(rows, employeesByID)
	return rows, corrections, nil
}

// evaluateSafely converts any per-employee recomputation panic into an
// ineligible row with a diagnostic note. Data-quality problems must surface
// as row-level status, never abort the batch.
func (s *AdvanceService) evaluateSafely(
	emp advance.EmployeeRecord,
	leave *advance.LeaveWindow,
	loan decimal.Decimal,
	rule catalog.CompanyRule,
	year, month int,
) (row advance.AuditRow) {
	defer func() {
		if r := recover(); r != nil {
			row = advance.AuditRow{
				EmployeeID:    emp.ID,
				Name:          emp.Name,
				JobTitle:      emp.JobTitle,
				Status:        advance.StatusIneligible,
				Justification: fmt.Sprintf("recomputation failed: %v", r),
			}
		}
	}()

	row = s.calculator.Evaluate(emp, leave, loan, rule, year, month)
	row = s.discounts.Apply(row, emp, loan, rule)
	return row
}
