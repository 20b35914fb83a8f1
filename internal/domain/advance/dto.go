package advance

import (
	"time"

	"github.com/folha-audit/payroll-audit-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== AUDIT RUN DTOs ==========

type RunAdvanceAuditRequest struct {
	// CompanyCode selects one configured company, or "all" for the full
	// multi-company batch.
	CompanyCode string `json:"company_code"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
}

func (r *RunAdvanceAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyCode) {
		errs = append(errs, validator.ValidationError{Field: "company_code", Message: "is required"})
	} else if r.CompanyCode != "all" && !validator.IsValidCompanyCode(r.CompanyCode) {
		errs = append(errs, validator.ValidationError{Field: "company_code", Message: "must be a company code or 'all'"})
	}
	if !validator.IsValidCompetence(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{Field: "competence", Message: "year/month out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AuditRowResponse struct {
	EmployeeID     string          `json:"employee_id"`
	Name           string          `json:"name"`
	JobTitle       string          `json:"job_title"`
	Status         string          `json:"status"`
	Justification  string          `json:"justification"`
	EffectiveDays  int             `json:"effective_days"`
	Gross          decimal.Decimal `json:"gross"`
	Discount       decimal.Decimal `json:"discount"`
	Net            decimal.Decimal `json:"net"`
	ExternalGross  decimal.Decimal `json:"external_gross"`
	Classification string          `json:"classification"`
	Analysis       string          `json:"analysis,omitempty"`
}

type ParameterCorrectionResponse struct {
	EmployeeID string           `json:"employee_id"`
	Percent    *decimal.Decimal `json:"percent,omitempty"`
	FixedValue *decimal.Decimal `json:"fixed_value,omitempty"`
	Method     string           `json:"method"`
}

type CompanyAuditResponse struct {
	RunID       string                        `json:"run_id"`
	CompanyCode string                        `json:"company_code"`
	Year        int                           `json:"year"`
	Month       int                           `json:"month"`
	Rows        []AuditRowResponse            `json:"rows"`
	Corrections []ParameterCorrectionResponse `json:"corrections"`
}

// BatchAuditResponse is the multi-company result: one company's failure is
// reported alongside the others' results, never instead of them.
type BatchAuditResponse struct {
	Results  []CompanyAuditResponse `json:"results"`
	Failures map[string]string      `json:"failures,omitempty"`
}

type AuditRunResponse struct {
	ID          string    `json:"id"`
	CompanyCode string    `json:"company_code"`
	Kind        string    `json:"kind"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Status      string    `json:"status"`
	Error       *string   `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ========== MAPPERS ==========

func MapRunResponses(runs []AuditRun) []AuditRunResponse {
	result := make([]AuditRunResponse, 0, len(runs))
	for _, run := range runs {
		result = append(result, AuditRunResponse{
			ID:          run.ID,
			CompanyCode: run.CompanyCode,
			Kind:        string(run.Kind),
			Year:        run.Year,
			Month:       run.Month,
			Status:      string(run.Status),
			Error:       run.Error,
			CreatedAt:   run.CreatedAt,
		})
	}
	return result
}

func MapRowResponse(r AuditRow) AuditRowResponse {
	return AuditRowResponse{
		EmployeeID:     r.EmployeeID,
		Name:           r.Name,
		JobTitle:       r.JobTitle,
		Status:         string(r.Status),
		Justification:  r.Justification,
		EffectiveDays:  r.EffectiveDays,
		Gross:          r.Gross,
		Discount:       r.Discount,
		Net:            r.Net,
		ExternalGross:  r.ExternalGross,
		Classification: r.Classification,
		Analysis:       r.Analysis,
	}
}

func MapRowResponses(rows []AuditRow) []AuditRowResponse {
	result := make([]AuditRowResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, MapRowResponse(r))
	}
	return result
}

func MapCorrectionResponses(corrections []ParameterCorrection) []ParameterCorrectionResponse {
	result := make([]ParameterCorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		result = append(result, ParameterCorrectionResponse{
			EmployeeID: c.EmployeeID,
			Percent:    c.Percent,
			FixedValue: c.FixedValue,
			Method:     string(c.Method),
		})
	}
	return result
}
