package taxaudit

import (
	"github.com/folha-audit/payroll-audit-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RunPayrollAuditRequest struct {
	CompanyCode string `json:"company_code"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
}

func (r *RunPayrollAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyCode) {
		errs = append(errs, validator.ValidationError{Field: "company_code", Message: "is required"})
	} else if !validator.IsValidCompanyCode(r.CompanyCode) {
		errs = append(errs, validator.ValidationError{Field: "company_code", Message: "is not a valid company code"})
	}
	if !validator.IsValidCompetence(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{Field: "competence", Message: "year/month out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaxAuditItemResponse struct {
	Code       int             `json:"code"`
	Name       string          `json:"name"`
	Expected   decimal.Decimal `json:"expected"`
	Posted     decimal.Decimal `json:"posted"`
	Difference decimal.Decimal `json:"difference"`
	Status     string          `json:"status"`
	Formula    string          `json:"formula"`
	Memo       string          `json:"memo,omitempty"`
}

type EmployeeAuditResponse struct {
	EmployeeID string                 `json:"employee_id"`
	Name       string                 `json:"name"`
	EventCount int                    `json:"event_count"`
	Items      []TaxAuditItemResponse `json:"items"`
	Earnings   decimal.Decimal        `json:"earnings"`
	Deductions decimal.Decimal        `json:"deductions"`
	Net        decimal.Decimal        `json:"net"`
}

type PayrollAuditResponse struct {
	RunID       string                  `json:"run_id"`
	CompanyCode string                  `json:"company_code"`
	Year        int                     `json:"year"`
	Month       int                     `json:"month"`
	Employees   []EmployeeAuditResponse `json:"employees"`
}

func MapEmployeeAuditResponse(a EmployeeAudit) EmployeeAuditResponse {
	items := make([]TaxAuditItemResponse, 0, len(a.Items))
	for _, item := range a.Items {
		items = append(items, TaxAuditItemResponse{
			Code:       item.Code,
			Name:       item.Name,
			Expected:   item.Expected,
			Posted:     item.Posted,
			Difference: item.Difference,
			Status:     string(item.Status),
			Formula:    item.Formula,
			Memo:       item.Memo,
		})
	}
	return EmployeeAuditResponse{
		EmployeeID: a.EmployeeID,
		Name:       a.Name,
		EventCount: a.EventCount,
		Items:      items,
		Earnings:   a.Totals.Earnings,
		Deductions: a.Totals.Deductions,
		Net:        a.Totals.Net,
	}
}

func MapEmployeeAuditResponses(audits []EmployeeAudit) []EmployeeAuditResponse {
	result := make([]EmployeeAuditResponse, 0, len(audits))
	for _, a := range audits {
		result = append(result, MapEmployeeAuditResponse(a))
	}
	return result
}
