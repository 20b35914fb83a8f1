package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/folha-audit/payroll-audit-go/internal/handler/http/response"
	advanceservice "github.com/folha-audit/payroll-audit-go/internal/service/advance"
	taxauditservice "github.com/folha-audit/payroll-audit-go/internal/service/taxaudit"
	"github.com/go-chi/chi/v5"
)

type AuditHandler interface {
	RunAdvanceAudit(w http.ResponseWriter, r *http.Request)
	GetAdvanceRun(w http.ResponseWriter, r *http.Request)
	RunPayrollAudit(w http.ResponseWriter, r *http.Request)
	GetPayrollRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	advanceService *advanceservice.AdvanceService
	taxService     *taxauditservice.TaxAuditService
}

func NewAuditHandler(advanceService *advanceservice.AdvanceService, taxService *taxauditservice.TaxAuditService) AuditHandler {
	return &auditHandlerImpl{advanceService: advanceService, taxService: taxService}
}

// ========== ADVANCE ==========

func (h *auditHandlerImpl) RunAdvanceAudit(w http.ResponseWriter, r *http.Request) {
	var req advance.RunAdvanceAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if req.CompanyCode == "all" {
		result, err := h.advanceService.RunAll(r.Context(), req.Year, req.Month)
		if err != nil {
			slog.Error("Advance batch audit failed", "error", err)
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	result, err := h.advanceService.RunCompany(r.Context(), req.CompanyCode, req.Year, req.Month)
	if err != nil {
		slog.Error("Advance audit failed", "company", req.CompanyCode, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance audit completed", result)
}

func (h *auditHandlerImpl) GetAdvanceRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.advanceService.GetRun(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== PAYROLL ==========

func (h *auditHandlerImpl) RunPayrollAudit(w http.ResponseWriter, r *http.Request) {
	var req taxaudit.RunPayrollAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.taxService.RunCompany(r.Context(), req.CompanyCode, req.Year, req.Month)
	if err != nil {
		slog.Error("Payroll audit failed", "company", req.CompanyCode, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll audit completed", result)
}

func (h *auditHandlerImpl) GetPayrollRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.taxService.GetRun(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== RUNS ==========

func (h *auditHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	companyCode := chi.URLParam(r, "company")
	if companyCode == "" {
		response.BadRequest(w, "Company code is required", nil)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, "Limit must be between 1 and 100", nil)
			return
		}
		limit = parsed
	}

	runs, err := h.advanceService.ListRuns(r.Context(), companyCode, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, advance.MapRunResponses(runs))
}
