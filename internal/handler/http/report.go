package http

import (
	"fmt"
	"net/http"

	"github.com/folha-audit/payroll-audit-go/internal/handler/http/response"
	reportservice "github.com/folha-audit/payroll-audit-go/internal/service/report"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	AdvanceReport(w http.ResponseWriter, r *http.Request)
	PayrollReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService *reportservice.ReportService
}

func NewReportHandler(reportService *reportservice.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) AdvanceReport(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	var (
		data     []byte
		filename string
		err      error
		mime     string
	)
	switch format := r.URL.Query().Get("format"); format {
	case "pdf":
		data, filename, err = h.reportService.AdvancePDF(r.Context(), runID)
		mime = "application/pdf"
	case "", "csv":
		data, filename, err = h.reportService.AdvanceCSV(r.Context(), runID)
		mime = "text/csv"
	default:
		response.BadRequest(w, "Format must be csv or pdf", nil)
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	serveAttachment(w, data, filename, mime)
}

func (h *reportHandlerImpl) PayrollReport(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	var (
		data     []byte
		filename string
		err      error
		mime     string
	)
	switch format := r.URL.Query().Get("format"); format {
	case "pdf":
		data, filename, err = h.reportService.PayrollPDF(r.Context(), runID)
		mime = "application/pdf"
	case "", "csv":
		data, filename, err = h.reportService.PayrollCSV(r.Context(), runID)
		mime = "text/csv"
	default:
		response.BadRequest(w, "Format must be csv or pdf", nil)
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	serveAttachment(w, data, filename, mime)
}

func serveAttachment(w http.ResponseWriter, data []byte, filename, mime string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
