package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/domain/taxaudit"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/storage"
	"github.com/jung-kurt/gofpdf"
)

type advanceRunGetter interface {
	GetRun(ctx context.Context, runID string) (advance.CompanyAuditResponse, error)
}

type payrollRunGetter interface {
	GetRun(ctx context.Context, runID string) (taxaudit.PayrollAuditResponse, error)
}

// ReportService renders persisted audit runs as CSV and PDF documents. A copy
// of every rendered report is archived through the store; a nil store disables
// archiving.
type ReportService struct {
	archive  storage.ReportStore
	advances advanceRunGetter
	payrolls payrollRunGetter
}

func NewReportService(archive storage.ReportStore, advances advanceRunGetter, payrolls payrollRunGetter) *ReportService {
	return &ReportService{archive: archive, advances: advances, payrolls: payrolls}
}

// ========== ADVANCE REPORTS ==========

func (s *ReportService) AdvanceCSV(ctx context.Context, runID string) ([]byte, string, error) {
	run, err := s.advances.GetRun(ctx, runID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"employee_id", "name", "job_title", "status", "effective_days",
		"gross", "discount", "net", "external_gross", "classification", "justification", "analysis",
	})
	for _, row := range run.Rows {
		_ = w.Write([]string{
			row.EmployeeID,
			row.Name,
			row.JobTitle,
			row.Status,
			fmt.Sprintf("%d", row.EffectiveDays),
			row.Gross.StringFixed(2),
			row.Discount.StringFixed(2),
			row.Net.StringFixed(2),
			row.ExternalGross.StringFixed(2),
			row.Classification,
			row.Justification,
			row.Analysis,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to render csv: %w", err)
	}

	filename := fmt.Sprintf("advance_%s_%04d%02d.csv", run.CompanyCode, run.Year, run.Month)
	if err := s.store(ctx, filename, buf.Bytes()); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), filename, nil
}

func (s *ReportService) AdvancePDF(ctx context.Context, runID string) ([]byte, string, error) {
	run, err := s.advances.GetRun(ctx, runID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Advance Audit - %s - %02d/%04d", run.CompanyCode, run.Month, run.Year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	headers := []struct {
		label string
		width float64
	}{
		{"Employee", 55}, {"Status", 20}, {"Days", 12},
		{"Gross", 22}, {"Discount", 22}, {"Net", 22}, {"Source", 22}, {"Classification", 95},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 7, h.label, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range run.Rows {
		pdf.CellFormat(55, 6, truncate(row.Name, 34), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, row.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", row.EffectiveDays), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, row.Gross.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, row.Discount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, row.Net.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, row.ExternalGross.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(95, 6, truncate(row.Classification, 62), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	if len(run.Corrections) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 8, "Proposed parameter corrections")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 8)
		for _, c := range run.Corrections {
			line := fmt.Sprintf("%s: method %s", c.EmployeeID, c.Method)
			if c.Percent != nil {
				line += fmt.Sprintf(", percent %s", c.Percent.StringFixed(2))
			}
			if c.FixedValue != nil {
				line += fmt.Sprintf(", fixed value %s", c.FixedValue.StringFixed(2))
			}
			pdf.Cell(0, 5, line)
			pdf.Ln(5)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render pdf: %w", err)
	}
	filename := fmt.Sprintf("advance_%s_%04d%02d.pdf", run.CompanyCode, run.Year, run.Month)
	if err := s.store(ctx, filename, buf.Bytes()); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), filename, nil
}

// ========== PAYROLL REPORTS ==========

func (s *ReportService) PayrollCSV(ctx context.Context, runID string) ([]byte, string, error) {
	run, err := s.payrolls.GetRun(ctx, runID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"employee_id", "name", "event_count",
		"code", "item", "expected", "posted", "difference", "status", "formula",
	})
	for _, emp := range run.Employees {
		for _, item := range emp.Items {
			_ = w.Write([]string{
				emp.EmployeeID,
				emp.Name,
				fmt.Sprintf("%d", emp.EventCount),
				fmt.Sprintf("%d", item.Code),
				item.Name,
				item.Expected.StringFixed(2),
				item.Posted.StringFixed(2),
				item.Difference.StringFixed(2),
				item.Status,
				item.Formula,
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to render csv: %w", err)
	}

	filename := fmt.Sprintf("payroll_%s_%04d%02d.csv", run.CompanyCode, run.Year, run.Month)
	if err := s.store(ctx, filename, buf.Bytes()); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), filename, nil
}

func (s *ReportService) PayrollPDF(ctx context.Context, runID string) ([]byte, string, error) {
	run, err := s.payrolls.GetRun(ctx, runID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Payroll Tax Audit - %s - %02d/%04d", run.CompanyCode, run.Month, run.Year))
	pdf.Ln(12)

	for _, emp := range run.Employees {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 7, fmt.Sprintf("%s (%s) - %d events", emp.Name, emp.EmployeeID, emp.EventCount))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 8)
		for _, item := range emp.Items {
			pdf.CellFormat(70, 5, truncate(item.Name, 44), "", 0, "L", false, 0, "")
			pdf.CellFormat(25, 5, item.Expected.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(25, 5, item.Posted.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(25, 5, item.Difference.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(25, 5, item.Status, "", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.Cell(0, 6, fmt.Sprintf("Earnings %s  Deductions %s  Net %s",
			emp.Earnings.StringFixed(2), emp.Deductions.StringFixed(2), emp.Net.StringFixed(2)))
		pdf.Ln(10)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render pdf: %w", err)
	}
	filename := fmt.Sprintf("payroll_%s_%04d%02d.pdf", run.CompanyCode, run.Year, run.Month)
	if err := s.store(ctx, filename, buf.Bytes()); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), filename, nil
}

func (s *ReportService) store(ctx context.Context, filename string, data []byte) error {
	if s.archive == nil {
		return nil
	}
	if _, err := s.archive.Save(ctx, filename, data); err != nil {
		return err
	}
	return nil
}

// truncate shortens a string to max runes for fixed-width PDF cells.
// Accented names must never be cut mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
