package payroll

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	payrollerrors "github.com/nosakhare/simple-payroll/internal/payroll/errors"
)

// GeneratePayslips renders one PDF per payroll item into the configured
// payslip directory and records each file path on its item. Runs that have
// not produced items yet are rejected.
func (s *service) GeneratePayslips(ctx context.Context, payrollID string) (int, error) {
	payroll, err := s.GetByID(ctx, payrollID)
	if err != nil {
		return 0, err
	}

	items, err := s.repo.FindItems(ctx, payrollID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, payrollerrors.ErrNotProcessed
	}

	dir := filepath.Join(s.payslipDir, payrollID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	generated := 0
	for i := range items {
		item := &items[i]

		pdf, err := buildPayslipPDF(payslipLines(payroll, item))
		if err != nil {
			return generated, err
		}

		path := filepath.Join(dir, fmt.Sprintf("payslip_%s.pdf", item.EmployeeNumber))
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return generated, err
		}

		item.PayslipPath = path
		if err := s.repo.UpdateItem(ctx, item); err != nil {
			return generated, err
		}
		generated++
	}

	s.logger.Info("payslips rendered",
		zap.String("payroll_id", payrollID),
		zap.Int("count", generated),
	)

	return generated, nil
}

// payslipLines lays out one pay statement as text lines; the order of the
// stored breakdowns drives the order on the document.
func payslipLines(payroll *Payroll, item *PayrollItem) []string {
	lines := []string{
		"PAYSLIP - " + payroll.Name,
		fmt.Sprintf("Period: %s to %s", payroll.PeriodStart.Format("2006-01-02"), payroll.PeriodEnd.Format("2006-01-02")),
		fmt.Sprintf("Employee: %s (%s)", item.EmployeeName, item.EmployeeNumber),
		"",
		"EARNINGS",
	}

	for _, line := range item.Allowances {
		lines = append(lines, fmt.Sprintf("  %-24s %s", line.Label, formatNaira(line.Amount)))
	}

	lines = append(lines, fmt.Sprintf("  %-24s %s", "Gross Pay", formatNaira(item.GrossPay)), "", "DEDUCTIONS")

	for _, line := range item.Deductions {
		lines = append(lines, fmt.Sprintf("  %-24s %s", line.Label, formatNaira(line.Amount)))
	}

	if item.IsAdjusted {
		lines = append(lines, "", "  (includes post-run adjustments)")
	}

	lines = append(lines,
		"",
		fmt.Sprintf("  %-24s %s", "NET PAY", formatNaira(item.NetPay)),
		fmt.Sprintf("  %-24s %s", "Employer Pension (memo)", formatNaira(item.EmployerPension)),
	)

	return lines
}

var nairaPrinter = message.NewPrinter(language.English)

func formatNaira(amount decimal.Decimal) string {
	return nairaPrinter.Sprintf("NGN %.2f", amount.InexactFloat64())
}

func buildPayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
