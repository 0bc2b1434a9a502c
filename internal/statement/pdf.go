package statement

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/mmynk/billwise/internal/models"
)

const pageBreakY = 270

var (
	pdfColumns = []string{"PAID ON", "BILLER", "DUE", "AMOUNT", "BALANCE", "STATUS"}
	pdfWidths  = []float64{24, 60, 24, 26, 26, 22}
	pdfAligns  = []string{"C", "L", "C", "R", "R", "C"}
)

// WritePDF renders s as an A4 statement.
func WritePDF(w io.Writer, s *Statement) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Payment History")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Generated: "+s.GeneratedAt.Format(time.RFC1123))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Payments: "+strconv.Itoa(len(s.Entries))+"    Total paid: "+s.TotalPaid.String())
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	tableHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)
	for _, h := range s.Entries {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			tableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		cells := []string{
			models.FormatDate(h.PaidOn),
			trimTo(h.BillerName, 34),
			models.FormatDate(h.DueDate),
			h.Amount.String(),
			h.Balance.String(),
			string(h.Status),
		}
		for i, c := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(pdfWidths[i], 7, c, "1", ln, pdfAligns[i], false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(pdfWidths[0]+pdfWidths[1]+pdfWidths[2], 8, "TOTAL", "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfWidths[3], 8, s.TotalPaid.String(), "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfWidths[4]+pdfWidths[5], 8, "", "1", 1, "C", true, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf build failed: %w", err)
	}
	return nil
}

func tableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	for i, col := range pdfColumns {
		ln := 0
		if i == len(pdfColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(pdfWidths[i], 8, col, "1", ln, "C", true, 0, "")
	}
}

func trimTo(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "..."
}
