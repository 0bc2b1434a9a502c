package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mmynk/billwise/internal/models"
)

var csvHeader = []string{
	"Transaction Time", "Paid On", "Biller", "Due Date", "Amount", "Balance", "Status", "Method", "Reference", "Bill ID",
}

// WriteCSV writes one row per history entry followed by a totals row.
func WriteCSV(w io.Writer, s *Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, h := range s.Entries {
		row := []string{
			time.UnixMicro(h.TransactionAt).UTC().Format(time.RFC3339),
			models.FormatDate(h.PaidOn),
			h.BillerName,
			models.FormatDate(h.DueDate),
			h.Amount.String(),
			h.Balance.String(),
			string(h.Status),
			h.Method,
			h.Reference,
			h.BillID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", h.ID, err)
		}
	}
	total := []string{"", "", "TOTAL", "", s.TotalPaid.String(), "", strconv.Itoa(len(s.Entries)) + " payments", "", "", ""}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
