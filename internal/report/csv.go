package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"accident-reconciliation/internal/domain"
)

// CSVWriter writes the summary block, a blank row, then the detail table.
type CSVWriter struct{}

// Write implements Writer.
func (w *CSVWriter) Write(out io.Writer, r *domain.ReconciliationReport) error {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{Title}); err != nil {
		return fmt.Errorf("failed to write CSV title: %w", err)
	}
	for _, row := range SummaryRows(r.Summary) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV summary: %w", err)
		}
	}
	if err := writer.Write([]string{""}); err != nil {
		return fmt.Errorf("failed to write CSV separator: %w", err)
	}

	if err := writer.Write(DetailHeader(r)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range DetailRows(r) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
