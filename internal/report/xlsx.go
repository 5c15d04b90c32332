package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"accident-reconciliation/internal/domain"
)

// SheetName is the worksheet holding the comparison.
const SheetName = "Accidents Comparison"

// XLSXWriter writes the report as a single-sheet workbook: a merged title in
// row 1, the summary block from row 3 and the detail table below it.
type XLSXWriter struct{}

// Write implements Writer.
func (w *XLSXWriter) Write(out io.Writer, r *domain.ReconciliationReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	if err := f.MergeCell(SheetName, "A1", "D1"); err != nil {
		return fmt.Errorf("failed to merge title cells: %w", err)
	}
	if err := f.SetCellStr(SheetName, "A1", Title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("failed to style title: %w", err)
	}

	summary := SummaryCells(r.Summary)
	for i, row := range summary {
		if err := setRow(f, i+3, row); err != nil {
			return err
		}
	}

	detailStart := len(summary) + 4
	if err := setRow(f, detailStart, textCells(DetailHeader(r))); err != nil {
		return err
	}
	for i, row := range DetailRows(r) {
		if err := setRow(f, detailStart+1+i, textCells(row)); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// textCells keeps detail values as strings; notification numbers must not
// turn into numbers.
func textCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
