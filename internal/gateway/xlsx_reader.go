package gateway

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"accident-reconciliation/internal/domain"
)

// excelDateLayout mirrors how spreadsheet dates render when read as text.
const excelDateLayout = "2006-01-02 15:04:05"

// ReadXLSX reads the first worksheet of a workbook. Cells are read raw, so
// numeric cells under one of dateColumns are Excel serial dates and are
// converted to text.
func ReadXLSX(r io.Reader, source string, dateColumns ...string) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", source, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no worksheets", source)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q from %s: %w", sheets[0], source, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to read header from %s: worksheet %q is empty", source, sheets[0])
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	header := rows[0]
	dateIdx := make(map[int]bool)
	for i, h := range header {
		for _, c := range dateColumns {
			if strings.TrimSpace(h) == c {
				dateIdx[i] = true
			}
		}
	}

	table := &domain.Table{Source: source, Header: header}
	for _, row := range rows[1:] {
		for i, v := range row {
			if dateIdx[i] {
				row[i] = serialToDate(v, date1904)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// serialToDate converts an Excel serial number to text, leaving anything that
// is not a number untouched.
func serialToDate(v string, date1904 bool) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return v
	}
	return t.Format(excelDateLayout)
}
