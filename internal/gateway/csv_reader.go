package gateway

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"accident-reconciliation/internal/domain"
)

const utf8BOM = "\ufeff"

// ReadCSV reads a CSV export whose first record is the header. Rows may be
// ragged; missing trailing cells are treated as absent downstream.
func ReadCSV(r io.Reader, source string) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read header from %s: file is empty", source)
		}
		return nil, fmt.Errorf("failed to read header from %s: %w", source, err)
	}
	if len(header) > 0 {
		// Spreadsheet tools prefix UTF-8 CSV exports with a byte order mark.
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	table := &domain.Table{Source: source, Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", source, err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}
