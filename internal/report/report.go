// Package report renders a reconciliation report as a spreadsheet, CSV,
// JSON document or console table.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"accident-reconciliation/internal/domain"
)

// Format is an output encoding for a report.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat resolves a format name, defaulting to xlsx when name is empty.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: report format %q", domain.ErrUnsupportedFormat, name)
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// Writer encodes a report to out.
type Writer interface {
	Write(out io.Writer, r *domain.ReconciliationReport) error
}

// NewWriter returns the writer for a format.
func NewWriter(f Format) Writer {
	switch f {
	case FormatCSV:
		return &CSVWriter{}
	case FormatJSON:
		return &JSONWriter{Indent: "  "}
	default:
		return &XLSXWriter{}
	}
}

// WriteFile writes the report to path using the given writer.
func WriteFile(path string, w Writer, r *domain.ReconciliationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, r); err != nil {
		return err
	}
	return f.Close()
}

// Title heads the spreadsheet report.
const Title = "Comparison Result"

// SummaryCells returns the fixed six-row summary block as label/value pairs.
// Counts stay integers so spreadsheets store them as numbers.
func SummaryCells(s domain.SummaryStats) [][]any {
	return [][]any{
		{"Total accidents", s.TotalKeys},
		{"Accuracy", formatPercent(s.AccuracyPercent)},
		{"Accidents with mismatches", formatPercent(s.MismatchPercent)},
		{"Missing Notification Number case(s)", s.MissingCount},
		{"Equipment mismatch case(s)", s.EquipmentMismatchCount},
		{"Date mismatch case(s)", s.DateMismatchCount},
	}
}

// SummaryRows is SummaryCells rendered as text.
func SummaryRows(s domain.SummaryStats) [][]string {
	cells := SummaryCells(s)
	rows := make([][]string, len(cells))
	for i, row := range cells {
		rows[i] = []string{row[0].(string), fmt.Sprint(row[1])}
	}
	return rows
}

// DetailHeader names the detail columns; the last two are the source names
// of the primary and secondary exports.
func DetailHeader(r *domain.ReconciliationReport) []string {
	return []string{
		"Notification",
		"Responsible Operations",
		"Type",
		sourceLabel(r.PrimarySource, "Primary"),
		sourceLabel(r.SecondarySource, "Secondary"),
	}
}

// DetailRows flattens the discrepancy list in report order.
func DetailRows(r *domain.ReconciliationReport) [][]string {
	rows := make([][]string, 0, len(r.Discrepancies))
	for _, d := range r.Discrepancies {
		rows = append(rows, []string{d.Key, d.Category, string(d.Kind), d.PrimaryValue, d.SecondaryValue})
	}
	return rows
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func sourceLabel(source, fallback string) string {
	if source == "" {
		return fallback
	}
	return source
}
