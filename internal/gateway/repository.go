package gateway

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"accident-reconciliation/internal/domain"
	"accident-reconciliation/internal/logging"
)

// Format identifies a supported input file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file name to a reader by extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .csv, .xlsx or .xlsm)", domain.ErrUnsupportedFormat, filepath.Base(name))
	}
}

// ReadTable reads r with the reader matching name's extension.
func ReadTable(r io.Reader, name string, dateColumns ...string) (*domain.Table, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	source := filepath.Base(name)
	if format == FormatXLSX {
		return ReadXLSX(r, source, dateColumns...)
	}
	return ReadCSV(r, source)
}

// FileRecordRepository implements the RecordRepository interface for files
// on disk.
type FileRecordRepository struct {
	schema domain.Schema
}

// NewFileRecordRepository creates a new repository instance. The schema tells
// the spreadsheet reader which columns hold dates.
func NewFileRecordRepository(schema domain.Schema) *FileRecordRepository {
	return &FileRecordRepository{schema: schema.Merge(domain.DefaultSchema())}
}

// GetPrimaryTable reads the primary export.
func (r *FileRecordRepository) GetPrimaryTable(ctx context.Context, path string) (*domain.Table, error) {
	return r.readFile(ctx, domain.SidePrimary, path, r.schema.Primary.AccidentDate)
}

// GetSecondaryTable reads the secondary export.
func (r *FileRecordRepository) GetSecondaryTable(ctx context.Context, path string) (*domain.Table, error) {
	return r.readFile(ctx, domain.SideSecondary, path, r.schema.Secondary.AccidentDate)
}

func (r *FileRecordRepository) readFile(ctx context.Context, side domain.Side, path, dateColumn string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", side, path, err)
	}
	defer file.Close()

	table, err := ReadTable(file, path, dateColumn)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("input", string(side)).
		Str("source", table.Source).
		Int("rows", len(table.Rows)).
		Msg("Loaded export")
	return table, nil
}
