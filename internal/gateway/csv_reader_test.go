package gateway

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"accident-reconciliation/internal/domain"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *domain.Table
		wantErr  bool
	}{
		{
			name: "primary export",
			input: "Notification,Equipment,Accident Date,Responsible Operations\n" +
				"100,V1,2024-01-01,PSV\n" +
				"101,,01/02/2024,Metro\n",
			expected: &domain.Table{
				Source: "sap.csv",
				Header: []string{"Notification", "Equipment", "Accident Date", "Responsible Operations"},
				Rows: [][]string{
					{"100", "V1", "2024-01-01", "PSV"},
					{"101", "", "01/02/2024", "Metro"},
				},
			},
		},
		{
			name:  "ragged rows are kept",
			input: "Notification Number,Fleet No.,Accident Date\n0042,V1\n",
			expected: &domain.Table{
				Source: "sap.csv",
				Header: []string{"Notification Number", "Fleet No.", "Accident Date"},
				Rows:   [][]string{{"0042", "V1"}},
			},
		},
		{
			name:  "byte order mark stripped from header",
			input: "\ufeffNotification Number,Fleet No.,Accident Date\n",
			expected: &domain.Table{
				Source: "sap.csv",
				Header: []string{"Notification Number", "Fleet No.", "Accident Date"},
			},
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: true,
		},
		{
			name:    "malformed quoting",
			input:   "Notification\n\"100\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tt.input), "sap.csv")
			if tt.wantErr {
				assert.Error(t, err, "Expected error but got nil")
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestFileRecordRepository_CSV(t *testing.T) {
	dir := t.TempDir()
	primaryPath, err := createTempCSV(dir, "sap_export.csv", [][]string{
		{"Notification", "Equipment", "Accident Date", "Responsible Operations"},
		{"100", "V1", "2024-01-01", "PSV"},
	})
	if err != nil {
		t.Fatalf("Failed to create temp CSV file: %v", err)
	}
	secondaryPath, err := createTempCSV(dir, "pbi_export.CSV", [][]string{
		{"Notification Number", "Fleet No.", "Accident Date"},
		{"0100", "V1", "01/01/2024"},
		{"0101", "V2", "02/01/2024"},
	})
	if err != nil {
		t.Fatalf("Failed to create temp CSV file: %v", err)
	}

	repo := NewFileRecordRepository(domain.DefaultSchema())
	ctx := context.Background()

	primary, err := repo.GetPrimaryTable(ctx, primaryPath)
	assert.NoError(t, err)
	assert.Equal(t, "sap_export.csv", primary.Source)
	assert.Len(t, primary.Rows, 1)

	secondary, err := repo.GetSecondaryTable(ctx, secondaryPath)
	assert.NoError(t, err)
	assert.Equal(t, "pbi_export.CSV", secondary.Source)
	assert.Equal(t, [][]string{{"0100", "V1", "01/01/2024"}, {"0101", "V2", "02/01/2024"}}, secondary.Rows)
}

func TestFileRecordRepository_FileErrors(t *testing.T) {
	repo := NewFileRecordRepository(domain.DefaultSchema())
	ctx := context.Background()

	t.Run("file not found", func(t *testing.T) {
		_, err := repo.GetPrimaryTable(ctx, "nonexistent_file.csv")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.xls")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("Failed to create temp file: %v", err)
		}
		_, err := repo.GetSecondaryTable(ctx, path)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.GetPrimaryTable(canceled, "whatever.csv")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "a.csv", want: FormatCSV},
		{name: "dir/A.XLSX", want: FormatXLSX},
		{name: "macro.xlsm", want: FormatXLSX},
		{name: "legacy.xls", wantErr: true},
		{name: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func BenchmarkReadCSV(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("Notification,Equipment,Accident Date,Responsible Operations\n")
	for i := 0; i < 1000; i++ {
		sb.WriteString("100,V1,2024-01-01,PSV\n")
	}
	input := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ReadCSV(strings.NewReader(input), "bench.csv"); err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}

// createTempCSV writes records to dir/name and returns the path.
func createTempCSV(dir, name string, records [][]string) (string, error) {
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return "", err
	}
	return path, nil
}
