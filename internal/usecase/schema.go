package usecase

import (
	"strings"

	"accident-reconciliation/internal/domain"
)

// BindPrimary maps a primary table onto typed rows. Every required column
// missing from the header is reported in a single StructuralInputError.
func BindPrimary(table *domain.Table, schema domain.PrimarySchema) ([]domain.PrimaryRow, error) {
	idx, err := resolveColumns(table, domain.SidePrimary,
		schema.Key, schema.Equipment, schema.AccidentDate, schema.Category)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.PrimaryRow, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, domain.PrimaryRow{
			Key:          cell(r, idx[0]),
			Equipment:    cell(r, idx[1]),
			AccidentDate: cell(r, idx[2]),
			Category:     cell(r, idx[3]),
		})
	}
	return rows, nil
}

// BindSecondary maps a secondary table onto typed rows.
func BindSecondary(table *domain.Table, schema domain.SecondarySchema) ([]domain.SecondaryRow, error) {
	idx, err := resolveColumns(table, domain.SideSecondary,
		schema.Key, schema.FleetID, schema.AccidentDate)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.SecondaryRow, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, domain.SecondaryRow{
			Key:          cell(r, idx[0]),
			FleetID:      cell(r, idx[1]),
			AccidentDate: cell(r, idx[2]),
		})
	}
	return rows, nil
}

func resolveColumns(table *domain.Table, side domain.Side, names ...string) ([]int, error) {
	if table == nil {
		return nil, &domain.StructuralInputError{Input: side, Missing: names}
	}

	positions := make(map[string]int, len(table.Header))
	for i, h := range table.Header {
		h = strings.TrimSpace(h)
		if _, seen := positions[h]; !seen {
			positions[h] = i
		}
	}

	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[i] = pos
	}
	if len(missing) > 0 {
		return nil, &domain.StructuralInputError{Input: side, Source: table.Source, Missing: missing}
	}
	return idx, nil
}

// cell treats empty cells and cells beyond a short row as absent.
func cell(row []string, i int) domain.Field {
	if i >= len(row) || row[i] == "" {
		return domain.Absent()
	}
	return domain.Present(row[i])
}
