package usecase

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"accident-reconciliation/internal/domain"
)

// CanonicalDateLayout is the display form both datasets are compared in.
const CanonicalDateLayout = "02/01/2006"

// dateLayouts are tried in order. Numeric slash, dash and dot forms are read
// day-first; the month-first forms only match when day-first cannot parse.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2-1-06",
	"2.1.2006",
	"2-Jan-2006",
	"2-Jan-06",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"20060102",
}

// NormalizePrimary keeps the rows whose category belongs to the profile and
// canonicalizes their dates. The primary key is left untouched.
func NormalizePrimary(rows []domain.PrimaryRow, profile domain.CategoryProfile) []domain.NormalizedRecord {
	records := make([]domain.NormalizedRecord, 0, len(rows))
	for _, row := range rows {
		if !profile.Accepts(row.Category) {
			continue
		}
		records = append(records, domain.NormalizedRecord{
			Key:        row.Key,
			Identifier: row.Equipment,
			Date:       domain.Present(NormalizeDate(row.AccidentDate)),
			Category:   row.Category,
		})
	}
	return records
}

// NormalizeSecondary strips leading zeros from keys and canonicalizes dates.
func NormalizeSecondary(rows []domain.SecondaryRow) []domain.NormalizedRecord {
	records := make([]domain.NormalizedRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.NormalizedRecord{
			Key:        StripLeadingZeros(row.Key),
			Identifier: row.FleetID,
			Date:       domain.Present(NormalizeDate(row.AccidentDate)),
			Category:   domain.Absent(),
		})
	}
	return records
}

// StripLeadingZeros removes every leading '0'. An all-zero key becomes a
// present, empty key rather than an absent one.
func StripLeadingZeros(key domain.Field) domain.Field {
	if !key.Valid {
		return key
	}
	return domain.Present(strings.TrimLeft(key.Value, "0"))
}

// NormalizeDate returns the canonical DD/MM/YYYY form of raw, or "" when raw
// is absent or cannot be parsed.
func NormalizeDate(raw domain.Field) string {
	if !raw.Valid {
		return ""
	}
	s := strings.TrimSpace(raw.Value)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(CanonicalDateLayout)
		}
	}

	// Bare numbers may be spreadsheet serials or epoch stamps; never guess.
	if strings.Trim(s, "0123456789") == "" {
		return ""
	}
	t, err := dateparse.ParseIn(s, time.UTC,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return ""
	}
	return t.Format(CanonicalDateLayout)
}
