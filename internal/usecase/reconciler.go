package usecase

import (
	"sort"

	"accident-reconciliation/internal/domain"
)

// Classification is the outcome of comparing one joined pair.
type Classification int

const (
	ClassInvalid Classification = iota
	ClassMatched
	ClassMissingSecondary
	ClassMissingPrimary
	ClassEquipmentMismatch
	ClassDateMismatch
)

// Join performs a full outer join of both record sets on Key. Keys are walked
// in sorted order; a key present on both sides yields the cartesian product of
// its occurrences, a one-sided key yields one pair per occurrence. Records
// without a key take no part in the join.
func Join(primary, secondary []domain.NormalizedRecord) []domain.JoinedPair {
	left := groupByKey(primary)
	right := groupByKey(secondary)

	keys := make([]string, 0, len(left)+len(right))
	for k := range left {
		keys = append(keys, k)
	}
	for k := range right {
		if _, ok := left[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var pairs []domain.JoinedPair
	for _, k := range keys {
		ps, ss := left[k], right[k]
		switch {
		case len(ps) > 0 && len(ss) > 0:
			for _, p := range ps {
				for _, s := range ss {
					pairs = append(pairs, domain.JoinedPair{Key: k, Primary: p, Secondary: s})
				}
			}
		case len(ps) > 0:
			for _, p := range ps {
				pairs = append(pairs, domain.JoinedPair{Key: k, Primary: p})
			}
		default:
			for _, s := range ss {
				pairs = append(pairs, domain.JoinedPair{Key: k, Secondary: s})
			}
		}
	}
	return pairs
}

func groupByKey(records []domain.NormalizedRecord) map[string][]*domain.NormalizedRecord {
	grouped := make(map[string][]*domain.NormalizedRecord)
	for i := range records {
		rec := records[i]
		if !rec.Key.Valid {
			continue
		}
		grouped[rec.Key.Value] = append(grouped[rec.Key.Value], &rec)
	}
	return grouped
}

// Classify applies the precedence missing-secondary, missing-primary,
// equipment mismatch, date mismatch; the first rule that holds wins.
func Classify(pair domain.JoinedPair) Classification {
	switch {
	case pair.Primary == nil && pair.Secondary == nil:
		return ClassInvalid
	case fieldsAbsent(pair.Secondary):
		return ClassMissingSecondary
	case fieldsAbsent(pair.Primary):
		return ClassMissingPrimary
	case pair.Primary.Identifier != pair.Secondary.Identifier:
		return ClassEquipmentMismatch
	case pair.Primary.Date != pair.Secondary.Date:
		return ClassDateMismatch
	default:
		return ClassMatched
	}
}

// fieldsAbsent reports whether both comparison fields are missing.
func fieldsAbsent(rec *domain.NormalizedRecord) bool {
	return rec == nil || (!rec.Identifier.Valid && !rec.Date.Valid)
}

// Reconcile joins both record sets, classifies every pair and aggregates the
// discrepancies into summary statistics.
func Reconcile(primary, secondary []domain.NormalizedRecord) ([]domain.DiscrepancyRecord, domain.SummaryStats) {
	var (
		stats         domain.SummaryStats
		discrepancies = make([]domain.DiscrepancyRecord, 0)
		keys          = make(map[string]struct{})
		errorKeys     = make(map[string]struct{})
	)

	for _, pair := range Join(primary, secondary) {
		class := Classify(pair)
		if class == ClassInvalid {
			continue
		}
		keys[pair.Key] = struct{}{}
		if class == ClassMatched {
			continue
		}

		rec := newDiscrepancy(pair, class)
		switch rec.Kind {
		case domain.MissingNotification:
			stats.MissingCount++
		case domain.EquipmentMismatch:
			stats.EquipmentMismatchCount++
		case domain.DateMismatch:
			stats.DateMismatchCount++
		}
		errorKeys[pair.Key] = struct{}{}
		discrepancies = append(discrepancies, rec)
	}

	stats.TotalKeys = len(keys)
	stats.ErrorKeys = len(errorKeys)
	stats.AccuracyPercent, stats.MismatchPercent = percentages(stats.TotalKeys, stats.ErrorKeys)
	return discrepancies, stats
}

func percentages(total, errs int) (accuracy, mismatch float64) {
	if total == 0 || errs == 0 {
		return 100, 0
	}
	mismatch = 100 * float64(errs) / float64(total)
	return 100 - mismatch, mismatch
}

func newDiscrepancy(pair domain.JoinedPair, class Classification) domain.DiscrepancyRecord {
	rec := domain.DiscrepancyRecord{Key: pair.Key}
	if pair.Primary != nil {
		rec.Category = pair.Primary.Category.String()
	}

	switch class {
	case ClassMissingSecondary:
		rec.Kind = domain.MissingNotification
		rec.MissingSide = domain.SideSecondary
		rec.SecondaryValue = domain.MissingMarker
	case ClassMissingPrimary:
		rec.Kind = domain.MissingNotification
		rec.MissingSide = domain.SidePrimary
		rec.PrimaryValue = domain.MissingMarker
	case ClassEquipmentMismatch:
		rec.Kind = domain.EquipmentMismatch
		rec.PrimaryValue = pair.Primary.Identifier.String()
		rec.SecondaryValue = pair.Secondary.Identifier.String()
	case ClassDateMismatch:
		rec.Kind = domain.DateMismatch
		rec.PrimaryValue = pair.Primary.Date.String()
		rec.SecondaryValue = pair.Secondary.Date.String()
	}
	return rec
}
