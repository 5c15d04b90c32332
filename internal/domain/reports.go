package domain

import "time"

// DiscrepancyKind classifies a joined pair that is not a clean match.
type DiscrepancyKind string

const (
	MissingNotification DiscrepancyKind = "Missing Notification Number"
	EquipmentMismatch   DiscrepancyKind = "Equipment Mismatch"
	DateMismatch        DiscrepancyKind = "Date Mismatch"
)

// Side names one of the two datasets.
type Side string

const (
	SidePrimary   Side = "primary"
	SideSecondary Side = "secondary"
)

// MissingMarker is reported in the column of the dataset that lacks a key.
const MissingMarker = "Missing"

// DiscrepancyRecord describes a single discrepant joined pair.
type DiscrepancyRecord struct {
	Key            string          `json:"notification"`
	Category       string          `json:"responsible_operations"`
	Kind           DiscrepancyKind `json:"type"`
	PrimaryValue   string          `json:"primary_value"`
	SecondaryValue string          `json:"secondary_value"`

	// MissingSide is set only for MissingNotification records.
	MissingSide Side `json:"missing_side,omitempty"`
}

// SummaryStats provides high-level statistics of the reconciliation.
type SummaryStats struct {
	TotalKeys              int     `json:"total_keys"`
	ErrorKeys              int     `json:"error_keys"`
	AccuracyPercent        float64 `json:"accuracy_percent"`
	MismatchPercent        float64 `json:"mismatch_percent"`
	MissingCount           int     `json:"missing_count"`
	EquipmentMismatchCount int     `json:"equipment_mismatch_count"`
	DateMismatchCount      int     `json:"date_mismatch_count"`
}

// ReconciliationReport is the top-level structure handed to report writers.
type ReconciliationReport struct {
	RunID               string              `json:"run_id"`
	Profile             string              `json:"profile"`
	GeneratedAt         time.Time           `json:"generated_at"`
	PrimarySource       string              `json:"primary_source"`
	SecondarySource     string              `json:"secondary_source"`
	PrimaryRows         int                 `json:"primary_rows"`
	FilteredPrimaryRows int                 `json:"filtered_primary_rows"`
	SecondaryRows       int                 `json:"secondary_rows"`
	Summary             SummaryStats        `json:"summary"`
	Discrepancies       []DiscrepancyRecord `json:"discrepancies"`
}
