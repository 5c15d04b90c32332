package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"accident-reconciliation/internal/domain"
	"accident-reconciliation/internal/logging"
)

// Request identifies the two exports and the category profile of one run.
type Request struct {
	PrimaryPath   string
	SecondaryPath string
	Profile       string
}

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	repo     RecordRepository
	profiles *domain.ProfileSet
	schema   domain.Schema
	now      func() time.Time
}

// Option configures a ReconciliationUseCase.
type Option func(*ReconciliationUseCase)

// WithProfiles replaces the built-in category profiles.
func WithProfiles(p *domain.ProfileSet) Option {
	return func(uc *ReconciliationUseCase) {
		if p != nil {
			uc.profiles = p
		}
	}
}

// WithSchema overrides the expected column names.
func WithSchema(s domain.Schema) Option {
	return func(uc *ReconciliationUseCase) {
		uc.schema = s.Merge(domain.DefaultSchema())
	}
}

// WithClock sets the time source used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(uc *ReconciliationUseCase) {
		uc.now = now
	}
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo RecordRepository, opts ...Option) *ReconciliationUseCase {
	uc := &ReconciliationUseCase{
		repo:     repo,
		profiles: domain.DefaultProfiles(),
		schema:   domain.DefaultSchema(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Profiles exposes the configured category profiles.
func (uc *ReconciliationUseCase) Profiles() *domain.ProfileSet {
	return uc.profiles
}

// Reconcile reads both exports through the repository and reconciles them.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, req Request) (*domain.ReconciliationReport, error) {
	if _, err := uc.profiles.Lookup(req.Profile); err != nil {
		return nil, err
	}

	primary, err := uc.repo.GetPrimaryTable(ctx, req.PrimaryPath)
	if err != nil {
		return nil, fmt.Errorf("could not get primary rows: %w", err)
	}

	secondary, err := uc.repo.GetSecondaryTable(ctx, req.SecondaryPath)
	if err != nil {
		return nil, fmt.Errorf("could not get secondary rows: %w", err)
	}

	return uc.ReconcileTables(ctx, req.Profile, primary, secondary)
}

// ReconcileTables runs the engine over two already materialized tables.
// Either a complete report or an error is returned, never a partial report.
func (uc *ReconciliationUseCase) ReconcileTables(ctx context.Context, profileName string, primary, secondary *domain.Table) (*domain.ReconciliationReport, error) {
	profile, err := uc.profiles.Lookup(profileName)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithField(ctx, "run_id", runID)

	// Step 1: Schema binding
	primaryRows, err := BindPrimary(primary, uc.schema.Primary)
	if err != nil {
		return nil, err
	}
	secondaryRows, err := BindSecondary(secondary, uc.schema.Secondary)
	if err != nil {
		return nil, err
	}

	// Step 2: Normalization and category filtering
	primaryRecords := NormalizePrimary(primaryRows, profile)
	secondaryRecords := NormalizeSecondary(secondaryRows)

	// Step 3: Join, classify, aggregate
	discrepancies, stats := Reconcile(primaryRecords, secondaryRecords)

	report := &domain.ReconciliationReport{
		RunID:               runID,
		Profile:             profile.Name,
		GeneratedAt:         uc.now().UTC(),
		PrimarySource:       primary.Source,
		SecondarySource:     secondary.Source,
		PrimaryRows:         len(primaryRows),
		FilteredPrimaryRows: len(primaryRecords),
		SecondaryRows:       len(secondaryRows),
		Summary:             stats,
		Discrepancies:       discrepancies,
	}

	logging.FromContext(ctx).Info().
		Str("profile", report.Profile).
		Int("primary_rows", report.PrimaryRows).
		Int("filtered_primary_rows", report.FilteredPrimaryRows).
		Int("secondary_rows", report.SecondaryRows).
		Int("total_keys", stats.TotalKeys).
		Int("discrepancies", len(discrepancies)).
		Float64("accuracy_percent", stats.AccuracyPercent).
		Msg("Reconciliation complete")

	return report, nil
}
