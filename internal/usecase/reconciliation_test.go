package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accident-reconciliation/internal/domain"
	"accident-reconciliation/internal/logging"
	"accident-reconciliation/internal/usecase"
	mock_usecase "accident-reconciliation/internal/usecase/mocks"
)

var (
	primaryHeader   = []string{"Notification", "Equipment", "Accident Date", "Responsible Operations"}
	secondaryHeader = []string{"Notification Number", "Fleet No.", "Accident Date"}
)

func TestReconciliationUseCase_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		req               usecase.Request
		primary           *domain.Table
		secondary         *domain.Table
		primaryRepoErr    error
		secondaryRepoErr  error
		skipRepo          bool
		wantSummary       domain.SummaryStats
		wantDiscrepancies int
		wantFiltered      int
		wantErr           error
	}{
		{
			name: "successful reconciliation with every kind",
			req:  usecase.Request{PrimaryPath: "sap.csv", SecondaryPath: "pbi.csv", Profile: "PT"},
			primary: &domain.Table{
				Source: "sap.csv",
				Header: primaryHeader,
				Rows: [][]string{
					{"100", "V1", "2024-01-01", "PSV"},
					{"101", "V2", "2024-01-02", "Metro"},
					{"102", "V3", "2024-01-03", "psv"},
					{"103", "V4", "2024-01-04", "PSV"},
					{"104", "V5", "2024-01-05", "SEC"},
				},
			},
			secondary: &domain.Table{
				Source: "pbi.csv",
				Header: secondaryHeader,
				Rows: [][]string{
					{"000100", "V1", "01/01/2024"},
					{"101", "X2", "02/01/2024"},
					{"0102", "V3", "30/01/2024"},
					{"104", "V5", "05/01/2024"},
				},
			},
			wantSummary: domain.SummaryStats{
				TotalKeys:              5,
				ErrorKeys:              4,
				AccuracyPercent:        20,
				MismatchPercent:        80,
				MissingCount:           2,
				EquipmentMismatchCount: 1,
				DateMismatchCount:      1,
			},
			wantDiscrepancies: 4,
			wantFiltered:      4,
		},
		{
			name: "profile name is case insensitive",
			req:  usecase.Request{PrimaryPath: "sap.csv", SecondaryPath: "pbi.csv", Profile: " schools "},
			primary: &domain.Table{
				Source: "sap.csv",
				Header: primaryHeader,
				Rows:   [][]string{{"7", "B1", "2024-05-05", "Sec"}},
			},
			secondary: &domain.Table{
				Source: "pbi.csv",
				Header: secondaryHeader,
				Rows:   [][]string{{"7", "B1", "05/05/2024"}},
			},
			wantSummary:  domain.SummaryStats{TotalKeys: 1, AccuracyPercent: 100},
			wantFiltered: 1,
		},
		{
			name:     "unknown profile",
			req:      usecase.Request{PrimaryPath: "sap.csv", SecondaryPath: "pbi.csv", Profile: "Trams"},
			skipRepo: true,
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:           "primary repository error",
			req:            usecase.Request{PrimaryPath: "sap.csv", SecondaryPath: "pbi.csv", Profile: "PT"},
			primaryRepoErr: errors.New("failed to read primary"),
			wantErr:        errors.New("failed to read primary"),
		},
		{
			name:             "secondary repository error",
			req:              usecase.Request{PrimaryPath: "sap.csv", SecondaryPath: "pbi.csv", Profile: "PT"},
			primary:          &domain.Table{Source: "sap.csv", Header: primaryHeader},
			secondaryRepoErr: errors.New("failed to read secondary"),
			wantErr:          errors.New("failed to read secondary"),
		},
		{
			name:      "missing columns abort the run",
			req:       usecase.Request{PrimaryPath: "sap.csv", SecondaryPath: "pbi.csv", Profile: "PT"},
			primary:   &domain.Table{Source: "sap.csv", Header: []string{"Notification", "Equipment"}},
			secondary: &domain.Table{Source: "pbi.csv", Header: secondaryHeader},
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:        "empty exports",
			req:         usecase.Request{PrimaryPath: "sap.csv", SecondaryPath: "pbi.csv", Profile: "PT"},
			primary:     &domain.Table{Source: "sap.csv", Header: primaryHeader},
			secondary:   &domain.Table{Source: "pbi.csv", Header: secondaryHeader},
			wantSummary: domain.SummaryStats{AccuracyPercent: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRecordRepo := mock_usecase.NewMockRecordRepository(ctrl)

			if !tt.skipRepo {
				if tt.primaryRepoErr != nil {
					mRecordRepo.EXPECT().
						GetPrimaryTable(gomock.Any(), tt.req.PrimaryPath).
						Return(nil, tt.primaryRepoErr)
				} else {
					mRecordRepo.EXPECT().
						GetPrimaryTable(gomock.Any(), tt.req.PrimaryPath).
						Return(tt.primary, nil)

					if tt.secondaryRepoErr != nil {
						mRecordRepo.EXPECT().
							GetSecondaryTable(gomock.Any(), tt.req.SecondaryPath).
							Return(nil, tt.secondaryRepoErr)
					} else {
						mRecordRepo.EXPECT().
							GetSecondaryTable(gomock.Any(), tt.req.SecondaryPath).
							Return(tt.secondary, nil)
					}
				}
			}

			uc := usecase.NewReconciliationUseCase(mRecordRepo, usecase.WithClock(func() time.Time { return fixed }))
			got, gotErr := uc.Reconcile(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, gotErr)
				assert.Nil(t, got)
				if errors.Is(tt.wantErr, domain.ErrInvalidInput) {
					assert.ErrorIs(t, gotErr, domain.ErrInvalidInput)
				} else {
					assert.ErrorContains(t, gotErr, tt.wantErr.Error())
				}
				return
			}

			require.NoError(t, gotErr)
			require.NotNil(t, got)

			assert.Equal(t, tt.wantSummary, got.Summary)
			assert.Len(t, got.Discrepancies, tt.wantDiscrepancies)
			assert.Equal(t, tt.wantFiltered, got.FilteredPrimaryRows)
			assert.Equal(t, len(tt.primary.Rows), got.PrimaryRows)
			assert.Equal(t, len(tt.secondary.Rows), got.SecondaryRows)
			assert.Equal(t, tt.primary.Source, got.PrimarySource)
			assert.Equal(t, tt.secondary.Source, got.SecondarySource)
			assert.Equal(t, fixed, got.GeneratedAt)
			_, err := uuid.Parse(got.RunID)
			assert.NoError(t, err)
		})
	}
}

func TestReconciliationUseCase_ReconcileTables_StructuralError(t *testing.T) {
	uc := usecase.NewReconciliationUseCase(nil)

	_, err := uc.ReconcileTables(context.Background(), "PT",
		&domain.Table{Source: "sap.xlsx", Header: []string{"Notification", "Equipment"}},
		&domain.Table{Source: "pbi.xlsx", Header: []string{"Notification Number"}},
	)

	var structural *domain.StructuralInputError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, domain.SidePrimary, structural.Input)
	assert.Equal(t, "sap.xlsx", structural.Source)
	assert.Equal(t, []string{"Accident Date", "Responsible Operations"}, structural.Missing)
}

func TestReconciliationUseCase_CustomProfilesAndSchema(t *testing.T) {
	profiles := domain.DefaultProfiles()
	profiles.Add(domain.CategoryProfile{Name: "Coaches", Categories: []string{"coach"}})

	uc := usecase.NewReconciliationUseCase(nil,
		usecase.WithProfiles(profiles),
		usecase.WithSchema(domain.Schema{Secondary: domain.SecondarySchema{Key: "Ref"}}),
	)

	got, err := uc.ReconcileTables(context.Background(), "coaches",
		&domain.Table{Source: "sap.csv", Header: primaryHeader, Rows: [][]string{{"9", "C1", "2024-06-01", "Coach"}}},
		&domain.Table{Source: "pbi.csv", Header: []string{"Ref", "Fleet No.", "Accident Date"}, Rows: [][]string{{"09", "C1", "01/06/2024"}}},
	)

	require.NoError(t, err)
	assert.Equal(t, "Coaches", got.Profile)
	assert.Empty(t, got.Discrepancies)
	assert.Equal(t, 1, got.Summary.TotalKeys)
}

func TestReconciliationUseCase_RunsAreIndependent(t *testing.T) {
	uc := usecase.NewReconciliationUseCase(nil)
	primary := &domain.Table{Source: "sap.csv", Header: primaryHeader, Rows: [][]string{{"1", "V1", "2024-01-01", "PSV"}}}
	mismatched := &domain.Table{Source: "pbi.csv", Header: secondaryHeader, Rows: [][]string{{"1", "V2", "01/01/2024"}}}
	matched := &domain.Table{Source: "pbi.csv", Header: secondaryHeader, Rows: [][]string{{"1", "V1", "01/01/2024"}}}

	first, err := uc.ReconcileTables(context.Background(), "PT", primary, mismatched)
	require.NoError(t, err)
	second, err := uc.ReconcileTables(context.Background(), "PT", primary, matched)
	require.NoError(t, err)

	assert.Len(t, first.Discrepancies, 1)
	assert.Empty(t, second.Discrepancies)
	assert.Equal(t, float64(100), second.Summary.AccuracyPercent)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestReconciliationUseCase_LogsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logging.WithLogger(context.Background(), &logger)

	uc := usecase.NewReconciliationUseCase(nil)
	got, err := uc.ReconcileTables(ctx, "PT",
		&domain.Table{Source: "sap.csv", Header: primaryHeader, Rows: [][]string{{"1", "V1", "2024-01-01", "PSV"}}},
		&domain.Table{Source: "pbi.csv", Header: secondaryHeader, Rows: [][]string{{"1", "V1", "01/01/2024"}}},
	)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"run_id":"`+got.RunID+`"`)
	assert.Contains(t, buf.String(), `"message":"Reconciliation complete"`)
}
