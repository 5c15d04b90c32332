package usecase

import (
	"context"

	"accident-reconciliation/internal/domain"
)

// RecordRepository defines the interface for fetching the two exports.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go RecordRepository
type RecordRepository interface {
	GetPrimaryTable(ctx context.Context, path string) (*domain.Table, error)
	GetSecondaryTable(ctx context.Context, path string) (*domain.Table, error)
}
