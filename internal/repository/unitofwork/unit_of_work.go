package unitofwork

import (
	"context"

	"cmms-dashboard-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomFeatureRepository() contract.CustomFeatureRepository
}
