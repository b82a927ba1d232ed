package memory

import (
	"context"
	"fmt"

	"cmms-dashboard-be/internal/repository/contract"
	"cmms-dashboard-be/internal/repository/unitofwork"
)

// unitOfWork journals undo steps between Begin and Commit so Rollback restores the store.
type unitOfWork struct {
	store   *CustomFeatureStore
	inTx    bool
	journal []func()
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.store.txMu.Lock()
	u.inTx = true
	u.journal = nil
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.finish()
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	for i := len(u.journal) - 1; i >= 0; i-- {
		u.journal[i]()
	}
	u.finish()
	return nil
}

func (u *unitOfWork) finish() {
	u.journal = nil
	u.inTx = false
	u.store.txMu.Unlock()
}

func (u *unitOfWork) CustomFeatureRepository() contract.CustomFeatureRepository {
	return &customFeatureRepository{store: u.store, uow: u}
}

type repositoryFactory struct {
	store *CustomFeatureStore
}

// NewRepositoryFactory serves units of work backed by the in-memory store.
func NewRepositoryFactory(store *CustomFeatureStore) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}
