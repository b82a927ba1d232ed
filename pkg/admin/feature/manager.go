package feature

import (
	"context"
	"time"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager handles persistence rules of custom feature definitions
type Manager struct {
	now func() time.Time
}

// NewManager creates a new feature manager
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// WithClock replaces the time source used for CreatedAt/UpdatedAt.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// GetAll retrieves every stored definition in creation order
func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.CustomFeatureDefinition, error) {
	return uow.CustomFeatureRepository().FindAll(ctx)
}

// Get retrieves one definition, FEATURE_NOT_FOUND when missing
func (m *Manager) Get(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.CustomFeatureDefinition, error) {
	feature, err := uow.CustomFeatureRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, apperror.ErrFeatureNotFound(id.String())
	}
	return feature, nil
}

func (m *Manager) GetBySlug(ctx context.Context, uow unitofwork.UnitOfWork, slug string) (*entity.CustomFeatureDefinition, error) {
	feature, err := uow.CustomFeatureRepository().FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, apperror.NotFound(apperror.CodeFeatureNotFound, "feature not found").
			WithParams(map[string]interface{}{"slug": slug})
	}
	return feature, nil
}

// Create stores a definition under a fresh id
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, draft *entity.CustomFeatureDefinition) (*entity.CustomFeatureDefinition, error) {
	if err := m.ensureSlugFree(ctx, uow, draft.Slug, uuid.Nil); err != nil {
		return nil, err
	}

	feature := draft.Clone()
	feature.Id = uuid.New()
	now := m.now()
	feature.CreatedAt = now
	feature.UpdatedAt = now

	if err := uow.CustomFeatureRepository().Create(ctx, feature); err != nil {
		return nil, err
	}

	return feature, nil
}

// Update replaces the stored record of draft.Id, keeping its creation time
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, draft *entity.CustomFeatureDefinition) (*entity.CustomFeatureDefinition, error) {
	existing, err := m.Get(ctx, uow, draft.Id)
	if err != nil {
		return nil, err
	}
	if err := m.ensureSlugFree(ctx, uow, draft.Slug, draft.Id); err != nil {
		return nil, err
	}

	feature := draft.Clone()
	feature.CreatedAt = existing.CreatedAt
	feature.UpdatedAt = m.now()

	if err := uow.CustomFeatureRepository().Update(ctx, feature); err != nil {
		return nil, err
	}

	return feature, nil
}

// Delete removes a definition and returns what was removed
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.CustomFeatureDefinition, error) {
	feature, err := m.Get(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if err := uow.CustomFeatureRepository().Delete(ctx, id); err != nil {
		return nil, err
	}
	return feature, nil
}

func (m *Manager) ensureSlugFree(ctx context.Context, uow unitofwork.UnitOfWork, slug string, owner uuid.UUID) error {
	existing, err := uow.CustomFeatureRepository().FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.Id != owner {
		return apperror.ErrSlugConflict(slug)
	}
	return nil
}
