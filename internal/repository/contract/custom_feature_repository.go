// FILE: internal/repository/contract/custom_feature_repository.go
// Repository interface for user-defined custom features
package contract

import (
	"context"

	"cmms-dashboard-be/internal/entity"

	"github.com/google/uuid"
)

// CustomFeatureRepository stores feature builder definitions.
// Finders return (nil, nil) when nothing matches.
type CustomFeatureRepository interface {
	Create(ctx context.Context, feature *entity.CustomFeatureDefinition) error
	Update(ctx context.Context, feature *entity.CustomFeatureDefinition) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomFeatureDefinition, error)
	FindBySlug(ctx context.Context, slug string) (*entity.CustomFeatureDefinition, error)
	// FindAll returns features in creation order.
	FindAll(ctx context.Context) ([]*entity.CustomFeatureDefinition, error)
	Count(ctx context.Context) (int64, error)
}
