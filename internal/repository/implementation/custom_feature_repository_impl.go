// FILE: internal/repository/implementation/custom_feature_repository_impl.go
// GORM implementation of CustomFeatureRepository
package implementation

import (
	"context"
	"errors"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/mapper"
	"cmms-dashboard-be/internal/model"
	"cmms-dashboard-be/internal/repository/contract"
	"cmms-dashboard-be/internal/repository/scope"
	"cmms-dashboard-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomFeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomFeatureMapper
}

func NewCustomFeatureRepository(db *gorm.DB) contract.CustomFeatureRepository {
	return &CustomFeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomFeatureMapper(),
	}
}

func (r *CustomFeatureRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CustomFeatureRepositoryImpl) Create(ctx context.Context, feature *entity.CustomFeatureDefinition) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomFeatureRepositoryImpl) Update(ctx context.Context, feature *entity.CustomFeatureDefinition) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomFeatureRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CustomFeature{}, "id = ?", id).Error
}

func (r *CustomFeatureRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomFeatureDefinition, error) {
	var m model.CustomFeature
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CustomFeatureRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomFeatureDefinition, error) {
	return r.findOne(ctx, specification.ByID{ID: id})
}

func (r *CustomFeatureRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*entity.CustomFeatureDefinition, error) {
	return r.findOne(ctx, specification.BySlug{Slug: slug})
}

func (r *CustomFeatureRepositoryImpl) FindAll(ctx context.Context) ([]*entity.CustomFeatureDefinition, error) {
	var models []*model.CustomFeature
	// id breaks ties between features created in the same instant
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc),
		specification.OrderBy{Field: "id"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CustomFeatureRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CustomFeature{}).Count(&count).Error
	return count, err
}
