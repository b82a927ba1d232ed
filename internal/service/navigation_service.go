package service

import (
	"context"

	"cmms-dashboard-be/internal/dto"
	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/pkg/admin/mapper"
	"cmms-dashboard-be/pkg/navigation"
)

// NavigationSource produces the current sidebar tree. Implemented by navigation.Composer.
type NavigationSource interface {
	Compose() []entity.NavigationItem
}

// FeatureLookup resolves a stored feature by slug. Implemented by builder.Registry.
type FeatureLookup interface {
	GetBySlug(ctx context.Context, slug string) (*entity.CustomFeatureDefinition, error)
}

type INavigationService interface {
	GetNavigation(ctx context.Context) []dto.NavigationItemResponse
	GetBreadcrumbs(ctx context.Context, path string) []dto.BreadcrumbResponse
	GetCustomPage(ctx context.Context, slug string, role entity.Role) (*dto.CustomPageResponse, error)
}

type navigationService struct {
	source   NavigationSource
	features FeatureLookup
}

func NewNavigationService(source NavigationSource, features FeatureLookup) INavigationService {
	return &navigationService{
		source:   source,
		features: features,
	}
}

func (s *navigationService) GetNavigation(ctx context.Context) []dto.NavigationItemResponse {
	return mapper.NavigationToResponse(s.source.Compose())
}

func (s *navigationService) GetBreadcrumbs(ctx context.Context, path string) []dto.BreadcrumbResponse {
	return mapper.BreadcrumbsToResponse(navigation.Breadcrumbs(s.source.Compose(), path))
}

// GetCustomPage describes the generic page of a custom feature as seen by role.
// The page title comes from the slug, not the feature name.
func (s *navigationService) GetCustomPage(ctx context.Context, slug string, role entity.Role) (*dto.CustomPageResponse, error) {
	feature, err := s.features.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !feature.AccessControls.Allows(role, entity.PermissionRead) {
		return nil, apperror.Forbidden(apperror.CodeAccessDenied, "you do not have access to this feature").
			WithParams(map[string]interface{}{"slug": slug, "role": string(role)})
	}

	return &dto.CustomPageResponse{
		Title:       navigation.SegmentLabel(slug),
		Slug:        slug,
		Feature:     mapper.FeatureToResponse(feature),
		Columns:     pageColumns(feature),
		Permissions: mapper.AccessEntryToResponse(feature.AccessControls[role]),
	}, nil
}

// pageColumns follows the list view placements, or every field when the list view is empty.
func pageColumns(feature *entity.CustomFeatureDefinition) []dto.CustomPageColumn {
	columns := []dto.CustomPageColumn{}

	if len(feature.UISchema.ListView) == 0 {
		for _, f := range feature.Fields {
			columns = append(columns, dto.CustomPageColumn{Field: f.Name, Label: f.Label, Type: string(f.Type)})
		}
		return columns
	}

	for _, p := range feature.UISchema.ListView {
		f, ok := feature.FieldByName(p.FieldName)
		if !ok {
			continue
		}
		columns = append(columns, dto.CustomPageColumn{Field: f.Name, Label: f.Label, Type: string(f.Type)})
	}
	return columns
}
