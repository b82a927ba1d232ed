// FILE: internal/service/builder_service.go
package service

import (
	"context"

	"cmms-dashboard-be/internal/dto"
	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/pkg/admin/mapper"
	"cmms-dashboard-be/pkg/builder"

	"github.com/google/uuid"
)

// DraftStore keeps builder drafts between requests. Implemented by memory.DraftRepository.
type DraftStore interface {
	Save(draft *builder.Draft)
	Get(draftID string) (*builder.Draft, bool)
	Delete(draftID string)
}

type IBuilderService interface {
	// Stored features
	ListFeatures(ctx context.Context) ([]*dto.FeatureResponse, error)
	GetFeature(ctx context.Context, id uuid.UUID) (*dto.FeatureResponse, error)
	DeleteFeature(ctx context.Context, id uuid.UUID) error
	ListTemplates(ctx context.Context) []*dto.TemplateResponse

	// Drafts
	CreateDraft(ctx context.Context, req *dto.CreateDraftRequest) (*dto.DraftResponse, error)
	GetDraft(ctx context.Context, draftID string) (*dto.DraftResponse, error)
	UpdateDraftMeta(ctx context.Context, draftID string, req *dto.UpdateDraftMetaRequest) (*dto.DraftResponse, error)
	AddField(ctx context.Context, draftID string, req *dto.AddFieldRequest) (*dto.DraftResponse, error)
	RemoveField(ctx context.Context, draftID string, index int) (*dto.DraftResponse, error)
	SetFieldRequired(ctx context.Context, draftID string, index int, required bool) (*dto.DraftResponse, error)
	AddFieldToView(ctx context.Context, draftID string, view entity.ViewType, fieldName string) (*dto.DraftResponse, error)
	RemoveFieldFromView(ctx context.Context, draftID string, view entity.ViewType, fieldName string) (*dto.DraftResponse, error)
	SetAccessControl(ctx context.Context, draftID string, role entity.Role, req *dto.SetAccessControlRequest) (*dto.DraftResponse, error)
	ResetDraft(ctx context.Context, draftID string) (*dto.DraftResponse, error)
	SaveDraft(ctx context.Context, draftID string) (*dto.FeatureResponse, error)
	DiscardDraft(ctx context.Context, draftID string) error
}

type builderService struct {
	registry *builder.Registry
	drafts   DraftStore
	logger   logger.ILogger
}

func NewBuilderService(registry *builder.Registry, drafts DraftStore, logger logger.ILogger) IBuilderService {
	return &builderService{
		registry: registry,
		drafts:   drafts,
		logger:   logger,
	}
}

func (s *builderService) ListFeatures(ctx context.Context) ([]*dto.FeatureResponse, error) {
	features, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.FeaturesToResponse(features), nil
}

func (s *builderService) GetFeature(ctx context.Context, id uuid.UUID) (*dto.FeatureResponse, error) {
	feature, err := s.registry.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.FeatureToResponse(feature), nil
}

func (s *builderService) DeleteFeature(ctx context.Context, id uuid.UUID) error {
	return s.registry.Delete(ctx, id)
}

func (s *builderService) ListTemplates(ctx context.Context) []*dto.TemplateResponse {
	return mapper.TemplatesToResponse(s.registry.Templates())
}

// CreateDraft opens a blank draft, an edit draft of a stored feature, or a copy of a template.
func (s *builderService) CreateDraft(ctx context.Context, req *dto.CreateDraftRequest) (*dto.DraftResponse, error) {
	var draft *builder.Draft

	switch {
	case req != nil && req.FeatureId != nil:
		feature, err := s.registry.Get(ctx, *req.FeatureId)
		if err != nil {
			return nil, err
		}
		draft = builder.EditDraft(feature)
	case req != nil && req.TemplateSlug != "":
		example, err := s.registry.TemplateBySlug(req.TemplateSlug)
		if err != nil {
			return nil, err
		}
		draft = s.registry.InstantiateFromTemplate(example)
	default:
		draft = builder.NewDraft()
	}

	s.drafts.Save(draft)
	s.logger.Debug("BUILDER", "Draft opened", map[string]interface{}{
		"draft_id": draft.Id.String(),
		"editing":  draft.Editing(),
	})
	return mapper.DraftToResponse(draft), nil
}

func (s *builderService) GetDraft(ctx context.Context, draftID string) (*dto.DraftResponse, error) {
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	return mapper.DraftToResponse(draft), nil
}

func (s *builderService) UpdateDraftMeta(ctx context.Context, draftID string, req *dto.UpdateDraftMetaRequest) (*dto.DraftResponse, error) {
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}

	// Name first so an explicit slug in the same request wins over the derived one
	if req.Name != nil {
		draft.SetName(*req.Name)
	}
	if req.Slug != nil {
		draft.SetSlug(*req.Slug)
	}
	if req.Description != nil {
		draft.SetDescription(*req.Description)
	}

	fallback := false
	if req.Icon != nil {
		fallback = !draft.SetIcon(*req.Icon)
	}

	res := mapper.DraftToResponse(draft)
	res.IconFallback = fallback
	return res, nil
}

func (s *builderService) AddField(ctx context.Context, draftID string, req *dto.AddFieldRequest) (*dto.DraftResponse, error) {
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.AddField(req.Name, req.Label, entity.FieldType(req.Type)); err != nil {
		return nil, err
	}
	return mapper.DraftToResponse(draft), nil
}

func (s *builderService) RemoveField(ctx context.Context, draftID string, index int) (*dto.DraftResponse, error) {
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	draft.RemoveField(index)
	return mapper.DraftToResponse(draft), nil
}

func (s *builderService) SetFieldRequired(ctx context.Context, draftID string, index int, required bool) (*dto.DraftResponse, error) {
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	draft.SetFieldRequired(index, required)
	return mapper.DraftToResponse(draft), nil
}

func (s *builderService) AddFieldToView(ctx context.Context, draftID string, view entity.ViewType, fieldName string) (*dto.DraftResponse, error) {
	if !view.IsValid() {
		return nil, invalidView(view)
	}
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	draft.AddFieldToView(view, fieldName)
	return mapper.DraftToResponse(draft), nil
}

func (s *builderService) RemoveFieldFromView(ctx context.Context, draftID string, view entity.ViewType, fieldName string) (*dto.DraftResponse, error) {
	if !view.IsValid() {
		return nil, invalidView(view)
	}
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	draft.RemoveFieldFromView(view, fieldName)
	return mapper.DraftToResponse(draft), nil
}

func (s *builderService) SetAccessControl(ctx context.Context, draftID string, role entity.Role, req *dto.SetAccessControlRequest) (*dto.DraftResponse, error) {
	if !role.IsValid() {
		return nil, apperror.BadRequest(apperror.CodeInvalidRequest, "unknown role").
			WithParams(map[string]interface{}{"role": string(role)})
	}
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	draft.SetAccessControl(role, entity.Permission(req.Permission), req.Value)
	return mapper.DraftToResponse(draft), nil
}

func (s *builderService) ResetDraft(ctx context.Context, draftID string) (*dto.DraftResponse, error) {
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	draft.Reset()
	return mapper.DraftToResponse(draft), nil
}

// SaveDraft stores the draft's feature. On success the draft is reset, ready for the next feature.
func (s *builderService) SaveDraft(ctx context.Context, draftID string) (*dto.FeatureResponse, error) {
	draft, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}

	saved, err := s.registry.Save(ctx, draft)
	if err != nil {
		return nil, err
	}

	draft.Reset()
	return mapper.FeatureToResponse(saved), nil
}

func (s *builderService) DiscardDraft(ctx context.Context, draftID string) error {
	if _, err := s.draft(draftID); err != nil {
		return err
	}
	s.drafts.Delete(draftID)
	return nil
}

func (s *builderService) draft(draftID string) (*builder.Draft, error) {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return nil, apperror.ErrDraftNotFound(draftID)
	}
	return draft, nil
}

func invalidView(view entity.ViewType) *apperror.AppError {
	return apperror.BadRequest(apperror.CodeInvalidRequest, "unknown view").
		WithParams(map[string]interface{}{"view": string(view)})
}
