// FILE: internal/dto/feature_dto.go
// DTOs for the feature builder
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Definition DTOs ---

type FeatureFieldResponse struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type ViewPlacementResponse struct {
	FieldName     string `json:"field_name"`
	ComponentType string `json:"component_type"`
	Order         int    `json:"order"`
}

type UISchemaResponse struct {
	ListView   []ViewPlacementResponse `json:"list_view"`
	DetailView []ViewPlacementResponse `json:"detail_view"`
	FormView   []ViewPlacementResponse `json:"form_view"`
}

type AccessControlResponse struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// FeatureResponse is a stored definition or a draft; Id is null until the first save
type FeatureResponse struct {
	Id             *uuid.UUID                       `json:"id"`
	Name           string                           `json:"name"`
	Slug           string                           `json:"slug"`
	Href           string                           `json:"href"`
	Icon           string                           `json:"icon"`
	Description    string                           `json:"description"`
	Fields         []FeatureFieldResponse           `json:"fields"`
	UISchema       UISchemaResponse                 `json:"ui_schema"`
	AccessControls map[string]AccessControlResponse `json:"access_controls"`
	CreatedAt      *time.Time                       `json:"created_at,omitempty"`
	UpdatedAt      *time.Time                       `json:"updated_at,omitempty"`
}

type TemplateResponse struct {
	Details string           `json:"details"`
	Feature *FeatureResponse `json:"feature"`
}

// --- Draft DTOs ---

// CreateDraftRequest starts a blank draft, or loads a stored feature / copies a template
type CreateDraftRequest struct {
	FeatureId    *uuid.UUID `json:"feature_id,omitempty"`
	TemplateSlug string     `json:"template_slug,omitempty"`
}

// UpdateDraftMetaRequest only touches the properties that are present
type UpdateDraftMetaRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AddFieldRequest struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type SetFieldRequiredRequest struct {
	Required bool `json:"required"`
}

type AddFieldToViewRequest struct {
	FieldName string `json:"field_name" validate:"required"`
}

type SetAccessControlRequest struct {
	Permission string `json:"permission" validate:"required,oneof=create read update delete"`
	Value      bool   `json:"value"`
}

type DraftResponse struct {
	DraftId         uuid.UUID                         `json:"draft_id"`
	Editing         bool                              `json:"editing"`
	Feature         *FeatureResponse                  `json:"feature"`
	AvailableFields map[string][]FeatureFieldResponse `json:"available_fields"`
	IconFallback    bool                              `json:"icon_fallback,omitempty"`
}
