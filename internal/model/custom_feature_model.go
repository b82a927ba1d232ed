// FILE: internal/model/custom_feature_model.go
// GORM model for the custom_features table
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CustomFeatureField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type CustomFeaturePlacement struct {
	FieldName     string `json:"fieldName"`
	ComponentType string `json:"componentType"`
	Order         int    `json:"order"`
}

type CustomFeatureUISchema struct {
	ListView   []CustomFeaturePlacement `json:"listView"`
	DetailView []CustomFeaturePlacement `json:"detailView"`
	FormView   []CustomFeaturePlacement `json:"formView"`
}

type CustomFeatureAccess struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// CustomFeature keeps the field list, UI schema and access matrix as JSONB columns.
type CustomFeature struct {
	Id             uuid.UUID                                          `gorm:"type:uuid;primaryKey"`
	Name           string                                             `gorm:"type:varchar(255);not null"`
	Slug           string                                             `gorm:"type:varchar(255);uniqueIndex;not null"`
	Icon           string                                             `gorm:"type:varchar(50);default:'Package'"`
	Description    string                                             `gorm:"type:text"`
	Fields         datatypes.JSONType[[]CustomFeatureField]           `gorm:"type:jsonb"`
	UISchema       datatypes.JSONType[CustomFeatureUISchema]          `gorm:"column:ui_schema;type:jsonb"`
	AccessControls datatypes.JSONType[map[string]CustomFeatureAccess] `gorm:"type:jsonb"`
	CreatedAt      time.Time                                          `gorm:"index"`
	UpdatedAt      time.Time
}

func (CustomFeature) TableName() string {
	return "custom_features"
}
