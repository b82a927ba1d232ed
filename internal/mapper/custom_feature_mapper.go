// FILE: internal/mapper/custom_feature_mapper.go
// Mapper for CustomFeatureDefinition entity <-> model conversion
package mapper

import (
	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/model"

	"gorm.io/datatypes"
)

type CustomFeatureMapper struct{}

func NewCustomFeatureMapper() *CustomFeatureMapper {
	return &CustomFeatureMapper{}
}

func (m *CustomFeatureMapper) ToEntity(mdl *model.CustomFeature) *entity.CustomFeatureDefinition {
	if mdl == nil {
		return nil
	}

	storedFields := mdl.Fields.Data()
	fields := make([]entity.FeatureField, 0, len(storedFields))
	for _, f := range storedFields {
		fields = append(fields, entity.FeatureField{
			Name:     f.Name,
			Label:    f.Label,
			Type:     entity.FieldType(f.Type),
			Required: f.Required,
		})
	}

	schema := mdl.UISchema.Data()
	acl := entity.AccessControls{}
	for role, a := range mdl.AccessControls.Data() {
		acl[entity.Role(role)] = entity.AccessControlEntry{
			Create: a.Create,
			Read:   a.Read,
			Update: a.Update,
			Delete: a.Delete,
		}
	}

	return &entity.CustomFeatureDefinition{
		Id:          mdl.Id,
		Name:        mdl.Name,
		Slug:        mdl.Slug,
		Icon:        entity.ParseIcon(mdl.Icon),
		Description: mdl.Description,
		Fields:      fields,
		UISchema: entity.FeatureUISchemaView{
			ListView:   placementsToEntity(schema.ListView),
			DetailView: placementsToEntity(schema.DetailView),
			FormView:   placementsToEntity(schema.FormView),
		},
		AccessControls: acl,
		CreatedAt:      mdl.CreatedAt,
		UpdatedAt:      mdl.UpdatedAt,
	}
}

func (m *CustomFeatureMapper) ToModel(e *entity.CustomFeatureDefinition) *model.CustomFeature {
	if e == nil {
		return nil
	}

	fields := make([]model.CustomFeatureField, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, model.CustomFeatureField{
			Name:     f.Name,
			Label:    f.Label,
			Type:     string(f.Type),
			Required: f.Required,
		})
	}

	acl := make(map[string]model.CustomFeatureAccess, len(e.AccessControls))
	for role, a := range e.AccessControls {
		acl[string(role)] = model.CustomFeatureAccess{
			Create: a.Create,
			Read:   a.Read,
			Update: a.Update,
			Delete: a.Delete,
		}
	}

	return &model.CustomFeature{
		Id:          e.Id,
		Name:        e.Name,
		Slug:        e.Slug,
		Icon:        string(e.Icon),
		Description: e.Description,
		Fields:      datatypes.NewJSONType(fields),
		UISchema: datatypes.NewJSONType(model.CustomFeatureUISchema{
			ListView:   placementsToModel(e.UISchema.ListView),
			DetailView: placementsToModel(e.UISchema.DetailView),
			FormView:   placementsToModel(e.UISchema.FormView),
		}),
		AccessControls: datatypes.NewJSONType(acl),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (m *CustomFeatureMapper) ToEntities(models []*model.CustomFeature) []*entity.CustomFeatureDefinition {
	entities := make([]*entity.CustomFeatureDefinition, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

func placementsToEntity(in []model.CustomFeaturePlacement) []entity.ViewFieldPlacement {
	out := make([]entity.ViewFieldPlacement, 0, len(in))
	for _, p := range in {
		out = append(out, entity.ViewFieldPlacement{
			FieldName:     p.FieldName,
			ComponentType: entity.ComponentType(p.ComponentType),
			Order:         p.Order,
		})
	}
	return out
}

func placementsToModel(in []entity.ViewFieldPlacement) []model.CustomFeaturePlacement {
	out := make([]model.CustomFeaturePlacement, 0, len(in))
	for _, p := range in {
		out = append(out, model.CustomFeaturePlacement{
			FieldName:     p.FieldName,
			ComponentType: string(p.ComponentType),
			Order:         p.Order,
		})
	}
	return out
}
