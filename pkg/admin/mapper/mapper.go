package mapper

import (
	"cmms-dashboard-be/internal/dto"
	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/pkg/builder"
)

// FeatureToResponse converts a definition (stored or draft) to its response DTO
func FeatureToResponse(f *entity.CustomFeatureDefinition) *dto.FeatureResponse {
	if f == nil {
		return nil
	}
	res := &dto.FeatureResponse{
		Name:           f.Name,
		Slug:           f.Slug,
		Href:           f.Href(),
		Icon:           string(f.Icon),
		Description:    f.Description,
		Fields:         FieldsToResponse(f.Fields),
		UISchema:       uiSchemaToResponse(f.UISchema),
		AccessControls: AccessControlsToResponse(f.AccessControls),
	}
	if !f.IsNew() {
		id := f.Id
		createdAt, updatedAt := f.CreatedAt, f.UpdatedAt
		res.Id = &id
		res.CreatedAt = &createdAt
		res.UpdatedAt = &updatedAt
	}
	return res
}

// FeaturesToResponse converts multiple definitions, never returning nil
func FeaturesToResponse(features []*entity.CustomFeatureDefinition) []*dto.FeatureResponse {
	res := make([]*dto.FeatureResponse, 0, len(features))
	for _, f := range features {
		res = append(res, FeatureToResponse(f))
	}
	return res
}

func FieldsToResponse(fields []entity.FeatureField) []dto.FeatureFieldResponse {
	res := make([]dto.FeatureFieldResponse, 0, len(fields))
	for _, f := range fields {
		res = append(res, dto.FeatureFieldResponse{
			Name:     f.Name,
			Label:    f.Label,
			Type:     string(f.Type),
			Required: f.Required,
		})
	}
	return res
}

func placementsToResponse(placements []entity.ViewFieldPlacement) []dto.ViewPlacementResponse {
	res := make([]dto.ViewPlacementResponse, 0, len(placements))
	for _, p := range placements {
		res = append(res, dto.ViewPlacementResponse{
			FieldName:     p.FieldName,
			ComponentType: string(p.ComponentType),
			Order:         p.Order,
		})
	}
	return res
}

func uiSchemaToResponse(s entity.FeatureUISchemaView) dto.UISchemaResponse {
	return dto.UISchemaResponse{
		ListView:   placementsToResponse(s.ListView),
		DetailView: placementsToResponse(s.DetailView),
		FormView:   placementsToResponse(s.FormView),
	}
}

func AccessEntryToResponse(e entity.AccessControlEntry) dto.AccessControlResponse {
	return dto.AccessControlResponse{Create: e.Create, Read: e.Read, Update: e.Update, Delete: e.Delete}
}

func AccessControlsToResponse(acl entity.AccessControls) map[string]dto.AccessControlResponse {
	res := make(map[string]dto.AccessControlResponse, len(acl))
	for role, entry := range acl {
		res[string(role)] = AccessEntryToResponse(entry)
	}
	return res
}

// TemplatesToResponse converts the builder's example features
func TemplatesToResponse(templates []builder.Template) []*dto.TemplateResponse {
	res := make([]*dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		res = append(res, &dto.TemplateResponse{
			Details: t.Details,
			Feature: FeatureToResponse(t.Feature),
		})
	}
	return res
}

// DraftToResponse includes, per view, the fields the builder can still place
func DraftToResponse(d *builder.Draft) *dto.DraftResponse {
	available := make(map[string][]dto.FeatureFieldResponse, len(entity.ViewTypes))
	for _, view := range entity.ViewTypes {
		available[string(view)] = FieldsToResponse(d.AvailableFieldsForView(view))
	}
	return &dto.DraftResponse{
		DraftId:         d.Id,
		Editing:         d.Editing(),
		Feature:         FeatureToResponse(d.Definition()),
		AvailableFields: available,
	}
}

func NavigationToResponse(items []entity.NavigationItem) []dto.NavigationItemResponse {
	res := make([]dto.NavigationItemResponse, 0, len(items))
	for _, item := range items {
		r := dto.NavigationItemResponse{
			Name:     item.Name,
			Href:     item.Href,
			IconName: string(item.IconName),
			IsCustom: item.IsCustom,
		}
		if len(item.SubItems) > 0 {
			r.SubItems = NavigationToResponse(item.SubItems)
		}
		res = append(res, r)
	}
	return res
}

func BreadcrumbsToResponse(crumbs []entity.Breadcrumb) []dto.BreadcrumbResponse {
	res := make([]dto.BreadcrumbResponse, 0, len(crumbs))
	for _, c := range crumbs {
		res = append(res, dto.BreadcrumbResponse{Label: c.Label, Href: c.Href})
	}
	return res
}

func UserToResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:         u.Id,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		Department: u.Department,
	}
}
