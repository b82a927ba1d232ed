package mapper

import (
	"testing"
	"time"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/pkg/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureToResponse(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := &entity.CustomFeatureDefinition{
		Id:   id,
		Name: "Vendor Management",
		Slug: "vendor-management",
		Icon: entity.IconTruck,
		Fields: []entity.FeatureField{
			{Name: "vendor", Label: "Vendor", Type: entity.FieldTypeText, Required: true},
		},
		UISchema: entity.FeatureUISchemaView{
			ListView: []entity.ViewFieldPlacement{{FieldName: "vendor", ComponentType: entity.ComponentTableColumn}},
		},
		AccessControls: entity.DefaultAccessControls(),
		CreatedAt:      created,
		UpdatedAt:      created,
	}

	res := FeatureToResponse(f)

	require.NotNil(t, res.Id)
	assert.Equal(t, id, *res.Id)
	assert.Equal(t, "/custom/vendor-management", res.Href)
	assert.Equal(t, "Truck", res.Icon)
	assert.Equal(t, "text", res.Fields[0].Type)
	assert.True(t, res.Fields[0].Required)
	assert.Equal(t, "TableColumn", res.UISchema.ListView[0].ComponentType)
	assert.NotNil(t, res.UISchema.FormView, "empty buckets render as []")
	assert.True(t, res.AccessControls["admin"].Delete)
	assert.False(t, res.AccessControls["viewer"].Update)
	assert.Equal(t, created, *res.CreatedAt)
}

func TestFeatureToResponse_DraftHasNoId(t *testing.T) {
	res := FeatureToResponse(builder.NewDraft().Definition())

	assert.Nil(t, res.Id)
	assert.Nil(t, res.CreatedAt)
	assert.Nil(t, FeatureToResponse(nil))
}

func TestDraftToResponse(t *testing.T) {
	d := builder.NewDraft()
	require.NoError(t, d.AddField("date", "Date", entity.FieldTypeDate))
	require.NoError(t, d.AddField("notes", "Notes", entity.FieldTypeTextarea))
	d.AddFieldToView(entity.ViewTypeList, "date")

	res := DraftToResponse(d)

	assert.Equal(t, d.Id, res.DraftId)
	assert.Len(t, res.AvailableFields["listView"], 1)
	assert.Equal(t, "notes", res.AvailableFields["listView"][0].Name)
	assert.Len(t, res.AvailableFields["formView"], 2)
}

func TestNavigationToResponse(t *testing.T) {
	items := []entity.NavigationItem{
		{Name: "Dashboard", Href: "/", IconName: entity.IconHome},
		{Name: "Admin", Href: "/admin", IconName: entity.IconShield, SubItems: []entity.NavigationItem{
			{Name: "Vendor Management", Href: "/custom/vendor-management", IconName: entity.IconTruck, IsCustom: true},
		}},
	}

	res := NavigationToResponse(items)

	require.Len(t, res, 2)
	assert.Nil(t, res[0].SubItems)
	assert.Equal(t, "Truck", res[1].SubItems[0].IconName)
	assert.True(t, res[1].SubItems[0].IsCustom)
}
