package builder

import (
	"testing"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftWithFields(t *testing.T, names ...string) *Draft {
	t.Helper()
	d := NewDraft()
	for _, n := range names {
		require.NoError(t, d.AddField(n, n+" label", entity.FieldTypeText))
	}
	return d
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft()
	def := d.Definition()

	assert.False(t, d.Editing())
	assert.Equal(t, uuid.Nil, def.Id)
	assert.Empty(t, def.Name)
	assert.Empty(t, def.Slug)
	assert.Equal(t, entity.IconPackage, def.Icon)
	assert.Empty(t, def.Fields)
	for _, view := range entity.ViewTypes {
		assert.Empty(t, *def.UISchema.Bucket(view))
	}
	assert.Equal(t, entity.DefaultAccessControls(), def.AccessControls)
}

func TestDraft_SetNameDerivesSlug(t *testing.T) {
	tests := []struct {
		name     string
		editing  bool
		input    string
		wantSlug string
	}{
		{name: "create mode", input: "Safety Inspections", wantSlug: "safety-inspections"},
		{name: "punctuation", input: "  HVAC / Filters (Q3)!", wantSlug: "hvac-filters-q3"},
		{name: "edit mode keeps slug", editing: true, input: "Renamed", wantSlug: "original"},
		{name: "empty name keeps slug", input: "", wantSlug: "original"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			if tt.editing {
				d = EditDraft(&entity.CustomFeatureDefinition{Id: uuid.New(), Name: "Original", Slug: "original"})
			} else {
				d.SetSlug("original")
			}

			d.SetName(tt.input)

			def := d.Definition()
			assert.Equal(t, tt.input, def.Name)
			assert.Equal(t, tt.wantSlug, def.Slug)
		})
	}
}

func TestDraft_SetIconFallsBack(t *testing.T) {
	d := NewDraft()

	assert.True(t, d.SetIcon("Truck"))
	assert.Equal(t, entity.IconTruck, d.Definition().Icon)

	assert.False(t, d.SetIcon("Rocket"))
	assert.Equal(t, entity.IconPackage, d.Definition().Icon)
}

func TestDraft_AddField(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		label     string
		fieldType entity.FieldType
		wantErr   bool
		wantType  entity.FieldType
	}{
		{name: "valid", fieldName: "inspector", label: "Inspector", fieldType: entity.FieldTypeEmail, wantType: entity.FieldTypeEmail},
		{name: "type defaults to text", fieldName: "notes", label: "Notes", wantType: entity.FieldTypeText},
		{name: "empty label", fieldName: "inspector", label: "", fieldType: entity.FieldTypeText, wantErr: true},
		{name: "blank name", fieldName: "   ", label: "Inspector", fieldType: entity.FieldTypeText, wantErr: true},
		{name: "unknown type", fieldName: "x", label: "X", fieldType: entity.FieldType("relation"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()

			err := d.AddField(tt.fieldName, tt.label, tt.fieldType)

			fields := d.Definition().Fields
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.HasCode(err, apperror.CodeValidationFailed))
				assert.Empty(t, fields)
				return
			}
			require.NoError(t, err)
			require.Len(t, fields, 1)
			assert.Equal(t, entity.FeatureField{Name: tt.fieldName, Label: tt.label, Type: tt.wantType}, fields[0])
		})
	}
}

func TestDraft_AddFieldEmptyLabelNamesMissingInput(t *testing.T) {
	d := draftWithFields(t, "inspector")

	err := d.AddField("status", "", entity.FieldTypeSelect)

	appErr, ok := apperror.IsAppError(err)
	require.True(t, ok)
	require.Len(t, appErr.FieldErrors, 1)
	assert.Equal(t, "label", appErr.FieldErrors[0].Field)
	assert.Len(t, d.Definition().Fields, 1)
}

func TestDraft_AddFieldAllowsDuplicateNames(t *testing.T) {
	d := draftWithFields(t, "status", "status")

	assert.Len(t, d.Definition().Fields, 2)
}

func TestDraft_RemoveFieldCascadesToViews(t *testing.T) {
	d := draftWithFields(t, "date", "inspector", "notes")
	for _, view := range entity.ViewTypes {
		d.AddFieldToView(view, "date")
		d.AddFieldToView(view, "inspector")
	}

	d.RemoveField(1)

	def := d.Definition()
	require.Len(t, def.Fields, 2)
	assert.Equal(t, "date", def.Fields[0].Name)
	assert.Equal(t, "notes", def.Fields[1].Name)
	for _, view := range entity.ViewTypes {
		for _, p := range *def.UISchema.Bucket(view) {
			assert.NotEqual(t, "inspector", p.FieldName, "view %s", view)
		}
		assert.Len(t, *def.UISchema.Bucket(view), 1)
	}
	assert.Empty(t, def.DanglingPlacements())
}

func TestDraft_RemoveFieldOutOfRangeIsNoop(t *testing.T) {
	d := draftWithFields(t, "a", "b")
	before := d.Definition()

	d.RemoveField(-1)
	d.RemoveField(2)

	if diff := cmp.Diff(before, d.Definition()); diff != "" {
		t.Errorf("definition changed (-before +after):\n%s", diff)
	}
}

func TestDraft_SetFieldRequired(t *testing.T) {
	d := draftWithFields(t, "a")

	d.SetFieldRequired(0, true)
	d.SetFieldRequired(5, true)

	assert.True(t, d.Definition().Fields[0].Required)
}

func TestDraft_AddFieldToView(t *testing.T) {
	d := draftWithFields(t, "date", "inspector")

	d.AddFieldToView(entity.ViewTypeList, "date")
	d.AddFieldToView(entity.ViewTypeList, "inspector")
	d.AddFieldToView(entity.ViewTypeForm, "inspector")
	d.AddFieldToView(entity.ViewTypeList, "ghost")
	d.AddFieldToView(entity.ViewType("kanbanView"), "date")

	schema := d.Definition().UISchema
	assert.Equal(t, []entity.ViewFieldPlacement{
		{FieldName: "date", ComponentType: entity.ComponentTableColumn, Order: 0},
		{FieldName: "inspector", ComponentType: entity.ComponentTableColumn, Order: 1},
	}, schema.ListView)
	assert.Equal(t, []entity.ViewFieldPlacement{
		{FieldName: "inspector", ComponentType: entity.ComponentFormInput, Order: 0},
	}, schema.FormView)
	assert.Empty(t, schema.DetailView)
}

func TestDraft_AddThenRemoveFromViewRoundTrips(t *testing.T) {
	for _, view := range entity.ViewTypes {
		t.Run(string(view), func(t *testing.T) {
			d := draftWithFields(t, "date", "inspector")
			d.AddFieldToView(view, "date")
			before := *d.Definition().UISchema.Bucket(view)

			d.AddFieldToView(view, "inspector")
			d.RemoveFieldFromView(view, "inspector")

			after := *d.Definition().UISchema.Bucket(view)
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("bucket mismatch (-before +after):\n%s", diff)
			}
		})
	}
}

func TestDraft_RemoveFieldFromViewAbsentIsNoop(t *testing.T) {
	d := draftWithFields(t, "date")

	d.RemoveFieldFromView(entity.ViewTypeDetail, "date")
	d.RemoveFieldFromView(entity.ViewType("unknown"), "date")

	assert.Empty(t, d.Definition().UISchema.DetailView)
}

func TestDraft_AvailableFieldsForView(t *testing.T) {
	d := draftWithFields(t, "date", "inspector", "notes")
	d.AddFieldToView(entity.ViewTypeDetail, "inspector")

	available := d.AvailableFieldsForView(entity.ViewTypeDetail)

	require.Len(t, available, 2)
	assert.Equal(t, "date", available[0].Name)
	assert.Equal(t, "notes", available[1].Name)
	assert.Len(t, d.AvailableFieldsForView(entity.ViewTypeList), 3)
	assert.Nil(t, d.AvailableFieldsForView(entity.ViewType("unknown")))
}

func TestDraft_SetAccessControl(t *testing.T) {
	d := NewDraft()

	d.SetAccessControl(entity.RoleTechnician, entity.PermissionUpdate, true)
	d.SetAccessControl(entity.RoleViewer, entity.PermissionRead, false)
	d.SetAccessControl(entity.Role("contractor"), entity.PermissionRead, true)
	d.SetAccessControl(entity.RoleViewer, entity.Permission("approve"), true)

	acl := d.Definition().AccessControls
	assert.Equal(t, entity.AccessControlEntry{Read: true, Update: true}, acl[entity.RoleTechnician])
	assert.Equal(t, entity.AccessControlEntry{}, acl[entity.RoleViewer])
	assert.NotContains(t, acl, entity.Role("contractor"))
	assert.Len(t, acl, len(entity.Roles))
}

func TestDraft_SetAccessControlCreatesMissingRole(t *testing.T) {
	d := EditDraft(&entity.CustomFeatureDefinition{
		Id:             uuid.New(),
		Name:           "Legacy",
		Slug:           "legacy",
		AccessControls: entity.AccessControls{entity.RoleAdmin: {Read: true}},
	})

	d.SetAccessControl(entity.RoleManager, entity.PermissionDelete, true)

	assert.Equal(t, entity.AccessControlEntry{Delete: true}, d.Definition().AccessControls[entity.RoleManager])
}

func TestDraft_ResetRestoresDefaults(t *testing.T) {
	d := EditDraft(&entity.CustomFeatureDefinition{
		Id:   uuid.New(),
		Name: "Vendor Management",
		Slug: "vendor-management",
		Icon: entity.IconTruck,
	})
	require.NoError(t, d.AddField("vendor", "Vendor", entity.FieldTypeText))
	d.SetAccessControl(entity.RoleViewer, entity.PermissionRead, false)

	d.Reset()

	def := d.Definition()
	assert.False(t, d.Editing())
	assert.Equal(t, uuid.Nil, def.Id)
	assert.Empty(t, def.Fields)
	assert.Equal(t, entity.IconPackage, def.Icon)
	assert.Equal(t, entity.DefaultAccessControls(), def.AccessControls)
	assert.Equal(t, entity.AccessControlEntry{Read: true}, def.AccessControls[entity.RoleViewer])
}

func TestDraft_DefinitionIsACopy(t *testing.T) {
	d := draftWithFields(t, "date")

	def := d.Definition()
	def.Fields[0].Name = "changed"
	def.AccessControls[entity.RoleAdmin] = entity.AccessControlEntry{}

	again := d.Definition()
	assert.Equal(t, "date", again.Fields[0].Name)
	assert.True(t, again.AccessControls.Allows(entity.RoleAdmin, entity.PermissionDelete))
}

func TestEditDraft_DoesNotAliasStoredDefinition(t *testing.T) {
	stored := &entity.CustomFeatureDefinition{
		Id:     uuid.New(),
		Name:   "Vendor Management",
		Slug:   "vendor-management",
		Fields: []entity.FeatureField{{Name: "vendor", Label: "Vendor", Type: entity.FieldTypeText}},
	}
	d := EditDraft(stored)

	d.RemoveField(0)
	d.SetName("Suppliers")

	assert.Len(t, stored.Fields, 1)
	assert.Equal(t, "Vendor Management", stored.Name)
	assert.Equal(t, "vendor-management", d.Definition().Slug)
}
