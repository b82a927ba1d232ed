// FILE: internal/entity/custom_feature_entity.go
// Domain entities for user-defined custom features (feature builder)
package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeDateTime FieldType = "datetime"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeFile     FieldType = "file"
)

// FieldTypes lists every supported field type in builder display order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeNumber,
	FieldTypeEmail,
	FieldTypeDate,
	FieldTypeDateTime,
	FieldTypeBoolean,
	FieldTypeSelect,
	FieldTypeTextarea,
	FieldTypeFile,
}

func (t FieldType) IsValid() bool {
	for _, ft := range FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// FeatureField is one user-defined data column.
type FeatureField struct {
	Name     string // Machine key, expected unique within the feature
	Label    string
	Type     FieldType
	Required bool
}

type ViewType string

const (
	ViewTypeList   ViewType = "listView"
	ViewTypeDetail ViewType = "detailView"
	ViewTypeForm   ViewType = "formView"
)

var ViewTypes = []ViewType{ViewTypeList, ViewTypeDetail, ViewTypeForm}

func (v ViewType) IsValid() bool {
	return v == ViewTypeList || v == ViewTypeDetail || v == ViewTypeForm
}

type ComponentType string

const (
	ComponentTableColumn ComponentType = "TableColumn"
	ComponentDetailField ComponentType = "DetailField"
	ComponentFormInput   ComponentType = "FormInput"
)

// ComponentType returns the presentation component used by placements in this view.
func (v ViewType) ComponentType() ComponentType {
	switch v {
	case ViewTypeList:
		return ComponentTableColumn
	case ViewTypeDetail:
		return ComponentDetailField
	default:
		return ComponentFormInput
	}
}

// ViewFieldPlacement places a field in one view bucket.
// Order is the bucket length at insertion time and is never renumbered.
type ViewFieldPlacement struct {
	FieldName     string
	ComponentType ComponentType
	Order         int
}

type FeatureUISchemaView struct {
	ListView   []ViewFieldPlacement
	DetailView []ViewFieldPlacement
	FormView   []ViewFieldPlacement
}

// Bucket returns a pointer to the placement list of the given view, nil for unknown views.
func (s *FeatureUISchemaView) Bucket(view ViewType) *[]ViewFieldPlacement {
	switch view {
	case ViewTypeList:
		return &s.ListView
	case ViewTypeDetail:
		return &s.DetailView
	case ViewTypeForm:
		return &s.FormView
	}
	return nil
}

func (s FeatureUISchemaView) Clone() FeatureUISchemaView {
	return FeatureUISchemaView{
		ListView:   clonePlacements(s.ListView),
		DetailView: clonePlacements(s.DetailView),
		FormView:   clonePlacements(s.FormView),
	}
}

func clonePlacements(in []ViewFieldPlacement) []ViewFieldPlacement {
	if in == nil {
		return nil
	}
	out := make([]ViewFieldPlacement, len(in))
	copy(out, in)
	return out
}

// CustomFeatureDefinition is the aggregate root of the feature builder.
type CustomFeatureDefinition struct {
	Id             uuid.UUID // uuid.Nil until the first save
	Name           string
	Slug           string
	Icon           Icon
	Description    string
	Fields         []FeatureField
	UISchema       FeatureUISchemaView
	AccessControls AccessControls
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsNew reports whether the definition has never been saved.
func (d *CustomFeatureDefinition) IsNew() bool {
	return d.Id == uuid.Nil
}

// Href is the route of the generic custom feature page for this definition.
func (d *CustomFeatureDefinition) Href() string {
	return "/custom/" + d.Slug
}

// FieldByName returns the first field with the given name.
func (d *CustomFeatureDefinition) FieldByName(name string) (FeatureField, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FeatureField{}, false
}

// Clone returns a structural deep copy of the definition.
func (d *CustomFeatureDefinition) Clone() *CustomFeatureDefinition {
	if d == nil {
		return nil
	}
	var fields []FeatureField
	if d.Fields != nil {
		fields = make([]FeatureField, len(d.Fields))
		copy(fields, d.Fields)
	}

	return &CustomFeatureDefinition{
		Id:             d.Id,
		Name:           d.Name,
		Slug:           d.Slug,
		Icon:           d.Icon,
		Description:    d.Description,
		Fields:         fields,
		UISchema:       d.UISchema.Clone(),
		AccessControls: d.AccessControls.Clone(),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// DanglingPlacements returns "view:field" pairs whose field is not in Fields.
func (d *CustomFeatureDefinition) DanglingPlacements() []string {
	var dangling []string
	for _, view := range ViewTypes {
		for _, p := range *d.UISchema.Bucket(view) {
			if _, ok := d.FieldByName(p.FieldName); !ok {
				dangling = append(dangling, fmt.Sprintf("%s:%s", view, p.FieldName))
			}
		}
	}
	return dangling
}

// Validate returns the names of the problems that prevent the definition from being saved.
func (d *CustomFeatureDefinition) Validate() []string {
	var problems []string
	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, "name")
	}
	if strings.TrimSpace(d.Slug) == "" {
		problems = append(problems, "slug")
	}
	for _, p := range d.DanglingPlacements() {
		problems = append(problems, "uiSchema."+p)
	}
	return problems
}

var slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, collapses every run of non-alphanumerics into
// a single hyphen and trims hyphens from both ends.
func Slugify(name string) string {
	slug := slugSeparator.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
