package builder

import (
	"strings"
	"sync"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

// Draft is the working copy edited by the feature builder before it is saved.
// All methods are safe for concurrent use.
type Draft struct {
	Id uuid.UUID

	mu      sync.Mutex
	feature *entity.CustomFeatureDefinition
	editing bool
}

// NewDraft returns an empty draft in create mode.
func NewDraft() *Draft {
	d := &Draft{Id: uuid.New()}
	d.reset()
	return d
}

// EditDraft loads a stored definition for editing. Slug auto-derivation is suspended.
func EditDraft(feature *entity.CustomFeatureDefinition) *Draft {
	return draftOf(feature, true)
}

func draftOf(feature *entity.CustomFeatureDefinition, editing bool) *Draft {
	f := feature.Clone()
	normalize(f)
	return &Draft{
		Id:      uuid.New(),
		feature: f,
		editing: editing,
	}
}

func normalize(f *entity.CustomFeatureDefinition) {
	if f.Fields == nil {
		f.Fields = []entity.FeatureField{}
	}
	if f.AccessControls == nil {
		f.AccessControls = entity.AccessControls{}
	}
	for _, view := range entity.ViewTypes {
		if bucket := f.UISchema.Bucket(view); *bucket == nil {
			*bucket = []entity.ViewFieldPlacement{}
		}
	}
	if !f.Icon.IsValid() {
		f.Icon = entity.IconDefault
	}
}

// Reset clears the draft back to create mode with default access controls.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *Draft) reset() {
	d.feature = &entity.CustomFeatureDefinition{
		Icon:           entity.IconDefault,
		AccessControls: entity.DefaultAccessControls(),
	}
	normalize(d.feature)
	d.editing = false
}

// Editing reports whether the draft edits an already stored feature.
func (d *Draft) Editing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editing
}

// Definition returns a deep copy of the feature being edited.
func (d *Draft) Definition() *entity.CustomFeatureDefinition {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.feature.Clone()
}

// SetName updates the name and, outside edit mode, re-derives the slug.
func (d *Draft) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.feature.Name = name
	if !d.editing && name != "" {
		d.feature.Slug = entity.Slugify(name)
	}
}

func (d *Draft) SetSlug(slug string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.feature.Slug = slug
}

// SetIcon stores the icon, falling back to the default one for unknown names.
// It reports whether name was a known icon.
func (d *Draft) SetIcon(name string) bool {
	icon, ok := entity.LookupIcon(name)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.feature.Icon = icon
	return ok
}

func (d *Draft) SetDescription(description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.feature.Description = description
}

// AddField appends a non-required field. Duplicate names are not rejected.
func (d *Draft) AddField(name, label string, fieldType entity.FieldType) error {
	var missing []apperror.FieldError
	if strings.TrimSpace(name) == "" {
		missing = append(missing, apperror.Required("name"))
	}
	if strings.TrimSpace(label) == "" {
		missing = append(missing, apperror.Required("label"))
	}
	if len(missing) > 0 {
		return apperror.Validation("Please fill in both field name and label.", missing...)
	}
	if fieldType == "" {
		fieldType = entity.FieldTypeText
	}
	if !fieldType.IsValid() {
		return apperror.Validation("Unknown field type.", apperror.FieldError{
			Field: "type", Code: "INVALID", Message: "unsupported field type " + string(fieldType),
		})
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.feature.Fields = append(d.feature.Fields, entity.FeatureField{
		Name:     name,
		Label:    label,
		Type:     fieldType,
		Required: false,
	})
	return nil
}

// RemoveField removes the field at index together with all of its view placements.
// An out-of-range index is ignored.
func (d *Draft) RemoveField(index int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fields := d.feature.Fields
	if index < 0 || index >= len(fields) {
		return
	}
	removed := fields[index].Name

	updated := make([]entity.FeatureField, 0, len(fields)-1)
	updated = append(updated, fields[:index]...)
	updated = append(updated, fields[index+1:]...)
	d.feature.Fields = updated

	for _, view := range entity.ViewTypes {
		bucket := d.feature.UISchema.Bucket(view)
		*bucket = withoutField(*bucket, removed)
	}
}

// SetFieldRequired toggles the required flag of the field at index.
func (d *Draft) SetFieldRequired(index int, required bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.feature.Fields) {
		return
	}
	d.feature.Fields[index].Required = required
}

// AddFieldToView places an existing field at the end of a view bucket.
// Unknown fields or views are ignored. Callers only offer fields returned by
// AvailableFieldsForView, so no duplicate check happens here.
func (d *Draft) AddFieldToView(view entity.ViewType, fieldName string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.feature.FieldByName(fieldName); !ok {
		return
	}
	bucket := d.feature.UISchema.Bucket(view)
	if bucket == nil {
		return
	}
	*bucket = append(*bucket, entity.ViewFieldPlacement{
		FieldName:     fieldName,
		ComponentType: view.ComponentType(),
		Order:         len(*bucket),
	})
}

// RemoveFieldFromView drops the placement of fieldName from a bucket. Absent placements are fine.
func (d *Draft) RemoveFieldFromView(view entity.ViewType, fieldName string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	bucket := d.feature.UISchema.Bucket(view)
	if bucket == nil {
		return
	}
	*bucket = withoutField(*bucket, fieldName)
}

// AvailableFieldsForView lists the fields not yet placed in view, in field order.
func (d *Draft) AvailableFieldsForView(view entity.ViewType) []entity.FeatureField {
	d.mu.Lock()
	defer d.mu.Unlock()

	bucket := d.feature.UISchema.Bucket(view)
	if bucket == nil {
		return nil
	}
	placed := make(map[string]struct{}, len(*bucket))
	for _, p := range *bucket {
		placed[p.FieldName] = struct{}{}
	}

	available := []entity.FeatureField{}
	for _, f := range d.feature.Fields {
		if _, ok := placed[f.Name]; !ok {
			available = append(available, f)
		}
	}
	return available
}

// SetAccessControl sets one permission of one role. A role without an entry
// starts from all-false. Unknown roles or permissions are ignored.
func (d *Draft) SetAccessControl(role entity.Role, permission entity.Permission, value bool) {
	if !role.IsValid() || !permission.IsValid() {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.feature.AccessControls == nil {
		d.feature.AccessControls = entity.AccessControls{}
	}
	entry := d.feature.AccessControls[role]
	entry.Set(permission, value)
	d.feature.AccessControls[role] = entry
}

func withoutField(placements []entity.ViewFieldPlacement, fieldName string) []entity.ViewFieldPlacement {
	kept := make([]entity.ViewFieldPlacement, 0, len(placements))
	for _, p := range placements {
		if p.FieldName != fieldName {
			kept = append(kept, p)
		}
	}
	return kept
}
