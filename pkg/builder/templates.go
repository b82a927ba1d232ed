package builder

import (
	"cmms-dashboard-be/internal/entity"

	"github.com/google/uuid"
)

// templateNamespace derives stable template ids from their slugs.
var templateNamespace = uuid.MustParse("6f1c2b8e-3d4a-4f5b-9c7d-2e1a0b9c8d7f")

// Template is a ready-made feature offered as a starting point in the builder.
type Template struct {
	Feature *entity.CustomFeatureDefinition
	Details string
}

type fieldSpec struct {
	name, label string
	fieldType   entity.FieldType
	required    bool
}

type templateSpec struct {
	name, slug, description, details string
	icon                             entity.Icon
	fields                           []fieldSpec
	list, detail, form               []string
	acl                              entity.AccessControls
}

func (s templateSpec) build() Template {
	d := NewDraft()
	d.SetName(s.name)
	d.SetSlug(s.slug)
	d.SetIcon(string(s.icon))
	d.SetDescription(s.description)

	for i, f := range s.fields {
		// Specs are static, so AddField cannot fail here.
		_ = d.AddField(f.name, f.label, f.fieldType)
		d.SetFieldRequired(i, f.required)
	}
	place := func(view entity.ViewType, names []string) {
		for _, name := range names {
			d.AddFieldToView(view, name)
		}
	}
	place(entity.ViewTypeList, s.list)
	place(entity.ViewTypeDetail, s.detail)
	place(entity.ViewTypeForm, s.form)

	for role, entry := range s.acl {
		for _, p := range entity.Permissions {
			d.SetAccessControl(role, p, entry.Get(p))
		}
	}

	feature := d.Definition()
	feature.Id = uuid.NewSHA1(templateNamespace, []byte(s.slug))
	return Template{Feature: feature, Details: s.details}
}

func names(fields []fieldSpec) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.name
	}
	return out
}

var (
	fullAccess = entity.AccessControlEntry{Create: true, Read: true, Update: true, Delete: true}
	readOnly   = entity.AccessControlEntry{Read: true}
	readWrite  = entity.AccessControlEntry{Create: true, Read: true, Update: true}
)

// DefaultTemplates builds the example features shown in the builder's examples tab.
func DefaultTemplates() []Template {
	specs := []templateSpec{
		safetyInspections(),
		equipmentCalibration(),
		maintenanceSchedules(),
		incidentReports(),
		vendorManagement(),
		environmentalMonitoring(),
	}
	out := make([]Template, len(specs))
	for i, s := range specs {
		out[i] = s.build()
	}
	return out
}

func safetyInspections() templateSpec {
	fields := []fieldSpec{
		{"inspection_date", "Inspection Date", entity.FieldTypeDate, true},
		{"inspector", "Inspector", entity.FieldTypeText, true},
		{"location", "Location", entity.FieldTypeText, true},
		{"status", "Status", entity.FieldTypeSelect, true},
		{"notes", "Notes", entity.FieldTypeTextarea, false},
	}
	return templateSpec{
		name:        "Safety Inspections",
		slug:        "safety-inspections",
		description: "Track safety inspections across your facilities with customizable forms and workflows.",
		details:     "Record safety inspections with date, inspector, location, status and notes. Suited to compliance and safety management.",
		icon:        entity.IconClipboardCheck,
		fields:      fields,
		list:        []string{"inspection_date", "inspector", "location", "status"},
		detail:      names(fields),
		form:        names(fields),
		acl: entity.AccessControls{
			entity.RoleAdmin:      fullAccess,
			entity.RoleManager:    readWrite,
			entity.RoleTechnician: readWrite,
			entity.RoleViewer:     readOnly,
		},
	}
}

func equipmentCalibration() templateSpec {
	fields := []fieldSpec{
		{"equipment", "Equipment", entity.FieldTypeText, true},
		{"calibration_date", "Calibration Date", entity.FieldTypeDate, true},
		{"next_due", "Next Due", entity.FieldTypeDate, false},
		{"result", "Result", entity.FieldTypeSelect, true},
		{"technician", "Technician", entity.FieldTypeText, false},
		{"certificate", "Certificate", entity.FieldTypeFile, false},
	}
	return templateSpec{
		name:        "Equipment Calibration",
		slug:        "equipment-calibration",
		description: "Manage equipment calibration schedules and records to ensure accuracy and compliance.",
		details:     "Track calibration dates, results and technicians for precision equipment, including the next due date.",
		icon:        entity.IconTool,
		fields:      fields,
		list:        []string{"equipment", "calibration_date", "next_due", "result"},
		detail:      names(fields),
		form:        names(fields),
		acl: entity.AccessControls{
			entity.RoleAdmin:      fullAccess,
			entity.RoleManager:    fullAccess,
			entity.RoleTechnician: readWrite,
			entity.RoleViewer:     readOnly,
		},
	}
}

func maintenanceSchedules() templateSpec {
	fields := []fieldSpec{
		{"asset", "Asset", entity.FieldTypeText, true},
		{"frequency_days", "Frequency (days)", entity.FieldTypeNumber, true},
		{"last_performed", "Last Performed", entity.FieldTypeDate, false},
		{"next_due", "Next Due", entity.FieldTypeDate, false},
		{"assigned_to", "Assigned To", entity.FieldTypeText, false},
		{"instructions", "Instructions", entity.FieldTypeTextarea, false},
	}
	return templateSpec{
		name:        "Maintenance Schedules",
		slug:        "maintenance-schedules",
		description: "Create and manage preventive maintenance schedules for all your assets.",
		details:     "Define maintenance frequencies, track last performed dates and next due dates, assign technicians and attach instructions.",
		icon:        entity.IconCalendar,
		fields:      fields,
		list:        []string{"asset", "frequency_days", "next_due", "assigned_to"},
		detail:      names(fields),
		form:        names(fields),
		acl: entity.AccessControls{
			entity.RoleAdmin:      fullAccess,
			entity.RoleManager:    fullAccess,
			entity.RoleTechnician: readOnly,
			entity.RoleViewer:     readOnly,
		},
	}
}

func incidentReports() templateSpec {
	fields := []fieldSpec{
		{"incident_date", "Incident Date", entity.FieldTypeDateTime, true},
		{"reported_by", "Reported By", entity.FieldTypeEmail, true},
		{"severity", "Severity", entity.FieldTypeSelect, true},
		{"description", "Description", entity.FieldTypeTextarea, true},
		{"root_cause", "Root Cause", entity.FieldTypeTextarea, false},
		{"corrective_action", "Corrective Action", entity.FieldTypeTextarea, false},
		{"near_miss", "Near Miss", entity.FieldTypeBoolean, false},
	}
	return templateSpec{
		name:        "Incident Reports",
		slug:        "incident-reports",
		description: "Document and track workplace incidents, near-misses, and follow-up actions.",
		details:     "Record incident details, root cause analysis and corrective actions for safety reporting.",
		icon:        entity.IconAlertTriangle,
		fields:      fields,
		list:        []string{"incident_date", "severity", "reported_by", "near_miss"},
		detail:      names(fields),
		form:        names(fields),
		acl: entity.AccessControls{
			entity.RoleAdmin:      fullAccess,
			entity.RoleManager:    readWrite,
			entity.RoleTechnician: {Create: true, Read: true},
			entity.RoleViewer:     readOnly,
		},
	}
}

func vendorManagement() templateSpec {
	fields := []fieldSpec{
		{"vendor_name", "Vendor Name", entity.FieldTypeText, true},
		{"contact_email", "Contact Email", entity.FieldTypeEmail, false},
		{"contract_end", "Contract End", entity.FieldTypeDate, false},
		{"rating", "Rating", entity.FieldTypeNumber, false},
		{"contract", "Contract", entity.FieldTypeFile, false},
	}
	return templateSpec{
		name:        "Vendor Management",
		slug:        "vendor-management",
		description: "Track vendors, contracts, and performance metrics in one place.",
		details:     "Manage vendor information, contracts, contact details and performance ratings.",
		icon:        entity.IconTruck,
		fields:      fields,
		list:        []string{"vendor_name", "contact_email", "contract_end", "rating"},
		detail:      names(fields),
		form:        names(fields),
		acl: entity.AccessControls{
			entity.RoleAdmin:      fullAccess,
			entity.RoleManager:    readWrite,
			entity.RoleTechnician: {},
			entity.RoleViewer:     readOnly,
		},
	}
}

func environmentalMonitoring() templateSpec {
	fields := []fieldSpec{
		{"location", "Location", entity.FieldTypeText, true},
		{"recorded_at", "Recorded At", entity.FieldTypeDateTime, true},
		{"temperature", "Temperature", entity.FieldTypeNumber, false},
		{"humidity", "Humidity", entity.FieldTypeNumber, false},
		{"air_quality", "Air Quality", entity.FieldTypeSelect, false},
		{"out_of_range", "Out Of Range", entity.FieldTypeBoolean, false},
	}
	return templateSpec{
		name:        "Environmental Monitoring",
		slug:        "environmental-monitoring",
		description: "Track environmental conditions across your facilities.",
		details:     "Record temperature, humidity, air quality and other environmental readings, flagging out-of-range conditions.",
		icon:        entity.IconThermometer,
		fields:      fields,
		list:        []string{"location", "recorded_at", "temperature", "humidity"},
		detail:      names(fields),
		form:        []string{"location", "recorded_at", "temperature", "humidity", "air_quality"},
		acl: entity.AccessControls{
			entity.RoleAdmin:      fullAccess,
			entity.RoleManager:    readWrite,
			entity.RoleTechnician: readWrite,
			entity.RoleViewer:     readOnly,
		},
	}
}
