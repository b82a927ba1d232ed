package entity

// Icon is the symbolic name of a sidebar/feature icon.
// Only the constants below are valid; ParseIcon maps anything else to IconDefault.
type Icon string

const (
	IconPackage         Icon = "Package"
	IconShield          Icon = "Shield"
	IconShieldCheck     Icon = "ShieldCheck"
	IconCalendar        Icon = "Calendar"
	IconAlertTriangle   Icon = "AlertTriangle"
	IconUsers           Icon = "Users"
	IconThermometer     Icon = "Thermometer"
	IconFileText        Icon = "FileText"
	IconSettings        Icon = "Settings"
	IconClipboardCheck  Icon = "ClipboardCheck"
	IconTool            Icon = "Tool"
	IconTruck           Icon = "Truck"
	IconHome            Icon = "Home"
	IconBuilding2       Icon = "Building2"
	IconCog             Icon = "Cog"
	IconMapPin          Icon = "MapPin"
	IconWrench          Icon = "Wrench"
	IconArchive         Icon = "Archive"
	IconBarChart3       Icon = "BarChart3"
	IconUserCog         Icon = "UserCog"
	IconLayoutDashboard Icon = "LayoutDashboard"
	IconBell            Icon = "Bell"

	IconDefault = IconPackage
)

var Icons = []Icon{
	IconPackage, IconShield, IconShieldCheck, IconCalendar, IconAlertTriangle, IconUsers,
	IconThermometer, IconFileText, IconSettings, IconClipboardCheck, IconTool, IconTruck,
	IconHome, IconBuilding2, IconCog, IconMapPin, IconWrench, IconArchive, IconBarChart3,
	IconUserCog, IconLayoutDashboard, IconBell,
}

func (i Icon) IsValid() bool {
	for _, known := range Icons {
		if known == i {
			return true
		}
	}
	return false
}

// LookupIcon returns the icon with the given name and whether it is known.
func LookupIcon(name string) (Icon, bool) {
	icon := Icon(name)
	if icon.IsValid() {
		return icon, true
	}
	return IconDefault, false
}

// ParseIcon is LookupIcon with the fallback applied silently.
func ParseIcon(name string) Icon {
	icon, _ := LookupIcon(name)
	return icon
}
