package navigation

import "cmms-dashboard-be/internal/entity"

// DefaultTree is the fixed sidebar of the dashboard.
func DefaultTree() []entity.NavigationItem {
	return []entity.NavigationItem{
		{Name: "Dashboard", Href: "/", IconName: entity.IconHome},
		{Name: "Departments", Href: "/departments", IconName: entity.IconBuilding2},
		{Name: "Employees", Href: "/employees", IconName: entity.IconUsers},
		{Name: "Asset Types", Href: "/asset-types", IconName: entity.IconCog},
		{Name: "Locations", Href: "/locations", IconName: entity.IconMapPin},
		{Name: "Assets", Href: "/assets", IconName: entity.IconPackage},
		{Name: "Parts", Href: "/parts", IconName: entity.IconWrench},
		{Name: "Stock History", Href: "/stock-history", IconName: entity.IconArchive},
		{Name: "Reports", Href: "/reports", IconName: entity.IconBarChart3},
		{Name: "Notifications", Href: "/notifications", IconName: entity.IconBell},
		{Name: "Settings", Href: "/settings", IconName: entity.IconSettings},
		{Name: "Profile", Href: "/profile", IconName: entity.IconUserCog},
		{
			Name:     AdminGroupName,
			Href:     "/admin",
			IconName: entity.IconShield,
			SubItems: []entity.NavigationItem{
				{Name: "Feature Builder", Href: "/admin/feature-builder", IconName: entity.IconLayoutDashboard},
			},
		},
	}
}
