package dto

type NavigationItemResponse struct {
	Name     string                   `json:"name"`
	Href     string                   `json:"href"`
	IconName string                   `json:"icon_name"`
	SubItems []NavigationItemResponse `json:"sub_items,omitempty"`
	IsCustom bool                     `json:"is_custom"`
}

type BreadcrumbResponse struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type CustomPageColumn struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// CustomPageResponse describes the placeholder page rendered for /custom/<slug>
type CustomPageResponse struct {
	Title       string                `json:"title"`
	Slug        string                `json:"slug"`
	Feature     *FeatureResponse      `json:"feature"`
	Columns     []CustomPageColumn    `json:"columns"`
	Permissions AccessControlResponse `json:"permissions"`
}
