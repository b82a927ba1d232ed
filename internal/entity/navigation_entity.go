package entity

// NavigationItem is one node of the sidebar tree. Only one level of SubItems is rendered.
type NavigationItem struct {
	Name     string
	Href     string
	IconName Icon
	SubItems []NavigationItem
	IsCustom bool
}

// Clone returns a deep copy of the item and its sub items.
func (n NavigationItem) Clone() NavigationItem {
	out := n
	if n.SubItems != nil {
		out.SubItems = CloneNavigation(n.SubItems)
	}
	return out
}

// CloneNavigation deep-copies a navigation tree.
func CloneNavigation(items []NavigationItem) []NavigationItem {
	if items == nil {
		return nil
	}
	out := make([]NavigationItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// Breadcrumb is one label/href step on the path to the current page.
type Breadcrumb struct {
	Label string
	Href  string
}
