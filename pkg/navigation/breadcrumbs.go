package navigation

import (
	"strings"

	"cmms-dashboard-be/internal/entity"
)

var homeCrumb = entity.Breadcrumb{Label: "Dashboard", Href: "/"}

// Breadcrumbs resolves the label/href chain leading to path within tree.
// Paths below a known item (e.g. /assets/42) end with a crumb built from the last segment.
func Breadcrumbs(tree []entity.NavigationItem, path string) []entity.Breadcrumb {
	path = normalizePath(path)
	crumbs := []entity.Breadcrumb{homeCrumb}
	if path == "/" {
		return crumbs
	}

	if chain := findChain(tree, func(href string) bool { return href == path }); chain != nil {
		return append(crumbs, chain...)
	}

	// Longest href that is a parent of path.
	parent := ""
	findChain(tree, func(href string) bool {
		if href != "/" && len(href) > len(parent) && strings.HasPrefix(path, href+"/") {
			parent = href
		}
		return false
	})
	if parent != "" {
		crumbs = append(crumbs, findChain(tree, func(href string) bool { return href == parent })...)
	}
	return append(crumbs, entity.Breadcrumb{Label: SegmentLabel(path), Href: path})
}

// SegmentLabel turns the last path segment into a readable label ("safety-inspections" -> "safety inspections").
func SegmentLabel(path string) string {
	segment := path[strings.LastIndex(path, "/")+1:]
	return strings.ReplaceAll(segment, "-", " ")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// findChain walks the tree depth-first and returns the crumbs from the top-level item
// down to the first item whose href matches.
func findChain(items []entity.NavigationItem, match func(href string) bool) []entity.Breadcrumb {
	for _, item := range items {
		crumb := entity.Breadcrumb{Label: item.Name, Href: item.Href}
		if match(item.Href) {
			return []entity.Breadcrumb{crumb}
		}
		if sub := findChain(item.SubItems, match); sub != nil {
			return append([]entity.Breadcrumb{crumb}, sub...)
		}
	}
	return nil
}
