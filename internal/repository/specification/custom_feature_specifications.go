package specification

import "gorm.io/gorm"

// BySlug filters custom features by their route slug
type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}
