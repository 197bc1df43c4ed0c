package specification

import "gorm.io/gorm"

// Specification narrows a gorm query before it runs.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
