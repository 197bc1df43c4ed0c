package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by primary key.
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// BySource filters note chunks by their source document identifier.
type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

// ByEmbeddingSpace filters note chunks by the provider/model pair that
// produced their vectors.
type ByEmbeddingSpace struct {
	Provider string
	Model    string
}

func (s ByEmbeddingSpace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider = ? AND model = ?", s.Provider, s.Model)
}

// OrderByCreatedAt orders ascending by insertion time.
type OrderByCreatedAt struct{}

func (s OrderByCreatedAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// Limit caps the result count.
type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}
