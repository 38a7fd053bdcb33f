package models

import "gorm.io/gorm"

// Store is a tenant's shop. Each user owns at most one store, and the slug
// is globally unique: the uniqueIndex is the authoritative guard against the
// slug-probe race between concurrent creations.
type Store struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Slug        string `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	Description string `json:"description" validate:"omitempty,max=500"`
	ImageURL    string `json:"imageUrl"`
	ImageID     string `json:"-"` // object-store identifier, kept alongside the URL
	Visits      int64  `json:"visits"`
	UserID      string `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`

	// ProductCount is filled by repository queries, not persisted.
	ProductCount int64 `json:"productCount" gorm:"-"`

	gorm.Model
}
