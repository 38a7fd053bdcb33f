package models

import "gorm.io/gorm"

// Category groups products inside one store. Names are unique per store,
// case-insensitively; the check lives in the service layer.
type Category struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name    string `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	StoreID string `json:"storeId" gorm:"index;type:varchar(36)"`

	// ProductCount is filled by repository queries, not persisted.
	ProductCount int64 `json:"productCount" gorm:"-"`

	gorm.Model
}
