package models

import "gorm.io/gorm"

// Product belongs to exactly one store and optionally to one of its
// categories. CategoryID is a pointer so that deleting a category can detach
// its products instead of deleting them.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	ImageURL    string    `json:"imageUrl"`
	ImageID     string    `json:"-"` // object-store identifier, kept alongside the URL
	StoreID     string    `json:"storeId" gorm:"index;type:varchar(36)"`
	CategoryID  *string   `json:"categoryId" gorm:"index;type:varchar(36)"`
	Category    *Category `json:"category,omitempty"`
	gorm.Model
}
