package repositories

import "catalogo/internal/models"

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	Create(store *models.Store) error
	Update(store *models.Store) error
	GetByUserID(userID string) (*models.Store, error)
	GetBySlug(slug string) (*models.Store, error)
	// SlugExists reports whether any store other than excludeID already uses
	// the slug. Pass an empty excludeID on create.
	SlugExists(slug, excludeID string) (bool, error)
	IncrementVisits(id string) error
	CountProducts(storeID string) (int64, error)
}
