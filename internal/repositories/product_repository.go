package repositories

import "catalogo/internal/models"

// ProductRepository defines the interface for product data access. Lookups
// are scoped by store ID so that ownership misses surface as not-found.
type ProductRepository interface {
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	GetByID(id, storeID string) (*models.Product, error)
	// ListByStore returns the store's products ordered by name, with their
	// category preloaded. A non-empty categoryID narrows the listing.
	ListByStore(storeID, categoryID string) ([]models.Product, error)
}
