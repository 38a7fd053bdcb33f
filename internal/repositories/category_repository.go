package repositories

import "catalogo/internal/models"

// CategoryRepository defines the interface for category data access. Lookups
// are scoped by store ID so that ownership misses surface as not-found.
type CategoryRepository interface {
	Create(category *models.Category) error
	Update(category *models.Category) error
	// Delete detaches the category's products (category reference cleared)
	// and removes the category in one transaction.
	Delete(id string) error
	GetByID(id, storeID string) (*models.Category, error)
	// ListByStore returns the store's categories ordered by name, with
	// ProductCount filled in.
	ListByStore(storeID string) ([]models.Category, error)
	// FindByName looks up a category by case-insensitive name within the
	// store, ignoring excludeID. Pass an empty excludeID on create.
	FindByName(storeID, name, excludeID string) (*models.Category, error)
}
