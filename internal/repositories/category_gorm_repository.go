package repositories

import (
	"errors"
	"fmt"

	"catalogo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update updates an existing category in the database.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %s: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete clears the category reference on associated products and removes
// the category, both inside one transaction. Products survive the delete.
func (r *GORMCategoryRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach products from category %s: %w", id, err)
		}

		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// GetByID retrieves a category by ID, scoped to the given store.
func (r *GORMCategoryRepository) GetByID(id, storeID string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ? AND store_id = ?", id, storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// ListByStore returns the store's categories ordered by name, each with its
// product count.
func (r *GORMCategoryRepository) ListByStore(storeID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("store_id = ?", storeID).Order("name asc").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for store %s: %w", storeID, err)
	}

	var counts []struct {
		CategoryID string
		Count      int64
	}
	err = r.db.Model(&models.Product{}).
		Select("category_id, COUNT(*) AS count").
		Where("store_id = ? AND category_id IS NOT NULL", storeID).
		Group("category_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count products per category: %w", err)
	}

	byCategory := make(map[string]int64, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Count
	}
	for i := range categories {
		categories[i].ProductCount = byCategory[categories[i].ID]
	}
	return categories, nil
}

// FindByName looks up a category by case-insensitive name within the store,
// ignoring excludeID.
func (r *GORMCategoryRepository) FindByName(storeID, name, excludeID string) (*models.Category, error) {
	query := r.db.Where("store_id = ? AND LOWER(name) = LOWER(?)", storeID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var category models.Category
	if err := query.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category named %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find category by name %q: %w", name, err)
	}
	return &category, nil
}
