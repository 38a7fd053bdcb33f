package repositories

import (
	"errors"
	"fmt"

	"catalogo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// Create creates a new store in the database. A duplicate slug or a second
// store for the same user trips the unique indexes and comes back as
// ErrDuplicate. The driver does not report which index was violated, so the
// message names neither.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("store slug or owner already taken: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// Update updates an existing store in the database.
func (r *GORMStoreRepository) Update(store *models.Store) error {
	res := r.db.Save(store)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("store slug %s: %w", store.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to update store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store with ID %s: %w", store.ID, ErrNotFound)
	}
	return nil
}

// GetByUserID retrieves the store owned by the given user.
func (r *GORMStoreRepository) GetByUserID(userID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store for user %s: %w", userID, err)
	}
	return &store, nil
}

// GetBySlug retrieves a store by its public slug.
func (r *GORMStoreRepository) GetBySlug(slug string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store with slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by slug %s: %w", slug, err)
	}
	return &store, nil
}

// SlugExists reports whether the slug is taken by a store other than excludeID.
func (r *GORMStoreRepository) SlugExists(slug, excludeID string) (bool, error) {
	query := r.db.Model(&models.Store{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// IncrementVisits bumps the visit counter atomically in the database.
func (r *GORMStoreRepository) IncrementVisits(id string) error {
	res := r.db.Model(&models.Store{}).Where("id = ?", id).
		UpdateColumn("visits", gorm.Expr("visits + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment visits for store %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountProducts returns how many products the store has.
func (r *GORMStoreRepository) CountProducts(storeID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("store_id = ?", storeID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products for store %s: %w", storeID, err)
	}
	return count, nil
}
