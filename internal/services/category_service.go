package services

import (
	"errors"
	"fmt"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

// CategoryService handles business logic for a store's categories. Every
// operation resolves the requester's store first; targets that don't belong
// to it come back as not-found, never forbidden.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	storeRepo    repositories.StoreRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, storeRepo repositories.StoreRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
	}
}

// ListCategories returns the user's categories ordered by name, with product
// counts.
func (s *CategoryService) ListCategories(userID string) ([]models.Category, error) {
	store, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByStore(store.ID)
}

// CreateCategory creates a category in the user's store. A name already used
// by another category in the same store, compared case-insensitively, is a
// conflict. The same name in a different store is fine.
func (s *CategoryService) CreateCategory(userID, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	store, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkNameFree(store.ID, name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:    name,
		StoreID: store.ID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category owned by the user.
func (s *CategoryService) UpdateCategory(userID, id, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	store, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(id, store.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("category not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if err := s.checkNameFree(store.ID, name, category.ID); err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category owned by the user. Its products survive
// with the category reference cleared.
func (s *CategoryService) DeleteCategory(userID, id string) error {
	store, err := s.ownedStore(userID)
	if err != nil {
		return err
	}

	if _, err := s.categoryRepo.GetByID(id, store.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("category not found: %w", ErrNotFound)
		}
		return err
	}

	return s.categoryRepo.Delete(id)
}

func (s *CategoryService) ownedStore(userID string) (*models.Store, error) {
	store, err := s.storeRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("store not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	return store, nil
}

func (s *CategoryService) checkNameFree(storeID, name, excludeID string) error {
	existing, err := s.categoryRepo.FindByName(storeID, name, excludeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	return fmt.Errorf("a category named %q already exists in this store: %w", existing.Name, ErrConflict)
}
