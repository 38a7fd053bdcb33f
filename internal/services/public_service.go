package services

import (
	"errors"
	"fmt"
	"log"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/pkg/rabbitmq"
)

// PublicService serves the unauthenticated storefront: everything is looked
// up through the store's public slug and is read-only, except for the visit
// counter bumped on each store lookup.
type PublicService struct {
	storeRepo    repositories.StoreRepository
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	events       *rabbitmq.Client
}

// NewPublicService creates a new PublicService.
func NewPublicService(
	storeRepo repositories.StoreRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	events *rabbitmq.Client,
) *PublicService {
	return &PublicService{
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		events:       events,
	}
}

// GetStoreBySlug returns the store behind the slug and records the visit.
func (s *PublicService) GetStoreBySlug(slug string) (*models.Store, error) {
	store, err := s.findStore(slug)
	if err != nil {
		return nil, err
	}

	if err := s.storeRepo.IncrementVisits(store.ID); err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	if s.events != nil {
		err := s.events.Publish("store.visited", map[string]interface{}{
			"storeId": store.ID,
			"slug":    store.Slug,
		})
		if err != nil {
			log.Printf("Warning: failed to publish store.visited event: %v", err)
		}
	}
	return store, nil
}

// ListCategories returns the store's categories with product counts.
func (s *PublicService) ListCategories(slug string) ([]models.Category, error) {
	store, err := s.findStore(slug)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByStore(store.ID)
}

// ListProducts returns the store's products, optionally narrowed to one
// category.
func (s *PublicService) ListProducts(slug, categoryID string) ([]models.Product, error) {
	store, err := s.findStore(slug)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListByStore(store.ID, categoryID)
}

// GetProduct returns one product of the store behind the slug.
func (s *PublicService) GetProduct(slug, productID string) (*models.Product, error) {
	store, err := s.findStore(slug)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(productID, store.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *PublicService) findStore(slug string) (*models.Store, error) {
	store, err := s.storeRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("store not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load store by slug: %w", err)
	}
	return store, nil
}
