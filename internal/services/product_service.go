package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/pkg/imagestore"
	"catalogo/pkg/rabbitmq"
)

// ProductInput is the payload for creating a product. Price arrives as text
// and is parsed and validated here.
type ProductInput struct {
	Name        string
	Price       string
	Description string
	CategoryID  string
	Image       *ImageUpload
}

// ProductUpdate is a partial update. Nil pointers leave the field untouched;
// an empty CategoryID clears the category reference.
type ProductUpdate struct {
	Name        *string
	Price       *string
	Description *string
	CategoryID  *string
	Image       *ImageUpload
}

// ProductService handles business logic for a store's products, with the
// same ownership scoping as categories.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	storeRepo    repositories.StoreRepository
	images       imagestore.Store
	events       *rabbitmq.Client
}

// NewProductService creates a new ProductService.
func NewProductService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	storeRepo repositories.StoreRepository,
	images imagestore.Store,
	events *rabbitmq.Client,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
		images:       images,
		events:       events,
	}
}

// ListProducts returns the user's products, optionally narrowed to one
// category.
func (s *ProductService) ListProducts(userID, categoryID string) ([]models.Product, error) {
	store, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListByStore(store.ID, categoryID)
}

// GetProduct returns one of the user's products.
func (s *ProductService) GetProduct(userID, id string) (*models.Product, error) {
	store, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(id, store.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct creates a product in the user's store. A supplied category
// must belong to the same store.
func (s *ProductService) CreateProduct(userID string, input ProductInput) (*models.Product, error) {
	if input.Name == "" || input.Price == "" {
		return nil, fmt.Errorf("product name and price are required: %w", ErrValidation)
	}
	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}

	store, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}

	var categoryID *string
	if input.CategoryID != "" {
		if err := s.checkCategory(input.CategoryID, store.ID); err != nil {
			return nil, err
		}
		categoryID = &input.CategoryID
	}

	product := &models.Product{
		Name:        input.Name,
		Price:       price,
		Description: input.Description,
		StoreID:     store.ID,
		CategoryID:  categoryID,
	}

	if input.Image != nil {
		saved, err := s.images.Save(input.Image.Filename, input.Image.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		product.ImageURL = saved.URL
		product.ImageID = saved.ID
	}

	if err := s.productRepo.Create(product); err != nil {
		s.removeImage(product.ImageID)
		return nil, err
	}

	s.publish("product.created", map[string]interface{}{
		"productId": product.ID,
		"storeId":   store.ID,
		"name":      product.Name,
	})
	return product, nil
}

// UpdateProduct applies a partial update to one of the user's products.
func (s *ProductService) UpdateProduct(userID, id string, update ProductUpdate) (*models.Product, error) {
	store, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(id, store.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, fmt.Errorf("product name cannot be empty: %w", ErrValidation)
		}
		product.Name = *update.Name
	}
	if update.Price != nil {
		price, err := parsePrice(*update.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.CategoryID != nil {
		if *update.CategoryID == "" {
			product.CategoryID = nil
			product.Category = nil
		} else {
			if err := s.checkCategory(*update.CategoryID, store.ID); err != nil {
				return nil, err
			}
			categoryID := *update.CategoryID
			product.CategoryID = &categoryID
			product.Category = nil
		}
	}

	if update.Image != nil {
		s.removeImage(product.ImageID)
		saved, err := s.images.Save(update.Image.Filename, update.Image.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		product.ImageURL = saved.URL
		product.ImageID = saved.ID
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID, store.ID)
}

// DeleteProduct removes one of the user's products and best-effort deletes
// its stored image.
func (s *ProductService) DeleteProduct(userID, id string) error {
	store, err := s.ownedStore(userID)
	if err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(id, store.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return err
	}

	s.removeImage(product.ImageID)
	return s.productRepo.Delete(id)
}

func (s *ProductService) ownedStore(userID string) (*models.Store, error) {
	store, err := s.storeRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("store not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	return store, nil
}

func (s *ProductService) checkCategory(categoryID, storeID string) error {
	if _, err := s.categoryRepo.GetByID(categoryID, storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("category not found: %w", ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *ProductService) removeImage(imageID string) {
	if imageID == "" {
		return
	}
	if err := s.images.Delete(imageID); err != nil {
		log.Printf("Warning: failed to delete image %s: %v", imageID, err)
	}
}

func (s *ProductService) publish(event string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, data); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}

// parsePrice parses the textual price and enforces that it is strictly
// positive. Applied identically on create and update.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("price must be a number greater than zero: %w", ErrValidation)
	}
	return price, nil
}
