package services

import (
	"errors"
	"fmt"
	"io"
	"log"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/pkg/imagestore"
	"catalogo/pkg/rabbitmq"
	"catalogo/pkg/slug"
)

// ImageUpload carries an already-validated image file into a service. The
// handler owns MIME and size checks; the service only stores the bytes.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// StoreService handles business logic for the authenticated user's store.
type StoreService struct {
	storeRepo repositories.StoreRepository
	images    imagestore.Store
	events    *rabbitmq.Client
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository, images imagestore.Store, events *rabbitmq.Client) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		images:    images,
		events:    events,
	}
}

// GetStore returns the user's store with its product count, or not-found.
func (s *StoreService) GetStore(userID string) (*models.Store, error) {
	store, err := s.storeRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("store not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	count, err := s.storeRepo.CountProducts(store.ID)
	if err != nil {
		return nil, err
	}
	store.ProductCount = count
	return store, nil
}

// CreateStore creates the user's store, deriving a globally unique slug from
// its name. A user who already owns a store gets a conflict.
func (s *StoreService) CreateStore(userID, name, description string, image *ImageUpload) (*models.Store, error) {
	base := slug.Make(name)
	if base == "" {
		return nil, fmt.Errorf("store name is required and must contain usable characters: %w", ErrValidation)
	}

	if _, err := s.storeRepo.GetByUserID(userID); err == nil {
		return nil, fmt.Errorf("user already has a store: %w", ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing store: %w", err)
	}

	resolved, err := slug.Unique(base, func(candidate string) (bool, error) {
		return s.storeRepo.SlugExists(candidate, "")
	})
	if err != nil {
		return nil, err
	}

	store := &models.Store{
		Name:        name,
		Slug:        resolved,
		Description: description,
		UserID:      userID,
	}

	if image != nil {
		saved, err := s.images.Save(image.Filename, image.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store store image: %w", err)
		}
		store.ImageURL = saved.URL
		store.ImageID = saved.ID
	}

	if err := s.storeRepo.Create(store); err != nil {
		// Roll back the upload; an orphan from a crash in between is accepted.
		s.removeImage(store.ImageID)
		if errors.Is(err, repositories.ErrDuplicate) {
			// Race lost against a concurrent creation. Either the slug or the
			// owner index tripped; the unique indexes are the authoritative
			// guard and the insert cannot tell which one rejected it.
			return nil, fmt.Errorf("store conflicts with an existing store: %w", ErrConflict)
		}
		return nil, err
	}

	s.publish("store.created", map[string]interface{}{
		"storeId": store.ID,
		"slug":    store.Slug,
		"userId":  userID,
	})
	return store, nil
}

// UpdateStore applies a partial update to the user's store. The slug is
// re-derived only when the name actually changes, and the store's own row is
// excluded from the collision probe.
func (s *StoreService) UpdateStore(userID string, name, description *string, image *ImageUpload) (*models.Store, error) {
	store, err := s.storeRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("store not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	if name != nil && *name != store.Name {
		base := slug.Make(*name)
		if base == "" {
			return nil, fmt.Errorf("store name must contain usable characters: %w", ErrValidation)
		}
		resolved, err := slug.Unique(base, func(candidate string) (bool, error) {
			return s.storeRepo.SlugExists(candidate, store.ID)
		})
		if err != nil {
			return nil, err
		}
		store.Name = *name
		store.Slug = resolved
	}
	if description != nil {
		store.Description = *description
	}

	if image != nil {
		s.removeImage(store.ImageID)
		saved, err := s.images.Save(image.Filename, image.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store store image: %w", err)
		}
		store.ImageURL = saved.URL
		store.ImageID = saved.ID
	}

	if err := s.storeRepo.Update(store); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("store slug %s is already taken: %w", store.Slug, ErrConflict)
		}
		return nil, err
	}
	return store, nil
}

func (s *StoreService) removeImage(imageID string) {
	if imageID == "" {
		return
	}
	if err := s.images.Delete(imageID); err != nil {
		log.Printf("Warning: failed to delete image %s: %v", imageID, err)
	}
}

func (s *StoreService) publish(event string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, data); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
