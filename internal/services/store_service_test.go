package services_test

import (
	"strings"
	"testing"

	"catalogo/internal/models"
	"catalogo/internal/services"
	"catalogo/pkg/imagestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStoreService_CreateStore(t *testing.T) {
	mockRepo := new(MockStoreRepository)
	mockImages := new(MockImageStore)
	storeService := services.NewStoreService(mockRepo, mockImages, nil)

	// First store for the user; the name slugifies cleanly and is free.
	mockRepo.On("GetByUserID", "user-1").Return(nil, notFoundErr("store")).Once()
	mockRepo.On("SlugExists", "loja-a", "").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Store")).Return(nil).Once()

	store, err := storeService.CreateStore("user-1", "Loja A", "doces e salgados", nil)
	assert.NoError(t, err)
	assert.Equal(t, "loja-a", store.Slug)
	assert.Equal(t, "user-1", store.UserID)
	mockRepo.AssertExpectations(t)
}

func TestStoreService_CreateStoreProbesForFreeSlug(t *testing.T) {
	mockRepo := new(MockStoreRepository)
	storeService := services.NewStoreService(mockRepo, new(MockImageStore), nil)

	mockRepo.On("GetByUserID", "user-2").Return(nil, notFoundErr("store")).Once()
	mockRepo.On("SlugExists", "loja-a", "").Return(true, nil).Once()
	mockRepo.On("SlugExists", "loja-a-1", "").Return(true, nil).Once()
	mockRepo.On("SlugExists", "loja-a-2", "").Return(true, nil).Once()
	mockRepo.On("SlugExists", "loja-a-3", "").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Store")).Return(nil).Once()

	store, err := storeService.CreateStore("user-2", "Loja A", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, "loja-a-3", store.Slug)
	mockRepo.AssertExpectations(t)
}

func TestStoreService_CreateStoreRejections(t *testing.T) {
	mockRepo := new(MockStoreRepository)
	storeService := services.NewStoreService(mockRepo, new(MockImageStore), nil)

	// A name stripped down to nothing cannot be slugged.
	_, err := storeService.CreateStore("user-1", "!!!", "", nil)
	assert.ErrorIs(t, err, services.ErrValidation)

	// One store per user.
	mockRepo.On("GetByUserID", "user-1").Return(&models.Store{ID: "store-1"}, nil).Once()
	_, err = storeService.CreateStore("user-1", "Outra Loja", "", nil)
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)
}

func TestStoreService_CreateStoreRollsBackImageOnSlugRace(t *testing.T) {
	mockRepo := new(MockStoreRepository)
	mockImages := new(MockImageStore)
	storeService := services.NewStoreService(mockRepo, mockImages, nil)

	// The probe sees the slug as free, but a concurrent creation commits
	// first and the unique index rejects the insert. The uploaded image is
	// cleaned up and the caller gets a conflict.
	mockRepo.On("GetByUserID", "user-1").Return(nil, notFoundErr("store")).Once()
	mockRepo.On("SlugExists", "loja-a", "").Return(false, nil).Once()
	mockImages.On("Save", "front.png", mock.Anything).
		Return(imagestore.Image{URL: "/uploads/front.png", ID: "front.png"}, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Store")).
		Return(duplicateErr("store slug loja-a")).Once()
	mockImages.On("Delete", "front.png").Return(nil).Once()

	_, err := storeService.CreateStore("user-1", "Loja A", "", &services.ImageUpload{
		Filename: "front.png",
		Reader:   strings.NewReader("png bytes"),
	})
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestStoreService_CreateStoreLosesOwnerRace(t *testing.T) {
	mockRepo := new(MockStoreRepository)
	storeService := services.NewStoreService(mockRepo, new(MockImageStore), nil)

	// Two concurrent first-store creations by the same user can both pass
	// the pre-check; the owner unique index rejects the second insert. The
	// insert cannot tell which index tripped, so the conflict must not claim
	// a slug clash.
	mockRepo.On("GetByUserID", "user-1").Return(nil, notFoundErr("store")).Once()
	mockRepo.On("SlugExists", "loja-a", "").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Store")).
		Return(duplicateErr("store slug or owner already taken")).Once()

	_, err := storeService.CreateStore("user-1", "Loja A", "", nil)
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Contains(t, err.Error(), "conflicts with an existing store")
	assert.NotContains(t, err.Error(), "slug loja-a")
	mockRepo.AssertExpectations(t)
}

func TestStoreService_UpdateStore(t *testing.T) {
	mockRepo := new(MockStoreRepository)
	storeService := services.NewStoreService(mockRepo, new(MockImageStore), nil)

	existing := func() *models.Store {
		return &models.Store{ID: "store-1", Name: "Loja A", Slug: "loja-a", UserID: "user-1"}
	}

	// Renaming re-derives the slug, excluding the store's own row from the
	// collision probe.
	mockRepo.On("GetByUserID", "user-1").Return(existing(), nil).Once()
	mockRepo.On("SlugExists", "loja-b", "store-1").Return(false, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Store")).Return(nil).Once()

	name := "Loja B"
	store, err := storeService.UpdateStore("user-1", &name, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "loja-b", store.Slug)
	mockRepo.AssertExpectations(t)

	// Submitting the unchanged name never probes.
	mockRepo.On("GetByUserID", "user-1").Return(existing(), nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Store")).Return(nil).Once()

	same := "Loja A"
	desc := "nova descrição"
	store, err = storeService.UpdateStore("user-1", &same, &desc, nil)
	assert.NoError(t, err)
	assert.Equal(t, "loja-a", store.Slug)
	assert.Equal(t, "nova descrição", store.Description)
	mockRepo.AssertNotCalled(t, "SlugExists", "loja-a", "store-1")
	mockRepo.AssertExpectations(t)

	// No store yet: not-found, nothing else.
	mockRepo.On("GetByUserID", "user-9").Return(nil, notFoundErr("store")).Once()
	_, err = storeService.UpdateStore("user-9", &name, nil, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestStoreService_GetStore(t *testing.T) {
	mockRepo := new(MockStoreRepository)
	storeService := services.NewStoreService(mockRepo, new(MockImageStore), nil)

	mockRepo.On("GetByUserID", "user-1").
		Return(&models.Store{ID: "store-1", Slug: "loja-a"}, nil).Once()
	mockRepo.On("CountProducts", "store-1").Return(int64(7), nil).Once()

	store, err := storeService.GetStore("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), store.ProductCount)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByUserID", "user-2").Return(nil, notFoundErr("store")).Once()
	_, err = storeService.GetStore("user-2")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
