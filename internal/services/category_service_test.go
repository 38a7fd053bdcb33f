package services_test

import (
	"testing"

	"catalogo/internal/models"
	"catalogo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	mockCategories := new(MockCategoryRepository)
	mockStores := new(MockStoreRepository)
	categoryService := services.NewCategoryService(mockCategories, mockStores)

	store := &models.Store{ID: "store-1", UserID: "user-1"}

	// Free name: created in the user's store.
	mockStores.On("GetByUserID", "user-1").Return(store, nil).Once()
	mockCategories.On("FindByName", "store-1", "Doces", "").Return(nil, notFoundErr("category")).Once()
	mockCategories.On("Create", mock.AnythingOfType("*models.Category")).Return(nil).Once()

	category, err := categoryService.CreateCategory("user-1", "Doces")
	assert.NoError(t, err)
	assert.Equal(t, "store-1", category.StoreID)
	mockCategories.AssertExpectations(t)

	// A case-insensitive hit in the same store is a conflict. The repository
	// does the case folding; the service only needs a hit.
	mockStores.On("GetByUserID", "user-1").Return(store, nil).Once()
	mockCategories.On("FindByName", "store-1", "doces", "").
		Return(&models.Category{ID: "cat-1", Name: "Doces"}, nil).Once()

	_, err = categoryService.CreateCategory("user-1", "doces")
	assert.ErrorIs(t, err, services.ErrConflict)
	mockCategories.AssertExpectations(t)

	// Empty name is a validation error before anything is looked up.
	_, err = categoryService.CreateCategory("user-1", "")
	assert.ErrorIs(t, err, services.ErrValidation)

	// No store: not-found.
	mockStores.On("GetByUserID", "user-9").Return(nil, notFoundErr("store")).Once()
	_, err = categoryService.CreateCategory("user-9", "Doces")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockStores.AssertExpectations(t)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	mockCategories := new(MockCategoryRepository)
	mockStores := new(MockStoreRepository)
	categoryService := services.NewCategoryService(mockCategories, mockStores)

	store := &models.Store{ID: "store-1", UserID: "user-1"}
	category := &models.Category{ID: "cat-1", Name: "Doces", StoreID: "store-1"}

	// Renaming excludes the category's own row from the collision check, so
	// re-submitting the current name succeeds.
	mockStores.On("GetByUserID", "user-1").Return(store, nil).Once()
	mockCategories.On("GetByID", "cat-1", "store-1").Return(category, nil).Once()
	mockCategories.On("FindByName", "store-1", "Doces", "cat-1").Return(nil, notFoundErr("category")).Once()
	mockCategories.On("Update", mock.AnythingOfType("*models.Category")).Return(nil).Once()

	updated, err := categoryService.UpdateCategory("user-1", "cat-1", "Doces")
	assert.NoError(t, err)
	assert.Equal(t, "Doces", updated.Name)
	mockCategories.AssertExpectations(t)

	// A category belonging to someone else's store is simply not found.
	mockStores.On("GetByUserID", "user-1").Return(store, nil).Once()
	mockCategories.On("GetByID", "cat-other", "store-1").Return(nil, notFoundErr("category")).Once()

	_, err = categoryService.UpdateCategory("user-1", "cat-other", "Salgados")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockCategories.AssertExpectations(t)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	mockCategories := new(MockCategoryRepository)
	mockStores := new(MockStoreRepository)
	categoryService := services.NewCategoryService(mockCategories, mockStores)

	store := &models.Store{ID: "store-1", UserID: "user-1"}

	mockStores.On("GetByUserID", "user-1").Return(store, nil).Once()
	mockCategories.On("GetByID", "cat-1", "store-1").
		Return(&models.Category{ID: "cat-1", StoreID: "store-1"}, nil).Once()
	mockCategories.On("Delete", "cat-1").Return(nil).Once()

	assert.NoError(t, categoryService.DeleteCategory("user-1", "cat-1"))
	mockCategories.AssertExpectations(t)

	// Cross-tenant delete attempt: not-found, and Delete is never reached.
	mockStores.On("GetByUserID", "user-2").Return(&models.Store{ID: "store-2"}, nil).Once()
	mockCategories.On("GetByID", "cat-1", "store-2").Return(nil, notFoundErr("category")).Once()

	err := categoryService.DeleteCategory("user-2", "cat-1")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockCategories.AssertNumberOfCalls(t, "Delete", 1)
	mockCategories.AssertExpectations(t)
}

func TestCategoryService_ListCategories(t *testing.T) {
	mockCategories := new(MockCategoryRepository)
	mockStores := new(MockStoreRepository)
	categoryService := services.NewCategoryService(mockCategories, mockStores)

	mockStores.On("GetByUserID", "user-1").Return(&models.Store{ID: "store-1"}, nil).Once()
	mockCategories.On("ListByStore", "store-1").Return([]models.Category{
		{ID: "cat-1", Name: "Doces", ProductCount: 3},
		{ID: "cat-2", Name: "Salgados", ProductCount: 0},
	}, nil).Once()

	categories, err := categoryService.ListCategories("user-1")
	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, int64(3), categories[0].ProductCount)
	mockCategories.AssertExpectations(t)
}
