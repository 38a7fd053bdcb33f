package handlers

import (
	"catalogo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for the user's categories.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the category routes; the whole group requires auth.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// CategoryRequest is the request body for category create and update.
type CategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required,min=1,max=100"`
}

// HandleListCategories answers with the store's categories and their product
// counts, ordered by name.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{"categories": categories})
}

// HandleCreateCategory creates a category in the user's store.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusCreated, "Category created successfully", fiber.Map{"category": category})
}

// HandleUpdateCategory renames a category in the user's store.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category, err := h.categoryService.UpdateCategory(userID, c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "Category updated successfully", fiber.Map{"category": category})
}

// HandleDeleteCategory removes a category; its products survive with the
// category reference cleared.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	if err := h.categoryService.DeleteCategory(userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "Category deleted successfully", nil)
}
