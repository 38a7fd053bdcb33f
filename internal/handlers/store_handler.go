package handlers

import (
	"catalogo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for the authenticated user's store.
type StoreHandler struct {
	storeService   *services.StoreService
	validate       *validator.Validate
	maxUploadBytes int64
}

// NewStoreHandler creates a new StoreHandler. The upload cap is passed in
// explicitly rather than read from the environment here.
func NewStoreHandler(storeService *services.StoreService, maxUploadBytes int64) *StoreHandler {
	return &StoreHandler{
		storeService:   storeService,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers the store routes; the whole group requires auth.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", h.HandleGetStore)
	storeRoutes.Post("/", h.HandleCreateStore)
	storeRoutes.Put("/", h.HandleUpdateStore)
}

// CreateStoreRequest is the request body for store creation. The body may be
// JSON or a multipart form carrying an optional "image" file.
type CreateStoreRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" form:"description" validate:"omitempty,max=500"`
}

// UpdateStoreRequest is the partial-update body. Absent fields stay nil and
// leave the store untouched.
type UpdateStoreRequest struct {
	Name        *string `json:"name" form:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=500"`
}

// HandleGetStore answers with the user's store and its product count.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	store, err := h.storeService.GetStore(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{"store": store})
}

// HandleCreateStore creates the user's store with a slug derived from its
// name.
func (h *StoreHandler) HandleCreateStore(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	image, closeImage, err := imageFromRequest(c, h.maxUploadBytes)
	if err != nil {
		return respondError(c, err)
	}
	defer closeImage()

	store, err := h.storeService.CreateStore(userID, req.Name, req.Description, image)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusCreated, "Store created successfully", fiber.Map{"store": store})
}

// HandleUpdateStore applies a partial update to the user's store.
func (h *StoreHandler) HandleUpdateStore(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	image, closeImage, err := imageFromRequest(c, h.maxUploadBytes)
	if err != nil {
		return respondError(c, err)
	}
	defer closeImage()

	store, err := h.storeService.UpdateStore(userID, req.Name, req.Description, image)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "Store updated successfully", fiber.Map{"store": store})
}
