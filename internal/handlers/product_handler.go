package handlers

import (
	"catalogo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the user's products.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
	maxUploadBytes int64
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers the product routes; the whole group requires auth.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// CreateProductRequest is the request body for product creation. Price is
// textual and validated by the service. The body may be JSON or a multipart
// form carrying an optional "image" file.
type CreateProductRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=1,max=100"`
	Price       string `json:"price" form:"price" validate:"required"`
	Description string `json:"description" form:"description" validate:"omitempty,max=500"`
	CategoryID  string `json:"categoryId" form:"categoryId" validate:"omitempty,uuid"`
}

// UpdateProductRequest is the partial-update body. Absent fields stay nil; an
// empty categoryId clears the product's category.
type UpdateProductRequest struct {
	Name        *string `json:"name" form:"name"`
	Price       *string `json:"price" form:"price"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=500"`
	CategoryID  *string `json:"categoryId" form:"categoryId"`
}

// HandleListProducts answers with the store's products, optionally filtered
// by the categoryId query parameter.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	products, err := h.productService.ListProducts(userID, c.Query("categoryId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{"products": products})
}

// HandleGetProduct answers with one of the store's products.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	product, err := h.productService.GetProduct(userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{"product": product})
}

// HandleCreateProduct creates a product in the user's store.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CreateProductRequest
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

	product, err := h.productService.CreateProduct(userID, services.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Image:       image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusCreated, "Product created successfully", fiber.Map{"product": product})
}

// HandleUpdateProduct applies a partial update to one of the store's
// products.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req UpdateProductRequest
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

	product, err := h.productService.UpdateProduct(userID, c.Params("id"), services.ProductUpdate{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Image:       image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "Product updated successfully", fiber.Map{"product": product})
}

// HandleDeleteProduct removes one of the store's products.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	if err := h.productService.DeleteProduct(userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "Product deleted successfully", nil)
}
