package handlers

import (
	"catalogo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler handles the unauthenticated storefront routes, all scoped by
// the store's public slug.
type PublicHandler struct {
	publicService *services.PublicService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(publicService *services.PublicService) *PublicHandler {
	return &PublicHandler{
		publicService: publicService,
	}
}

// RegisterRoutes registers the public routes. No auth middleware here.
func (h *PublicHandler) RegisterRoutes(router fiber.Router) {
	publicRoutes := router.Group("/public")
	publicRoutes.Get("/stores/:slug", h.HandleGetStore)
	publicRoutes.Get("/stores/:slug/categories", h.HandleListCategories)
	publicRoutes.Get("/stores/:slug/products", h.HandleListProducts)
	publicRoutes.Get("/stores/:slug/products/:productId", h.HandleGetProduct)
}

// HandleGetStore answers with the store's public profile and records the
// visit as a side effect.
func (h *PublicHandler) HandleGetStore(c *fiber.Ctx) error {
	store, err := h.publicService.GetStoreBySlug(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	// Public profile only; visits and ownership stay private.
	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{
		"store": fiber.Map{
			"id":          store.ID,
			"name":        store.Name,
			"description": store.Description,
			"imageUrl":    store.ImageURL,
			"slug":        store.Slug,
		},
	})
}

// HandleListCategories answers with the store's categories and their product
// counts.
func (h *PublicHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.publicService.ListCategories(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{"categories": categories})
}

// HandleListProducts answers with the store's products, optionally filtered
// by the categoryId query parameter.
func (h *PublicHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.publicService.ListProducts(c.Params("slug"), c.Query("categoryId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{"products": products})
}

// HandleGetProduct answers with one product of the store behind the slug.
func (h *PublicHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.publicService.GetProduct(c.Params("slug"), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{"product": product})
}
