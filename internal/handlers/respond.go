package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"catalogo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondSuccess writes the uniform success envelope.
func respondSuccess(c *fiber.Ctx, status int, message string, data fiber.Map) error {
	payload := fiber.Map{"status": "success"}
	if message != "" {
		payload["message"] = message
	}
	if data != nil {
		payload["data"] = data
	}
	return c.Status(status).JSON(payload)
}

// respondError translates the service error taxonomy into HTTP statuses.
// Validation and conflict map to 400, unauthorized to 401, not-found to 404.
// Anything else is an internal error: the cause is logged here and the client
// gets a generic message.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrTokenExpired),
		errors.Is(err, services.ErrTokenInvalid),
		errors.Is(err, services.ErrUnknownUser):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": err.Error(),
	})
}

// respondBadBody answers a request whose body could not be parsed.
func respondBadBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body for %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": "Invalid request body",
	})
}

// respondValidation answers a request whose fields failed struct validation,
// listing the offending fields.
func respondValidation(c *fiber.Ctx, err error) error {
	fields := fiber.Map{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fields[e.Field()] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": "Validation failed",
		"data":    fields,
	})
}

// imageFromRequest extracts an optional "image" multipart file, rejecting
// non-image content types and files above maxBytes before anything is stored.
// The returned closer must be called after the service has consumed the
// reader. A request without a file yields a nil upload.
func imageFromRequest(c *fiber.Ctx, maxBytes int64) (*services.ImageUpload, func(), error) {
	noop := func() {}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// Not a multipart request, or no image attached.
		return nil, noop, nil
	}
	if fileHeader.Size > maxBytes {
		return nil, noop, fmt.Errorf("image exceeds the %d byte limit: %w", maxBytes, services.ErrValidation)
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return nil, noop, fmt.Errorf("only image uploads are allowed: %w", services.ErrValidation)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	upload := &services.ImageUpload{
		Filename: fileHeader.Filename,
		Reader:   file,
	}
	return upload, func() { file.Close() }, nil
}
