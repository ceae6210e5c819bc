package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pantryfit-backend/domain"
)

// statusForError maps service errors onto HTTP statuses. Unknown ids are
// 404 and foreign owners 403 on every surface; payload problems caught
// past body parsing are 422.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrImageUploadNotFound),
		errors.Is(err, domain.ErrInventoryItemNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrUnsupportedExtension),
		errors.Is(err, domain.ErrUnsupportedFileType),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrExpiryDateInPast),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInsufficientQuantity):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
