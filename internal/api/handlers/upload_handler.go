package handlers

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pantryfit-backend/domain"
	"pantryfit-backend/internal/api/presenters"
	"pantryfit-backend/pkg/upload"
)

type (
	UploadHandler interface {
		UploadImage(c *fiber.Ctx) error
		GetImageStatus(c *fiber.Ctx) error
		ReviewDetections(c *fiber.Ctx) error
		CreateFromDetections(c *fiber.Ctx) error
	}

	uploadHandler struct {
		uploadService upload.UploadService
		validator     *validator.Validate
	}
)

func NewUploadHandler(uploadService upload.UploadService, validator *validator.Validate) UploadHandler {
	return &uploadHandler{
		uploadService: uploadService,
		validator:     validator,
	}
}

func (h *uploadHandler) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadImageRequest{
		FileBytes:   fileBytes,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	res, err := h.uploadService.UploadImage(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadImage)
}

func (h *uploadHandler) GetImageStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	imageID := c.Params("id")

	res, err := h.uploadService.GetUploadStatus(c.Context(), imageID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetImageStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetImageStatus)
}

func (h *uploadHandler) ReviewDetections(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	imageID := c.Params("id")
	req := new(domain.ReviewDetectionsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedReviewDetections, err)
	}

	res, err := h.uploadService.ReviewDetections(c.Context(), imageID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedReviewDetections, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessReviewDetections)
}

func (h *uploadHandler) CreateFromDetections(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	imageID := c.Params("id")
	req := new(domain.CreateFromDetectionsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedCreateFromImage, err)
	}

	res, err := h.uploadService.CreateFromDetections(c.Context(), imageID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateFromImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCreateFromImage)
}
