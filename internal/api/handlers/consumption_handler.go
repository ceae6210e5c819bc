package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pantryfit-backend/domain"
	"pantryfit-backend/internal/api/presenters"
	"pantryfit-backend/pkg/consumption"
)

type (
	ConsumptionHandler interface {
		LogConsumption(c *fiber.Ctx) error
		GetConsumptionLogs(c *fiber.Ctx) error
	}

	consumptionHandler struct {
		consumptionService consumption.ConsumptionService
		validator          *validator.Validate
	}
)

func NewConsumptionHandler(consumptionService consumption.ConsumptionService, validator *validator.Validate) ConsumptionHandler {
	return &consumptionHandler{
		consumptionService: consumptionService,
		validator:          validator,
	}
}

func (h *consumptionHandler) LogConsumption(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.LogConsumptionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedLogConsumption, err)
	}

	res, err := h.consumptionService.LogConsumption(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedLogConsumption, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessLogConsumption)
}

func (h *consumptionHandler) GetConsumptionLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	logs, total, err := h.consumptionService.GetConsumptionLogs(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetConsumptions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	}, fiber.StatusOK, domain.MessageSuccessGetConsumptions)
}
