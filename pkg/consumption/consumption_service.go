package consumption

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pantryfit-backend/domain"
	"pantryfit-backend/entities"
	"pantryfit-backend/pkg/inventory"
)

type (
	ConsumptionService interface {
		LogConsumption(ctx context.Context, req domain.LogConsumptionRequest, userID string) (domain.ConsumptionLogResponse, error)
		GetConsumptionLogs(ctx context.Context, userID string, page, limit int) ([]domain.ConsumptionLogResponse, int64, error)
	}

	consumptionService struct {
		consumptionRepository ConsumptionRepository
		inventoryRepository   inventory.InventoryRepository
	}
)

func NewConsumptionService(consumptionRepository ConsumptionRepository, inventoryRepository inventory.InventoryRepository) ConsumptionService {
	return &consumptionService{
		consumptionRepository: consumptionRepository,
		inventoryRepository:   inventoryRepository,
	}
}

func (s *consumptionService) LogConsumption(ctx context.Context, req domain.LogConsumptionRequest, userID string) (domain.ConsumptionLogResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ConsumptionLogResponse{}, domain.ErrParseUUID
	}

	item, err := s.inventoryRepository.GetInventoryItemByID(ctx, req.InventoryItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ConsumptionLogResponse{}, domain.ErrInventoryItemNotFound
		}
		return domain.ConsumptionLogResponse{}, err
	}
	if item.UserID.String() != userID {
		return domain.ConsumptionLogResponse{}, domain.ErrUnauthorizedAccess
	}

	// The inventory quantity never goes below zero.
	if req.QuantityConsumed > item.Quantity {
		return domain.ConsumptionLogResponse{}, domain.ErrInsufficientQuantity
	}

	itemID := item.ID
	log := &entities.ConsumptionLog{
		ID:               uuid.New(),
		UserID:           userUUID,
		InventoryItemID:  &itemID,
		ItemName:         item.Name,
		QuantityConsumed: req.QuantityConsumed,
		CaloriesConsumed: perServing(item.CaloriesPerServing) * req.QuantityConsumed,
		ProteinConsumedG: perServing(item.ProteinGPerServing) * req.QuantityConsumed,
		CarbsConsumedG:   perServing(item.CarbsGPerServing) * req.QuantityConsumed,
		FatsConsumedG:    perServing(item.FatsGPerServing) * req.QuantityConsumed,
		ConsumedAt:       time.Now(),
	}

	item.Quantity -= req.QuantityConsumed
	if err := s.consumptionRepository.RecordConsumption(ctx, log, item); err != nil {
		return domain.ConsumptionLogResponse{}, err
	}

	return toConsumptionLogResponse(log), nil
}

func (s *consumptionService) GetConsumptionLogs(ctx context.Context, userID string, page, limit int) ([]domain.ConsumptionLogResponse, int64, error) {
	logs, count, err := s.consumptionRepository.GetConsumptionLogs(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.ConsumptionLogResponse, 0, len(logs))
	for _, log := range logs {
		response = append(response, toConsumptionLogResponse(log))
	}

	return response, count, nil
}

func perServing(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func toConsumptionLogResponse(log *entities.ConsumptionLog) domain.ConsumptionLogResponse {
	res := domain.ConsumptionLogResponse{
		ID:               log.ID.String(),
		ItemName:         log.ItemName,
		QuantityConsumed: log.QuantityConsumed,
		CaloriesConsumed: log.CaloriesConsumed,
		ProteinConsumedG: log.ProteinConsumedG,
		CarbsConsumedG:   log.CarbsConsumedG,
		FatsConsumedG:    log.FatsConsumedG,
		ConsumedAt:       log.ConsumedAt,
	}
	if log.InventoryItemID != nil {
		res.InventoryItemID = log.InventoryItemID.String()
	}
	return res
}
