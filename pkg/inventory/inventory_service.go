package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pantryfit-backend/domain"
	"pantryfit-backend/entities"
)

const expiryDateLayout = "2006-01-02"

type (
	InventoryService interface {
		AddInventoryItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string) (domain.InventoryItemResponse, error)
		GetInventoryItems(ctx context.Context, userID string, page, limit int) ([]domain.InventoryItemResponse, int64, error)
		GetInventoryItemByID(ctx context.Context, id string, userID string) (domain.InventoryItemResponse, error)
		UpdateInventoryItem(ctx context.Context, id string, req domain.UpdateInventoryItemRequest, userID string) (domain.InventoryItemResponse, error)
		DeleteInventoryItem(ctx context.Context, id string, userID string) error
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
	}
)

func NewInventoryService(inventoryRepository InventoryRepository) InventoryService {
	return &inventoryService{
		inventoryRepository: inventoryRepository,
	}
}

func (s *inventoryService) AddInventoryItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string) (domain.InventoryItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.InventoryItemResponse{}, domain.ErrParseUUID
	}

	if req.Quantity < 0 {
		return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
	}

	expiryDate, err := ParseExpiryDate(req.ExpiryDate)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	item := &entities.InventoryItem{
		ID:                 uuid.New(),
		UserID:             userUUID,
		Name:               req.Name,
		Quantity:           req.Quantity,
		CaloriesPerServing: req.CaloriesPerServing,
		ProteinGPerServing: req.ProteinGPerServing,
		CarbsGPerServing:   req.CarbsGPerServing,
		FatsGPerServing:    req.FatsGPerServing,
		ServingSizeUnit:    req.ServingSizeUnit,
		ExpiryDate:         expiryDate,
		Source:             "manual",
	}

	if err := s.inventoryRepository.AddInventoryItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	return ToInventoryItemResponse(item), nil
}

func (s *inventoryService) GetInventoryItems(ctx context.Context, userID string, page, limit int) ([]domain.InventoryItemResponse, int64, error) {
	items, count, err := s.inventoryRepository.GetInventoryItems(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, ToInventoryItemResponse(item))
	}

	return response, count, nil
}

func (s *inventoryService) GetInventoryItemByID(ctx context.Context, id string, userID string) (domain.InventoryItemResponse, error) {
	item, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return ToInventoryItemResponse(item), nil
}

func (s *inventoryService) UpdateInventoryItem(ctx context.Context, id string, req domain.UpdateInventoryItemRequest, userID string) (domain.InventoryItemResponse, error) {
	item, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}
	if req.CaloriesPerServing != nil {
		item.CaloriesPerServing = req.CaloriesPerServing
	}
	if req.ProteinGPerServing != nil {
		item.ProteinGPerServing = req.ProteinGPerServing
	}
	if req.CarbsGPerServing != nil {
		item.CarbsGPerServing = req.CarbsGPerServing
	}
	if req.FatsGPerServing != nil {
		item.FatsGPerServing = req.FatsGPerServing
	}
	if req.ServingSizeUnit != "" {
		item.ServingSizeUnit = req.ServingSizeUnit
	}
	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse(expiryDateLayout, req.ExpiryDate)
		if err != nil {
			return domain.InventoryItemResponse{}, domain.ErrInvalidExpiryDate
		}
		item.ExpiryDate = &expiryDate
	}

	if err := s.inventoryRepository.UpdateInventoryItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	return ToInventoryItemResponse(item), nil
}

func (s *inventoryService) DeleteInventoryItem(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwnedItem(ctx, id, userID); err != nil {
		return err
	}
	return s.inventoryRepository.DeleteInventoryItem(ctx, id)
}

// getOwnedItem applies the ownership policy shared with the upload
// endpoints: unknown id is 404, foreign owner is 403.
func (s *inventoryService) getOwnedItem(ctx context.Context, id string, userID string) (*entities.InventoryItem, error) {
	item, err := s.inventoryRepository.GetInventoryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}
	if item.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return item, nil
}

// ParseExpiryDate parses an optional "YYYY-MM-DD" string and rejects dates
// before today; new stock never enters the pantry already expired.
func ParseExpiryDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	expiryDate, err := time.Parse(expiryDateLayout, value)
	if err != nil {
		return nil, domain.ErrInvalidExpiryDate
	}
	// Compare calendar dates; truncating a UTC instant shifts "today" for
	// anyone behind UTC near midnight.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if expiryDate.Before(today) {
		return nil, domain.ErrExpiryDateInPast
	}
	return &expiryDate, nil
}

func ToInventoryItemResponse(item *entities.InventoryItem) domain.InventoryItemResponse {
	return domain.InventoryItemResponse{
		ID:                 item.ID.String(),
		Name:               item.Name,
		Quantity:           item.Quantity,
		CaloriesPerServing: item.CaloriesPerServing,
		ProteinGPerServing: item.ProteinGPerServing,
		CarbsGPerServing:   item.CarbsGPerServing,
		FatsGPerServing:    item.FatsGPerServing,
		ServingSizeUnit:    item.ServingSizeUnit,
		ExpiryDate:         item.ExpiryDate,
		Source:             item.Source,
		AddedAt:            item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}
