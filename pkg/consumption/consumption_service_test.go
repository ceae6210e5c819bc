package consumption

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pantryfit-backend/domain"
	"pantryfit-backend/entities"
)

// memoryConsumptionRepository persists the log and the item together or not
// at all, mirroring the transactional repository.
type memoryConsumptionRepository struct {
	inventory *memoryInventoryRepository
	logs      []*entities.ConsumptionLog
	recordErr error
}

func (r *memoryConsumptionRepository) RecordConsumption(_ context.Context, log *entities.ConsumptionLog, item *entities.InventoryItem) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.logs = append(r.logs, log)
	stored := *item
	r.inventory.items[item.ID.String()] = &stored
	return nil
}

func (r *memoryConsumptionRepository) GetConsumptionLogs(_ context.Context, userID string, _, _ int) ([]*entities.ConsumptionLog, int64, error) {
	var owned []*entities.ConsumptionLog
	for _, log := range r.logs {
		if log.UserID.String() == userID {
			owned = append(owned, log)
		}
	}
	return owned, int64(len(owned)), nil
}

type memoryInventoryRepository struct {
	items map[string]*entities.InventoryItem
}

func (r *memoryInventoryRepository) AddInventoryItem(_ context.Context, item *entities.InventoryItem) error {
	r.items[item.ID.String()] = item
	return nil
}

func (r *memoryInventoryRepository) AddInventoryItems(_ context.Context, items []*entities.InventoryItem) error {
	for _, item := range items {
		r.items[item.ID.String()] = item
	}
	return nil
}

func (r *memoryInventoryRepository) GetInventoryItemByID(_ context.Context, id string) (*entities.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *memoryInventoryRepository) GetInventoryItems(_ context.Context, userID string, _, _ int) ([]*entities.InventoryItem, int64, error) {
	return nil, 0, nil
}

func (r *memoryInventoryRepository) UpdateInventoryItem(_ context.Context, item *entities.InventoryItem) error {
	r.items[item.ID.String()] = item
	return nil
}

func (r *memoryInventoryRepository) DeleteInventoryItem(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memoryInventoryRepository) quantity(t *testing.T, id string) float64 {
	t.Helper()
	item, ok := r.items[id]
	require.True(t, ok)
	return item.Quantity
}

func seedItem(owner uuid.UUID, quantity float64) (*memoryInventoryRepository, *entities.InventoryItem) {
	calories := 100.0
	protein := 5.0
	item := &entities.InventoryItem{
		ID:                 uuid.New(),
		UserID:             owner,
		Name:               "yogurt",
		Quantity:           quantity,
		CaloriesPerServing: &calories,
		ProteinGPerServing: &protein,
	}
	repo := &memoryInventoryRepository{items: map[string]*entities.InventoryItem{item.ID.String(): item}}
	return repo, item
}

func TestLogConsumption(t *testing.T) {
	owner := uuid.New()
	inventoryRepo, item := seedItem(owner, 4)
	consumptionRepo := &memoryConsumptionRepository{inventory: inventoryRepo}
	service := NewConsumptionService(consumptionRepo, inventoryRepo)

	res, err := service.LogConsumption(context.Background(), domain.LogConsumptionRequest{
		InventoryItemID:  item.ID.String(),
		QuantityConsumed: 2,
	}, owner.String())
	require.NoError(t, err)

	assert.Equal(t, "yogurt", res.ItemName)
	assert.Equal(t, 2.0, res.QuantityConsumed)
	assert.Equal(t, 200.0, res.CaloriesConsumed, "nutrition scales with servings consumed")
	assert.Equal(t, 10.0, res.ProteinConsumedG)
	assert.Equal(t, 0.0, res.CarbsConsumedG, "missing nutrition counts as zero")

	assert.Equal(t, 2.0, inventoryRepo.quantity(t, item.ID.String()), "inventory is decremented")
	require.Len(t, consumptionRepo.logs, 1)
}

func TestLogConsumptionRejectsOverdraw(t *testing.T) {
	owner := uuid.New()
	inventoryRepo, item := seedItem(owner, 1)
	consumptionRepo := &memoryConsumptionRepository{inventory: inventoryRepo}
	service := NewConsumptionService(consumptionRepo, inventoryRepo)

	_, err := service.LogConsumption(context.Background(), domain.LogConsumptionRequest{
		InventoryItemID:  item.ID.String(),
		QuantityConsumed: 3,
	}, owner.String())
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	assert.Equal(t, 1.0, inventoryRepo.quantity(t, item.ID.String()), "a rejected consumption changes nothing")
	assert.Empty(t, consumptionRepo.logs)
}

func TestLogConsumptionWriteFailureLeavesNothingBehind(t *testing.T) {
	owner := uuid.New()
	inventoryRepo, item := seedItem(owner, 4)
	consumptionRepo := &memoryConsumptionRepository{
		inventory: inventoryRepo,
		recordErr: errors.New("connection reset"),
	}
	service := NewConsumptionService(consumptionRepo, inventoryRepo)

	_, err := service.LogConsumption(context.Background(), domain.LogConsumptionRequest{
		InventoryItemID:  item.ID.String(),
		QuantityConsumed: 2,
	}, owner.String())
	require.Error(t, err)

	assert.Empty(t, consumptionRepo.logs, "a failed write leaves no log row")
	assert.Equal(t, 4.0, inventoryRepo.quantity(t, item.ID.String()), "a failed write leaves the quantity untouched")
}

func TestLogConsumptionOwnership(t *testing.T) {
	owner := uuid.New()
	inventoryRepo, item := seedItem(owner, 4)
	service := NewConsumptionService(&memoryConsumptionRepository{inventory: inventoryRepo}, inventoryRepo)

	_, err := service.LogConsumption(context.Background(), domain.LogConsumptionRequest{
		InventoryItemID:  uuid.New().String(),
		QuantityConsumed: 1,
	}, owner.String())
	assert.ErrorIs(t, err, domain.ErrInventoryItemNotFound)

	_, err = service.LogConsumption(context.Background(), domain.LogConsumptionRequest{
		InventoryItemID:  item.ID.String(),
		QuantityConsumed: 1,
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}
