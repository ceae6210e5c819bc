package inventory

import (
	"context"

	"gorm.io/gorm"

	"pantryfit-backend/entities"
)

type (
	InventoryRepository interface {
		AddInventoryItem(ctx context.Context, item *entities.InventoryItem) error
		AddInventoryItems(ctx context.Context, items []*entities.InventoryItem) error
		GetInventoryItemByID(ctx context.Context, id string) (*entities.InventoryItem, error)
		GetInventoryItems(ctx context.Context, userID string, page, limit int) ([]*entities.InventoryItem, int64, error)
		UpdateInventoryItem(ctx context.Context, item *entities.InventoryItem) error
		DeleteInventoryItem(ctx context.Context, id string) error
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) AddInventoryItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// AddInventoryItems inserts the whole batch inside one transaction: either
// every item lands or none do.
func (r *inventoryRepository) AddInventoryItems(ctx context.Context, items []*entities.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
}

func (r *inventoryRepository) GetInventoryItemByID(ctx context.Context, id string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) GetInventoryItems(ctx context.Context, userID string, page, limit int) ([]*entities.InventoryItem, int64, error) {
	var items []*entities.InventoryItem
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.InventoryItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *inventoryRepository) UpdateInventoryItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) DeleteInventoryItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.InventoryItem{}).Error
}
