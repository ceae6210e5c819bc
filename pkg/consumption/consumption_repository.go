package consumption

import (
	"context"

	"gorm.io/gorm"

	"pantryfit-backend/entities"
)

type (
	ConsumptionRepository interface {
		RecordConsumption(ctx context.Context, log *entities.ConsumptionLog, item *entities.InventoryItem) error
		GetConsumptionLogs(ctx context.Context, userID string, page, limit int) ([]*entities.ConsumptionLog, int64, error)
	}

	consumptionRepository struct {
		db *gorm.DB
	}
)

func NewConsumptionRepository(db *gorm.DB) ConsumptionRepository {
	return &consumptionRepository{db: db}
}

// RecordConsumption writes the log row and the decremented item in one
// transaction: a log row never survives without its decrement.
func (r *consumptionRepository) RecordConsumption(ctx context.Context, log *entities.ConsumptionLog, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		return tx.Save(item).Error
	})
}

func (r *consumptionRepository) GetConsumptionLogs(ctx context.Context, userID string, page, limit int) ([]*entities.ConsumptionLog, int64, error) {
	var logs []*entities.ConsumptionLog
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.ConsumptionLog{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("consumed_at desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, count, nil
}
