package entities

import (
	"time"

	"github.com/google/uuid"
)

type ConsumptionLog struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	InventoryItemID  *uuid.UUID `gorm:"type:uuid" json:"inventory_item_id,omitempty"`
	ItemName         string     `json:"item_name"`
	QuantityConsumed float64    `json:"quantity_consumed"`
	CaloriesConsumed float64    `json:"calories_consumed"`
	ProteinConsumedG float64    `json:"protein_consumed_g"`
	CarbsConsumedG   float64    `json:"carbs_consumed_g"`
	FatsConsumedG    float64    `json:"fats_consumed_g"`
	ConsumedAt       time.Time  `gorm:"type:timestamp" json:"consumed_at"`

	User          *User          `gorm:"foreignKey:UserID" json:"-"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"-"`
}
