package entities

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	Name               string     `json:"name"`
	Quantity           float64    `json:"quantity"`
	CaloriesPerServing *float64   `json:"calories_per_serving,omitempty"`
	ProteinGPerServing *float64   `json:"protein_g_per_serving,omitempty"`
	CarbsGPerServing   *float64   `json:"carbs_g_per_serving,omitempty"`
	FatsGPerServing    *float64   `json:"fats_g_per_serving,omitempty"`
	ServingSizeUnit    string     `json:"serving_size_unit,omitempty"`
	ExpiryDate         *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`
	Source             string     `json:"source"` // "manual", "image"

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
