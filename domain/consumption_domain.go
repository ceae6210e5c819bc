package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessLogConsumption  = "consumption logged successfully"
	MessageSuccessGetConsumptions = "consumption logs retrieved successfully"

	MessageFailedLogConsumption  = "failed to log consumption"
	MessageFailedGetConsumptions = "failed to retrieve consumption logs"

	ErrInsufficientQuantity = errors.New("quantity consumed exceeds available quantity")
)

type (
	LogConsumptionRequest struct {
		InventoryItemID  string  `json:"inventory_item_id" validate:"required,uuid"`
		QuantityConsumed float64 `json:"quantity_consumed" validate:"required,gt=0"`
	}

	ConsumptionLogResponse struct {
		ID               string    `json:"id"`
		InventoryItemID  string    `json:"inventory_item_id,omitempty"`
		ItemName         string    `json:"item_name"`
		QuantityConsumed float64   `json:"quantity_consumed"`
		CaloriesConsumed float64   `json:"calories_consumed"`
		ProteinConsumedG float64   `json:"protein_consumed_g"`
		CarbsConsumedG   float64   `json:"carbs_consumed_g"`
		FatsConsumedG    float64   `json:"fats_consumed_g"`
		ConsumedAt       time.Time `json:"consumed_at"`
	}
)
