package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddInventoryItem    = "inventory item added successfully"
	MessageSuccessUpdateInventoryItem = "inventory item updated successfully"
	MessageSuccessDeleteInventoryItem = "inventory item deleted successfully"
	MessageSuccessGetInventoryItems   = "inventory items retrieved successfully"

	MessageFailedAddInventoryItem    = "failed to add inventory item"
	MessageFailedUpdateInventoryItem = "failed to update inventory item"
	MessageFailedDeleteInventoryItem = "failed to delete inventory item"
	MessageFailedGetInventoryItems   = "failed to retrieve inventory items"

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInvalidExpiryDate     = errors.New("invalid expiry date")
	ErrExpiryDateInPast      = errors.New("expiry date must not be in the past")
	ErrInvalidQuantity       = errors.New("quantity must not be negative")
	ErrUnauthorizedAccess    = errors.New("unauthorized access to resource")
)

type (
	AddInventoryItemRequest struct {
		Name               string   `json:"name" validate:"required"`
		Quantity           float64  `json:"quantity" validate:"min=0"`
		CaloriesPerServing *float64 `json:"calories_per_serving" validate:"omitempty,min=0"`
		ProteinGPerServing *float64 `json:"protein_g_per_serving" validate:"omitempty,min=0"`
		CarbsGPerServing   *float64 `json:"carbs_g_per_serving" validate:"omitempty,min=0"`
		FatsGPerServing    *float64 `json:"fats_g_per_serving" validate:"omitempty,min=0"`
		ServingSizeUnit    string   `json:"serving_size_unit"`
		ExpiryDate         string   `json:"expiry_date" validate:"omitempty"`
	}

	UpdateInventoryItemRequest struct {
		Name               string   `json:"name" validate:"omitempty"`
		Quantity           *float64 `json:"quantity" validate:"omitempty,min=0"`
		CaloriesPerServing *float64 `json:"calories_per_serving" validate:"omitempty,min=0"`
		ProteinGPerServing *float64 `json:"protein_g_per_serving" validate:"omitempty,min=0"`
		CarbsGPerServing   *float64 `json:"carbs_g_per_serving" validate:"omitempty,min=0"`
		FatsGPerServing    *float64 `json:"fats_g_per_serving" validate:"omitempty,min=0"`
		ServingSizeUnit    string   `json:"serving_size_unit" validate:"omitempty"`
		ExpiryDate         string   `json:"expiry_date" validate:"omitempty"`
	}

	InventoryItemResponse struct {
		ID                 string     `json:"id"`
		Name               string     `json:"name"`
		Quantity           float64    `json:"quantity"`
		CaloriesPerServing *float64   `json:"calories_per_serving"`
		ProteinGPerServing *float64   `json:"protein_g_per_serving"`
		CarbsGPerServing   *float64   `json:"carbs_g_per_serving"`
		FatsGPerServing    *float64   `json:"fats_g_per_serving"`
		ServingSizeUnit    string     `json:"serving_size_unit,omitempty"`
		ExpiryDate         *time.Time `json:"expiry_date"`
		Source             string     `json:"source"`
		AddedAt            time.Time  `json:"added_at"`
		UpdatedAt          time.Time  `json:"updated_at"`
	}
)
