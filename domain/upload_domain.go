package domain

import (
	"errors"
	"time"

	"pantryfit-backend/entities"
)

var (
	MessageSuccessUploadImage      = "image uploaded successfully"
	MessageSuccessGetImageStatus   = "image status retrieved successfully"
	MessageSuccessReviewDetections = "detection review saved successfully"
	MessageSuccessCreateFromImage  = "inventory items created from detections"

	MessageFailedUploadImage      = "failed to upload image"
	MessageFailedGetImageStatus   = "failed to retrieve image status"
	MessageFailedReviewDetections = "failed to save detection review"
	MessageFailedCreateFromImage  = "failed to create inventory from detections"

	ErrFileTooLarge         = errors.New("file too large (max 10MB)")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrImageUploadNotFound  = errors.New("image upload not found")
)

type (
	// UploadImageRequest carries the already-read multipart file. The handler
	// reads the bytes so the service never touches fiber types.
	UploadImageRequest struct {
		FileBytes   []byte
		Filename    string
		ContentType string
	}

	ReviewedObjectRequest struct {
		ObjectName string    `json:"object_name" validate:"required"`
		Quantity   int       `json:"quantity" validate:"min=0"`
		Confidence float64   `json:"confidence" validate:"min=0,max=1"`
		BBox       []float64 `json:"bbox" validate:"required,len=4"`
	}

	ReviewDetectionsRequest struct {
		ReviewedResults []ReviewedObjectRequest `json:"reviewed_results" validate:"required,dive"`
	}

	// InventoryFromDetectionRequest is the typed commit payload, distinct from
	// the manual AddInventoryItemRequest on purpose.
	InventoryFromDetectionRequest struct {
		Name               string   `json:"name" validate:"required"`
		Quantity           float64  `json:"quantity" validate:"min=0"`
		CaloriesPerServing *float64 `json:"calories_per_serving" validate:"omitempty,min=0"`
		ProteinGPerServing *float64 `json:"protein_g_per_serving" validate:"omitempty,min=0"`
		CarbsGPerServing   *float64 `json:"carbs_g_per_serving" validate:"omitempty,min=0"`
		FatsGPerServing    *float64 `json:"fats_g_per_serving" validate:"omitempty,min=0"`
		ServingSizeUnit    string   `json:"serving_size_unit"`
		ExpiryDate         string   `json:"expiry_date" validate:"omitempty"`
		Source             string   `json:"source"`
	}

	CreateFromDetectionsRequest struct {
		Items []InventoryFromDetectionRequest `json:"items" validate:"required,min=1,dive"`
	}

	ImageUploadResponse struct {
		ID               string                      `json:"id"`
		UserID           string                      `json:"user_id"`
		StorageKey       string                      `json:"storage_key"`
		Status           string                      `json:"status"`
		DetectionResults entities.DetectedObjectList `json:"detection_results"`
		ReviewedResults  entities.DetectedObjectList `json:"reviewed_results"`
		ErrorMessage     string                      `json:"error_message,omitempty"`
		CreatedAt        time.Time                   `json:"created_at"`
		UpdatedAt        time.Time                   `json:"updated_at"`
	}
)
