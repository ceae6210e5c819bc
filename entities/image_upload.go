package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	UploadStatusPending    = "pending"
	UploadStatusProcessing = "processing"
	UploadStatusComplete   = "complete"
	UploadStatusFailed     = "failed"
)

// ImageUpload tracks one uploaded image through the detection lifecycle.
// DetectionResults is written once by the background detection task,
// ReviewedResults by the review endpoint. Both stay NULL until then.
type ImageUpload struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID          `json:"user_id"`
	StorageKey       string             `json:"storage_key"`
	Status           string             `json:"status"` // "pending", "processing", "complete", "failed"
	DetectionResults DetectedObjectList `gorm:"type:jsonb" json:"detection_results"`
	ReviewedResults  DetectedObjectList `gorm:"type:jsonb" json:"reviewed_results"`
	ErrorMessage     string             `json:"error_message,omitempty" gorm:"type:text"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type DetectedObject struct {
	ObjectName string    `json:"object_name"`
	Quantity   int       `json:"quantity"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

type DetectedObjectList []DetectedObject

func (l DetectedObjectList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *DetectedObjectList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for DetectedObjectList: %T", src)
	}
}

// DetectionResult is the per-object row kept alongside the JSONB snapshot
// on ImageUpload, one row per detected object.
type DetectionResult struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ImageUploadID uuid.UUID    `json:"image_upload_id"`
	ObjectName    string       `json:"object_name"`
	Quantity      int          `json:"quantity"`
	Confidence    float64      `json:"confidence"`
	BBox          BoundingBox  `gorm:"type:jsonb" json:"bbox"`
	ImageUpload   *ImageUpload `gorm:"foreignKey:ImageUploadID" json:"-"`

	Timestamp
}

type BoundingBox []float64

func (b BoundingBox) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

func (b *BoundingBox) Scan(src interface{}) error {
	if src == nil {
		*b = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("unsupported type for BoundingBox")
	}
}
