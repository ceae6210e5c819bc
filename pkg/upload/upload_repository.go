package upload

import (
	"context"

	"gorm.io/gorm"

	"pantryfit-backend/entities"
)

type (
	UploadRepository interface {
		CreateImageUpload(ctx context.Context, imageUpload *entities.ImageUpload) error
		GetImageUploadByID(ctx context.Context, id string) (*entities.ImageUpload, error)
		UpdateImageUpload(ctx context.Context, imageUpload *entities.ImageUpload) error
		AddDetectionResults(ctx context.Context, results []*entities.DetectionResult) error
	}

	uploadRepository struct {
		db *gorm.DB
	}
)

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) CreateImageUpload(ctx context.Context, imageUpload *entities.ImageUpload) error {
	return r.db.WithContext(ctx).Create(imageUpload).Error
}

func (r *uploadRepository) GetImageUploadByID(ctx context.Context, id string) (*entities.ImageUpload, error) {
	var imageUpload entities.ImageUpload
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&imageUpload).Error; err != nil {
		return nil, err
	}
	return &imageUpload, nil
}

// UpdateImageUpload writes the full record in one statement, so a status
// transition is never observable half-applied.
func (r *uploadRepository) UpdateImageUpload(ctx context.Context, imageUpload *entities.ImageUpload) error {
	return r.db.WithContext(ctx).Save(imageUpload).Error
}

func (r *uploadRepository) AddDetectionResults(ctx context.Context, results []*entities.DetectionResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&results).Error
}
