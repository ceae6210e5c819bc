package upload

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pantryfit-backend/domain"
	"pantryfit-backend/entities"
	"pantryfit-backend/internal/detector"
	"pantryfit-backend/internal/utils/storage"
	"pantryfit-backend/internal/worker"
	"pantryfit-backend/pkg/inventory"
	"pantryfit-backend/pkg/user"
)

// MaxUploadSize caps accepted image payloads. The HTTP server's body limit
// must sit above it so oversized files reach this check instead of a 413.
const MaxUploadSize = 10 * 1024 * 1024 // 10 MiB

type (
	UploadService interface {
		UploadImage(ctx context.Context, req domain.UploadImageRequest, userID string) (domain.ImageUploadResponse, error)
		GetUploadStatus(ctx context.Context, id string, userID string) (domain.ImageUploadResponse, error)
		ReviewDetections(ctx context.Context, id string, req domain.ReviewDetectionsRequest, userID string) (domain.ImageUploadResponse, error)
		CreateFromDetections(ctx context.Context, id string, req domain.CreateFromDetectionsRequest, userID string) ([]domain.InventoryItemResponse, error)
	}

	uploadService struct {
		uploadRepository    UploadRepository
		userRepository      user.UserRepository
		inventoryRepository inventory.InventoryRepository
		s3                  storage.AwsS3
		detector            detector.Detector
		pool                *worker.Pool
		log                 *zap.Logger
	}
)

func NewUploadService(
	uploadRepository UploadRepository,
	userRepository user.UserRepository,
	inventoryRepository inventory.InventoryRepository,
	s3 storage.AwsS3,
	det detector.Detector,
	pool *worker.Pool,
	log *zap.Logger,
) UploadService {
	return &uploadService{
		uploadRepository:    uploadRepository,
		userRepository:      userRepository,
		inventoryRepository: inventoryRepository,
		s3:                  s3,
		detector:            det,
		pool:                pool,
		log:                 log,
	}
}

func (s *uploadService) UploadImage(ctx context.Context, req domain.UploadImageRequest, userID string) (domain.ImageUploadResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ImageUploadResponse{}, domain.ErrParseUUID
	}

	if len(req.FileBytes) > MaxUploadSize {
		return domain.ImageUploadResponse{}, domain.ErrFileTooLarge
	}
	if !allowedExtension(req.Filename) {
		return domain.ImageUploadResponse{}, domain.ErrUnsupportedExtension
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return domain.ImageUploadResponse{}, domain.ErrUnsupportedFileType
	}

	objectKey, err := s.s3.UploadFile(ctx, req.FileBytes, req.Filename, req.ContentType, userID)
	if err != nil {
		return domain.ImageUploadResponse{}, err
	}

	imageUpload := &entities.ImageUpload{
		ID:         uuid.New(),
		UserID:     userUUID,
		StorageKey: objectKey,
		Status:     entities.UploadStatusPending,
	}

	if err := s.uploadRepository.CreateImageUpload(ctx, imageUpload); err != nil {
		_ = s.s3.DeleteFile(ctx, objectKey)
		return domain.ImageUploadResponse{}, err
	}

	// Detection runs detached from this request. A failed submit is logged
	// and counted, never surfaced: the client discovers it by polling a
	// record that stays pending.
	recordID := imageUpload.ID.String()
	if _, err := s.pool.Submit("detection", func() {
		s.runDetection(recordID, userID, objectKey)
	}); err != nil {
		s.log.Error("failed to schedule detection task",
			zap.String("image_upload_id", recordID),
			zap.Error(err))
	}

	s.log.Info("image uploaded",
		zap.String("image_upload_id", recordID),
		zap.String("storage_key", objectKey))

	return toImageUploadResponse(imageUpload), nil
}

func (s *uploadService) GetUploadStatus(ctx context.Context, id string, userID string) (domain.ImageUploadResponse, error) {
	imageUpload, err := s.getOwnedUpload(ctx, id, userID)
	if err != nil {
		return domain.ImageUploadResponse{}, err
	}
	return toImageUploadResponse(imageUpload), nil
}

// ReviewDetections replaces any previous review wholesale; the submitted
// list is authoritative, there is no merge with the raw detections.
func (s *uploadService) ReviewDetections(ctx context.Context, id string, req domain.ReviewDetectionsRequest, userID string) (domain.ImageUploadResponse, error) {
	imageUpload, err := s.getOwnedUpload(ctx, id, userID)
	if err != nil {
		return domain.ImageUploadResponse{}, err
	}

	reviewed := make(entities.DetectedObjectList, 0, len(req.ReviewedResults))
	for _, obj := range req.ReviewedResults {
		reviewed = append(reviewed, entities.DetectedObject{
			ObjectName: obj.ObjectName,
			Quantity:   obj.Quantity,
			Confidence: obj.Confidence,
			BBox:       obj.BBox,
		})
	}

	imageUpload.ReviewedResults = reviewed
	if err := s.uploadRepository.UpdateImageUpload(ctx, imageUpload); err != nil {
		return domain.ImageUploadResponse{}, err
	}

	s.log.Info("detection review saved",
		zap.String("image_upload_id", id),
		zap.Int("reviewed_objects", len(reviewed)))

	return toImageUploadResponse(imageUpload), nil
}

func (s *uploadService) CreateFromDetections(ctx context.Context, id string, req domain.CreateFromDetectionsRequest, userID string) ([]domain.InventoryItemResponse, error) {
	if _, err := s.getOwnedUpload(ctx, id, userID); err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	// Every date parses before anything is written, so a malformed payload
	// can never leave a partial batch behind.
	items := make([]*entities.InventoryItem, 0, len(req.Items))
	for _, payload := range req.Items {
		if payload.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		expiryDate, err := inventory.ParseExpiryDate(payload.ExpiryDate)
		if err != nil {
			return nil, err
		}

		source := payload.Source
		if source == "" {
			source = "image"
		}

		items = append(items, &entities.InventoryItem{
			ID:                 uuid.New(),
			UserID:             userUUID,
			Name:               payload.Name,
			Quantity:           payload.Quantity,
			CaloriesPerServing: payload.CaloriesPerServing,
			ProteinGPerServing: payload.ProteinGPerServing,
			CarbsGPerServing:   payload.CarbsGPerServing,
			FatsGPerServing:    payload.FatsGPerServing,
			ServingSizeUnit:    payload.ServingSizeUnit,
			ExpiryDate:         expiryDate,
			Source:             source,
		})
	}

	if err := s.inventoryRepository.AddInventoryItems(ctx, items); err != nil {
		return nil, err
	}

	s.log.Info("inventory created from detections",
		zap.String("image_upload_id", id),
		zap.Int("items", len(items)))

	response := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, inventory.ToInventoryItemResponse(item))
	}
	return response, nil
}

func (s *uploadService) getOwnedUpload(ctx context.Context, id string, userID string) (*entities.ImageUpload, error) {
	imageUpload, err := s.uploadRepository.GetImageUploadByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrImageUploadNotFound
		}
		return nil, err
	}
	if imageUpload.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return imageUpload, nil
}

func allowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range storage.AllowImage {
		if ext == allowed {
			return true
		}
	}
	return false
}

func toImageUploadResponse(imageUpload *entities.ImageUpload) domain.ImageUploadResponse {
	return domain.ImageUploadResponse{
		ID:               imageUpload.ID.String(),
		UserID:           imageUpload.UserID.String(),
		StorageKey:       imageUpload.StorageKey,
		Status:           imageUpload.Status,
		DetectionResults: imageUpload.DetectionResults,
		ReviewedResults:  imageUpload.ReviewedResults,
		ErrorMessage:     imageUpload.ErrorMessage,
		CreatedAt:        imageUpload.CreatedAt,
		UpdatedAt:        imageUpload.UpdatedAt,
	}
}
