package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	// Decoders for every extension the upload endpoint accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"pantryfit-backend/entities"
	"pantryfit-backend/internal/utils/storage"
)

// runDetection is the background task driving one upload through the
// detection state machine:
//
//	pending -> processing -> complete | failed
//
// It runs detached from any request. Complete and failed are terminal;
// nothing here retries, and nothing propagates out of this function.
func (s *uploadService) runDetection(recordID, userID, storageKey string) {
	ctx := context.Background()
	start := time.Now()

	imageUpload, err := s.uploadRepository.GetImageUploadByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("detection task: image upload not found",
				zap.String("image_upload_id", recordID),
				zap.Duration("duration", time.Since(start)))
		} else {
			s.log.Error("detection task: failed to fetch image upload",
				zap.String("image_upload_id", recordID),
				zap.Error(err),
				zap.Duration("duration", time.Since(start)))
		}
		return
	}

	// The processing transition is committed before any detection work so
	// concurrent status polls observe it promptly.
	imageUpload.Status = entities.UploadStatusProcessing
	if err := s.uploadRepository.UpdateImageUpload(ctx, imageUpload); err != nil {
		s.log.Error("detection task: failed to mark processing",
			zap.String("image_upload_id", recordID),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}
	s.log.Info("detection started", zap.String("image_upload_id", recordID))

	defer func() {
		if r := recover(); r != nil {
			s.markFailed(ctx, imageUpload, fmt.Sprintf("detection task panic: %v", r))
			s.log.Error("detection task panicked",
				zap.String("image_upload_id", recordID),
				zap.Any("panic", r),
				zap.Duration("duration", time.Since(start)))
		}
	}()

	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		s.markFailed(ctx, imageUpload, fmt.Sprintf("user not found: %s", userID))
		s.log.Error("detection task: user not found",
			zap.String("image_upload_id", recordID),
			zap.String("user_id", userID),
			zap.Duration("duration", time.Since(start)))
		return
	}

	imageBytes, err := s.s3.DownloadFile(ctx, userID, storageKey)
	if err != nil {
		var cause string
		switch {
		case errors.Is(err, storage.ErrStorageNotFound):
			cause = fmt.Sprintf("image not found: %s", storageKey)
		case errors.Is(err, storage.ErrStorageForbidden):
			cause = fmt.Sprintf("access denied to image: %s", storageKey)
		default:
			cause = fmt.Sprintf("failed to load image: %s", err.Error())
		}
		s.markFailed(ctx, imageUpload, cause)
		s.log.Error("detection task: storage read failed",
			zap.String("image_upload_id", recordID),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(imageBytes)); err != nil {
		s.markFailed(ctx, imageUpload, fmt.Sprintf("failed to decode image: %s", err.Error()))
		s.log.Error("detection task: image decode failed",
			zap.String("image_upload_id", recordID),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	detections, err := s.detector.Detect(ctx, imageBytes, storageKey)
	if err != nil {
		s.markFailed(ctx, imageUpload, err.Error())
		s.log.Error("detection task: detector failed",
			zap.String("image_upload_id", recordID),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	// Normalize in the detector's output order. The detector supplies no
	// quantity; it defaults to 1.
	results := make(entities.DetectedObjectList, 0, len(detections))
	rows := make([]*entities.DetectionResult, 0, len(detections))
	for _, det := range detections {
		results = append(results, entities.DetectedObject{
			ObjectName: det.Name,
			Quantity:   1,
			Confidence: det.Confidence,
			BBox:       det.BBox,
		})
		rows = append(rows, &entities.DetectionResult{
			ImageUploadID: imageUpload.ID,
			ObjectName:    det.Name,
			Quantity:      1,
			Confidence:    det.Confidence,
			BBox:          det.BBox,
		})
	}

	if err := s.uploadRepository.AddDetectionResults(ctx, rows); err != nil {
		s.markFailed(ctx, imageUpload, fmt.Sprintf("failed to persist detections: %s", err.Error()))
		s.log.Error("detection task: failed to persist detection rows",
			zap.String("image_upload_id", recordID),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	imageUpload.DetectionResults = results
	imageUpload.Status = entities.UploadStatusComplete
	imageUpload.ErrorMessage = ""
	if err := s.uploadRepository.UpdateImageUpload(ctx, imageUpload); err != nil {
		s.log.Error("detection task: failed to mark complete",
			zap.String("image_upload_id", recordID),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	s.log.Info("detection complete",
		zap.String("image_upload_id", recordID),
		zap.Int("detections", len(results)),
		zap.Duration("duration", time.Since(start)))
}

func (s *uploadService) markFailed(ctx context.Context, imageUpload *entities.ImageUpload, cause string) {
	imageUpload.Status = entities.UploadStatusFailed
	imageUpload.ErrorMessage = cause
	if err := s.uploadRepository.UpdateImageUpload(ctx, imageUpload); err != nil {
		s.log.Error("detection task: failed to record failure",
			zap.String("image_upload_id", imageUpload.ID.String()),
			zap.Error(err))
	}
}
