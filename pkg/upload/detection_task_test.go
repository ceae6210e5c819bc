package upload

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantryfit-backend/entities"
	"pantryfit-backend/internal/detector"
)

// seedStoredUpload places a pending record plus its object in fake storage,
// mirroring the state right after a successful upload request.
func seedStoredUpload(t *testing.T, env *testEnv, userID string, imageBytes []byte) *entities.ImageUpload {
	t.Helper()
	key, err := env.s3.UploadFile(context.Background(), imageBytes, "fridge.png", "image/png", userID)
	require.NoError(t, err)

	imageUpload := &entities.ImageUpload{
		ID:         uuid.New(),
		UserID:     uuid.MustParse(userID),
		StorageKey: key,
		Status:     entities.UploadStatusPending,
	}
	require.NoError(t, env.uploads.CreateImageUpload(context.Background(), imageUpload))
	return imageUpload
}

func TestRunDetectionSuccess(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	imageUpload := seedStoredUpload(t, env, userID, pngBytes(t))
	env.detector.detections = []detector.Detection{
		{Name: "apple", Confidence: 0.93, BBox: []float64{10, 20, 110, 120}},
		{Name: "milk", Confidence: 0.71, BBox: []float64{200, 30, 320, 240}},
	}

	env.service.runDetection(imageUpload.ID.String(), userID, imageUpload.StorageKey)

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusComplete, stored.Status)
	assert.Empty(t, stored.ErrorMessage)

	require.Len(t, stored.DetectionResults, 2)
	assert.Equal(t, "apple", stored.DetectionResults[0].ObjectName, "detector output order is preserved")
	assert.Equal(t, "milk", stored.DetectionResults[1].ObjectName)
	assert.Equal(t, 1, stored.DetectionResults[0].Quantity, "quantity defaults to one")
	assert.Equal(t, 0.93, stored.DetectionResults[0].Confidence)

	require.Len(t, env.uploads.rows, 2)
	assert.Equal(t, imageUpload.ID, env.uploads.rows[0].ImageUploadID)
}

func TestRunDetectionMarksProcessingBeforeDetecting(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	imageUpload := seedStoredUpload(t, env, userID, pngBytes(t))

	env.service.runDetection(imageUpload.ID.String(), userID, imageUpload.StorageKey)

	history := env.uploads.history(imageUpload.ID.String())
	require.GreaterOrEqual(t, len(history), 3)
	assert.Equal(t, entities.UploadStatusPending, history[0])
	assert.Equal(t, entities.UploadStatusProcessing, history[1])
	assert.Equal(t, entities.UploadStatusComplete, history[len(history)-1])
}

func TestRunDetectionEmptyResultCompletes(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	imageUpload := seedStoredUpload(t, env, userID, pngBytes(t))
	env.detector.detections = nil

	env.service.runDetection(imageUpload.ID.String(), userID, imageUpload.StorageKey)

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusComplete, stored.Status)
	assert.NotNil(t, stored.DetectionResults, "an empty detection list is still a result")
	assert.Empty(t, stored.DetectionResults)
}

func TestRunDetectionMissingRecordIsANoOp(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)

	env.service.runDetection(uuid.New().String(), userID, "uploads/"+userID+"_x.png")

	assert.Empty(t, env.uploads.rows)
}

func TestRunDetectionMissingUserFails(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New().String()
	key, err := env.s3.UploadFile(context.Background(), pngBytes(t), "fridge.png", "image/png", userID)
	require.NoError(t, err)
	imageUpload := &entities.ImageUpload{
		ID:         uuid.New(),
		UserID:     uuid.MustParse(userID),
		StorageKey: key,
		Status:     entities.UploadStatusPending,
	}
	require.NoError(t, env.uploads.CreateImageUpload(context.Background(), imageUpload))

	env.service.runDetection(imageUpload.ID.String(), userID, key)

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "user not found")
}

func TestRunDetectionStorageObjectMissingFails(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	imageUpload := seedStoredUpload(t, env, userID, pngBytes(t))
	require.NoError(t, env.s3.DeleteFile(context.Background(), imageUpload.StorageKey))

	env.service.runDetection(imageUpload.ID.String(), userID, imageUpload.StorageKey)

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "image not found")
}

func TestRunDetectionForeignObjectKeyFails(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	otherUser := uuid.New().String()
	key, err := env.s3.UploadFile(context.Background(), pngBytes(t), "fridge.png", "image/png", otherUser)
	require.NoError(t, err)

	imageUpload := &entities.ImageUpload{
		ID:         uuid.New(),
		UserID:     uuid.MustParse(userID),
		StorageKey: key,
		Status:     entities.UploadStatusPending,
	}
	require.NoError(t, env.uploads.CreateImageUpload(context.Background(), imageUpload))

	env.service.runDetection(imageUpload.ID.String(), userID, key)

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "access denied")
}

func TestRunDetectionUndecodableImageFails(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	imageUpload := seedStoredUpload(t, env, userID, []byte("definitely not an image"))

	env.service.runDetection(imageUpload.ID.String(), userID, imageUpload.StorageKey)

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "failed to decode image")
}

func TestRunDetectionDetectorErrorFails(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	imageUpload := seedStoredUpload(t, env, userID, pngBytes(t))
	env.detector.err = errors.New("model service returned 502 Bad Gateway")

	env.service.runDetection(imageUpload.ID.String(), userID, imageUpload.StorageKey)

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "502")
}

func TestRunDetectionRecoversFromPanic(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	imageUpload := seedStoredUpload(t, env, userID, pngBytes(t))
	env.detector.panicMsg = "nil pointer in postprocessing"

	assert.NotPanics(t, func() {
		env.service.runDetection(imageUpload.ID.String(), userID, imageUpload.StorageKey)
	})

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "panic")
}

func TestRunDetectionPersistRowsFailureFails(t *testing.T) {
	env := newTestEnv(t)
	userID := seedUser(t, env)
	imageUpload := seedStoredUpload(t, env, userID, pngBytes(t))
	env.detector.detections = []detector.Detection{{Name: "apple", Confidence: 0.9, BBox: []float64{1, 2, 3, 4}}}
	env.uploads.addRowsErr = errors.New("insert failed")

	env.service.runDetection(imageUpload.ID.String(), userID, imageUpload.StorageKey)

	stored := env.uploads.get(imageUpload.ID.String())
	assert.Equal(t, entities.UploadStatusFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "failed to persist detections")
}
