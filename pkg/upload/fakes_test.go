package upload

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pantryfit-backend/entities"
	"pantryfit-backend/internal/detector"
	"pantryfit-backend/internal/utils/storage"
	"pantryfit-backend/internal/worker"
)

type fakeUploadRepository struct {
	mu            sync.Mutex
	uploads       map[string]*entities.ImageUpload
	rows          []*entities.DetectionResult
	statusHistory map[string][]string
	createErr     error
	updateErr     error
	addRowsErr    error
}

func newFakeUploadRepository() *fakeUploadRepository {
	return &fakeUploadRepository{
		uploads:       make(map[string]*entities.ImageUpload),
		statusHistory: make(map[string][]string),
	}
}

// Records are stored and returned by value so the background task and the
// request path never share a struct, mirroring a real database round trip.
func (r *fakeUploadRepository) CreateImageUpload(_ context.Context, imageUpload *entities.ImageUpload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *imageUpload
	r.uploads[imageUpload.ID.String()] = &clone
	r.statusHistory[imageUpload.ID.String()] = append(r.statusHistory[imageUpload.ID.String()], imageUpload.Status)
	return nil
}

func (r *fakeUploadRepository) GetImageUploadByID(_ context.Context, id string) (*entities.ImageUpload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	imageUpload, ok := r.uploads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *imageUpload
	return &clone, nil
}

func (r *fakeUploadRepository) UpdateImageUpload(_ context.Context, imageUpload *entities.ImageUpload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	clone := *imageUpload
	r.uploads[imageUpload.ID.String()] = &clone
	r.statusHistory[imageUpload.ID.String()] = append(r.statusHistory[imageUpload.ID.String()], imageUpload.Status)
	return nil
}

func (r *fakeUploadRepository) AddDetectionResults(_ context.Context, results []*entities.DetectionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addRowsErr != nil {
		return r.addRowsErr
	}
	r.rows = append(r.rows, results...)
	return nil
}

func (r *fakeUploadRepository) history(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statusHistory[id]...)
}

func (r *fakeUploadRepository) get(id string) *entities.ImageUpload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploads[id]
}

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepository) CreateUser(_ context.Context, u *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID.String()] = u
	return nil
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) UpdateUser(_ context.Context, u *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID.String()] = u
	return nil
}

type fakeInventoryRepository struct {
	mu       sync.Mutex
	items    []*entities.InventoryItem
	batchErr error
}

func (r *fakeInventoryRepository) AddInventoryItem(_ context.Context, item *entities.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return nil
}

func (r *fakeInventoryRepository) AddInventoryItems(_ context.Context, items []*entities.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.batchErr != nil {
		return r.batchErr
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeInventoryRepository) GetInventoryItemByID(_ context.Context, id string) (*entities.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID.String() == id {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventoryRepository) GetInventoryItems(_ context.Context, userID string, _, _ int) ([]*entities.InventoryItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []*entities.InventoryItem
	for _, item := range r.items {
		if item.UserID.String() == userID {
			owned = append(owned, item)
		}
	}
	return owned, int64(len(owned)), nil
}

func (r *fakeInventoryRepository) UpdateInventoryItem(_ context.Context, item *entities.InventoryItem) error {
	return nil
}

func (r *fakeInventoryRepository) DeleteInventoryItem(_ context.Context, id string) error {
	return nil
}

func (r *fakeInventoryRepository) stored() []*entities.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entities.InventoryItem(nil), r.items...)
}

type fakeS3 struct {
	mu          sync.Mutex
	objects     map[string][]byte
	deleted     []string
	uploadErr   error
	downloadErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) UploadFile(_ context.Context, fileBytes []byte, filename, _, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := storage.BuildObjectKey(userID, filename, time.Now().UTC())
	f.objects[key] = fileBytes
	return key, nil
}

func (f *fakeS3) DownloadFile(_ context.Context, userID, objectKey string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	if err := storage.CheckObjectOwnership(userID, objectKey); err != nil {
		return nil, err
	}
	data, ok := f.objects[objectKey]
	if !ok {
		return nil, storage.ErrStorageNotFound
	}
	return data, nil
}

func (f *fakeS3) DeleteFile(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	delete(f.objects, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://fake.local/" + objectKey
}

type fakeDetector struct {
	detections []detector.Detection
	err        error
	panicMsg   string
}

func (d *fakeDetector) Detect(_ context.Context, _ []byte, _ string) ([]detector.Detection, error) {
	if d.panicMsg != "" {
		panic(d.panicMsg)
	}
	if d.err != nil {
		return nil, d.err
	}
	return d.detections, nil
}

type testEnv struct {
	service   *uploadService
	uploads   *fakeUploadRepository
	users     *fakeUserRepository
	inventory *fakeInventoryRepository
	s3        *fakeS3
	detector  *fakeDetector
	pool      *worker.Pool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		uploads:   newFakeUploadRepository(),
		users:     newFakeUserRepository(),
		inventory: &fakeInventoryRepository{},
		s3:        newFakeS3(),
		detector:  &fakeDetector{},
		pool:      worker.NewPool(1, 8, zap.NewNop()),
	}
	env.service = NewUploadService(
		env.uploads,
		env.users,
		env.inventory,
		env.s3,
		env.detector,
		env.pool,
		zap.NewNop(),
	).(*uploadService)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		env.pool.Shutdown(ctx)
	})
	return env
}

// drain waits for all submitted background jobs to finish.
func (e *testEnv) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	e.pool.Shutdown(ctx)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}
