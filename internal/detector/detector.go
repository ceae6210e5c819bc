package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"pantryfit-backend/internal/config"
)

var ErrDetectionFailed = errors.New("object detection failed")

type (
	// Detection is one object reported by the model service, in the
	// service's output order.
	Detection struct {
		Name       string    `json:"name"`
		Confidence float64   `json:"confidence"`
		BBox       []float64 `json:"bbox"`
	}

	// Detector is the external object-detection black box.
	Detector interface {
		Detect(ctx context.Context, imageBytes []byte, filename string) ([]Detection, error)
	}

	modelServiceDetector struct {
		modelURL string
		client   *http.Client
	}
)

// NewModelServiceDetector talks to the YOLO model service over HTTP: the
// image goes out as a multipart form, detections come back as JSON.
func NewModelServiceDetector(cfg config.DetectorConfig) Detector {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &modelServiceDetector{
		modelURL: cfg.ModelURL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (d *modelServiceDetector) Detect(ctx context.Context, imageBytes []byte, filename string) ([]Detection, error) {
	if d.modelURL == "" {
		return nil, fmt.Errorf("%w: model service URL not configured", ErrDetectionFailed)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectionFailed, err)
	}
	if _, err = part.Write(imageBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectionFailed, err)
	}
	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectionFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.modelURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectionFailed, err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: model service returned %s - %s", ErrDetectionFailed, resp.Status, string(bodyBytes))
	}

	var modelResp struct {
		Success    bool        `json:"success"`
		Detections []Detection `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&modelResp); err != nil {
		return nil, fmt.Errorf("%w: decoding model response: %v", ErrDetectionFailed, err)
	}
	if !modelResp.Success {
		return nil, fmt.Errorf("%w: model service reported failure", ErrDetectionFailed)
	}

	// An empty list is a valid outcome, not an error.
	return modelResp.Detections, nil
}
