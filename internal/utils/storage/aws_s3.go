package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"pantryfit-backend/internal/config"
)

const uploadPrefix = "uploads/"

var AllowImage = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

var (
	ErrStorageInvalidInput = errors.New("invalid storage input")
	ErrStorageNotFound     = errors.New("stored object not found")
	ErrStorageForbidden    = errors.New("access to the requested object is denied")
)

type (
	// AwsS3 is the storage collaborator for uploaded images. Objects are
	// written once under uploads/{userID}_{timestamp}{ext} and never
	// overwritten; ownership is enforced by the key naming convention.
	AwsS3 interface {
		UploadFile(ctx context.Context, fileBytes []byte, filename, contentType, userID string) (string, error)
		DownloadFile(ctx context.Context, userID, objectKey string) ([]byte, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3(cfg config.S3Config) (AwsS3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

func (s *awsS3) UploadFile(ctx context.Context, fileBytes []byte, filename, contentType, userID string) (string, error) {
	if len(fileBytes) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrStorageInvalidInput)
	}
	if filename == "" {
		return "", fmt.Errorf("%w: empty filename", ErrStorageInvalidInput)
	}
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrStorageInvalidInput)
	}

	objectKey := BuildObjectKey(userID, filename, time.Now().UTC())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return objectKey, nil
}

func (s *awsS3) DownloadFile(ctx context.Context, userID, objectKey string) ([]byte, error) {
	if err := CheckObjectOwnership(userID, objectKey); err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", ErrStorageNotFound, objectKey)
		}
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}

// BuildObjectKey derives the storage key from the owner and the original
// filename. The microsecond timestamp keeps two uploads in the same second
// from colliding.
func BuildObjectKey(userID, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".img"
	}
	timestamp := now.Format("20060102150405") + fmt.Sprintf("%06d", now.Nanosecond()/1000)
	return fmt.Sprintf("%s%s_%s%s", uploadPrefix, userID, timestamp, ext)
}

// CheckObjectOwnership rejects keys outside the upload prefix and keys whose
// filename does not start with the requesting user's id.
func CheckObjectOwnership(userID, objectKey string) error {
	clean := path.Clean(objectKey)
	if !strings.HasPrefix(clean, uploadPrefix) {
		return ErrStorageForbidden
	}
	if !strings.HasPrefix(path.Base(clean), userID+"_") {
		return ErrStorageForbidden
	}
	return nil
}
