// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/config"
)

// ImageUploader stores a product image and returns its public URL.
type ImageUploader interface {
	UploadProductImage(ctx context.Context, header *multipart.FileHeader) (string, error)
}

type StorageService struct {
	s3Client s3iface.S3API
	aws      config.AWSConfig
	storage  config.StorageConfig
	now      func() time.Time
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// NewStorageService uploads to S3 when credentials and a bucket are
// configured and to a local directory otherwise.
func NewStorageService(cfg *config.Config) (*StorageService, error) {
	svc := &StorageService{
		aws:     cfg.AWS,
		storage: cfg.Storage,
		now:     time.Now,
	}
	if cfg.AWS.AccessKeyID == "" || cfg.AWS.S3Bucket == "" {
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

func (s *StorageService) UploadProductImage(ctx context.Context, header *multipart.FileHeader) (string, error) {
	if s.storage.MaxImageSize > 0 && header.Size > s.storage.MaxImageSize {
		return "", apperrors.InvalidInput(fmt.Sprintf("image exceeds maximum size of %d bytes", s.storage.MaxImageSize))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", apperrors.InvalidInput(fmt.Sprintf("file type %s is not allowed", ext))
	}

	file, err := header.Open()
	if err != nil {
		return "", apperrors.InvalidInput("failed to read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", apperrors.InvalidInput("failed to read uploaded image")
	}

	contentType, err := ValidateImage(data)
	if err != nil {
		return "", err
	}

	key := s.objectKey("products", ext)
	if s.s3Client != nil {
		return s.uploadToS3(ctx, data, key, contentType)
	}
	return s.uploadToLocal(data, key)
}

func (s *StorageService) uploadToS3(ctx context.Context, data []byte, key, contentType string) (string, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to upload to S3: %w", err))
	}

	return s.s3URL(key), nil
}

func (s *StorageService) uploadToLocal(data []byte, key string) (string, error) {
	path := filepath.Join(s.storage.LocalDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to create upload dir: %w", err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to write image: %w", err))
	}

	logrus.WithField("path", path).Debug("stored image locally")
	return fmt.Sprintf("%s/uploads/%s", strings.TrimRight(s.storage.PublicBaseURL, "/"), key), nil
}

func (s *StorageService) objectKey(folder, ext string) string {
	id := uuid.New()
	timestamp := s.now().Format("20060102")
	return fmt.Sprintf("%s/%s_%s%s", folder, timestamp, id.String()[:8], ext)
}

func (s *StorageService) s3URL(key string) string {
	if s.aws.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.aws.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.aws.S3Bucket, s.aws.Region, key)
}

// ValidateImage sniffs the content and returns its MIME type when it is a
// supported image.
func ValidateImage(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return contentType, nil
	}
	return "", apperrors.InvalidInput("invalid image file")
}
