package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"event-crm/pkg/apperrors"
)

// UploadResult is the stored object reference plus the public URL that
// content entries embed.
type UploadResult struct {
	URL    string `json:"url"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

type MediaService interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}

type mediaService struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMediaService(client *minio.Client, bucket, publicURL string) MediaService {
	return &mediaService{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

var allowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const maxUploadSize = 10 << 20

func (s *mediaService) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*UploadResult, error) {
	if fileHeader.Size > maxUploadSize {
		return nil, apperrors.ValidationField("file", "must be 10MB or smaller")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageTypes[ext] {
		return nil, apperrors.ValidationField("file", "unsupported file type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer file.Close()

	objectKey := fmt.Sprintf("uploads/%d%s", time.Now().UnixNano(), ext)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectKey, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &UploadResult{
		URL:    fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectKey),
		Bucket: s.bucket,
		Key:    objectKey,
	}, nil
}

func (s *mediaService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return apperrors.ValidationField("key", "is required")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
