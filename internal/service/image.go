package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hungrybaby/recipes-api/backend/config"
)

// imagePrefix is the bucket folder holding featured images.
const imagePrefix = "recipe-images/"

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService handles featured image storage
type ImageService struct {
	client   ObjectPutter
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService backed by the configured bucket
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{
		client:   s3Config.Client,
		s3Config: s3Config,
	}
}

// UploadFeaturedImage uploads a local image file as the featured image of the
// recipe with the given slug and returns its public URL. Re-uploading the same
// slug overwrites the previous object.
func (s *ImageService) UploadFeaturedImage(ctx context.Context, slug, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image %s is empty", path)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("file %s is not an image (%s)", path, contentType)
	}

	key := imagePrefix + slug + strings.ToLower(filepath.Ext(path))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := s.s3Config.PublicURL(key)
	slog.Info("uploaded featured image", "slug", slug, "url", publicURL)
	return publicURL, nil
}
