package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	appconfig "linkfolio/config"
	"linkfolio/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// StorageService uploads media to an S3-compatible object store and returns
// public URLs. Both AWS S3 and MinIO-style endpoints are supported.
type StorageService struct {
	client         *s3.Client
	bucket         string
	endpoint       string
	publicEndpoint string
	useSSL         bool
	log            logger.Logger
}

func NewStorageService(ctx context.Context, cfg appconfig.Config) (*StorageService, error) {
	log := logger.New("StorageService")

	if cfg.StorageBucket == "" {
		return nil, log.Error("storage bucket is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.StorageEndpoint != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.StorageRegion),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
			),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.StorageRegion))
	}
	if err != nil {
		return nil, log.Err("failed to load storage config", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(withScheme(cfg.StorageEndpoint, cfg.StorageUseSSL))
			o.UsePathStyle = true // required for MinIO
		}
	})

	log.Info("storage service initialized", "bucket", cfg.StorageBucket)

	return &StorageService{
		client:         client,
		bucket:         cfg.StorageBucket,
		endpoint:       cfg.StorageEndpoint,
		publicEndpoint: cfg.StoragePublicEndpoint,
		useSSL:         cfg.StorageUseSSL,
		log:            log,
	}, nil
}

// Upload stores the file under an owner-scoped random key and returns its
// public URL.
func (s *StorageService) Upload(
	ctx context.Context,
	userID uuid.UUID,
	filename, contentType string,
	body io.Reader,
) (string, error) {
	log := s.log.Function("Upload")

	key := BuildObjectKey(userID, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", log.Err("failed to upload to object storage", err, "key", key)
	}

	return s.publicURL(key), nil
}

// BuildObjectKey derives the storage key: uploads/<userID>/<uuid><ext>.
// The original filename only contributes its extension.
func BuildObjectKey(userID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("uploads/%s/%s%s", userID, uuid.New(), ext)
}

func (s *StorageService) publicURL(key string) string {
	if s.publicEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", withScheme(s.publicEndpoint, s.useSSL), s.bucket, key)
	}

	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", withScheme(s.endpoint, s.useSSL), s.bucket, key)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

func withScheme(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
