package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultURLTTL = 5 * time.Minute

// Config describes the object store holding moderation payload images.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	URLTTL    time.Duration
}

// ImageSigner turns payload image storage keys into short-lived display URLs
// for the dashboard. Keys that are already http(s) URLs never reach it.
type ImageSigner struct {
	client *minio.Client
	bucket string
	urlTTL time.Duration
}

func NewImageSigner(cfg Config) (*ImageSigner, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	bucket := strings.TrimSpace(cfg.Bucket)
	if endpoint == "" {
		return nil, fmt.Errorf("image store endpoint is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("image store bucket is required")
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = defaultURLTTL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Region: region,
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create image store client: %w", err)
	}

	return &ImageSigner{client: client, bucket: bucket, urlTTL: ttl}, nil
}

// PresignGet signs one image key. A non-positive ttl falls back to the
// configured default; an empty key signs nothing.
func (s *ImageSigner) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("image signer is not initialized")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", nil
	}
	if ttl <= 0 {
		ttl = s.urlTTL
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign image %s: %w", key, err)
	}
	return presigned.String(), nil
}
