/*
Package storage resolves public URLs for brand assets such as the navbar logo.

Assets either sit behind a static base URL (CDN or the app itself) or in a private
S3-compatible bucket, in which case presigned GET URLs are handed out and cached.
*/
package storage

import (
	"context"
	"net/url"
	"strings"
)

// ServiceConfig configures the asset service. When S3BucketName is empty the static
// implementation is used.
type ServiceConfig struct {
	BaseURL string

	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// AssetService turns an object key into a URL a browser can load.
type AssetService interface {
	URL(ctx context.Context, key string) (string, error)
}

// NewAssetService picks the implementation that matches cfg.
func NewAssetService(ctx context.Context, cfg ServiceConfig) (AssetService, error) {
	if cfg.S3BucketName == "" {
		return NewStaticAssets(cfg.BaseURL), nil
	}

	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// StaticAssets joins keys onto a base URL.
type StaticAssets struct {
	base string
}

// NewStaticAssets returns a StaticAssets rooted at base. An empty base serves keys from "/".
func NewStaticAssets(base string) *StaticAssets {
	return &StaticAssets{base: strings.TrimRight(base, "/")}
}

func (s *StaticAssets) URL(_ context.Context, key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if s.base == "" {
		return "/" + key, nil
	}
	return url.JoinPath(s.base, key)
}
