package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cryptohub/internal/pkg/logx"
)

const (
	// presignTTL is the lifetime of a presigned asset URL.
	presignTTL = time.Hour

	// refreshBefore is how long before expiry a cached URL is replaced.
	refreshBefore = 5 * time.Minute
)

type cachedURL struct {
	url     string
	expires time.Time
}

// s3Client presigns GET requests for assets in a private bucket.
type s3Client struct {
	bucket  string
	presign *s3.PresignClient

	mu    sync.Mutex
	cache map[string]cachedURL
	now   func() time.Time
}

// newS3Client configures the SDK for an S3-compatible endpoint with static credentials.
func newS3Client(ctx context.Context, cfg ServiceConfig) (*s3Client, error) {
	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = true
	})

	return &s3Client{
		bucket:  cfg.S3BucketName,
		presign: s3.NewPresignClient(client),
		cache:   make(map[string]cachedURL),
		now:     time.Now,
	}, nil
}

// URL returns a cached presigned URL for key, presigning a new one when the cached URL is
// missing or close to expiry.
func (c *s3Client) URL(ctx context.Context, key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	now := c.now()

	c.mu.Lock()
	if cached, ok := c.cache[key]; ok && now.Add(refreshBefore).Before(cached.expires) {
		c.mu.Unlock()
		return cached.url, nil
	}
	c.mu.Unlock()

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		logx.Error(err, "Failed to presign asset URL", "key", key)
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	c.mu.Lock()
	c.cache[key] = cachedURL{url: req.URL, expires: now.Add(presignTTL)}
	c.mu.Unlock()

	return req.URL, nil
}
