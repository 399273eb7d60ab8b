package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAssets(t *testing.T) {
	ctx := context.Background()

	u, err := NewStaticAssets("").URL(ctx, "crypto-logo.png")
	require.NoError(t, err)
	assert.Equal(t, "/crypto-logo.png", u)

	u, err = NewStaticAssets("https://cdn.example.com/brand/").URL(ctx, "/crypto-logo.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/brand/crypto-logo.png", u)
}

func TestNewAssetServicePicksStaticWithoutBucket(t *testing.T) {
	svc, err := NewAssetService(context.Background(), ServiceConfig{BaseURL: "https://cdn.example.com"})
	require.NoError(t, err)
	assert.IsType(t, &StaticAssets{}, svc)
}

func newTestS3(t *testing.T) *s3Client {
	t.Helper()

	svc, err := NewAssetService(context.Background(), ServiceConfig{
		S3BucketName:      "brand",
		S3Endpoint:        "https://s3.example.com",
		S3AccessKeyID:     "AKIDEXAMPLE",
		S3SecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
	})
	require.NoError(t, err)

	c, ok := svc.(*s3Client)
	require.True(t, ok)
	return c
}

func TestS3PresignedURL(t *testing.T) {
	c := newTestS3(t)

	u, err := c.URL(context.Background(), "/crypto-logo.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(u, "https://s3.example.com/brand/crypto-logo.png?"), u)
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "X-Amz-Expires=3600")
}

func TestS3URLCache(t *testing.T) {
	c := newTestS3(t)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	first, err := c.URL(context.Background(), "crypto-logo.png")
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	second, err := c.URL(context.Background(), "crypto-logo.png")
	require.NoError(t, err)
	assert.Equal(t, first, second, "served from cache")
	assert.Equal(t, time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC), c.cache["crypto-logo.png"].expires)

	// inside the refresh window a new URL is presigned
	now = now.Add(26 * time.Minute)
	_, err = c.URL(context.Background(), "crypto-logo.png")
	require.NoError(t, err)
	assert.Equal(t, now.Add(presignTTL), c.cache["crypto-logo.png"].expires)
}
