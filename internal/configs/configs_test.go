package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestDevelopmentDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "crypto-logo.svg", cfg.LogoKey)
	assert.Equal(t, DefaultAssetBaseURL, cfg.AssetBaseURL)
	assert.Equal(t, "CryptoHub", cfg.BrandName)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestProductionRequiresSecretAndDurableStore(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"ENVIRONMENT": "production", "SESSION_STORE": "redis"}))
	assert.ErrorContains(t, err, "JWT_SECRET")

	_, err = FromEnv(env(map[string]string{"ENVIRONMENT": "production", "JWT_SECRET": "s"}))
	assert.ErrorContains(t, err, "only allowed in development")

	_, err = FromEnv(env(map[string]string{"ENVIRONMENT": "production", "JWT_SECRET": "s", "SESSION_STORE": "postgres"}))
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestRedisSettings(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"SESSION_STORE": "Redis",
		"REDIS_ADDR":    "cache:6380",
		"REDIS_DB":      "3",
	}))
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, cfg.SessionStore)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)

	_, err = FromEnv(env(map[string]string{"SESSION_STORE": "redis", "REDIS_DB": "x"}))
	assert.ErrorContains(t, err, "REDIS_DB")
}

func TestPortValidation(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"PORT": "80"}))
	assert.Error(t, err)

	_, err = FromEnv(env(map[string]string{"PORT": "eighty"}))
	assert.ErrorContains(t, err, "PORT")
}

func TestAllowedOrigins(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"ALLOWED_ORIGINS": " https://a.example , ,https://b.example"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestS3RequiresCredentialsOnlyWithBucket(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"S3_BUCKET_NAME": "brand"}))
	assert.ErrorContains(t, err, "S3_ENDPOINT")

	cfg, err := FromEnv(env(map[string]string{
		"S3_BUCKET_NAME":       "brand",
		"S3_ENDPOINT":          "https://s3.example",
		"S3_ACCESS_KEY_ID":     "id",
		"S3_SECRET_ACCESS_KEY": "secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, "brand", cfg.S3BucketName)
}

func TestUnknownStore(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"SESSION_STORE": "etcd"}))
	assert.ErrorContains(t, err, "unknown SESSION_STORE")
}
