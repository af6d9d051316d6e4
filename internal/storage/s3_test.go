package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"wscmeso/mesocycle-planner/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() config.S3Config {
	return config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		BucketName:      "progress-photos",
	}
}

func TestEndpointURL(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "http://localhost:9000", endpointURL(cfg))
	cfg.UseSSL = true
	assert.Equal(t, "https://localhost:9000", endpointURL(cfg))
	cfg.Endpoint = "http://minio:9000"
	assert.Equal(t, "http://minio:9000", endpointURL(cfg))
}

// Presigning is computed locally, so no server is needed.
func TestPresignedURLs(t *testing.T) {
	ctx := context.Background()
	s, err := NewS3Storage(ctx, testConfig(), zap.NewNop())
	require.NoError(t, err)

	raw, err := s.GeneratePresignedUploadURL(ctx, "progress/u1/p1.jpg", "image/jpeg", 0)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/progress-photos/progress/u1/p1.jpg", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.True(t, strings.HasPrefix(u.Query().Get("X-Amz-Credential"), "minio/"))

	raw, err = s.GeneratePresignedDownloadURL(ctx, "progress/u1/p1.jpg", time.Minute)
	require.NoError(t, err)
	u, err = url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
