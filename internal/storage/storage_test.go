package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectStorageType(t *testing.T) {
	tests := []struct {
		endpoint string
		want     StorageType
	}{
		{"https://abc.r2.cloudflarestorage.com", StorageTypeR2},
		{"s3.us-west-2.amazonaws.com", StorageTypeS3},
		{"localhost:9000", StorageTypeS3Compatible},
	}
	for _, tc := range tests {
		t.Run(tc.endpoint, func(t *testing.T) {
			assert.Equal(t, tc.want, detectStorageType(tc.endpoint))
		})
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "minio:9000", normalizeEndpoint("http://minio:9000/"))
	assert.Equal(t, "host.example.com", normalizeEndpoint("https://host.example.com/bucket/path"))
	assert.Equal(t, "localhost:9000", normalizeEndpoint("localhost:9000"))
}

func TestNewStorage_DetectsType(t *testing.T) {
	cfg := &S3Config{Endpoint: "localhost:9000", Bucket: "datasets", AccessKey: "a", SecretKey: "b"}
	s, err := NewStorage(cfg)
	assert.NoError(t, err)
	assert.Equal(t, StorageTypeS3Compatible, cfg.Type)
	assert.Equal(t, "datasets", s.bucket)
}
