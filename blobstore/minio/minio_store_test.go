package minio

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
)

func TestRelativeName(t *testing.T) {
	tests := []struct {
		key, prefix, want string
	}{
		{"nodes-lima.json", "", "nodes-lima.json"},
		{"peru/nodes-lima.json", "peru/", "nodes-lima.json"},
		{"peru/nodes-lima.json", "peru", "nodes-lima.json"},
		{"peru/sub/edges.json", "peru/", "sub/edges.json"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeName(tt.key, tt.prefix))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("dial tcp: refused")))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("path-x.json"))
	assert.Equal(t, "application/geo+json", contentType("route-x.geojson"))
	assert.Equal(t, "application/octet-stream", contentType("blob"))
}

// TestMinioStore_Integration requires a running MinIO instance.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	ctx := context.Background()
	store, err := Dial(ctx, Config{
		Endpoint:     endpoint,
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Bucket:       "test-graphmaps",
		Prefix:       "test-prefix/",
		CreateBucket: true,
	})
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	data := []byte(`{"Nodes":{"1":"-12.0,-77.0"}}`)
	require.NoError(t, store.Put(ctx, "nodes-it.json", data))

	blob, err := store.Open(ctx, "nodes-it.json")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	rc, err := blob.ReadRange(ctx, 2, 5)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "Nodes", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "nodes-")
	require.NoError(t, err)
	assert.Contains(t, names, "nodes-it.json")

	require.NoError(t, store.Delete(ctx, "nodes-it.json"))
	_, err = store.Open(ctx, "nodes-it.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
