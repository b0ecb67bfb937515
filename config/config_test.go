package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeNeos/graph-algorithms-in-maps/codec"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"GRAPHS_BUCKET":           "graphs",
		"PATHS_BUCKET":            "paths",
		"STORAGE_BACKEND":         "MinIO",
		"MINIO_ENDPOINT":          "localhost:9000",
		"MINIO_ACCESS_KEY":        "minioadmin",
		"MINIO_SECRET_KEY":        "minioadmin",
		"MINIO_SECURE":            "true",
		"CATALOG_TABLE":           "cities",
		"HTTP_ADDR":               ":9090",
		"LOG_FORMAT":              "JSON",
		"LOG_LEVEL":               "debug",
		"DEFAULT_ALGORITHM":       "a_star",
		"MAX_CONCURRENT_SEARCHES": "4",
		"IO_LIMIT_BYTES_PER_SEC":  "1048576",
		"GRAPH_CACHE_SIZE":        " 16 ",
		"GRAPH_CACHE_BYTES":       "268435456",
		"COMPRESSION":             "zstd",
	}))
	require.NoError(t, err)

	assert.Equal(t, "graphs", cfg.GraphsBucket)
	assert.Equal(t, "paths", cfg.PathsBucket)
	assert.Equal(t, BackendMinIO, cfg.StorageBackend)
	assert.Equal(t, "localhost:9000", cfg.MinIOEndpoint)
	assert.True(t, cfg.MinIOSecure)
	assert.Equal(t, "cities", cfg.CatalogTable)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, search.AStar, cfg.DefaultAlgorithm)
	assert.Equal(t, 4, cfg.MaxConcurrentSearches)
	assert.Equal(t, int64(1<<20), cfg.IOLimitBytesPerSec)
	assert.Equal(t, 16, cfg.GraphCacheSize)
	assert.Equal(t, int64(256<<20), cfg.GraphCacheBytes)
	assert.Equal(t, codec.CompressionZSTD, cfg.Compression)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"UnknownBackend", map[string]string{"STORAGE_BACKEND": "ftp"}},
		{"S3WithoutBuckets", map[string]string{"STORAGE_BACKEND": "s3"}},
		{"MinIOWithoutEndpoint", map[string]string{"STORAGE_BACKEND": "minio", "GRAPHS_BUCKET": "g", "PATHS_BUCKET": "p"}},
		{"BadBool", map[string]string{"MINIO_SECURE": "maybe"}},
		{"BadInt", map[string]string{"GRAPH_CACHE_SIZE": "many"}},
		{"NegativeLimit", map[string]string{"MAX_CONCURRENT_SEARCHES": "-1"}},
		{"BadLevel", map[string]string{"LOG_LEVEL": "loud"}},
		{"BadFormat", map[string]string{"LOG_FORMAT": "xml"}},
		{"BadAlgorithm", map[string]string{"DEFAULT_ALGORITHM": "floyd"}},
		{"BadCompression", map[string]string{"COMPRESSION": "gzip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.vars))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestFromEnv_ReportsEveryProblem(t *testing.T) {
	_, err := FromEnv(env(map[string]string{
		"GRAPH_CACHE_SIZE": "many",
		"COMPRESSION":      "gzip",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRAPH_CACHE_SIZE")
	assert.Contains(t, err.Error(), "COMPRESSION")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:7070\n"), 0o600))

	t.Setenv("HTTP_ADDR", "")
	require.NoError(t, os.Unsetenv("HTTP_ADDR"))
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
}

func TestLoad_MissingDotEnv(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
}
