// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/HeNeos/graph-algorithms-in-maps/codec"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

// ErrInvalid is matched by every configuration error.
var ErrInvalid = errors.New("config: invalid value")

// Storage backends.
const (
	BackendS3     = "s3"
	BackendMinIO  = "minio"
	BackendLocal  = "local"
	BackendMemory = "memory"
)

// Config is the service configuration.
type Config struct {
	// GraphsBucket holds nodes-<key>.json and edges-<key>.json blobs.
	GraphsBucket string
	// PathsBucket receives solutions.
	PathsBucket string

	StorageBackend string
	StoragePrefix  string
	LocalRoot      string
	AWSRegion      string
	S3Endpoint     string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOSecure    bool

	// CatalogTable names the DynamoDB table mapping cities to graphs. Empty
	// disables city lookups.
	CatalogTable string

	HTTPAddr  string
	LogFormat string
	LogLevel  slog.Level

	DefaultAlgorithm      search.Algorithm
	MaxConcurrentSearches int
	IOLimitBytesPerSec    int64
	GraphCacheSize        int
	GraphCacheBytes       int64
	Compression           codec.Compression
}

// Default returns the configuration used for unset variables.
func Default() Config {
	return Config{
		StorageBackend:   BackendLocal,
		LocalRoot:        "data",
		AWSRegion:        "us-east-1",
		HTTPAddr:         ":8080",
		LogFormat:        "text",
		LogLevel:         slog.LevelInfo,
		DefaultAlgorithm: search.Dijkstra,
		GraphCacheSize:   8,
		Compression:      codec.CompressionNone,
	}
}

// Load reads the given dotenv files (".env" when none are given) into the
// process environment and builds a Config from it. Missing dotenv files are
// ignored; variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load dotenv: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.str("GRAPHS_BUCKET", &cfg.GraphsBucket)
	p.str("PATHS_BUCKET", &cfg.PathsBucket)
	p.str("STORAGE_BACKEND", &cfg.StorageBackend)
	p.str("STORAGE_PREFIX", &cfg.StoragePrefix)
	p.str("LOCAL_ROOT", &cfg.LocalRoot)
	p.str("AWS_REGION", &cfg.AWSRegion)
	p.str("S3_ENDPOINT", &cfg.S3Endpoint)
	p.str("MINIO_ENDPOINT", &cfg.MinIOEndpoint)
	p.str("MINIO_ACCESS_KEY", &cfg.MinIOAccessKey)
	p.str("MINIO_SECRET_KEY", &cfg.MinIOSecretKey)
	p.boolean("MINIO_SECURE", &cfg.MinIOSecure)
	p.str("CATALOG_TABLE", &cfg.CatalogTable)
	p.str("HTTP_ADDR", &cfg.HTTPAddr)
	p.str("LOG_FORMAT", &cfg.LogFormat)
	p.level("LOG_LEVEL", &cfg.LogLevel)
	p.algorithm("DEFAULT_ALGORITHM", &cfg.DefaultAlgorithm)
	p.integer("MAX_CONCURRENT_SEARCHES", &cfg.MaxConcurrentSearches)
	p.int64("IO_LIMIT_BYTES_PER_SEC", &cfg.IOLimitBytesPerSec)
	p.integer("GRAPH_CACHE_SIZE", &cfg.GraphCacheSize)
	p.int64("GRAPH_CACHE_BYTES", &cfg.GraphCacheBytes)
	p.compression("COMPRESSION", &cfg.Compression)

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings are consistent.
func (c Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case BackendS3, BackendMinIO:
		if c.GraphsBucket == "" {
			errs = append(errs, invalid("GRAPHS_BUCKET", "", "required for backend "+c.StorageBackend))
		}
		if c.PathsBucket == "" {
			errs = append(errs, invalid("PATHS_BUCKET", "", "required for backend "+c.StorageBackend))
		}
		if c.StorageBackend == BackendMinIO && c.MinIOEndpoint == "" {
			errs = append(errs, invalid("MINIO_ENDPOINT", "", "required for backend minio"))
		}
	case BackendLocal:
		if c.LocalRoot == "" {
			errs = append(errs, invalid("LOCAL_ROOT", "", "required for backend local"))
		}
	case BackendMemory:
	default:
		errs = append(errs, invalid("STORAGE_BACKEND", c.StorageBackend, "want s3, minio, local or memory"))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, invalid("LOG_FORMAT", c.LogFormat, "want text or json"))
	}
	if c.MaxConcurrentSearches < 0 {
		errs = append(errs, invalid("MAX_CONCURRENT_SEARCHES", strconv.Itoa(c.MaxConcurrentSearches), "must not be negative"))
	}
	if c.IOLimitBytesPerSec < 0 {
		errs = append(errs, invalid("IO_LIMIT_BYTES_PER_SEC", strconv.FormatInt(c.IOLimitBytesPerSec, 10), "must not be negative"))
	}
	if c.GraphCacheSize < 0 {
		errs = append(errs, invalid("GRAPH_CACHE_SIZE", strconv.Itoa(c.GraphCacheSize), "must not be negative"))
	}
	return errors.Join(errs...)
}

func invalid(name, value, reason string) error {
	return fmt.Errorf("%w: %s=%q: %s", ErrInvalid, name, value, reason)
}

type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) get(name string) (string, bool) {
	v, ok := p.lookup(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (p *parser) str(name string, dst *string) {
	if v, ok := p.get(name); ok {
		*dst = v
	}
}

func (p *parser) boolean(name string, dst *bool) {
	v, ok := p.get(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, invalid(name, v, "want a boolean"))
		return
	}
	*dst = b
}

func (p *parser) integer(name string, dst *int) {
	v, ok := p.get(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, invalid(name, v, "want an integer"))
		return
	}
	*dst = n
}

func (p *parser) int64(name string, dst *int64) {
	v, ok := p.get(name)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.errs = append(p.errs, invalid(name, v, "want an integer"))
		return
	}
	*dst = n
}

func (p *parser) level(name string, dst *slog.Level) {
	v, ok := p.get(name)
	if !ok {
		return
	}
	if err := dst.UnmarshalText([]byte(v)); err != nil {
		p.errs = append(p.errs, invalid(name, v, "want debug, info, warn or error"))
	}
}

func (p *parser) algorithm(name string, dst *search.Algorithm) {
	v, ok := p.get(name)
	if !ok {
		return
	}
	a, err := search.ParseAlgorithm(v)
	if err != nil {
		p.errs = append(p.errs, invalid(name, v, err.Error()))
		return
	}
	*dst = a
}

func (p *parser) compression(name string, dst *codec.Compression) {
	v, ok := p.get(name)
	if !ok {
		return
	}
	c, err := codec.ParseCompression(v)
	if err != nil {
		p.errs = append(p.errs, invalid(name, v, "want none, zstd or lz4"))
		return
	}
	*dst = c
}
