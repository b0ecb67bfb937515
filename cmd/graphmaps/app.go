package main

import (
	"context"
	"fmt"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	promclient "github.com/prometheus/client_golang/prometheus"

	graphmaps "github.com/HeNeos/graph-algorithms-in-maps"
	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/blobstore/minio"
	"github.com/HeNeos/graph-algorithms-in-maps/blobstore/s3"
	"github.com/HeNeos/graph-algorithms-in-maps/catalog"
	"github.com/HeNeos/graph-algorithms-in-maps/config"
	"github.com/HeNeos/graph-algorithms-in-maps/graphio"
	prommetrics "github.com/HeNeos/graph-algorithms-in-maps/metrics/prometheus"
	"github.com/HeNeos/graph-algorithms-in-maps/resource"
	"github.com/HeNeos/graph-algorithms-in-maps/results"
)

// app holds the components built from a Config.
type app struct {
	cfg      config.Config
	logger   *graphmaps.Logger
	rc       *resource.Controller
	graphs   blobstore.BlobStore
	paths    blobstore.BlobStore
	catalog  catalog.Catalog
	source   *graphio.CachedSource
	results  *results.Store
	registry *promclient.Registry
	router   *graphmaps.Router
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: newLogger(cfg),
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:      cfg.GraphCacheBytes,
			MaxConcurrentSearches: int64(cfg.MaxConcurrentSearches),
			IOLimitBytesPerSec:    cfg.IOLimitBytesPerSec,
		}),
		registry: promclient.NewRegistry(),
	}

	var err error
	if a.graphs, err = openStore(ctx, cfg, cfg.GraphsBucket, "graphs"); err != nil {
		return nil, fmt.Errorf("open graph store: %w", err)
	}
	if a.paths, err = openStore(ctx, cfg, cfg.PathsBucket, "paths"); err != nil {
		return nil, fmt.Errorf("open solution store: %w", err)
	}
	if a.catalog, err = openCatalog(ctx, cfg); err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	loader := graphio.NewLoader(a.graphs,
		graphio.WithResourceController(a.rc),
	)
	a.source = graphio.NewCachedSource(loader, cfg.GraphCacheSize, a.rc)
	a.results = results.NewStore(a.paths,
		results.WithCompression(cfg.Compression),
		results.WithResourceController(a.rc),
	)

	opts := []graphmaps.Option{
		graphmaps.WithLogger(a.logger),
		graphmaps.WithMetricsCollector(prommetrics.New(a.registry)),
		graphmaps.WithResourceController(a.rc),
		graphmaps.WithDefaultAlgorithm(cfg.DefaultAlgorithm),
	}
	if a.catalog != nil {
		opts = append(opts, graphmaps.WithCatalog(a.catalog))
	}
	a.router = graphmaps.New(a.source, a.results, opts...)

	a.logger.Debug("components ready",
		"backend", cfg.StorageBackend,
		"catalog", cfg.CatalogTable,
		"compression", cfg.Compression.String(),
	)
	return a, nil
}

func newLogger(cfg config.Config) *graphmaps.Logger {
	if cfg.LogFormat == "json" {
		return graphmaps.NewJSONLogger(cfg.LogLevel)
	}
	return graphmaps.NewTextLogger(cfg.LogLevel)
}

// openStore opens the store for one bucket. Local stores use a
// subdirectory named dir of LOCAL_ROOT.
func openStore(ctx context.Context, cfg config.Config, bucket, dir string) (blobstore.BlobStore, error) {
	switch cfg.StorageBackend {
	case config.BackendS3:
		opts := []s3.Option{
			s3.WithRegion(cfg.AWSRegion),
			s3.WithPrefix(cfg.StoragePrefix),
		}
		if cfg.S3Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.S3Endpoint, true))
		}
		return s3.New(ctx, bucket, opts...)
	case config.BackendMinIO:
		return minio.Dial(ctx, minio.Config{
			Endpoint:     cfg.MinIOEndpoint,
			AccessKey:    cfg.MinIOAccessKey,
			SecretKey:    cfg.MinIOSecretKey,
			Bucket:       bucket,
			Prefix:       cfg.StoragePrefix,
			Region:       cfg.AWSRegion,
			Secure:       cfg.MinIOSecure,
			CreateBucket: true,
		})
	case config.BackendLocal:
		return blobstore.NewLocalStore(filepath.Join(cfg.LocalRoot, dir)), nil
	case config.BackendMemory:
		return blobstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// openCatalog returns the DynamoDB catalog named by CATALOG_TABLE, or nil
// when none is configured.
func openCatalog(ctx context.Context, cfg config.Config) (catalog.Catalog, error) {
	if cfg.CatalogTable == "" {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}
	return catalog.NewDynamoCatalog(dynamodb.NewFromConfig(awsCfg), cfg.CatalogTable), nil
}
