package s3

import (
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
)

const (
	defaultPartSize    = 8 * 1024 * 1024
	defaultConcurrency = 5
)

type options struct {
	prefix       string
	region       string
	endpoint     string
	usePathStyle bool
	partSize     int64
	concurrency  int
}

// Option configures a Store.
type Option func(*options)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion overrides the region resolved from the environment. Only used by New.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the client at a custom S3-compatible endpoint. Only used by New.
func WithEndpoint(endpoint string, usePathStyle bool) Option {
	return func(o *options) {
		o.endpoint = endpoint
		o.usePathStyle = usePathStyle
	}
}

// WithPartSize sets the multipart part size. Values below the S3 minimum are ignored.
func WithPartSize(size int64) Option {
	return func(o *options) {
		if size >= manager.MinUploadPartSize {
			o.partSize = size
		}
	}
}

// WithConcurrency sets the number of parts uploaded in parallel.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		partSize:    defaultPartSize,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
