package graphio

import (
	"github.com/HeNeos/graph-algorithms-in-maps/codec"
	"github.com/HeNeos/graph-algorithms-in-maps/resource"
)

type options struct {
	codec       codec.Codec
	compression codec.Compression
	rc          *resource.Controller
}

// Option configures a Loader or Writer.
type Option func(*options)

// WithCodec sets the JSON codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression frames written blobs with c. Loaders detect frames on their own.
func WithCompression(c codec.Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithResourceController paces storage IO through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

func applyOptions(opts []Option) options {
	o := options{codec: codec.Default}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
