// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "graphs-bucket",
//	    s3.WithPrefix("peru/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// # Features
//
//   - Range reads for partial fetches
//   - Managed multipart uploads for large graphs
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
