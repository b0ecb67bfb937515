// Package blobstore abstracts the object storage that holds serialized graphs
// and persisted search results.
//
// BlobStore is keyed by flat names such as "nodes-lima.json". Implementations
// must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, used by tests and the CLI dry run
//   - LocalStore: local filesystem with mmap reads and atomic writes
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: any S3-compatible endpoint through minio-go
package blobstore
