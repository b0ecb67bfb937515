// Package minio stores graphs and search results on MinIO or any other
// S3-compatible endpoint through the minio-go client.
//
// # Basic Usage
//
//	store, err := minio.Dial(ctx, minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "graphs",
//	})
package minio
