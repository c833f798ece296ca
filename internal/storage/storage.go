// Package storage holds attachment blobs. The rows live in Postgres;
// the bytes live behind this interface, on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
)

type Storage interface {
	// Put stores a blob and returns its storage key.
	Put(ctx context.Context, fileName string, data io.Reader) (string, error)

	// Get opens a blob by storage key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a blob by storage key.
	Delete(ctx context.Context, key string) error
}

// FromEnv picks a backend from STORAGE_BACKEND ("local" or "s3",
// default local).
func FromEnv() (Storage, error) {
	switch backend := os.Getenv("STORAGE_BACKEND"); backend {
	case "", "local":
		dir := os.Getenv("STORAGE_LOCAL_DIR")
		if dir == "" {
			dir = "./data/attachments"
		}
		return NewLocal(dir)
	case "s3":
		bucket := os.Getenv("AWS_S3_BUCKET")
		if bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET is required for s3 storage")
		}
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-east-1"
		}
		return NewS3(bucket, region)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// newKey derives a unique storage key, prefixed by the first uuid byte
// to keep directories shallow.
func newKey(fileName string) string {
	id := uuid.New().String()
	base := strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(path.Base(fileName))
	return fmt.Sprintf("%s/%s_%s", id[:2], id, base)
}
