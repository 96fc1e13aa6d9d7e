// Package core defines the storage abstraction that forms are read from and
// written back to.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver names a storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3" // also MinIO and other S3 compatible endpoints
	DriverMemory     Driver = "memory"
)

// PutOptions carries what a write keeps besides the bytes. Drivers without
// a place for ContentType or Metadata ignore them.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored blob. ETag is driver specific: the fs and memory
// drivers use the hex sha256 of the content.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	Metadata     map[string]string
	LastModified time.Time
}

// Store reads and overwrites blobs by key. Missing keys produce errors
// wrapping ErrNotFound.
type Store interface {
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	// Put creates or replaces the blob at key.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Driver() Driver
}

var ErrNotFound = errors.New("blobstore: not found")
