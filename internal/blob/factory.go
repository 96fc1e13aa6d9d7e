package blob

import (
	"context"
	"fmt"

	"formrestyle/internal/infra/blob/fs"
	"formrestyle/internal/infra/blob/memory"
	infraS3 "formrestyle/internal/infra/blob/s3"
)

// S3Config configures the s3 driver.
type S3Config = infraS3.Config

// Config selects and parameterizes a backend.
type Config struct {
	Driver Driver
	// FSRoot is the directory holding targets when Driver is fs (default ".").
	FSRoot string
	S3     S3Config
}

// Open returns the Store named by cfg.Driver. An empty driver means fs.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}

// NewFilesystem returns a Store over the files in root, which must exist.
func NewFilesystem(root string) (Store, error) { return fs.New(root) }

func NewMemory() Store { return memory.New() }

// NewS3 returns a Store over objects in cfg.Bucket under cfg.Prefix.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) { return infraS3.New(ctx, cfg) }

// NewMockS3ForTests returns an S3 Store backed by an in-process fake endpoint.
func NewMockS3ForTests() Store { return infraS3.NewMockForTests() }
