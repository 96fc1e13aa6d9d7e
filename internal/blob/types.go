// Package blob is the storage facade the patcher depends on. Concrete drivers
// live under internal/infra/blob and are only reachable through Open and the
// New* constructors here.
package blob

import "formrestyle/internal/blob/core"

type (
	Driver     = core.Driver
	PutOptions = core.PutOptions
	Info       = core.Info
	Store      = core.Store
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

// ErrNotFound is wrapped by every driver for a missing key.
var ErrNotFound = core.ErrNotFound
