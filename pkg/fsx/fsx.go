package fsx

import (
	"context"
	"net/http"

	"github.com/quantumminds/council/pkg/errx"
)

// FileSystem abstracts where static documents live (local directory or an
// S3 bucket). Paths are relative to the storage root.
type FileSystem interface {
	// Read returns the full content of the file at path
	Read(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether the file at path exists
	Exists(ctx context.Context, path string) (bool, error)
}

var ErrRegistry = errx.NewRegistry("FSX")

var (
	CodeFileNotFound = ErrRegistry.Register("FILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeReadFailed   = ErrRegistry.Register("READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
)

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileNotFound)
}

func ErrReadFailed() *errx.Error {
	return ErrRegistry.New(CodeReadFailed)
}
