package fsxlocal

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantumminds/council/pkg/fsx"
)

// LocalFileSystem serves files from a directory on disk
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates a file system rooted at basePath. The directory
// is created if it does not exist.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileSystem{basePath: abs}, nil
}

// GetBasePath returns the absolute storage root.
func (l *LocalFileSystem) GetBasePath() string {
	return l.basePath
}

// resolve joins path under the base and rejects escapes above the root.
func (l *LocalFileSystem) resolve(path string) (string, error) {
	full := filepath.Join(l.basePath, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, l.basePath) {
		return "", fsx.ErrFileNotFound().WithDetail("path", path)
	}
	return full, nil
}

func (l *LocalFileSystem) Read(_ context.Context, path string) ([]byte, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrFileNotFound().WithDetail("path", path)
		}
		return nil, fsx.ErrReadFailed().WithDetail("path", path).WithCause(err)
	}
	return data, nil
}

func (l *LocalFileSystem) Exists(_ context.Context, path string) (bool, error) {
	full, err := l.resolve(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fsx.ErrReadFailed().WithDetail("path", path).WithCause(err)
	}
	return true, nil
}
