package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fileLoaderBackend reads images from the local filesystem. Relative paths resolve
// against baseDir.
type fileLoaderBackend struct {
	baseDir string
}

var _ loaderBackend = &fileLoaderBackend{}

func newFileLoaderBackend(baseDir string) *fileLoaderBackend {
	return &fileLoaderBackend{baseDir: baseDir}
}

func (b *fileLoaderBackend) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := location
	if !filepath.IsAbs(path) && b.baseDir != "" {
		path = filepath.Join(b.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	return f, nil
}
