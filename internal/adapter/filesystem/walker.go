package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/vertextoedge/fsreclaim/internal/domain"
	"github.com/vertextoedge/fsreclaim/internal/port"
)

// Walker streams regular-file metadata from a filesystem subtree.
type Walker struct {
	fs     afero.Fs
	logger *zap.Logger
}

// Ensure Walker implements port.MetadataSource
var _ port.MetadataSource = (*Walker)(nil)

// NewWalker creates a new Walker over the given filesystem.
func NewWalker(fs afero.Fs, logger *zap.Logger) *Walker {
	return &Walker{fs: fs, logger: logger}
}

// Walk visits every regular file under root and passes its metadata to fn.
// Entries whose metadata cannot be read are skipped without aborting the
// walk; an unreadable root is an error.
func (w *Walker) Walk(root string, fn port.WalkFunc) error {
	if _, err := w.fs.Stat(root); err != nil {
		return fmt.Errorf("failed to access root path: %w", err)
	}

	return afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Debug("skipping unreadable entry",
				zap.String("path", path),
				zap.Error(err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		return fn(domain.Candidate{
			Path:       path,
			Size:       info.Size(),
			AccessedAt: accessTime(info),
		})
	})
}
