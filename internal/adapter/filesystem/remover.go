package filesystem

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/vertextoedge/fsreclaim/internal/port"
)

// Remover deletes files from a filesystem.
type Remover struct {
	fs afero.Fs
}

// Ensure Remover implements port.FileRemover
var _ port.FileRemover = (*Remover)(nil)

// NewRemover creates a new Remover over the given filesystem.
func NewRemover(fs afero.Fs) *Remover {
	return &Remover{fs: fs}
}

// Remove deletes a single file.
func (r *Remover) Remove(path string) error {
	if err := r.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
