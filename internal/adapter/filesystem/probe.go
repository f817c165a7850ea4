package filesystem

import "github.com/vertextoedge/fsreclaim/internal/port"

// Probe reports available disk space for a path.
// Platform-specific implementation in disk_unix.go and disk_windows.go.
type Probe struct{}

// Ensure Probe implements port.SpaceProbe
var _ port.SpaceProbe = (*Probe)(nil)

// NewProbe creates a new Probe.
func NewProbe() *Probe {
	return &Probe{}
}
