package port

import "github.com/vertextoedge/fsreclaim/internal/domain"

// WalkFunc receives the metadata of one regular file. Returning an error
// aborts the walk and is propagated to the caller.
type WalkFunc func(domain.Candidate) error

// MetadataSource yields (path, size, last-access-time) for every regular
// file reachable from a root. Traversal order is unspecified; entries whose
// metadata cannot be read are silently skipped.
type MetadataSource interface {
	Walk(root string, fn WalkFunc) error
}
