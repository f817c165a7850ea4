package domain

import "time"

// Candidate is a regular file under consideration for eviction. It is
// immutable once created and owned by exactly one container at a time.
type Candidate struct {
	Path       string
	Size       int64
	AccessedAt time.Time
}

// EvictionTarget captures how many bytes must be reclaimed and which files
// are too recently used to touch.
type EvictionTarget struct {
	RequiredBytes int64
	AgeFloor      time.Time
}

// NewEvictionTarget computes the byte deficit from the configured free-space
// target and the currently available space. Available space can exceed the
// target, so the subtraction is signed and clamped at zero.
func NewEvictionTarget(targetAvailable, currentAvailable int64, ageFloor time.Time) EvictionTarget {
	required := targetAvailable - currentAvailable
	if required < 0 {
		required = 0
	}
	return EvictionTarget{
		RequiredBytes: required,
		AgeFloor:      ageFloor,
	}
}

// Eligible reports whether the file was last accessed before the age floor.
// Files at or past the floor are never eviction-eligible, regardless of how
// much space is missing.
func (t EvictionTarget) Eligible(c Candidate) bool {
	return c.AccessedAt.Before(t.AgeFloor)
}
