package reaper

import (
	"go.uber.org/zap"

	"github.com/vertextoedge/fsreclaim/internal/domain"
	"github.com/vertextoedge/fsreclaim/internal/port"
)

// SelectorStats counts how the selector disposed of the scanned files.
type SelectorStats struct {
	Scanned       int // regular files seen
	Admitted      int // pushed onto the candidate set
	Released      int // popped again after an older file displaced them
	SkippedRecent int // accessed at or after the age floor
	SkippedCover  int // newer than the worst member of an already-covering set
}

// Selector builds a near-minimal cover of the byte deficit in a single
// streaming pass over an unsorted metadata stream. It holds at most the
// files needed to cover the deficit plus one, never the whole stream, and
// runs in O(n log k) for k kept candidates.
type Selector struct {
	target domain.EvictionTarget
	set    *CandidateSet
	stats  SelectorStats
	logger *zap.Logger
}

// NewSelector creates a Selector for the given target.
func NewSelector(target domain.EvictionTarget, logger *zap.Logger) *Selector {
	return &Selector{
		target: target,
		set:    NewCandidateSet(),
		logger: logger,
	}
}

// Observe considers one file. A file is admitted while the set does not yet
// cover the deficit, or when it was accessed no later than the most
// recently accessed member already held. A file newer than the worst member
// of a covering set could never survive the shed loop below, so it is
// skipped outright rather than admitted and immediately popped.
func (s *Selector) Observe(c domain.Candidate) {
	s.stats.Scanned++

	if !s.target.Eligible(c) {
		s.stats.SkippedRecent++
		return
	}

	covered := s.set.Len() > 0 && s.set.TotalSize() >= s.target.RequiredBytes
	if covered && c.AccessedAt.After(s.set.PeekMostRecent().AccessedAt) {
		s.stats.SkippedCover++
		return
	}

	s.set.Push(c)
	s.stats.Admitted++

	// Shed the newest members the cover no longer needs. The set can only
	// be over budget because of the admission above, so at least one
	// member always remains.
	for s.set.TotalSize()-s.set.PeekMostRecent().Size > s.target.RequiredBytes {
		dropped := s.set.PopMostRecent()
		s.stats.Released++
		s.logger.Debug("released candidate no longer needed for cover",
			zap.String("path", dropped.Path),
			zap.Int64("size", dropped.Size))
	}
}

// Result hands over the accumulated set. The selector must not be used
// again afterwards.
func (s *Selector) Result() *CandidateSet {
	return s.set
}

// Stats returns the disposal counters for the pass so far.
func (s *Selector) Stats() SelectorStats {
	return s.stats
}

// Select runs a full selection pass over the metadata source rooted at
// root. A walk failure (unreadable root) is fatal; unreadable entries
// below the root are skipped by the source itself.
func Select(source port.MetadataSource, root string, target domain.EvictionTarget, logger *zap.Logger) (*CandidateSet, SelectorStats, error) {
	sel := NewSelector(target, logger)
	err := source.Walk(root, func(c domain.Candidate) error {
		sel.Observe(c)
		return nil
	})
	if err != nil {
		return nil, sel.Stats(), err
	}
	return sel.Result(), sel.Stats(), nil
}
