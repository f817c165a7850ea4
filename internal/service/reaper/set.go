package reaper

import (
	"container/heap"

	"github.com/vertextoedge/fsreclaim/internal/domain"
)

// CandidateSet holds eviction candidates ordered by recency of access. The
// most recently accessed member sits on top, since it is the first to be
// let go whenever the set exceeds its byte target. The set is built by the
// Selector, handed to Reconcile, and drained by the Executor; it is never
// shared between them.
type CandidateSet struct {
	h         recencyHeap
	totalSize int64
}

// NewCandidateSet creates an empty CandidateSet.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{}
}

// Len returns the number of candidates held.
func (s *CandidateSet) Len() int {
	return len(s.h)
}

// TotalSize returns the cumulative size in bytes of all candidates held.
func (s *CandidateSet) TotalSize() int64 {
	return s.totalSize
}

// Push admits a candidate.
func (s *CandidateSet) Push(c domain.Candidate) {
	heap.Push(&s.h, c)
	s.totalSize += c.Size
}

// PeekMostRecent returns the candidate with the latest access time without
// removing it. The set must be non-empty.
func (s *CandidateSet) PeekMostRecent() domain.Candidate {
	return s.h[0]
}

// PopMostRecent removes and returns the candidate with the latest access
// time. The set must be non-empty.
func (s *CandidateSet) PopMostRecent() domain.Candidate {
	c := heap.Pop(&s.h).(domain.Candidate)
	s.totalSize -= c.Size
	return c
}

// recencyHeap is a max-heap of candidates keyed on AccessedAt.
type recencyHeap []domain.Candidate

func (h recencyHeap) Len() int { return len(h) }

func (h recencyHeap) Less(i, j int) bool {
	return h[i].AccessedAt.After(h[j].AccessedAt)
}

func (h recencyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *recencyHeap) Push(x any) {
	*h = append(*h, x.(domain.Candidate))
}

func (h *recencyHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
