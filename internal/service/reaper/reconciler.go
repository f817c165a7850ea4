package reaper

import "go.uber.org/zap"

// Reconcile prunes a scanned candidate set against a freshly recomputed
// byte deficit, without rescanning the filesystem. Other processes may have
// freed or consumed space during the scan, so the deficit the set was built
// for can be stale in either direction.
//
// A deficit at or below zero empties the set: the pressure resolved itself.
// A smaller deficit sheds the most recently accessed members while the rest
// still covers it. A larger deficit leaves the set untouched — the set
// never grows here, and the shortfall is surfaced by the caller instead of
// paying for a second walk.
func Reconcile(set *CandidateSet, requiredBytes int64, logger *zap.Logger) {
	if requiredBytes <= 0 {
		for set.Len() > 0 {
			set.PopMostRecent()
		}
		logger.Debug("space pressure resolved during scan, releasing all candidates")
		return
	}

	for set.Len() > 0 && set.TotalSize()-set.PeekMostRecent().Size > requiredBytes {
		dropped := set.PopMostRecent()
		logger.Debug("released candidate after deficit shrank",
			zap.String("path", dropped.Path),
			zap.Int64("size", dropped.Size))
	}
}
