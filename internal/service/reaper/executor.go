package reaper

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vertextoedge/fsreclaim/internal/domain"
	"github.com/vertextoedge/fsreclaim/internal/port"
)

// Report summarizes one eviction run.
type Report struct {
	// Files holds the candidates that were deleted (or, in dry-run mode,
	// would have been), drained most-recently-accessed first.
	Files []domain.Candidate

	// FreedBytes is the aggregate size of Files.
	FreedBytes int64

	// Failed counts deletions that failed and were skipped.
	Failed int

	// ShortfallBytes is the part of the deficit the run could not cover
	// because too few files were old enough.
	ShortfallBytes int64

	DryRun bool
}

// Executor drains the final candidate set, deleting files or, in dry-run
// mode, only recording them.
type Executor struct {
	remover port.FileRemover
	dryRun  bool
	logger  *zap.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(remover port.FileRemover, dryRun bool, logger *zap.Logger) *Executor {
	return &Executor{
		remover: remover,
		dryRun:  dryRun,
		logger:  logger,
	}
}

// Execute drains the set to empty. A failed deletion is skipped: it does
// not count toward the freed total, does not abort the remaining drain and
// is not retried. Failures are aggregated into a single warning log.
func (e *Executor) Execute(set *CandidateSet) *Report {
	report := &Report{DryRun: e.dryRun}
	var softErrs error

	for set.Len() > 0 {
		c := set.PopMostRecent()

		if e.dryRun {
			report.Files = append(report.Files, c)
			report.FreedBytes += c.Size
			e.logger.Debug("would delete file",
				zap.String("path", c.Path),
				zap.Int64("size", c.Size),
				zap.Time("accessed_at", c.AccessedAt))
			continue
		}

		if err := e.remover.Remove(c.Path); err != nil {
			report.Failed++
			softErrs = multierr.Append(softErrs, fmt.Errorf("%s: %w", c.Path, err))
			continue
		}

		report.Files = append(report.Files, c)
		report.FreedBytes += c.Size
		e.logger.Debug("deleted file",
			zap.String("path", c.Path),
			zap.Int64("size", c.Size),
			zap.Time("accessed_at", c.AccessedAt))
	}

	if softErrs != nil {
		e.logger.Warn("some deletions failed and were skipped",
			zap.Int("failed", report.Failed),
			zap.Error(softErrs))
	}

	return report
}
