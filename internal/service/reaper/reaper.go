// Package reaper reclaims disk space under a directory tree by deleting
// files in least-recently-accessed order until a configured amount of free
// space is available on the volume.
package reaper

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vertextoedge/fsreclaim/internal/domain"
	"github.com/vertextoedge/fsreclaim/internal/port"
)

// Config holds the knobs for an eviction run.
type Config struct {
	// TargetAvailableBytes is the minimum free space to leave on the volume.
	TargetAvailableBytes int64

	// OlderThan protects files accessed within this duration from eviction.
	OlderThan time.Duration

	// DryRun reports instead of deleting.
	DryRun bool
}

// Service runs the probe, scan, reconcile and evict pipeline. Each run is
// stateless: the candidate set is re-derived from live filesystem metadata
// every time, and nothing is persisted between runs.
type Service struct {
	cfg     Config
	source  port.MetadataSource
	probe   port.SpaceProbe
	remover port.FileRemover
	logger  *zap.Logger
}

// New creates a new Service.
func New(cfg Config, source port.MetadataSource, probe port.SpaceProbe, remover port.FileRemover, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		source:  source,
		probe:   probe,
		remover: remover,
		logger:  logger,
	}
}

// Run performs one synchronous eviction pass over root. The filesystem is
// not locked against concurrent writers: available space is probed once
// before the scan and once after it, and deletions then proceed best-effort
// against that second snapshot.
func (s *Service) Run(root string) (*Report, error) {
	logger := s.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("root", root),
	)

	available, err := s.probe.AvailableBytes(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSpaceProbe, err)
	}

	ageFloor := time.Now().Add(-s.cfg.OlderThan)
	target := domain.NewEvictionTarget(s.cfg.TargetAvailableBytes, available, ageFloor)

	logger.Info("probed available space",
		zap.String("available", humanize.IBytes(uint64(available))),
		zap.String("target", humanize.IBytes(uint64(s.cfg.TargetAvailableBytes))),
		zap.String("deficit", humanize.IBytes(uint64(target.RequiredBytes))))

	if target.RequiredBytes == 0 {
		logger.Info("available space already at target, nothing to delete")
		return &Report{DryRun: s.cfg.DryRun}, nil
	}

	set, stats, err := Select(s.source, root, target, logger)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	logger.Info("scan complete",
		zap.Int("scanned", stats.Scanned),
		zap.Int("admitted", stats.Admitted),
		zap.Int("released", stats.Released),
		zap.Int("skipped_recent", stats.SkippedRecent),
		zap.Int("candidates", set.Len()),
		zap.String("candidate_bytes", humanize.IBytes(uint64(set.TotalSize()))))

	// Other processes may have consumed or freed space while the scan ran.
	// Recompute the deficit from a fresh probe before touching anything,
	// with the subtraction signed and clamped: available space can exceed
	// the target by now.
	available, err = s.probe.AvailableBytes(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSpaceProbe, err)
	}
	required := s.cfg.TargetAvailableBytes - available
	if required < 0 {
		required = 0
	}

	Reconcile(set, required, logger)

	var shortfall int64
	if set.TotalSize() < required {
		shortfall = required - set.TotalSize()
		logger.Warn("not enough eligible files to reach the free-space target",
			zap.String("shortfall", humanize.IBytes(uint64(shortfall))),
			zap.Duration("older_than", s.cfg.OlderThan))
	}

	report := NewExecutor(s.remover, s.cfg.DryRun, logger).Execute(set)
	report.ShortfallBytes = shortfall

	logger.Info("eviction run complete",
		zap.Bool("dry_run", report.DryRun),
		zap.Int("files", len(report.Files)),
		zap.Int("failed", report.Failed),
		zap.String("freed", humanize.IBytes(uint64(report.FreedBytes))))

	return report, nil
}
