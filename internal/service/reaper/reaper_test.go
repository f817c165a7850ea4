package reaper

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vertextoedge/fsreclaim/internal/domain"
	"github.com/vertextoedge/fsreclaim/internal/port"
)

// fakeSource implements port.MetadataSource over a fixed slice.
type fakeSource struct {
	files []domain.Candidate
	walks int
}

func (s *fakeSource) Walk(root string, fn port.WalkFunc) error {
	s.walks++
	for _, f := range s.files {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func sourceOf(files ...domain.Candidate) *fakeSource {
	return &fakeSource{files: files}
}

// fakeProbe implements port.SpaceProbe, returning the configured values in
// sequence and repeating the last one once exhausted.
type fakeProbe struct {
	values []int64
	err    error
	calls  int
}

func (p *fakeProbe) AvailableBytes(path string) (int64, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	i := p.calls - 1
	if i >= len(p.values) {
		i = len(p.values) - 1
	}
	return p.values[i], nil
}

// liveCand builds a candidate relative to the wall clock, which the
// pipeline uses to compute the age floor.
func liveCand(path string, size int64, age time.Duration) domain.Candidate {
	return domain.Candidate{
		Path:       path,
		Size:       size,
		AccessedAt: time.Now().Add(-age),
	}
}

func newService(cfg Config, source port.MetadataSource, probe port.SpaceProbe, remover port.FileRemover) *Service {
	return New(cfg, source, probe, remover, zap.NewNop())
}

func TestService_DeletesOldestUntilTarget(t *testing.T) {
	source := sourceOf(
		liveCand("/cache/new", 300, 5*time.Minute),
		liveCand("/cache/old", 300, 3*time.Hour),
		liveCand("/cache/older", 200, 5*time.Hour),
	)
	probe := &fakeProbe{values: []int64{600, 600}}
	remover := &fakeRemover{}

	svc := newService(Config{
		TargetAvailableBytes: 1000,
		OlderThan:            10 * time.Minute,
	}, source, probe, remover)

	report, err := svc.Run("/cache")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Deficit is 400: the two old files (500 bytes) cover it, the recent
	// one is protected by the age floor.
	got := pathSet(report.Files)
	if !got["/cache/old"] || !got["/cache/older"] || len(got) != 2 {
		t.Errorf("deleted %v, want the two old files", got)
	}
	if report.FreedBytes != 500 {
		t.Errorf("FreedBytes = %d, want 500", report.FreedBytes)
	}
	if report.ShortfallBytes != 0 {
		t.Errorf("ShortfallBytes = %d, want 0", report.ShortfallBytes)
	}
	if probe.calls != 2 {
		t.Errorf("probe calls = %d, want 2 (before and after the scan)", probe.calls)
	}
}

func TestService_NoDeficitSkipsScan(t *testing.T) {
	source := sourceOf(liveCand("/cache/old", 100, time.Hour))
	probe := &fakeProbe{values: []int64{5000}}
	remover := &fakeRemover{}

	svc := newService(Config{TargetAvailableBytes: 1000}, source, probe, remover)

	report, err := svc.Run("/cache")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if source.walks != 0 {
		t.Errorf("walks = %d, want 0 when space is already at target", source.walks)
	}
	if len(report.Files) != 0 || len(remover.calls) != 0 {
		t.Errorf("files deleted despite no deficit: %v", remover.calls)
	}
}

// Available space grew past the target between the two probes. The signed,
// clamped recomputation must release every candidate instead of
// underflowing into a huge deficit.
func TestService_SpaceFreedDuringScan(t *testing.T) {
	source := sourceOf(
		liveCand("/cache/a", 300, time.Hour),
		liveCand("/cache/b", 300, 2*time.Hour),
	)
	probe := &fakeProbe{values: []int64{600, 5000}}
	remover := &fakeRemover{}

	svc := newService(Config{
		TargetAvailableBytes: 1000,
		OlderThan:            time.Minute,
	}, source, probe, remover)

	report, err := svc.Run("/cache")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(remover.calls) != 0 {
		t.Errorf("deleted %v, want nothing once the deficit resolved itself", remover.calls)
	}
	if report.FreedBytes != 0 || report.ShortfallBytes != 0 {
		t.Errorf("report = %+v, want zero freed and zero shortfall", report)
	}
}

func TestService_ShrunkenDeficitPrunesCandidates(t *testing.T) {
	source := sourceOf(
		liveCand("/cache/oldest", 250, 5*time.Hour),
		liveCand("/cache/mid", 250, 3*time.Hour),
		liveCand("/cache/newest", 250, 1*time.Hour),
	)
	// First probe: 400 bytes missing. Second: only 100.
	probe := &fakeProbe{values: []int64{600, 900}}
	remover := &fakeRemover{}

	svc := newService(Config{
		TargetAvailableBytes: 1000,
		OlderThan:            time.Minute,
	}, source, probe, remover)

	report, err := svc.Run("/cache")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := pathSet(report.Files)
	if !got["/cache/oldest"] || len(got) != 1 {
		t.Errorf("deleted %v, want only the oldest file for the shrunken deficit", got)
	}
}

func TestService_ShortfallReported(t *testing.T) {
	source := sourceOf(
		liveCand("/cache/old", 100, time.Hour),
		liveCand("/cache/recent", 5000, time.Minute),
	)
	probe := &fakeProbe{values: []int64{0, 0}}
	remover := &fakeRemover{}

	svc := newService(Config{
		TargetAvailableBytes: 1000,
		OlderThan:            30 * time.Minute,
	}, source, probe, remover)

	report, err := svc.Run("/cache")
	if err != nil {
		t.Fatalf("Run() error = %v, shortfall must not be an error", err)
	}
	if report.ShortfallBytes != 900 {
		t.Errorf("ShortfallBytes = %d, want 900", report.ShortfallBytes)
	}
	if report.FreedBytes != 100 {
		t.Errorf("FreedBytes = %d, want 100 (best effort still deletes)", report.FreedBytes)
	}
}

func TestService_DryRunIsIdempotent(t *testing.T) {
	files := []domain.Candidate{
		liveCand("/cache/a", 300, time.Hour),
		liveCand("/cache/b", 300, 2*time.Hour),
		liveCand("/cache/c", 300, 30*time.Minute),
	}
	remover := &fakeRemover{}

	run := func() *Report {
		svc := newService(Config{
			TargetAvailableBytes: 1000,
			OlderThan:            time.Minute,
			DryRun:               true,
		}, sourceOf(files...), &fakeProbe{values: []int64{500, 500}}, remover)
		report, err := svc.Run("/cache")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return report
	}

	first, second := run(), run()

	if len(remover.calls) != 0 {
		t.Fatalf("dry-run deleted files: %v", remover.calls)
	}
	if !reflect.DeepEqual(first.Files, second.Files) {
		t.Errorf("dry-run not idempotent:\nfirst:  %v\nsecond: %v", first.Files, second.Files)
	}
	if first.FreedBytes != second.FreedBytes {
		t.Errorf("byte totals differ: %d vs %d", first.FreedBytes, second.FreedBytes)
	}
}

func TestService_ProbeFailureIsFatal(t *testing.T) {
	source := sourceOf()
	probe := &fakeProbe{err: errors.New("no such volume")}

	svc := newService(Config{TargetAvailableBytes: 1000}, source, probe, &fakeRemover{})

	if _, err := svc.Run("/cache"); !errors.Is(err, domain.ErrSpaceProbe) {
		t.Fatalf("Run() error = %v, want ErrSpaceProbe", err)
	}
	if source.walks != 0 {
		t.Errorf("walked the tree despite a failed probe")
	}
}

func TestService_WalkFailureIsFatal(t *testing.T) {
	probe := &fakeProbe{values: []int64{0}}
	source := &failingSource{err: errors.New("root vanished")}

	svc := newService(Config{TargetAvailableBytes: 100}, source, probe, &fakeRemover{})

	if _, err := svc.Run("/cache"); err == nil {
		t.Fatal("Run() error = nil, want walk failure")
	}
}

type failingSource struct {
	err error
}

func (s *failingSource) Walk(root string, fn port.WalkFunc) error {
	return s.err
}
