package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProbe_AvailableBytes(t *testing.T) {
	avail, err := NewProbe().AvailableBytes(os.TempDir())
	if err != nil {
		t.Fatalf("AvailableBytes() error = %v", err)
	}
	if avail <= 0 {
		t.Fatalf("AvailableBytes() = %d, want > 0", avail)
	}
}

func TestProbe_MissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	if _, err := NewProbe().AvailableBytes(missing); err == nil {
		t.Fatal("AvailableBytes() error = nil, want error for missing path")
	}
}
