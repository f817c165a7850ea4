package filesystem

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestRemover_Remove(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/cache/present.dat", 10, time.Now())

	r := NewRemover(fs)

	if err := r.Remove("/cache/present.dat"); err != nil {
		t.Fatalf("Remove() error = %v for existing file", err)
	}
	if exists, _ := afero.Exists(fs, "/cache/present.dat"); exists {
		t.Fatal("file still exists after Remove()")
	}

	if err := r.Remove("/cache/gone.dat"); err == nil {
		t.Fatal("Remove() error = nil, want error for missing file")
	}
}
