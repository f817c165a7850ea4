//go:build !windows
// +build !windows

package filesystem

import (
	"fmt"
	"syscall"
)

// AvailableBytes returns the space available to unprivileged users on the
// volume containing path.
func (p *Probe) AvailableBytes(path string) (int64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("failed to get disk stats for %s: %w", path, err)
	}

	return int64(stat.Bavail) * int64(stat.Bsize), nil
}
