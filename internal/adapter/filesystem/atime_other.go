//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package filesystem

import (
	"os"
	"time"
)

// accessTime falls back to the modification time on platforms without a
// known access-time stat field.
func accessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
