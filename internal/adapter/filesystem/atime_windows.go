//go:build windows
// +build windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// accessTime extracts the last access time from the file attribute data.
// Synthetic filesystems (such as the in-memory one used in tests) carry
// no attribute data; the modification time stands in for them.
func accessTime(info os.FileInfo) time.Time {
	if attrs, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, attrs.LastAccessTime.Nanoseconds())
	}
	return info.ModTime()
}
