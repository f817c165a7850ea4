//go:build linux
// +build linux

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// accessTime extracts the last access time from the stat data. Synthetic
// filesystems (such as the in-memory one used in tests) carry no stat
// data; the modification time stands in for them.
func accessTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	}
	return info.ModTime()
}
