//go:build unix

package git

import (
	"os"
	"path/filepath"
	"syscall"
)

// isMountPoint reports whether dir sits on a different device than its
// parent directory. Stat failures report false so the walk keeps going;
// the filesystem root check in FindRoot still terminates it.
func isMountPoint(dir string) bool {
	parent := filepath.Dir(dir)
	if parent == dir {
		return true
	}
	dirInfo, err := os.Stat(dir)
	if err != nil {
		return false
	}
	parentInfo, err := os.Stat(parent)
	if err != nil {
		return false
	}
	dirStat, ok := dirInfo.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	parentStat, ok := parentInfo.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return dirStat.Dev != parentStat.Dev
}
