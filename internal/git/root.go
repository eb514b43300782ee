package git

import (
	"os"
	"path/filepath"
)

// FindRoot walks upward from startDir and returns the first directory
// containing a .git directory. The walk gives up at the filesystem root or
// when the next step would cross a mount boundary, so discovery never
// leaves the device the start directory lives on. Absence is a normal
// outcome, not an error: ok is false and the path is empty.
func FindRoot(startDir string) (string, bool) {
	dir := filepath.Clean(startDir)
	for {
		parent := filepath.Dir(dir)
		if parent == dir || isMountPoint(dir) {
			return "", false
		}
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir, true
		}
		dir = parent
	}
}
