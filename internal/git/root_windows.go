//go:build windows

package git

// isMountPoint always reports false on Windows. filepath.Dir is a fixed
// point at the volume root, so the walk in FindRoot terminates there.
func isMountPoint(string) bool { return false }
