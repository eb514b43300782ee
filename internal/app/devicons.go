package app

import (
	"os"
	"time"

	devicons "github.com/epilande/go-devicons"
)

// statInfo is the minimal os.FileInfo the icon library needs: a name
// to match extensions against and the directory bit.
type statInfo struct {
	path string
	dir  bool
}

func (s statInfo) Name() string { return s.path }
func (s statInfo) Size() int64  { return 0 }
func (s statInfo) Mode() os.FileMode {
	if s.dir {
		return os.ModeDir | 0o755
	}
	return 0
}
func (s statInfo) ModTime() time.Time { return time.Time{} }
func (s statInfo) IsDir() bool        { return s.dir }
func (s statInfo) Sys() any           { return nil }

func deviconForName(name string, isDir bool) string {
	if name == "" {
		return ""
	}
	return devicons.IconForInfo(statInfo{path: name, dir: isDir}).Icon
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}

// uiIconKind identifies decorative icons used around the panes.
type uiIconKind int

const (
	uiIconFilter uiIconKind = iota
	uiIconZoom
	uiIconBranch
)

func uiIcon(icon uiIconKind) string {
	switch icon {
	case uiIconFilter:
		return "󰈲"
	case uiIconZoom:
		return "󰍉"
	case uiIconBranch:
		return ""
	default:
		return ""
	}
}

func iconPrefix(icon uiIconKind, showIcons bool) string {
	if !showIcons {
		return ""
	}
	return iconWithSpace(uiIcon(icon))
}

func disclosureIndicator(collapsed, showIcons bool) string {
	if collapsed {
		if showIcons {
			return ""
		}
		return "▶"
	}
	if showIcons {
		return ""
	}
	return "▼"
}

func aheadIndicator(showIcons bool) string {
	if showIcons {
		return "󰜷"
	}
	return "↑"
}

func behindIndicator(showIcons bool) string {
	if showIcons {
		return "󰜮"
	}
	return "↓"
}
