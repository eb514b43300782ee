package screen

// UIIcon names the decorative glyphs the overlays can show next to
// their headings. The host application registers a provider; without
// one every icon renders empty.
type UIIcon int

const (
	UIIconHelp UIIcon = iota
	UIIconNavigation
	UIIconMarks
	UIIconStage
	UIIconReset
	UIIconDiff
	UIIconWatch
	UIIconFilter
	UIIconColumns
	UIIconHelpKeys
	UIIconTerminal
	UIIconConfig
	UIIconTheme
	UIIconTip
)

type iconProvider interface {
	GetUIIcon(icon UIIcon) string
}

type noIcons struct{}

func (noIcons) GetUIIcon(UIIcon) string { return "" }

var icons iconProvider = noIcons{}

// SetIconProvider installs the glyph source, typically nerd-font icons
// matching the main view.
func SetIconProvider(provider iconProvider) {
	if provider != nil {
		icons = provider
	}
}

// iconPrefix returns the glyph followed by a space, or nothing when
// icons are disabled or the provider has no glyph for it.
func iconPrefix(icon UIIcon, showIcons bool) string {
	if !showIcons {
		return ""
	}
	glyph := icons.GetUIIcon(icon)
	if glyph == "" {
		return ""
	}
	return glyph + " "
}

func labelWithIcon(icon UIIcon, label string, showIcons bool) string {
	return iconPrefix(icon, showIcons) + label
}

// sectionMarker prefixes expanded help section headers.
func sectionMarker(showIcons bool) string {
	if showIcons {
		return "▼"
	}
	return "v"
}
