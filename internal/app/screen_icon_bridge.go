package app

import "github.com/chmouel/lazystatus/internal/app/screen"

// appIconProvider supplies nerd-font glyphs for the screen package so
// help and picker screens match the main view's icons.
type appIconProvider struct{}

var screenIcons = map[screen.UIIcon]string{
	screen.UIIconHelp:       "󰋖",
	screen.UIIconNavigation: "󰳽",
	screen.UIIconMarks:      "󰙅",
	screen.UIIconStage:      "",
	screen.UIIconReset:      "",
	screen.UIIconDiff:       "󰈈",
	screen.UIIconWatch:      "󰑐",
	screen.UIIconFilter:     "󰈲",
	screen.UIIconColumns:    "󰔡",
	screen.UIIconHelpKeys:   "󰌏",
	screen.UIIconTerminal:   "",
	screen.UIIconConfig:     "",
	screen.UIIconTheme:      "󰏘",
	screen.UIIconTip:        "󰛨",
}

func (p *appIconProvider) GetUIIcon(icon screen.UIIcon) string {
	return screenIcons[icon]
}

func init() {
	screen.SetIconProvider(&appIconProvider{})
}
