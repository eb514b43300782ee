// Package theme defines the colour palettes for the TUI and picks a
// default to match the terminal background.
package theme

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds every colour the UI draws with.
type Theme struct {
	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // text placed on an Accent background
	AccentDim  lipgloss.Color
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	Cyan       lipgloss.Color
	Pink       lipgloss.Color
	Yellow     lipgloss.Color
}

// Theme names accepted in configuration and by the picker.
const (
	DraculaName         = "dracula"
	CleanLightName      = "clean-light"
	SolarizedDarkName   = "solarized-dark"
	SolarizedLightName  = "solarized-light"
	GruvboxDarkName     = "gruvbox-dark"
	NordName            = "nord"
	CatppuccinMochaName = "catppuccin-mocha"
	CatppuccinLatteName = "catppuccin-latte"
)

type palette struct {
	name  string
	light bool
	theme Theme
}

// hex is shorthand for the palette tables below.
func hex(s string) lipgloss.Color { return lipgloss.Color(s) }

// palettes lists every built-in theme in menu order. The first entry
// doubles as the fallback for unknown names.
var palettes = []palette{
	{name: DraculaName, theme: Theme{
		Background: hex("#282A36"),
		Accent:     hex("#BD93F9"),
		AccentFg:   hex("#282A36"),
		AccentDim:  hex("#44475A"),
		Border:     hex("#6272A4"),
		BorderDim:  hex("#44475A"),
		MutedFg:    hex("#6272A4"),
		TextFg:     hex("#F8F8F2"),
		SuccessFg:  hex("#50FA7B"),
		WarnFg:     hex("#FFB86C"),
		ErrorFg:    hex("#FF5555"),
		Cyan:       hex("#8BE9FD"),
		Pink:       hex("#FF79C6"),
		Yellow:     hex("#F1FA8C"),
	}},
	{name: CleanLightName, light: true, theme: Theme{
		Background: hex("#FFFFFF"),
		Accent:     hex("#c6dbe5"),
		AccentFg:   hex("#24292F"),
		AccentDim:  hex("#DDF4FF"),
		Border:     hex("#D0D7DE"),
		BorderDim:  hex("#E1E4E8"),
		MutedFg:    hex("#6E7781"),
		TextFg:     hex("#24292F"),
		SuccessFg:  hex("#1A7F37"),
		WarnFg:     hex("#9A6700"),
		ErrorFg:    hex("#CF222E"),
		Cyan:       hex("#0598BC"),
		Pink:       hex("#BF3989"),
		Yellow:     hex("#D4A72C"),
	}},
	{name: SolarizedDarkName, theme: Theme{
		Background: hex("#002B36"),
		Accent:     hex("#268BD2"),
		AccentFg:   hex("#FDF6E3"),
		AccentDim:  hex("#073642"),
		Border:     hex("#586E75"),
		BorderDim:  hex("#073642"),
		MutedFg:    hex("#586E75"),
		TextFg:     hex("#EEE8D5"),
		SuccessFg:  hex("#859900"),
		WarnFg:     hex("#B58900"),
		ErrorFg:    hex("#DC322F"),
		Cyan:       hex("#2AA198"),
		Pink:       hex("#D33682"),
		Yellow:     hex("#B58900"),
	}},
	{name: SolarizedLightName, light: true, theme: Theme{
		Background: hex("#FDF6E3"),
		Accent:     hex("#268BD2"),
		AccentFg:   hex("#FDF6E3"),
		AccentDim:  hex("#EEE8D5"),
		Border:     hex("#93A1A1"),
		BorderDim:  hex("#E4DDC7"),
		MutedFg:    hex("#93A1A1"),
		TextFg:     hex("#073642"),
		SuccessFg:  hex("#859900"),
		WarnFg:     hex("#B58900"),
		ErrorFg:    hex("#DC322F"),
		Cyan:       hex("#2AA198"),
		Pink:       hex("#D33682"),
		Yellow:     hex("#B58900"),
	}},
	{name: GruvboxDarkName, theme: Theme{
		Background: hex("#282828"),
		Accent:     hex("#FABD2F"),
		AccentFg:   hex("#282828"),
		AccentDim:  hex("#3C3836"),
		Border:     hex("#504945"),
		BorderDim:  hex("#3C3836"),
		MutedFg:    hex("#928374"),
		TextFg:     hex("#EBDBB2"),
		SuccessFg:  hex("#B8BB26"),
		WarnFg:     hex("#FABD2F"),
		ErrorFg:    hex("#FB4934"),
		Cyan:       hex("#83A598"),
		Pink:       hex("#D3869B"),
		Yellow:     hex("#FABD2F"),
	}},
	{name: NordName, theme: Theme{
		Background: hex("#2E3440"),
		Accent:     hex("#88C0D0"),
		AccentFg:   hex("#2E3440"),
		AccentDim:  hex("#3B4252"),
		Border:     hex("#4C566A"),
		BorderDim:  hex("#434C5E"),
		MutedFg:    hex("#81A1C1"),
		TextFg:     hex("#E5E9F0"),
		SuccessFg:  hex("#A3BE8C"),
		WarnFg:     hex("#EBCB8B"),
		ErrorFg:    hex("#BF616A"),
		Cyan:       hex("#88C0D0"),
		Pink:       hex("#B48EAD"),
		Yellow:     hex("#EBCB8B"),
	}},
	{name: CatppuccinMochaName, theme: Theme{
		Background: hex("#1E1E2E"),
		Accent:     hex("#B4BEFE"),
		AccentFg:   hex("#1E1E2E"),
		AccentDim:  hex("#313244"),
		Border:     hex("#45475A"),
		BorderDim:  hex("#313244"),
		MutedFg:    hex("#6C7086"),
		TextFg:     hex("#CDD6F4"),
		SuccessFg:  hex("#A6E3A1"),
		WarnFg:     hex("#F9E2AF"),
		ErrorFg:    hex("#F38BA8"),
		Cyan:       hex("#89DCEB"),
		Pink:       hex("#F5C2E7"),
		Yellow:     hex("#F9E2AF"),
	}},
	{name: CatppuccinLatteName, light: true, theme: Theme{
		Background: hex("#EFF1F5"),
		Accent:     hex("#1E66F5"),
		AccentFg:   hex("#FFFFFF"),
		AccentDim:  hex("#CCD0DA"),
		Border:     hex("#9CA0B0"),
		BorderDim:  hex("#BCC0CC"),
		MutedFg:    hex("#6C6F85"),
		TextFg:     hex("#4C4F69"),
		SuccessFg:  hex("#40A02B"),
		WarnFg:     hex("#DF8E1D"),
		ErrorFg:    hex("#D20F39"),
		Cyan:       hex("#04A5E5"),
		Pink:       hex("#EA76CB"),
		Yellow:     hex("#DF8E1D"),
	}},
}

// GetTheme returns a copy of the named theme so callers can adjust
// colours freely. Unknown names fall back to the first palette.
func GetTheme(name string) *Theme {
	for i := range palettes {
		if palettes[i].name == name {
			t := palettes[i].theme
			return &t
		}
	}
	t := palettes[0].theme
	return &t
}

// Dracula returns the default dark palette.
func Dracula() *Theme {
	return GetTheme(DraculaName)
}

// IsLight reports whether the named theme targets light terminal
// backgrounds.
func IsLight(name string) bool {
	for i := range palettes {
		if palettes[i].name == name {
			return palettes[i].light
		}
	}
	return false
}

// AvailableThemes returns the theme names in menu order.
func AvailableThemes() []string {
	names := make([]string, len(palettes))
	for i := range palettes {
		names[i] = palettes[i].name
	}
	return names
}

// DefaultDark returns the theme used when the background is dark or
// unknown.
func DefaultDark() string {
	return DraculaName
}

// DefaultLight returns the theme used on light backgrounds.
func DefaultLight() string {
	return CleanLightName
}

// DetectBackground picks the default theme name for the terminal's
// background colour. Querying the terminal can stall on some emulators
// and over remote sessions, so the probe is abandoned after timeout
// and the caller falls back to the dark default.
func DetectBackground(timeout time.Duration) (string, error) {
	done := make(chan bool, 1)
	go func() {
		done <- lipgloss.HasDarkBackground()
	}()
	select {
	case dark := <-done:
		if dark {
			return DefaultDark(), nil
		}
		return DefaultLight(), nil
	case <-time.After(timeout):
		return "", fmt.Errorf("terminal background detection timed out after %s", timeout)
	}
}
