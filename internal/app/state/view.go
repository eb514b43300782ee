// Package state holds plain view-state structs shared by the app model and
// its render helpers.
package state

// Pane indices for the two-pane layout.
const (
	PaneList = iota
	PanePreview
)

// ViewState holds UI-related state for the model.
type ViewState struct {
	ShowingFilter bool
	FocusedPane   int
	// ZoomedPane is -1 when no pane is zoomed.
	ZoomedPane   int
	WindowWidth  int
	WindowHeight int
}
