// Package screen implements the modal overlays the status view stacks
// on top of the file tree: confirmations, option pickers, text input
// with history, the help guide, and the startup loading box.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is a single modal overlay. While any screen is open the
// manager routes every key press to the top one.
type Screen interface {
	// Update consumes one key press. Returning a nil Screen closes
	// the overlay; returning a different Screen swaps it in place.
	Update(msg tea.KeyMsg) (Screen, tea.Cmd)

	// View renders the overlay box.
	View() string

	// Type identifies the overlay kind.
	Type() Type
}

// Type identifies the kind of overlay being displayed.
type Type int

const (
	TypeNone Type = iota
	TypeConfirm
	TypeInfo
	TypeInput
	TypeHelp
	TypeListSelect
	TypeLoading
)

var typeNames = map[Type]string{
	TypeNone:       "none",
	TypeConfirm:    "confirm",
	TypeInfo:       "info",
	TypeInput:      "input",
	TypeHelp:       "help",
	TypeListSelect: "list-select",
	TypeLoading:    "loading",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}
