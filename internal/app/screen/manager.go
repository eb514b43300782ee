package screen

// Manager keeps the stack of open overlays. The last screen pushed is
// the one that receives keys and renders; closing it uncovers the one
// below, so a picker opened from a prompt restores the prompt.
type Manager struct {
	screens []Screen
}

// NewManager returns an empty stack.
func NewManager() *Manager {
	return &Manager{}
}

// Push opens s on top of whatever is currently showing. A nil screen
// is ignored.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	m.screens = append(m.screens, s)
}

// Pop closes the top screen and returns it, or nil when nothing is
// open.
func (m *Manager) Pop() Screen {
	if len(m.screens) == 0 {
		return nil
	}
	top := m.screens[len(m.screens)-1]
	m.screens[len(m.screens)-1] = nil
	m.screens = m.screens[:len(m.screens)-1]
	return top
}

// Set swaps the top screen in place, keeping the rest of the stack.
// With nothing open it behaves like Push.
func (m *Manager) Set(s Screen) {
	if s == nil {
		return
	}
	if len(m.screens) == 0 {
		m.screens = append(m.screens, s)
		return
	}
	m.screens[len(m.screens)-1] = s
}

// Current returns the screen on top, or nil when nothing is open.
func (m *Manager) Current() Screen {
	if len(m.screens) == 0 {
		return nil
	}
	return m.screens[len(m.screens)-1]
}

// IsActive reports whether any overlay is open.
func (m *Manager) IsActive() bool {
	return len(m.screens) > 0
}

// Type reports the top screen's type, or TypeNone when nothing is
// open.
func (m *Manager) Type() Type {
	if len(m.screens) == 0 {
		return TypeNone
	}
	return m.screens[len(m.screens)-1].Type()
}

// Depth returns how many overlays are open, the top one included.
func (m *Manager) Depth() int {
	return len(m.screens)
}
