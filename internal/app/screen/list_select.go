package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chmouel/lazystatus/internal/theme"
)

// SelectionItem is one row in a picker.
type SelectionItem struct {
	ID          string
	Label       string
	Description string
}

// PickerOptions configures a ListSelectionScreen. Empty strings pick
// the defaults.
type PickerOptions struct {
	Title       string
	Placeholder string // filter field hint
	NoResults   string // message shown when the filter matches nothing
	InitialID   string // row the cursor starts on
	MaxWidth    int    // window size the picker scales against
	MaxHeight   int
	Theme       *theme.Theme
}

// ListSelectionScreen lets the user pick one item from a list, with an
// optional substring filter over label, description, and ID. The theme
// picker drives OnCursorChange for a live preview.
type ListSelectionScreen struct {
	Items    []SelectionItem
	Filtered []SelectionItem
	Cursor   int
	Title    string
	Thm      *theme.Theme

	OnSelect       func(SelectionItem) tea.Cmd
	OnCancel       func() tea.Cmd
	OnCursorChange func(SelectionItem)

	FilterActive bool
	filterInput  textinput.Model
	noResults    string
	scroll       int
	width        int
	height       int
}

// NewListSelectionScreen sizes the picker to 80% of the window and
// positions the cursor on opts.InitialID when it is present.
func NewListSelectionScreen(items []SelectionItem, opts PickerOptions) *ListSelectionScreen {
	width := max(60, int(float64(opts.MaxWidth)*0.8))
	height := max(20, int(float64(opts.MaxHeight)*0.8))

	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = "Filter..."
	}
	noResults := opts.NoResults
	if noResults == "" {
		noResults = "No results found."
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 100
	ti.Width = width - 4

	s := &ListSelectionScreen{
		Items:       items,
		Filtered:    items,
		Cursor:      -1,
		Title:       opts.Title,
		Thm:         opts.Theme,
		filterInput: ti,
		noResults:   noResults,
		width:       width,
		height:      height,
	}
	if len(items) > 0 {
		s.Cursor = 0
	}
	for i, item := range items {
		if opts.InitialID != "" && item.ID == opts.InitialID {
			s.Cursor = i
			break
		}
	}
	return s
}

func (s *ListSelectionScreen) Type() Type { return TypeListSelect }

// Selected returns the item under the cursor, if any.
func (s *ListSelectionScreen) Selected() (SelectionItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Filtered) {
		return SelectionItem{}, false
	}
	return s.Filtered[s.Cursor], true
}

// Update handles navigation and the filter field. Returning nil closes
// the picker.
func (s *ListSelectionScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		if item, ok := s.Selected(); ok && s.OnSelect != nil {
			return nil, s.OnSelect(item)
		}
		return nil, nil
	case keyCtrlC:
		return nil, s.cancel()
	case "up", "ctrl+k":
		s.moveCursor(-1)
		return s, nil
	case "down", "ctrl+j":
		s.moveCursor(1)
		return s, nil
	}
	if s.FilterActive {
		return s.updateFilter(msg)
	}
	return s.updateBrowse(msg.String())
}

func (s *ListSelectionScreen) updateBrowse(key string) (Screen, tea.Cmd) {
	switch key {
	case "f":
		s.FilterActive = true
		s.filterInput.Focus()
		return s, textinput.Blink
	case keyEsc:
		return nil, s.cancel()
	case "k":
		s.moveCursor(-1)
	case "j":
		s.moveCursor(1)
	}
	return s, nil
}

func (s *ListSelectionScreen) updateFilter(msg tea.KeyMsg) (Screen, tea.Cmd) {
	if msg.String() == keyEsc {
		// Leave the field but keep the narrowed list.
		s.FilterActive = false
		s.filterInput.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.filterInput, cmd = s.filterInput.Update(msg)
	s.applyFilter()
	return s, cmd
}

func (s *ListSelectionScreen) cancel() tea.Cmd {
	if s.OnCancel == nil {
		return nil
	}
	return s.OnCancel()
}

func (s *ListSelectionScreen) moveCursor(delta int) {
	next := s.Cursor + delta
	if next < 0 || next >= len(s.Filtered) {
		return
	}
	s.Cursor = next
	if s.Cursor < s.scroll {
		s.scroll = s.Cursor
	}
	if visible := s.visibleRows(); s.Cursor >= s.scroll+visible {
		s.scroll = s.Cursor - visible + 1
	}
	if s.OnCursorChange != nil {
		if item, ok := s.Selected(); ok {
			s.OnCursorChange(item)
		}
	}
}

func (s *ListSelectionScreen) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(s.filterInput.Value()))
	if query == "" {
		s.Filtered = s.Items
	} else {
		s.Filtered = nil
		for _, item := range s.Items {
			haystack := strings.ToLower(item.Label + "\x00" + item.Description + "\x00" + item.ID)
			if strings.Contains(haystack, query) {
				s.Filtered = append(s.Filtered, item)
			}
		}
	}
	s.scroll = 0
	if len(s.Filtered) == 0 {
		s.Cursor = -1
	} else if s.Cursor < 0 || s.Cursor >= len(s.Filtered) {
		s.Cursor = 0
	}
}

// visibleRows is the number of item rows that fit; hiding the filter
// field frees two rows.
func (s *ListSelectionScreen) visibleRows() int {
	rows := s.height - 6
	if !s.FilterActive {
		rows += 2
	}
	return rows
}

// View renders the title bar, the optional filter field, the visible
// window of rows, and a key hint footer.
func (s *ListSelectionScreen) View() string {
	inner := s.width - 2
	underline := lipgloss.NewStyle().
		Width(inner).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim)

	title := underline.
		Padding(0, 1).
		Bold(true).
		Foreground(s.Thm.Accent).
		Render(s.Title)

	sections := []string{title}
	if s.FilterActive {
		field := lipgloss.NewStyle().
			Width(inner).
			Padding(0, 1).
			Foreground(s.Thm.TextFg).
			Render(s.filterInput.View())
		sections = append(sections, field, underline.Render(""))
	}
	sections = append(sections, s.renderRows(inner), s.renderFooter(inner))

	frame := lipgloss.NewStyle().
		Width(s.width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent)
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (s *ListSelectionScreen) renderRows(inner int) string {
	if len(s.Filtered) == 0 {
		return lipgloss.NewStyle().
			Width(inner).
			Padding(0, 1).
			Italic(true).
			Foreground(s.Thm.MutedFg).
			Render(s.noResults)
	}

	row := lipgloss.NewStyle().Padding(0, 1).Width(inner)
	rowFocused := row.
		Bold(true).
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg)
	desc := lipgloss.NewStyle().Foreground(s.Thm.MutedFg)
	descFocused := lipgloss.NewStyle().Foreground(s.Thm.TextFg)

	end := min(s.scroll+s.visibleRows(), len(s.Filtered))
	start := min(s.scroll, end)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := s.Filtered[i]
		label := item.Label
		if item.Description != "" {
			style := desc
			if i == s.Cursor {
				style = descFocused
			}
			label += "  " + style.Render(item.Description)
		}
		if i == s.Cursor {
			// Strip the description colour so the focus bar stays
			// uniform.
			lines = append(lines, rowFocused.Render(ansi.Strip(label)))
		} else {
			lines = append(lines, row.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *ListSelectionScreen) renderFooter(inner int) string {
	hint := "j/k to move • f to filter • Enter to select • Esc to cancel"
	if s.FilterActive {
		hint = "Esc to return • Enter to select"
	}
	return lipgloss.NewStyle().
		Width(inner).
		PaddingTop(1).
		Align(lipgloss.Right).
		Foreground(s.Thm.MutedFg).
		Render(hint)
}
