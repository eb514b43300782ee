package screen

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestConfirmAnswerKeys(t *testing.T) {
	s := NewConfirmScreen("Remove untracked file?", testTheme())
	confirmed, cancelled := false, false
	s.OnConfirm = func() tea.Cmd { confirmed = true; return nil }
	s.OnCancel = func() tea.Cmd { cancelled = true; return nil }

	next, _ := s.Update(key("y"))
	if next != nil {
		t.Fatal("'y' should close the dialog")
	}
	if !confirmed || cancelled {
		t.Fatalf("confirmed = %v cancelled = %v, want only confirm", confirmed, cancelled)
	}

	s = NewConfirmScreen("Remove untracked file?", testTheme())
	s.OnCancel = func() tea.Cmd { cancelled = true; return nil }
	if next, _ := s.Update(key("n")); next != nil {
		t.Fatal("'n' should close the dialog")
	}
	if !cancelled {
		t.Fatal("'n' should cancel")
	}
}

func TestConfirmEnterFollowsFocus(t *testing.T) {
	s := NewConfirmScreen("sure?", testTheme())
	confirmed, cancelled := false, false
	s.OnConfirm = func() tea.Cmd { confirmed = true; return nil }
	s.OnCancel = func() tea.Cmd { cancelled = true; return nil }

	// Confirm is focused first.
	if next, _ := s.Update(key("enter")); next != nil {
		t.Fatal("enter should close the dialog")
	}
	if !confirmed {
		t.Fatal("enter on the default focus should confirm")
	}

	s = NewConfirmScreen("sure?", testTheme())
	s.OnCancel = func() tea.Cmd { cancelled = true; return nil }
	next, _ := s.Update(key("tab"))
	if next == nil {
		t.Fatal("tab should keep the dialog open")
	}
	if s.Focused != buttonCancel {
		t.Fatalf("Focused = %d, want the cancel button", s.Focused)
	}
	if next, _ := s.Update(key("enter")); next != nil {
		t.Fatal("enter should close the dialog")
	}
	if !cancelled {
		t.Fatal("enter after tab should cancel")
	}
}

func TestConfirmDismissKeysCancel(t *testing.T) {
	for _, k := range []string{"esc", "q", "ctrl+c"} {
		s := NewConfirmScreen("sure?", testTheme())
		cancelled := false
		s.OnCancel = func() tea.Cmd { cancelled = true; return nil }
		if next, _ := s.Update(key(k)); next != nil {
			t.Fatalf("%q should close the dialog", k)
		}
		if !cancelled {
			t.Fatalf("%q should cancel", k)
		}
	}
}

func TestConfirmWithoutCallbacks(t *testing.T) {
	s := NewConfirmScreen("sure?", testTheme())
	if next, _ := s.Update(key("y")); next != nil {
		t.Fatal("missing callbacks should still close the dialog")
	}
}

func TestInfoDismissal(t *testing.T) {
	for _, k := range []string{"enter", "esc", "q", "ctrl+c"} {
		s := NewInfoScreen("note", testTheme())
		if next, _ := s.Update(key(k)); next != nil {
			t.Fatalf("%q should dismiss the info dialog", k)
		}
	}
	s := NewInfoScreen("note", testTheme())
	if next, _ := s.Update(key("x")); next == nil {
		t.Fatal("unrelated keys should keep the dialog open")
	}
}

func TestInfoViewShowsMessage(t *testing.T) {
	s := NewInfoScreen("Commit failed", testTheme())
	view := ansi.Strip(s.View())
	if !strings.Contains(view, "Commit failed") {
		t.Fatalf("message missing from view:\n%s", view)
	}
	if !strings.Contains(view, "[OK]") {
		t.Fatalf("OK button missing from view:\n%s", view)
	}
}
