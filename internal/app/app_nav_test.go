package app

import (
	"testing"

	"github.com/chmouel/lazystatus/internal/app/state"
	"github.com/chmouel/lazystatus/internal/models"
)

func TestNavigationMovesSelection(t *testing.T) {
	m := newTestModel(t)
	seedCandidates(m,
		makeCandidate(m.root, "alpha.go", models.StatusModified, models.StatusUnmodified),
		makeCandidate(m.root, "beta.go", models.StatusUnmodified, models.StatusModified),
		makeCandidate(m.root, "gamma.go", models.StatusUntracked, models.StatusUntracked),
	)

	steps := []struct {
		key  string
		want int
	}{
		{"j", 1},
		{"j", 2},
		{"j", 2},
		{"k", 1},
		{"G", 2},
		{"g", 0},
		{"k", 0},
	}
	for _, step := range steps {
		m, _ = pressKey(m, step.key)
		if m.services.tree.Index != step.want {
			t.Fatalf("after %q: index = %d, want %d", step.key, m.services.tree.Index, step.want)
		}
	}
}

func TestFocusAndZoomKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = pressKey(m, "2")
	if m.view.FocusedPane != state.PanePreview {
		t.Fatalf("expected preview focused, got %d", m.view.FocusedPane)
	}
	if m.view.ZoomedPane != -1 {
		t.Fatalf("focus switch should not zoom, got %d", m.view.ZoomedPane)
	}

	m, _ = pressKey(m, "2")
	if m.view.ZoomedPane != state.PanePreview {
		t.Fatalf("second press should zoom, got %d", m.view.ZoomedPane)
	}

	m, _ = pressKey(m, "=")
	if m.view.ZoomedPane != -1 {
		t.Fatalf("= should unzoom, got %d", m.view.ZoomedPane)
	}

	m, _ = pressKey(m, "tab")
	if m.view.FocusedPane != state.PaneList {
		t.Fatalf("tab should cycle back to list, got %d", m.view.FocusedPane)
	}
}

func TestToggleMarkOnFileAdvancesCursor(t *testing.T) {
	m := newTestModel(t)
	seedCandidates(m,
		makeCandidate(m.root, "alpha.go", models.StatusModified, models.StatusUnmodified),
		makeCandidate(m.root, "beta.go", models.StatusUnmodified, models.StatusModified),
	)

	m, _ = pressKey(m, "space")
	alpha := m.data.candidates[0].Path
	if !m.data.marks[alpha] {
		t.Fatal("expected alpha.go marked")
	}
	if m.services.tree.Index != 1 {
		t.Fatalf("cursor should advance after marking, got %d", m.services.tree.Index)
	}
}

func TestToggleMarkOnDirectoryMarksSubtree(t *testing.T) {
	m := newTestModel(t)
	seedCandidates(m,
		makeCandidate(m.root, "pkg/a.go", models.StatusModified, models.StatusUnmodified),
		makeCandidate(m.root, "pkg/b.go", models.StatusUnmodified, models.StatusModified),
		makeCandidate(m.root, "main.go", models.StatusUnmodified, models.StatusModified),
	)

	node := m.services.tree.SelectedNode()
	if node == nil || !node.IsDir() {
		t.Fatalf("expected directory node first, got %+v", node)
	}

	m, _ = pressKey(m, "space")
	if len(m.data.marks) != 2 {
		t.Fatalf("expected 2 marked files, got %d", len(m.data.marks))
	}

	// A second toggle on the same directory unmarks the subtree.
	m.services.tree.Index = 0
	m, _ = pressKey(m, "space")
	if len(m.data.marks) != 0 {
		t.Fatalf("expected marks cleared, got %d", len(m.data.marks))
	}
}

func TestEnterCollapsesDirectory(t *testing.T) {
	m := newTestModel(t)
	seedCandidates(m,
		makeCandidate(m.root, "pkg/a.go", models.StatusModified, models.StatusUnmodified),
		makeCandidate(m.root, "main.go", models.StatusUnmodified, models.StatusModified),
	)

	before := len(m.services.tree.Flat)
	node := m.services.tree.SelectedNode()
	if node == nil || !node.IsDir() {
		t.Fatalf("expected directory selected, got %+v", node)
	}
	dirPath := node.Path

	m, _ = pressKey(m, "enter")
	if !m.services.tree.Collapsed[dirPath] {
		t.Fatal("expected directory collapsed")
	}
	if len(m.services.tree.Flat) >= before {
		t.Fatalf("flat list should shrink, %d -> %d", before, len(m.services.tree.Flat))
	}

	m, _ = pressKey(m, "enter")
	if m.services.tree.Collapsed[dirPath] {
		t.Fatal("expected directory expanded again")
	}
}

func TestFilterTypingNarrowsTree(t *testing.T) {
	m := newTestModel(t)
	seedCandidates(m,
		makeCandidate(m.root, "alpha.go", models.StatusModified, models.StatusUnmodified),
		makeCandidate(m.root, "beta.go", models.StatusUnmodified, models.StatusModified),
	)

	m, _ = pressKey(m, "f")
	if !m.view.ShowingFilter {
		t.Fatal("expected filter bar open")
	}

	for _, r := range "beta" {
		m, _ = pressKey(m, string(r))
	}
	if m.services.filter.Query != "beta" {
		t.Fatalf("filter query = %q, want beta", m.services.filter.Query)
	}
	if len(m.services.tree.Flat) != 1 {
		t.Fatalf("expected 1 visible file, got %d", len(m.services.tree.Flat))
	}

	m, _ = pressKey(m, "enter")
	if m.view.ShowingFilter {
		t.Fatal("enter should close the filter bar")
	}
	if !m.services.filter.HasActive() {
		t.Fatal("enter should keep the query")
	}
}

func TestFilterEscapeClearsQuery(t *testing.T) {
	m := newTestModel(t)
	seedCandidates(m,
		makeCandidate(m.root, "alpha.go", models.StatusModified, models.StatusUnmodified),
		makeCandidate(m.root, "beta.go", models.StatusUnmodified, models.StatusModified),
	)

	m, _ = pressKey(m, "f")
	for _, r := range "alpha" {
		m, _ = pressKey(m, string(r))
	}
	m, _ = pressKey(m, "esc")

	if m.view.ShowingFilter {
		t.Fatal("esc should close the filter bar")
	}
	if m.services.filter.HasActive() {
		t.Fatalf("esc should clear the query, got %q", m.services.filter.Query)
	}
	if len(m.services.tree.Flat) != 2 {
		t.Fatalf("expected full tree restored, got %d nodes", len(m.services.tree.Flat))
	}
}

func TestEscapeUnwindsMarksThenFilterThenPreview(t *testing.T) {
	m := newTestModel(t)
	cand := makeCandidate(m.root, "alpha.go", models.StatusModified, models.StatusUnmodified)
	seedCandidates(m, cand)

	m.data.marks[cand.Path] = true
	m.services.filter.Query = "alpha"
	previewed := m.data.candidates[0]
	m.data.previewed = &previewed

	m, _ = pressKey(m, "esc")
	if len(m.data.marks) != 0 {
		t.Fatal("first esc should clear marks")
	}
	if !m.services.filter.HasActive() || m.data.previewed == nil {
		t.Fatal("first esc should leave filter and preview alone")
	}

	m, _ = pressKey(m, "esc")
	if m.services.filter.HasActive() {
		t.Fatal("second esc should clear the filter")
	}
	if m.data.previewed == nil {
		t.Fatal("second esc should leave the preview alone")
	}

	m, _ = pressKey(m, "esc")
	if m.data.previewed != nil {
		t.Fatal("third esc should close the preview")
	}
}

func TestQuitKeySetsQuitting(t *testing.T) {
	m := newTestModel(t)
	m, cmd := pressKey(m, "q")
	if !m.quitting {
		t.Fatal("expected quitting after q")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}
