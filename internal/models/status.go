package models

import (
	"fmt"
	"path/filepath"
)

// StatusCode is a single index or working-tree character from a porcelain
// v1 status line.
type StatusCode byte

// Status codes emitted by git status --porcelain.
const (
	StatusUnmodified StatusCode = ' '
	StatusModified   StatusCode = 'M'
	StatusAdded      StatusCode = 'A'
	StatusDeleted    StatusCode = 'D'
	StatusRenamed    StatusCode = 'R'
	StatusCopied     StatusCode = 'C'
	StatusUnmerged   StatusCode = 'U'
	StatusUntracked  StatusCode = '?'
)

// statusTable maps every known status code to its display symbol and label.
// The table is closed: a code missing here is a parse error, never a
// silent default.
var statusTable = map[StatusCode]struct{ symbol, label string }{
	StatusUnmodified: {" ", ""},
	StatusModified:   {"~", "modified"},
	StatusAdded:      {"+", "added"},
	StatusDeleted:    {"-", "deleted"},
	StatusRenamed:    {"→", "renamed"},
	StatusCopied:     {"C", "copied"},
	StatusUnmerged:   {"U", "updated"},
	StatusUntracked:  {"?", "untracked"},
}

// Known reports whether c belongs to the porcelain status alphabet.
func (c StatusCode) Known() bool {
	_, ok := statusTable[c]
	return ok
}

// Symbol returns the one-column display symbol for the code.
func (c StatusCode) Symbol() string { return statusTable[c].symbol }

// Label returns the human-readable label for the code.
func (c StatusCode) Label() string { return statusTable[c].label }

// Changed reports whether the code records a change in its column, meaning
// anything other than unmodified or untracked.
func (c StatusCode) Changed() bool {
	return c != StatusUnmodified && c != StatusUntracked
}

// Candidate is one changed path from a status listing. Candidates are
// immutable values: acting on one mutates the repository, and the new state
// only shows up in a fresh listing.
type Candidate struct {
	// Path is the absolute path of the file, Root joined with the
	// porcelain line's relative path.
	Path string
	// Root is the repository root the candidate belongs to.
	Root string
	// IndexCode and TreeCode are the raw status characters for the index
	// and working-tree columns.
	IndexCode StatusCode
	TreeCode  StatusCode
	// Staged and ModifiedInTree are derived from the codes at parse time
	// and never set independently of them.
	Staged         bool
	ModifiedInTree bool
	// Label is the aligned presentation string shown in candidate lists.
	Label string
}

// RelPath returns the path relative to the repository root, the only form
// git accepts as a pathspec regardless of the caller's working directory.
func (c Candidate) RelPath() string {
	rel, err := filepath.Rel(c.Root, c.Path)
	if err != nil {
		return c.Path
	}
	return rel
}

// Untracked reports whether the candidate is unknown to git.
func (c Candidate) Untracked() bool {
	return c.IndexCode == StatusUntracked
}

// FormatLabel builds the list entry for a candidate line: both symbols,
// both labels padded to twelve columns, then the relative path. A tree
// label equal to the index label is dropped rather than repeated.
func FormatLabel(index, tree StatusCode, rel string) string {
	treeLabel := tree.Label()
	if treeLabel == index.Label() {
		treeLabel = ""
	}
	return fmt.Sprintf("%s%s %-12s %-12s %s", index.Symbol(), tree.Symbol(), index.Label(), treeLabel, rel)
}
