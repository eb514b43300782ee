package git

import (
	"fmt"
	"path/filepath"

	"github.com/chmouel/lazystatus/internal/models"
)

// ParseStatusLine converts one non-blank porcelain v1 line into a
// candidate. The expected shape is two status characters, a space, then a
// path relative to root. Rename entries keep their "old -> new" text as an
// opaque trailing path; nothing here splits it.
func ParseStatusLine(line, root string) (models.Candidate, error) {
	if len(line) < 4 {
		return models.Candidate{}, &MalformedLineError{Line: line, Reason: "shorter than the two-code, space, path shape"}
	}
	if line[2] != ' ' {
		return models.Candidate{}, &MalformedLineError{Line: line, Reason: "missing separator after the status codes"}
	}
	index := models.StatusCode(line[0])
	tree := models.StatusCode(line[1])
	if !index.Known() {
		return models.Candidate{}, &MalformedLineError{Line: line, Reason: fmt.Sprintf("unknown index status code %q", line[0])}
	}
	if !tree.Known() {
		return models.Candidate{}, &MalformedLineError{Line: line, Reason: fmt.Sprintf("unknown tree status code %q", line[1])}
	}
	rel := line[3:]
	return models.Candidate{
		Path:           filepath.Join(root, rel),
		Root:           root,
		IndexCode:      index,
		TreeCode:       tree,
		Staged:         index.Changed(),
		ModifiedInTree: tree.Changed(),
		Label:          models.FormatLabel(index, tree, rel),
	}, nil
}
