package git

import (
	"path/filepath"
	"testing"

	"github.com/chmouel/lazystatus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusLine(t *testing.T) {
	root := filepath.Join("/", "home", "user", "project")

	tests := []struct {
		name           string
		line           string
		wantIndex      models.StatusCode
		wantTree       models.StatusCode
		wantStaged     bool
		wantModified   bool
		wantRel        string
	}{
		{
			name:         "staged modification",
			line:         "M  main.go",
			wantIndex:    models.StatusModified,
			wantTree:     models.StatusUnmodified,
			wantStaged:   true,
			wantModified: false,
			wantRel:      "main.go",
		},
		{
			name:         "working tree modification",
			line:         " M main.go",
			wantIndex:    models.StatusUnmodified,
			wantTree:     models.StatusModified,
			wantStaged:   false,
			wantModified: true,
			wantRel:      "main.go",
		},
		{
			name:         "staged and modified again",
			line:         "MM main.go",
			wantIndex:    models.StatusModified,
			wantTree:     models.StatusModified,
			wantStaged:   true,
			wantModified: true,
			wantRel:      "main.go",
		},
		{
			name:         "untracked",
			line:         "?? notes.txt",
			wantIndex:    models.StatusUntracked,
			wantTree:     models.StatusUntracked,
			wantStaged:   false,
			wantModified: false,
			wantRel:      "notes.txt",
		},
		{
			name:         "staged addition",
			line:         "A  new.go",
			wantIndex:    models.StatusAdded,
			wantTree:     models.StatusUnmodified,
			wantStaged:   true,
			wantModified: false,
			wantRel:      "new.go",
		},
		{
			name:         "deleted from tree",
			line:         " D gone.go",
			wantIndex:    models.StatusUnmodified,
			wantTree:     models.StatusDeleted,
			wantStaged:   false,
			wantModified: true,
			wantRel:      "gone.go",
		},
		{
			name:         "rename keeps arrow text as opaque path",
			line:         "R  old.go -> new.go",
			wantIndex:    models.StatusRenamed,
			wantTree:     models.StatusUnmodified,
			wantStaged:   true,
			wantModified: false,
			wantRel:      "old.go -> new.go",
		},
		{
			name:         "path inside subdirectory",
			line:         "?? sub/dir/file.go",
			wantIndex:    models.StatusUntracked,
			wantTree:     models.StatusUntracked,
			wantStaged:   false,
			wantModified: false,
			wantRel:      "sub/dir/file.go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := ParseStatusLine(tt.line, root)
			require.NoError(t, err)

			assert.Equal(t, tt.wantIndex, cand.IndexCode)
			assert.Equal(t, tt.wantTree, cand.TreeCode)
			assert.Equal(t, tt.wantStaged, cand.Staged)
			assert.Equal(t, tt.wantModified, cand.ModifiedInTree)
			assert.Equal(t, root, cand.Root)
			assert.Equal(t, filepath.Join(root, tt.wantRel), cand.Path)
			assert.Equal(t, tt.wantRel, cand.RelPath())
		})
	}
}

func TestParseStatusLineMalformed(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		line string
	}{
		{name: "too short", line: "M f"},
		{name: "only codes", line: "MM"},
		{name: "missing separator", line: "MMfile.go"},
		{name: "unknown index code", line: "X  file.go"},
		{name: "unknown tree code", line: " X file.go"},
		{name: "lowercase code", line: "m  file.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatusLine(tt.line, root)
			require.Error(t, err)

			var malformed *MalformedLineError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.line, malformed.Line)
			assert.Contains(t, err.Error(), "malformed status line")
		})
	}
}

func TestCandidateLabel(t *testing.T) {
	root := t.TempDir()

	t.Run("distinct labels keep both columns", func(t *testing.T) {
		cand, err := ParseStatusLine("MD file.go", root)
		require.NoError(t, err)

		assert.Equal(t, "~- modified     deleted      file.go", cand.Label)
	})

	t.Run("equal labels collapse the tree column", func(t *testing.T) {
		cand, err := ParseStatusLine("MM file.go", root)
		require.NoError(t, err)

		assert.Equal(t, "~~ modified                  file.go", cand.Label)
	})

	t.Run("untracked", func(t *testing.T) {
		cand, err := ParseStatusLine("?? file.go", root)
		require.NoError(t, err)

		assert.Equal(t, "?? untracked                 file.go", cand.Label)
	})

	t.Run("tree only change keeps empty index label", func(t *testing.T) {
		cand, err := ParseStatusLine(" M file.go", root)
		require.NoError(t, err)

		assert.Equal(t, " ~              modified     file.go", cand.Label)
	})
}

func TestStatusCode(t *testing.T) {
	t.Run("known codes", func(t *testing.T) {
		for _, c := range []models.StatusCode{
			models.StatusUnmodified,
			models.StatusModified,
			models.StatusAdded,
			models.StatusDeleted,
			models.StatusRenamed,
			models.StatusCopied,
			models.StatusUnmerged,
			models.StatusUntracked,
		} {
			assert.True(t, c.Known(), "code %q", byte(c))
		}
	})

	t.Run("unknown codes", func(t *testing.T) {
		assert.False(t, models.StatusCode('X').Known())
		assert.False(t, models.StatusCode('m').Known())
		assert.False(t, models.StatusCode(0).Known())
	})

	t.Run("changed excludes unmodified and untracked", func(t *testing.T) {
		assert.False(t, models.StatusUnmodified.Changed())
		assert.False(t, models.StatusUntracked.Changed())
		assert.True(t, models.StatusModified.Changed())
		assert.True(t, models.StatusAdded.Changed())
		assert.True(t, models.StatusDeleted.Changed())
		assert.True(t, models.StatusRenamed.Changed())
		assert.True(t, models.StatusCopied.Changed())
		assert.True(t, models.StatusUnmerged.Changed())
	})

	t.Run("symbols and labels", func(t *testing.T) {
		assert.Equal(t, "~", models.StatusModified.Symbol())
		assert.Equal(t, "modified", models.StatusModified.Label())
		assert.Equal(t, "→", models.StatusRenamed.Symbol())
		assert.Equal(t, " ", models.StatusUnmodified.Symbol())
		assert.Equal(t, "", models.StatusUnmodified.Label())
	})
}
