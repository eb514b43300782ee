package git

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/chmouel/lazystatus/internal/models"
)

// Candidates lists the changed paths of the repository at root by parsing
// git status --porcelain -uall, one candidate per non-blank line. An empty
// root means no repository was found and yields an empty listing, so
// callers outside a repository degrade gracefully.
//
// strict selects the failure mode for the status subprocess itself: false
// keeps the historical best-effort behavior where a failed run collapses
// to an empty listing (reported through the notify callback), true
// surfaces it as a *SubprocessError. A malformed line fails the listing in
// both modes.
func (s *Service) Candidates(ctx context.Context, root string, strict bool) ([]models.Candidate, error) {
	if root == "" {
		return nil, nil
	}

	args := []string{"git", "status", "--porcelain", "-uall"}
	var lines []string
	if strict {
		var err error
		lines, err = s.RunLinesChecked(ctx, args, root)
		if err != nil {
			return nil, err
		}
	} else {
		lines = s.RunLines(ctx, args, root)
	}

	candidates := make([]models.Candidate, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cand, err := ParseStatusLine(line, root)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// Summary collects the header information for the repository at root.
// Branch and upstream divergence are fetched concurrently under the
// semaphore; the change counts are tallied from the candidates the caller
// already listed. An empty root returns an empty summary.
func (s *Service) Summary(ctx context.Context, root string, candidates []models.Candidate) *models.RepoInfo {
	info := &models.RepoInfo{Root: root}
	if root == "" {
		return info
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.acquireSemaphore()
		defer s.releaseSemaphore()
		info.Branch = s.RunGit(ctx, []string{"git", "rev-parse", "--abbrev-ref", "HEAD"}, root, []int{0}, true, true)
	}()
	go func() {
		defer wg.Done()
		s.acquireSemaphore()
		defer s.releaseSemaphore()
		// Exits non-zero when no upstream is configured; silenced because
		// that is an ordinary state, not a failure.
		out := s.RunGit(ctx, []string{"git", "rev-list", "--left-right", "--count", "@{upstream}...HEAD"}, root, []int{0}, true, true)
		parts := strings.Fields(out)
		if len(parts) == 2 {
			info.HasUpstream = true
			info.Behind, _ = strconv.Atoi(parts[0])
			info.Ahead, _ = strconv.Atoi(parts[1])
		}
	}()
	wg.Wait()

	for _, c := range candidates {
		if c.Untracked() {
			info.Untracked++
			continue
		}
		if c.Staged {
			info.Staged++
		}
		if c.ModifiedInTree {
			info.Modified++
		}
	}
	return info
}

// Diff returns the patch text for one candidate path. Cached diffs compare
// the index against HEAD, otherwise the working tree is compared against
// the index. Untracked paths produce nothing from a plain diff, so those
// are rendered as a no-index diff against /dev/null; exit code 1 is how
// no-index reports "differences found" and is tolerated.
func (s *Service) Diff(ctx context.Context, root string, spec DiffSpec) string {
	if spec.Untracked {
		return s.RunGit(ctx, []string{"git", "diff", "--no-index", "--", "/dev/null", spec.Rel}, root, []int{0, 1}, false, false)
	}
	args := []string{"git", "diff"}
	if spec.Cached {
		args = append(args, "--cached")
	}
	args = append(args, "--", spec.Rel)
	return s.RunGit(ctx, args, root, []int{0}, false, false)
}
