package services

import (
	"strings"

	"github.com/chmouel/lazystatus/internal/models"
)

// FilterService stores the candidate list filter query.
type FilterService struct {
	Query string
}

// NewFilterService creates a new FilterService with an optional initial filter.
func NewFilterService(initialFilter string) *FilterService {
	return &FilterService{Query: initialFilter}
}

// Matches reports whether a candidate survives the current query. Matching is
// case-insensitive against the repo-relative path and the status label, so
// "mod" narrows to modified files and "internal/" to a subtree.
func (f *FilterService) Matches(cand *models.Candidate) bool {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(cand.RelPath()), query) {
		return true
	}
	return strings.Contains(strings.ToLower(cand.Label), query)
}

// Apply returns the candidates matching the current query, preserving order.
func (f *FilterService) Apply(candidates []*models.Candidate) []*models.Candidate {
	if !f.HasActive() {
		return candidates
	}
	out := make([]*models.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if f.Matches(cand) {
			out = append(out, cand)
		}
	}
	return out
}

// HasActive reports whether a non-empty filter is applied.
func (f *FilterService) HasActive() bool {
	return strings.TrimSpace(f.Query) != ""
}
