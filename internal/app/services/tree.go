package services

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/chmouel/lazystatus/internal/models"
)

// TreeNode is a node in the candidate tree, either a directory or a file.
type TreeNode struct {
	Path        string            // repo-relative path ("internal/app" or "internal/app/app.go")
	Candidate   *models.Candidate // nil for directories
	Children    []*TreeNode       // nil for files
	Compression int               // number of squashed path segments ("a/b" = 1)
	Depth       int               // cached depth for rendering
}

// TreeService manages candidate tree state for the list pane.
type TreeService struct {
	Tree      *TreeNode
	Flat      []*TreeNode
	Collapsed map[string]bool
	Index     int
}

// NewTreeService creates a new TreeService.
func NewTreeService() *TreeService {
	return &TreeService{
		Collapsed: make(map[string]bool),
	}
}

// BuildTree groups a flat candidate list into a directory tree keyed by
// repo-relative path. Directories sort before files.
func BuildTree(candidates []*models.Candidate) *TreeNode {
	if len(candidates) == 0 {
		return &TreeNode{Path: "", Children: nil}
	}

	root := &TreeNode{Path: "", Children: make([]*TreeNode, 0)}
	childrenByPath := make(map[string]*TreeNode)

	for _, cand := range candidates {
		rel := filepath.ToSlash(cand.RelPath())
		if rel == "" || rel == "." {
			continue
		}
		parts := strings.Split(rel, "/")

		current := root
		for j := range parts {
			isFile := j == len(parts)-1
			pathSoFar := strings.Join(parts[:j+1], "/")

			if existing, ok := childrenByPath[pathSoFar]; ok {
				current = existing
				continue
			}

			var newNode *TreeNode
			if isFile {
				newNode = &TreeNode{
					Path:      pathSoFar,
					Candidate: cand,
				}
			} else {
				newNode = &TreeNode{
					Path:     pathSoFar,
					Children: make([]*TreeNode, 0),
				}
			}
			current.Children = append(current.Children, newNode)
			childrenByPath[pathSoFar] = newNode
			current = newNode
		}
	}

	SortTree(root)
	CompressTree(root)
	return root
}

// SortTree sorts tree nodes: directories first, then alphabetically.
func SortTree(node *TreeNode) {
	if node == nil || node.Children == nil {
		return
	}

	sort.Slice(node.Children, func(i, j int) bool {
		iIsDir := node.Children[i].Candidate == nil
		jIsDir := node.Children[j].Candidate == nil
		if iIsDir != jIsDir {
			return iIsDir // directories first
		}
		return node.Children[i].Path < node.Children[j].Path
	})

	for _, child := range node.Children {
		SortTree(child)
	}
}

// CompressTree squashes single-child directory chains (e.g. a/b/c becomes one node).
func CompressTree(node *TreeNode) {
	if node == nil {
		return
	}

	for _, child := range node.Children {
		CompressTree(child)
	}

	for i, child := range node.Children {
		for child.Candidate == nil && len(child.Children) == 1 && child.Children[0].Candidate == nil {
			grandchild := child.Children[0]
			grandchild.Compression += child.Compression + 1
			node.Children[i] = grandchild
			child = grandchild
		}
	}
}

// FlattenTree returns visible nodes respecting collapsed state.
func FlattenTree(node *TreeNode, collapsed map[string]bool, depth int) []*TreeNode {
	if node == nil {
		return nil
	}

	result := make([]*TreeNode, 0)

	// Skip the root node itself but process its children
	if node.Path != "" {
		nodeCopy := *node
		nodeCopy.Depth = depth
		result = append(result, &nodeCopy)

		if collapsed[node.Path] {
			return result
		}
	}

	if node.Children != nil {
		childDepth := depth
		if node.Path != "" {
			childDepth = depth + 1
		}
		for _, child := range node.Children {
			result = append(result, FlattenTree(child, collapsed, childDepth)...)
		}
	}

	return result
}

// IsDir returns true if this node is a directory.
func (n *TreeNode) IsDir() bool {
	return n.Candidate == nil
}

// Name returns the display name for this node. Compressed chains show the
// squashed segments joined back together ("a/b/c").
func (n *TreeNode) Name() string {
	parts := strings.Split(n.Path, "/")
	keep := n.Compression + 1
	if keep > len(parts) {
		keep = len(parts)
	}
	return strings.Join(parts[len(parts)-keep:], "/")
}

// CollectCandidates recursively collects all candidates under this node.
// For a file node that is the candidate itself; for a directory it is every
// file beneath it in tree order.
func (n *TreeNode) CollectCandidates() []*models.Candidate {
	var out []*models.Candidate
	if n.Candidate != nil {
		out = append(out, n.Candidate)
	}
	for _, child := range n.Children {
		out = append(out, child.CollectCandidates()...)
	}
	return out
}

// RebuildFlat rebuilds the flattened tree representation.
func (s *TreeService) RebuildFlat() {
	if s.Collapsed == nil {
		s.Collapsed = make(map[string]bool)
	}
	s.Flat = FlattenTree(s.Tree, s.Collapsed, 0)
}

// SetCandidates rebuilds the tree from a fresh candidate listing, keeping
// collapse state and clamping the selection.
func (s *TreeService) SetCandidates(candidates []*models.Candidate) {
	selected := s.SelectedPath()
	s.Tree = BuildTree(candidates)
	s.RebuildFlat()
	s.RestoreSelection(selected)
	s.ClampIndex()
}

// ToggleCollapse toggles a directory collapse state and rebuilds the flat list.
func (s *TreeService) ToggleCollapse(path string) {
	if path == "" {
		return
	}
	if s.Collapsed == nil {
		s.Collapsed = make(map[string]bool)
	}
	s.Collapsed[path] = !s.Collapsed[path]
	s.RebuildFlat()
}

// SelectedNode returns the currently selected node, or nil.
func (s *TreeService) SelectedNode() *TreeNode {
	if s.Index >= 0 && s.Index < len(s.Flat) {
		return s.Flat[s.Index]
	}
	return nil
}

// SelectedPath returns the path of the currently selected node.
func (s *TreeService) SelectedPath() string {
	if node := s.SelectedNode(); node != nil {
		return node.Path
	}
	return ""
}

// RestoreSelection sets Index based on the provided path if it exists.
func (s *TreeService) RestoreSelection(path string) {
	if path == "" {
		return
	}
	for i, node := range s.Flat {
		if node.Path == path {
			s.Index = i
			return
		}
	}
}

// ClampIndex ensures Index is within the valid range for the flat list.
func (s *TreeService) ClampIndex() {
	if s.Index < 0 {
		s.Index = 0
	}
	if len(s.Flat) > 0 && s.Index >= len(s.Flat) {
		s.Index = len(s.Flat) - 1
	}
	if len(s.Flat) == 0 {
		s.Index = 0
	}
}
