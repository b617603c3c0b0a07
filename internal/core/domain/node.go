package domain

import "path/filepath"

// NodeKind tags the variant a DependencyNode represents.
type NodeKind uint8

const (
	// NodeResolved is an include that resolved to an existing file.
	NodeResolved NodeKind = iota
	// NodeUnresolved is an include no candidate path satisfied.
	NodeUnresolved
	// NodeCycleRef is a file that already appears among its own ancestors.
	NodeCycleRef
	// NodeDepthLimited is a file that was not expanded because of a depth cap.
	NodeDepthLimited
)

// String returns the lower-case name of the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeResolved:
		return "resolved"
	case NodeUnresolved:
		return "unresolved"
	case NodeCycleRef:
		return "cycle"
	case NodeDepthLimited:
		return "depth-limited"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DependencyNode is a view-facing node of the include tree.
// Nodes are built fresh for every traversal and never mutated afterwards.
type DependencyNode struct {
	Kind        NodeKind         `json:"kind"`
	FilePath    string           `json:"filePath,omitempty"`
	DisplayName string           `json:"displayName"`
	RawPath     string           `json:"rawPath,omitempty"`
	Error       string           `json:"error,omitempty"`
	Children    []DependencyNode `json:"children,omitempty"`
}

// ResolvedNode creates a node for an existing file.
func ResolvedNode(file, displayName string) DependencyNode {
	return DependencyNode{Kind: NodeResolved, FilePath: file, DisplayName: displayName}
}

// UnresolvedNode creates a node for an include that could not be resolved.
func UnresolvedNode(raw string) DependencyNode {
	return DependencyNode{
		Kind:        NodeUnresolved,
		DisplayName: raw,
		RawPath:     raw,
		Error:       "file not found",
	}
}

// CycleRefNode creates a terminal node for a file repeated on its own branch.
func CycleRefNode(file, displayName string) DependencyNode {
	return DependencyNode{Kind: NodeCycleRef, FilePath: file, DisplayName: displayName}
}

// DepthLimitedNode creates a terminal node for a file cut off by a depth cap.
func DepthLimitedNode(file, displayName string) DependencyNode {
	return DependencyNode{Kind: NodeDepthLimited, FilePath: file, DisplayName: displayName}
}

// IsCycleRef reports whether the node marks a cycle.
func (n DependencyNode) IsCycleRef() bool {
	return n.Kind == NodeCycleRef
}

// Expandable reports whether the node may have children to pull.
func (n DependencyNode) Expandable() bool {
	return n.Kind == NodeResolved
}

// DisplayPath renders file relative to root when it lives inside it,
// otherwise the absolute path. Separators are always forward slashes.
func DisplayPath(root, file string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, file); err == nil && rel != ".." && !hasParentPrefix(rel) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(file)
}

func hasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && (rel[2] == '/' || rel[2] == filepath.Separator)
}
