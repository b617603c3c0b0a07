package domain

import "time"

// Summary holds the statistics of a snapshot traversal.
type Summary struct {
	// UniqueResolvedFiles counts distinct resolved files, excluding the root.
	UniqueResolvedFiles int `json:"uniqueResolvedFiles"`
	// TotalResolvedIncludes counts resolved edges, repeats across branches included.
	TotalResolvedIncludes int `json:"totalResolvedIncludes"`
	// UnresolvedCount is len(UnresolvedIncludes).
	UnresolvedCount int `json:"unresolvedCount"`
	// UnresolvedIncludes lists distinct unresolved raw targets in discovery order.
	UnresolvedIncludes []string `json:"unresolvedIncludes"`
	// MaxDepth is the greatest depth of any resolved edge; the root sits at 0.
	MaxDepth int `json:"maxDepth"`
	// IsPinnedRoot reports whether the root came from a pin.
	IsPinnedRoot bool `json:"isPinnedRoot"`
	// Truncated reports whether the tree hit the line cap.
	Truncated bool `json:"truncated"`
}

// Snapshot is an immutable rendering of the graph from one root.
type Snapshot struct {
	RootFilePath string    `json:"rootFilePath"`
	GeneratedAt  time.Time `json:"generatedAt"`
	ASCIITree    string    `json:"asciiTree"`
	Summary      Summary   `json:"summary"`
}
