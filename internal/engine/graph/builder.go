// Package graph builds include trees and statistics on top of the dependency cache.
package graph

import (
	"context"
	"slices"

	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/core/ports"
)

// Builder derives trees from cached per-file analyses. It holds no graph
// state of its own; every traversal reads the cache afresh.
type Builder struct {
	cache         ports.DependencyCache
	workspaceRoot string
	maxLines      int
}

// NewBuilder creates a Builder. maxLines caps BuildASCII output; zero or
// less disables the cap.
func NewBuilder(cache ports.DependencyCache, workspaceRoot string, maxLines int) *Builder {
	if workspaceRoot != "" {
		workspaceRoot = domain.NormalizePath(workspaceRoot)
	}
	return &Builder{
		cache:         cache,
		workspaceRoot: workspaceRoot,
		maxLines:      maxLines,
	}
}

// RootNode returns the expandable node for file.
func (b *Builder) RootNode(file string) domain.DependencyNode {
	file = domain.NormalizePath(file)
	return domain.ResolvedNode(file, b.display(file))
}

// BuildChildren returns the direct includes of file: resolved ones first,
// then unresolved ones. Cycles are not detected here, since the caller
// pulls one level at a time.
func (b *Builder) BuildChildren(ctx context.Context, file string) []domain.DependencyNode {
	info := b.cache.Analyze(ctx, domain.NormalizePath(file))
	if info.IsEmpty() {
		return nil
	}

	children := make([]domain.DependencyNode, 0, len(info.ResolvedIncludes)+len(info.UnresolvedIncludes))
	for _, dep := range info.ResolvedIncludes {
		children = append(children, domain.ResolvedNode(dep, b.display(dep)))
	}
	for _, raw := range info.UnresolvedIncludes {
		children = append(children, domain.UnresolvedNode(raw))
	}
	return children
}

// EntryPoints returns the files that no other file in files includes.
// When every file is included by another one, e.g. a workspace made only
// of cycles, all files are returned. The result is sorted.
func (b *Builder) EntryPoints(ctx context.Context, files []string) []string {
	normalized := make([]string, 0, len(files))
	for _, f := range files {
		normalized = append(normalized, domain.NormalizePath(f))
	}
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)

	included := make(map[string]struct{}, len(normalized))
	for _, file := range normalized {
		if ctx.Err() != nil {
			return nil
		}
		for _, dep := range b.cache.Analyze(ctx, file).ResolvedIncludes {
			if dep != file {
				included[dep] = struct{}{}
			}
		}
	}

	entries := make([]string, 0, len(normalized))
	for _, file := range normalized {
		if _, ok := included[file]; !ok {
			entries = append(entries, file)
		}
	}
	if len(entries) == 0 {
		return normalized
	}
	return entries
}

// Display renders file the way node names are shown.
func (b *Builder) Display(file string) string {
	return b.display(file)
}

func (b *Builder) display(file string) string {
	return domain.DisplayPath(b.workspaceRoot, file)
}
