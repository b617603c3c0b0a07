package graph

import (
	"context"

	"go.trai.ch/ahkdeps/internal/core/domain"
)

// ASCIIResult is the output of a full snapshot descent.
type ASCIIResult struct {
	Lines []string
	Stats domain.Summary
}

// BuildASCII descends from root through every include.
//
// Only the current branch is tracked as visited: a file repeated among its
// own ancestors is rendered as a [Loop] line and not expanded, while a file
// shared by two branches is expanded under both.
func (b *Builder) BuildASCII(ctx context.Context, root string) ASCIIResult {
	root = domain.NormalizePath(root)
	w := &asciiWalk{
		ctx:        ctx,
		builder:    b,
		ancestors:  map[string]struct{}{root: {}},
		unique:     make(map[string]struct{}),
		unresolved: make(map[string]struct{}),
	}
	w.stats.UnresolvedIncludes = []string{}

	w.emit(domain.TagRoot + " " + b.display(root))
	w.descend(root, "", 1)

	if w.stats.Truncated {
		w.lines = append(w.lines, domain.TruncatedLine)
	}
	w.stats.UniqueResolvedFiles = len(w.unique)
	w.stats.UnresolvedCount = len(w.stats.UnresolvedIncludes)

	return ASCIIResult{Lines: w.lines, Stats: w.stats}
}

type asciiWalk struct {
	ctx        context.Context
	builder    *Builder
	lines      []string
	stats      domain.Summary
	ancestors  map[string]struct{}
	unique     map[string]struct{}
	unresolved map[string]struct{}
}

func (w *asciiWalk) stopped() bool {
	return w.stats.Truncated || w.ctx.Err() != nil
}

// emit appends a line unless the cap is reached, in which case the walk stops.
func (w *asciiWalk) emit(line string) bool {
	if limit := w.builder.maxLines; limit > 0 && len(w.lines) >= limit {
		w.stats.Truncated = true
		return false
	}
	w.lines = append(w.lines, line)
	return true
}

func (w *asciiWalk) descend(file, prefix string, depth int) {
	if w.stopped() {
		return
	}

	info := w.builder.cache.Analyze(w.ctx, file)
	remaining := len(info.ResolvedIncludes) + len(info.UnresolvedIncludes)

	next := func() (connector, indent string) {
		remaining--
		return domain.Connector(remaining == 0)
	}

	for _, dep := range info.ResolvedIncludes {
		connector, indent := next()
		w.stats.TotalResolvedIncludes++
		w.stats.MaxDepth = max(w.stats.MaxDepth, depth)

		if _, loop := w.ancestors[dep]; loop {
			if !w.emit(prefix + connector + domain.TagLoop + " " + w.builder.display(dep)) {
				return
			}
			continue
		}

		w.unique[dep] = struct{}{}
		if !w.emit(prefix + connector + domain.TagInclude + " " + w.builder.display(dep)) {
			return
		}

		w.ancestors[dep] = struct{}{}
		w.descend(dep, prefix+indent, depth+1)
		delete(w.ancestors, dep)

		if w.stopped() {
			return
		}
	}

	for _, raw := range info.UnresolvedIncludes {
		connector, _ := next()
		key := domain.NormalizePath(raw)
		if _, seen := w.unresolved[key]; !seen {
			w.unresolved[key] = struct{}{}
			w.stats.UnresolvedIncludes = append(w.stats.UnresolvedIncludes, raw)
		}
		if !w.emit(prefix + connector + domain.TagMissing + " " + raw) {
			return
		}
	}
}
