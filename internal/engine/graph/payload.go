package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ahkdeps/internal/core/domain"
)

// BuildPayload serializes the full tree of every entry point.
//
// Expansion stops at opts.MaxDepth with a depth-limited node, and a file
// repeated on its own branch becomes a cycle reference. When the encoded
// trees exceed opts.MaxBytes the payload degrades to the bare entry points.
func (b *Builder) BuildPayload(ctx context.Context, entryPoints []string, opts domain.PayloadOptions) domain.Payload {
	roots := make([]domain.DependencyNode, 0, len(entryPoints))
	for _, entry := range entryPoints {
		if ctx.Err() != nil {
			break
		}
		entry = domain.NormalizePath(entry)
		node := domain.ResolvedNode(entry, b.display(entry))
		node.Children = b.expand(ctx, entry, map[string]struct{}{entry: {}}, 1, opts.MaxDepth)
		roots = append(roots, node)
	}

	body, err := json.Marshal(roots)
	if err != nil {
		return b.flatPayload(entryPoints, 0, "encode failed: "+err.Error())
	}
	if opts.MaxBytes > 0 && len(body) > opts.MaxBytes {
		return b.flatPayload(entryPoints, len(body),
			fmt.Sprintf("encoded size %d bytes exceeds limit of %d bytes", len(body), opts.MaxBytes))
	}

	return domain.Payload{
		Roots:    roots,
		Size:     len(body),
		Checksum: checksum(body),
	}
}

func (b *Builder) expand(
	ctx context.Context,
	file string,
	ancestors map[string]struct{},
	depth, maxDepth int,
) []domain.DependencyNode {
	if ctx.Err() != nil {
		return nil
	}
	info := b.cache.Analyze(ctx, file)
	if info.IsEmpty() {
		return nil
	}

	children := make([]domain.DependencyNode, 0, len(info.ResolvedIncludes)+len(info.UnresolvedIncludes))
	for _, dep := range info.ResolvedIncludes {
		name := b.display(dep)
		switch _, loop := ancestors[dep]; {
		case loop:
			children = append(children, domain.CycleRefNode(dep, name))
		case maxDepth > 0 && depth > maxDepth:
			children = append(children, domain.DepthLimitedNode(dep, name))
		default:
			node := domain.ResolvedNode(dep, name)
			ancestors[dep] = struct{}{}
			node.Children = b.expand(ctx, dep, ancestors, depth+1, maxDepth)
			delete(ancestors, dep)
			children = append(children, node)
		}
	}
	for _, raw := range info.UnresolvedIncludes {
		children = append(children, domain.UnresolvedNode(raw))
	}
	return children
}

func (b *Builder) flatPayload(entryPoints []string, size int, reason string) domain.Payload {
	roots := make([]domain.DependencyNode, 0, len(entryPoints))
	for _, entry := range entryPoints {
		entry = domain.NormalizePath(entry)
		roots = append(roots, domain.ResolvedNode(entry, b.display(entry)))
	}
	body, _ := json.Marshal(roots)
	return domain.Payload{
		Roots:     roots,
		Truncated: true,
		Reason:    reason,
		Size:      size,
		Checksum:  checksum(body),
	}
}

func checksum(body []byte) string {
	return strconv.FormatUint(xxhash.Sum64(body), 16)
}
