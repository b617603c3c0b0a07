package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/engine/graph"
)

func chainCache() staticCache {
	return staticCache{
		file("a.ahk"): includes([]string{file("b.ahk")}),
		file("b.ahk"): includes([]string{file("c.ahk")}, "gone.ahk"),
		file("c.ahk"): includes([]string{file("d.ahk")}),
	}
}

func TestBuilder_BuildPayload_DepthLimit(t *testing.T) {
	b := graph.NewBuilder(chainCache(), workspace, 0)

	p := b.BuildPayload(context.Background(), []string{file("a.ahk")},
		domain.PayloadOptions{MaxDepth: 2, MaxBytes: domain.DefaultPayloadMaxBytes})

	require.False(t, p.Truncated)
	require.Len(t, p.Roots, 1)

	root := p.Roots[0]
	assert.Equal(t, "a.ahk", root.DisplayName)
	require.Len(t, root.Children, 1)

	bNode := root.Children[0]
	assert.Equal(t, domain.NodeResolved, bNode.Kind)
	require.Len(t, bNode.Children, 2)
	assert.Equal(t, domain.NodeUnresolved, bNode.Children[1].Kind)

	cNode := bNode.Children[0]
	assert.Equal(t, domain.NodeResolved, cNode.Kind)
	require.Len(t, cNode.Children, 1)
	assert.Equal(t, domain.NodeDepthLimited, cNode.Children[0].Kind)
	assert.Equal(t, "d.ahk", cNode.Children[0].DisplayName)
	assert.Empty(t, cNode.Children[0].Children)
}

func TestBuilder_BuildPayload_Cycle(t *testing.T) {
	b := graph.NewBuilder(cycleCache(), workspace, 0)

	p := b.BuildPayload(context.Background(), []string{file("a.ahk")}, domain.DefaultPayloadOptions())

	require.Len(t, p.Roots, 1)
	bNode := p.Roots[0].Children[0]
	require.Len(t, bNode.Children, 1)
	assert.True(t, bNode.Children[0].IsCycleRef())
	assert.Equal(t, file("a.ahk"), bNode.Children[0].FilePath)
}

func TestBuilder_BuildPayload_SizeCeiling(t *testing.T) {
	b := graph.NewBuilder(diamondCache(), workspace, 0)
	entries := []string{file("a.ahk")}

	full := b.BuildPayload(context.Background(), entries, domain.DefaultPayloadOptions())
	require.False(t, full.Truncated)
	require.Positive(t, full.Size)

	p := b.BuildPayload(context.Background(), entries, domain.PayloadOptions{MaxDepth: 5, MaxBytes: 16})

	assert.True(t, p.Truncated)
	assert.Contains(t, p.Reason, "exceeds limit of 16 bytes")
	assert.Equal(t, full.Size, p.Size)
	require.Len(t, p.Roots, 1)
	assert.Equal(t, "a.ahk", p.Roots[0].DisplayName)
	assert.Empty(t, p.Roots[0].Children)
	assert.NotEqual(t, full.Checksum, p.Checksum)
}

func TestBuilder_BuildPayload_Checksum(t *testing.T) {
	cache := diamondCache()
	b := graph.NewBuilder(cache, workspace, 0)
	entries := []string{file("a.ahk")}

	first := b.BuildPayload(context.Background(), entries, domain.DefaultPayloadOptions())
	second := b.BuildPayload(context.Background(), entries, domain.DefaultPayloadOptions())
	assert.Equal(t, first.Checksum, second.Checksum)

	cache.Invalidate(file("c.ahk"))
	third := b.BuildPayload(context.Background(), entries, domain.DefaultPayloadOptions())
	assert.NotEqual(t, first.Checksum, third.Checksum)
}

func TestBuilder_BuildPayload_NoEntries(t *testing.T) {
	b := graph.NewBuilder(staticCache{}, workspace, 0)

	p := b.BuildPayload(context.Background(), nil, domain.DefaultPayloadOptions())

	assert.Empty(t, p.Roots)
	assert.False(t, p.Truncated)
	assert.Equal(t, len("[]"), p.Size)
}
