package graph_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/engine/graph"
)

var workspace = filepath.FromSlash("/ws")

func file(name string) string {
	return filepath.Join(workspace, filepath.FromSlash(name))
}

// staticCache serves fixed analyses keyed by normalized path.
type staticCache map[string]domain.DependencyInfo

func (c staticCache) Analyze(_ context.Context, path string) domain.DependencyInfo {
	return c[path].Clone()
}

func (c staticCache) Invalidate(path string) {
	delete(c, path)
}

func includes(resolved []string, unresolved ...string) domain.DependencyInfo {
	info := domain.DependencyInfo{}
	for _, r := range resolved {
		info.RawIncludes = append(info.RawIncludes, filepath.Base(r))
		info.ResolvedIncludes = append(info.ResolvedIncludes, r)
	}
	info.RawIncludes = append(info.RawIncludes, unresolved...)
	info.UnresolvedIncludes = unresolved
	return info
}

func cycleCache() staticCache {
	return staticCache{
		file("a.ahk"): includes([]string{file("b.ahk")}),
		file("b.ahk"): includes([]string{file("a.ahk")}),
	}
}

func diamondCache() staticCache {
	return staticCache{
		file("a.ahk"): includes([]string{file("b.ahk"), file("c.ahk")}),
		file("b.ahk"): includes([]string{file("d.ahk")}),
		file("c.ahk"): includes([]string{file("d.ahk")}),
	}
}

func render(lines []string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestBuilder_BuildASCII_Cycle(t *testing.T) {
	b := graph.NewBuilder(cycleCache(), workspace, 0)

	res := b.BuildASCII(context.Background(), file("a.ahk"))

	goldie.New(t).Assert(t, "cycle", render(res.Lines))

	loops := 0
	for _, line := range res.Lines {
		if strings.Contains(line, domain.TagLoop) {
			loops++
			assert.Contains(t, line, "a.ahk")
		}
	}
	assert.Equal(t, 1, loops)
	assert.Equal(t, 2, res.Stats.MaxDepth)
	assert.Equal(t, 1, res.Stats.UniqueResolvedFiles)
	assert.Equal(t, 2, res.Stats.TotalResolvedIncludes)
	assert.False(t, res.Stats.Truncated)
}

func TestBuilder_BuildASCII_Diamond(t *testing.T) {
	b := graph.NewBuilder(diamondCache(), workspace, 0)

	res := b.BuildASCII(context.Background(), file("a.ahk"))

	goldie.New(t).Assert(t, "diamond", render(res.Lines))

	dLines := 0
	for _, line := range res.Lines {
		if strings.HasSuffix(line, domain.TagInclude+" d.ahk") {
			dLines++
		}
	}
	assert.Equal(t, 2, dLines)
	assert.Equal(t, 3, res.Stats.UniqueResolvedFiles)
	assert.Equal(t, 4, res.Stats.TotalResolvedIncludes)
	assert.Equal(t, 2, res.Stats.MaxDepth)
	assert.Empty(t, res.Stats.UnresolvedIncludes)
}

func TestBuilder_BuildASCII_Mixed(t *testing.T) {
	cache := staticCache{
		file("main.ahk"): includes(
			[]string{file("lib/util.ahk"), file("shared.ahk")},
			"missing.ahk", `sub\gone.ahk`,
		),
		file("lib/util.ahk"): includes([]string{file("shared.ahk")}, "sub/gone.ahk"),
		file("shared.ahk"):   includes([]string{file("main.ahk")}),
	}
	b := graph.NewBuilder(cache, workspace, 0)

	res := b.BuildASCII(context.Background(), file("main.ahk"))

	goldie.New(t).Assert(t, "mixed", render(res.Lines))
	assert.Equal(t, 5, res.Stats.TotalResolvedIncludes)
	assert.Equal(t, 2, res.Stats.UniqueResolvedFiles)
	assert.Equal(t, 3, res.Stats.MaxDepth)
	assert.Equal(t, []string{"sub/gone.ahk", "missing.ahk"}, res.Stats.UnresolvedIncludes)
	assert.Equal(t, 2, res.Stats.UnresolvedCount)
}

func TestBuilder_BuildASCII_UnresolvedSameTarget(t *testing.T) {
	cache := staticCache{
		file("main.ahk"): includes(nil, "missing.ahk", "./missing.ahk", `sub\..\missing.ahk`),
	}
	b := graph.NewBuilder(cache, workspace, 0)

	res := b.BuildASCII(context.Background(), file("main.ahk"))

	assert.Len(t, res.Lines, 4)
	assert.Equal(t, []string{"missing.ahk"}, res.Stats.UnresolvedIncludes)
	assert.Equal(t, 1, res.Stats.UnresolvedCount)
}

func TestBuilder_BuildASCII_LoneRoot(t *testing.T) {
	b := graph.NewBuilder(staticCache{}, workspace, 0)

	res := b.BuildASCII(context.Background(), file("solo.ahk"))

	assert.Equal(t, []string{"[Root] solo.ahk"}, res.Lines)
	assert.Equal(t, domain.Summary{UnresolvedIncludes: []string{}}, res.Stats)
}

func TestBuilder_BuildASCII_SelfInclude(t *testing.T) {
	cache := staticCache{file("a.ahk"): includes([]string{file("a.ahk")})}
	b := graph.NewBuilder(cache, workspace, 0)

	res := b.BuildASCII(context.Background(), file("a.ahk"))

	assert.Equal(t, []string{"[Root] a.ahk", "└── [Loop] a.ahk"}, res.Lines)
	assert.Equal(t, 0, res.Stats.UniqueResolvedFiles)
	assert.Equal(t, 1, res.Stats.MaxDepth)
}

func TestBuilder_BuildASCII_LineCap(t *testing.T) {
	b := graph.NewBuilder(diamondCache(), workspace, 2)

	res := b.BuildASCII(context.Background(), file("a.ahk"))

	require.True(t, res.Stats.Truncated)
	assert.Equal(t, []string{
		"[Root] a.ahk",
		"├── [Inc] b.ahk",
		domain.TruncatedLine,
	}, res.Lines)
}

func TestBuilder_BuildASCII_OutsideWorkspace(t *testing.T) {
	outside := filepath.FromSlash("/opt/ahk/Lib/JSON.ahk")
	cache := staticCache{file("main.ahk"): includes([]string{outside})}
	b := graph.NewBuilder(cache, workspace, 0)

	res := b.BuildASCII(context.Background(), file("main.ahk"))

	require.Len(t, res.Lines, 2)
	assert.Equal(t, "└── [Inc] "+filepath.ToSlash(outside), res.Lines[1])
}

func TestBuilder_BuildChildren(t *testing.T) {
	cache := staticCache{
		file("main.ahk"): includes([]string{file("lib/util.ahk")}, "missing.ahk"),
	}
	b := graph.NewBuilder(cache, workspace, 0)

	children := b.BuildChildren(context.Background(), file("main.ahk"))

	require.Len(t, children, 2)
	assert.Equal(t, domain.NodeResolved, children[0].Kind)
	assert.Equal(t, file("lib/util.ahk"), children[0].FilePath)
	assert.Equal(t, "lib/util.ahk", children[0].DisplayName)
	assert.True(t, children[0].Expandable())

	assert.Equal(t, domain.NodeUnresolved, children[1].Kind)
	assert.Equal(t, "missing.ahk", children[1].RawPath)
	assert.Equal(t, "file not found", children[1].Error)
	assert.False(t, children[1].Expandable())
}

func TestBuilder_BuildChildren_NoCycleGuard(t *testing.T) {
	b := graph.NewBuilder(cycleCache(), workspace, 0)

	children := b.BuildChildren(context.Background(), file("b.ahk"))

	require.Len(t, children, 1)
	assert.Equal(t, domain.NodeResolved, children[0].Kind)
	assert.Equal(t, file("a.ahk"), children[0].FilePath)
}

func TestBuilder_BuildChildren_Leaf(t *testing.T) {
	b := graph.NewBuilder(staticCache{}, workspace, 0)
	assert.Empty(t, b.BuildChildren(context.Background(), file("leaf.ahk")))
}

func TestBuilder_RootNode(t *testing.T) {
	b := graph.NewBuilder(staticCache{}, workspace, 0)

	node := b.RootNode(file("src/main.ahk"))

	assert.Equal(t, domain.NodeResolved, node.Kind)
	assert.Equal(t, "src/main.ahk", node.DisplayName)
}

func TestBuilder_EntryPoints(t *testing.T) {
	tests := []struct {
		name  string
		cache staticCache
		files []string
		want  []string
	}{
		{
			name:  "Diamond",
			cache: diamondCache(),
			files: []string{file("d.ahk"), file("c.ahk"), file("b.ahk"), file("a.ahk")},
			want:  []string{file("a.ahk")},
		},
		{
			name: "Independent",
			cache: staticCache{
				file("a.ahk"): includes([]string{file("b.ahk")}),
			},
			files: []string{file("a.ahk"), file("b.ahk"), file("c.ahk")},
			want:  []string{file("a.ahk"), file("c.ahk")},
		},
		{
			name:  "PureCycle",
			cache: cycleCache(),
			files: []string{file("b.ahk"), file("a.ahk")},
			want:  []string{file("a.ahk"), file("b.ahk")},
		},
		{
			name:  "SelfInclude",
			cache: staticCache{file("a.ahk"): includes([]string{file("a.ahk")})},
			files: []string{file("a.ahk")},
			want:  []string{file("a.ahk")},
		},
		{
			name:  "Empty",
			cache: staticCache{},
			files: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := graph.NewBuilder(tt.cache, workspace, 0)
			got := b.EntryPoints(context.Background(), tt.files)
			assert.Equal(t, tt.want, got)
		})
	}
}
