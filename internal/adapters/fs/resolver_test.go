package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ahkdeps/internal/adapters/fs"
)

func writeScript(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolver_Resolve_LibraryPrecedence(t *testing.T) {
	workspace := t.TempDir()
	install := t.TempDir()

	main := writeScript(t, filepath.Join(workspace, "src", "main.ahk"), "#Include <Foo>")
	workspaceLib := writeScript(t, filepath.Join(workspace, "Lib", "Foo.ahk"), "")
	localLib := writeScript(t, filepath.Join(workspace, "src", "Lib", "Foo.ahk"), "")
	writeScript(t, filepath.Join(install, "Foo.ahk"), "")

	resolver := fs.NewResolverWithRoots(workspace, []string{install})

	got, ok := resolver.Resolve("<Foo>", main)
	require.True(t, ok)
	assert.Equal(t, workspaceLib, got)

	require.NoError(t, os.Remove(workspaceLib))
	got, ok = resolver.Resolve("<Foo>", main)
	require.True(t, ok)
	assert.Equal(t, localLib, got)

	require.NoError(t, os.Remove(localLib))
	got, ok = resolver.Resolve("<Foo>", main)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(install, "Foo.ahk"), got)
}

func TestResolver_Resolve_LibraryPrefixFallback(t *testing.T) {
	workspace := t.TempDir()
	main := writeScript(t, filepath.Join(workspace, "main.ahk"), "")
	prefixed := writeScript(t, filepath.Join(workspace, "Lib", "Gdip.ahk"), "")

	resolver := fs.NewResolverWithRoots(workspace, nil)

	got, ok := resolver.Resolve("<Gdip_All>", main)
	require.True(t, ok)
	assert.Equal(t, prefixed, got)
}

func TestResolver_Resolve_PathForms(t *testing.T) {
	workspace := t.TempDir()
	main := writeScript(t, filepath.Join(workspace, "app", "main.ahk"), "")
	sibling := writeScript(t, filepath.Join(workspace, "app", "helpers.ahk"), "")
	nested := writeScript(t, filepath.Join(workspace, "app", "lib", "util.ahk"), "")
	shared := writeScript(t, filepath.Join(workspace, "shared", "common.ahk"), "")
	noExt := writeScript(t, filepath.Join(workspace, "app", "config"), "")

	resolver := fs.NewResolverWithRoots(workspace, nil)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "sibling", raw: "helpers.ahk", want: sibling},
		{name: "dot relative", raw: `.\lib\util.ahk`, want: nested},
		{name: "backslashes", raw: `lib\util.ahk`, want: nested},
		{name: "extension appended", raw: "lib/util", want: nested},
		{name: "extensionless file preferred", raw: "config", want: noExt},
		{name: "absolute", raw: shared, want: shared},
		{name: "workspace root fallback", raw: `shared\common.ahk`, want: shared},
		{name: "parent relative", raw: `..\shared\common.ahk`, want: shared},
		{name: "script dir variable", raw: `%A_ScriptDir%\helpers.ahk`, want: sibling},
		{name: "variable case insensitive", raw: `%a_scriptdir%\helpers.ahk`, want: sibling},
		{name: "line file variable", raw: `%A_LineFile%\..\helpers.ahk`, want: sibling},
		{name: "working dir variable", raw: `%A_WorkingDir%\shared\common.ahk`, want: shared},
		{name: "ignore option", raw: "*i helpers.ahk", want: sibling},
		{name: "library with separator uses path rules", raw: `<lib\util>`, want: nested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.Resolve(tt.raw, main)
			require.True(t, ok, "expected %q to resolve", tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Resolve_Missing(t *testing.T) {
	workspace := t.TempDir()
	main := writeScript(t, filepath.Join(workspace, "main.ahk"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(workspace, "dir.ahk"), 0o750))

	resolver := fs.NewResolverWithRoots(workspace, nil)

	for _, raw := range []string{"missing.ahk", "<Nope>", "dir.ahk"} {
		got, ok := resolver.Resolve(raw, main)
		assert.False(t, ok, raw)
		assert.Empty(t, got, raw)
	}
}

func TestResolver_Resolve_Deterministic(t *testing.T) {
	workspace := t.TempDir()
	main := writeScript(t, filepath.Join(workspace, "main.ahk"), "")
	writeScript(t, filepath.Join(workspace, "Lib", "A.ahk"), "")
	writeScript(t, filepath.Join(workspace, "b.ahk"), "")

	resolver := fs.NewResolverWithRoots(workspace, nil)

	for _, raw := range []string{"<A>", "b.ahk", "missing.ahk"} {
		first, firstOK := resolver.Resolve(raw, main)
		for range 5 {
			got, ok := resolver.Resolve(raw, main)
			assert.Equal(t, firstOK, ok)
			assert.Equal(t, first, got)
		}
	}
}

func TestResolver_Candidates(t *testing.T) {
	workspace := filepath.FromSlash("/ws")
	install := filepath.FromSlash("/install/Lib")
	source := filepath.FromSlash("/ws/src/main.ahk")

	resolver := fs.NewResolverWithRoots(workspace, []string{install})

	t.Run("library", func(t *testing.T) {
		assert.Equal(t, []string{
			filepath.FromSlash("/ws/Lib/Foo.ahk"),
			filepath.FromSlash("/ws/src/Lib/Foo.ahk"),
			filepath.FromSlash("/install/Lib/Foo.ahk"),
		}, resolver.Candidates("<Foo>", source))
	})

	t.Run("relative path without extension", func(t *testing.T) {
		assert.Equal(t, []string{
			filepath.FromSlash("/ws/src/inc/x"),
			filepath.FromSlash("/ws/src/inc/x.ahk"),
			filepath.FromSlash("/ws/inc/x"),
			filepath.FromSlash("/ws/inc/x.ahk"),
		}, resolver.Candidates(`inc\x`, source))
	})

	t.Run("dot relative is deduplicated", func(t *testing.T) {
		assert.Equal(t, []string{
			filepath.FromSlash("/ws/src/x.ahk"),
			filepath.FromSlash("/ws/x.ahk"),
		}, resolver.Candidates("./x.ahk", source))
	})

	t.Run("no workspace root", func(t *testing.T) {
		bare := fs.NewResolverWithRoots("", nil)
		assert.Equal(t, []string{
			filepath.FromSlash("/ws/src/Lib/Foo.ahk"),
		}, bare.Candidates("<Foo>", source))
	})
}
