package fs

import (
	"iter"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/core/ports"
)

var _ ports.PathResolver = (*Resolver)(nil)

// Resolver implements ports.PathResolver by probing candidate paths in priority order.
type Resolver struct {
	workspaceRoot string
	libraryRoots  []string
}

// NewResolver creates a Resolver for the given workspace root.
// libraryPaths are searched for <Name> includes after the workspace and
// script-local Lib folders, followed by the platform installation folders.
func NewResolver(workspaceRoot string, libraryPaths ...string) *Resolver {
	roots := make([]string, 0, len(libraryPaths)+3)
	roots = append(roots, libraryPaths...)
	roots = append(roots, platformLibraryRoots()...)
	return newResolver(workspaceRoot, roots)
}

func newResolver(workspaceRoot string, libraryRoots []string) *Resolver {
	if workspaceRoot != "" {
		workspaceRoot = domain.NormalizePath(workspaceRoot)
	}
	cleaned := make([]string, 0, len(libraryRoots))
	for _, root := range libraryRoots {
		if root == "" {
			continue
		}
		cleaned = append(cleaned, domain.NormalizePath(root))
	}
	return &Resolver{
		workspaceRoot: workspaceRoot,
		libraryRoots:  cleaned,
	}
}

// Resolve returns the first candidate for raw that exists as a regular file.
func (r *Resolver) Resolve(raw, sourceFile string) (string, bool) {
	for candidate := range r.candidates(raw, sourceFile) {
		if isRegularFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Candidates returns every path Resolve would probe for raw, in order.
func (r *Resolver) Candidates(raw, sourceFile string) []string {
	return slices.Collect(r.candidates(raw, sourceFile))
}

// candidates yields the deduplicated candidate paths lazily.
func (r *Resolver) candidates(raw, sourceFile string) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		emit := func(p string) bool {
			p = filepath.Clean(p)
			if _, ok := seen[p]; ok {
				return true
			}
			seen[p] = struct{}{}
			return yield(p)
		}

		sourceFile = domain.NormalizePath(sourceFile)
		sourceDir := filepath.Dir(sourceFile)
		target := r.expandVariables(stripIgnoreOption(strings.TrimSpace(raw)), sourceFile)

		if name, ok := domain.LibraryName(target); ok {
			if !strings.ContainsAny(name, `/\`) && !filepath.IsAbs(name) {
				r.libraryCandidates(name, sourceDir, emit)
				return
			}
			target = name
		}

		r.pathCandidates(target, sourceDir, emit)
	}
}

// libraryCandidates emits <dir>/<Name>.ahk for every library folder, then the
// <dir>/<Prefix>.ahk fallback for names of the form Prefix_Rest.
func (r *Resolver) libraryCandidates(name, sourceDir string, emit func(string) bool) {
	dirs := make([]string, 0, len(r.libraryRoots)+2)
	if r.workspaceRoot != "" {
		dirs = append(dirs, filepath.Join(r.workspaceRoot, domain.LibDirName))
	}
	dirs = append(dirs, filepath.Join(sourceDir, domain.LibDirName))
	dirs = append(dirs, r.libraryRoots...)

	file := name
	if filepath.Ext(name) == "" {
		file = name + domain.ScriptExtension
	}
	for _, dir := range dirs {
		if !emit(filepath.Join(dir, file)) {
			return
		}
	}

	prefix, _, found := strings.Cut(name, "_")
	if !found || prefix == "" || filepath.Ext(name) != "" {
		return
	}
	for _, dir := range dirs {
		if !emit(filepath.Join(dir, prefix+domain.ScriptExtension)) {
			return
		}
	}
}

// pathCandidates emits the candidates for a quoted or bare path.
func (r *Resolver) pathCandidates(target, sourceDir string, emit func(string) bool) {
	p := domain.NormalizeSeparators(target)
	names := []string{p}
	if filepath.Ext(p) == "" {
		names = append(names, p+domain.ScriptExtension)
	}

	if strings.HasPrefix(p, ".") {
		for _, name := range names {
			if !emit(filepath.Join(sourceDir, name)) {
				return
			}
		}
	}

	if filepath.IsAbs(p) {
		emit(p)
		return
	}

	for _, name := range names {
		if !emit(filepath.Join(sourceDir, name)) {
			return
		}
	}

	if r.workspaceRoot == "" {
		return
	}
	for _, name := range names {
		if !emit(filepath.Join(r.workspaceRoot, name)) {
			return
		}
	}
}

// expandVariables substitutes the built-in variables that are meaningful for includes.
func (r *Resolver) expandVariables(target, sourceFile string) string {
	if !strings.Contains(target, "%") {
		return target
	}
	workingDir := r.workspaceRoot
	if workingDir == "" {
		workingDir = filepath.Dir(sourceFile)
	}
	replacements := []struct {
		name  string
		value string
	}{
		{"%A_ScriptDir%", filepath.Dir(sourceFile)},
		{"%A_LineFile%", sourceFile},
		{"%A_WorkingDir%", workingDir},
	}
	for _, rep := range replacements {
		target = replaceFold(target, rep.name, rep.value)
	}
	return target
}

// replaceFold replaces every case-insensitive occurrence of old in s.
func replaceFold(s, old, replacement string) string {
	lowerOld := strings.ToLower(old)
	var b strings.Builder
	for {
		idx := strings.Index(strings.ToLower(s), lowerOld)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:idx])
		b.WriteString(replacement)
		s = s[idx+len(old):]
	}
}

// stripIgnoreOption removes a leading *i flag.
func stripIgnoreOption(raw string) string {
	if len(raw) > 2 && strings.EqualFold(raw[:2], "*i") && (raw[2] == ' ' || raw[2] == '\t') {
		return strings.TrimSpace(raw[3:])
	}
	return raw
}

// isRegularFile reports whether path exists and is not a directory.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// platformLibraryRoots returns the installation library folders for the host.
// They only exist on Windows.
func platformLibraryRoots() []string {
	if runtime.GOOS != "windows" {
		return nil
	}

	var roots []string
	if home := os.Getenv("USERPROFILE"); home != "" {
		roots = append(roots, filepath.Join(home, "Documents", "AutoHotkey", domain.LibDirName))
	}
	for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
		if dir := os.Getenv(env); dir != "" {
			roots = append(roots,
				filepath.Join(dir, "AutoHotkey", domain.LibDirName),
				filepath.Join(dir, "AutoHotkey", "v2", domain.LibDirName),
			)
		}
	}
	return roots
}
