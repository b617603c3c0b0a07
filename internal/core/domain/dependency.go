// Package domain contains the core domain models of the include dependency graph.
package domain

import (
	"path/filepath"
	"strings"
)

// IncludeForm classifies the syntax a raw include was written in.
type IncludeForm uint8

const (
	// FormPath is a quoted or bare file path.
	FormPath IncludeForm = iota
	// FormLibrary is an angle-bracket library reference such as <Name>.
	FormLibrary
)

// ClassifyInclude reports the form of a raw include.
func ClassifyInclude(raw string) IncludeForm {
	if len(raw) >= 2 && raw[0] == '<' && raw[len(raw)-1] == '>' {
		return FormLibrary
	}
	return FormPath
}

// LibraryName returns the name inside an angle-bracket include.
// The second result is false when raw is not in library form.
func LibraryName(raw string) (string, bool) {
	if ClassifyInclude(raw) != FormLibrary {
		return "", false
	}
	return strings.TrimSpace(raw[1 : len(raw)-1]), true
}

// NormalizeSeparators rewrites both slash styles to the OS separator.
// Scripts are routinely written with backslashes regardless of the host.
func NormalizeSeparators(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}

// NormalizePath returns the canonical key used for a source file.
func NormalizePath(p string) string {
	return filepath.Clean(NormalizeSeparators(p))
}

// DependencyInfo is the memoized include analysis of a single file.
// len(ResolvedIncludes)+len(UnresolvedIncludes) always equals len(RawIncludes),
// since RawIncludes is already de-duplicated.
type DependencyInfo struct {
	RawIncludes        []string
	ResolvedIncludes   []string
	UnresolvedIncludes []string
}

// IsEmpty reports whether the file has no include directives at all.
func (d DependencyInfo) IsEmpty() bool {
	return len(d.RawIncludes) == 0
}

// Clone returns a copy that shares no backing arrays with d.
func (d DependencyInfo) Clone() DependencyInfo {
	return DependencyInfo{
		RawIncludes:        cloneStrings(d.RawIncludes),
		ResolvedIncludes:   cloneStrings(d.ResolvedIncludes),
		UnresolvedIncludes: cloneStrings(d.UnresolvedIncludes),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
