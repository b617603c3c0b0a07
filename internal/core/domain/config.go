package domain

import (
	"slices"
	"strings"
	"time"
)

// Config is the resolved workspace configuration.
type Config struct {
	// Root is the absolute workspace root.
	Root string
	// Extensions are the tracked script extensions, lower-case with a leading dot.
	Extensions []string
	// LibraryPaths are extra installation library folders, searched after the workspace ones.
	LibraryPaths []string
	// Ignore are doublestar globs matched against workspace-relative slash paths.
	Ignore []string
	// Debounce is the refresh coalescing window.
	Debounce time.Duration
	// CacheMaxEntries bounds the dependency cache; 0 means unbounded.
	CacheMaxEntries int
	// Payload bounds tree serialization.
	Payload PayloadOptions
	// SnapshotMaxLines caps the rendered snapshot tree.
	SnapshotMaxLines int
	// Source is the config file the values came from, empty for defaults.
	Source string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:             root,
		Extensions:       DefaultExtensions(),
		Ignore:           DefaultIgnorePatterns(),
		Debounce:         DefaultDebounce,
		Payload:          DefaultPayloadOptions(),
		SnapshotMaxLines: DefaultSnapshotMaxLines,
	}
}

// IsScript reports whether path carries one of the tracked extensions.
func (c *Config) IsScript(path string) bool {
	lower := strings.ToLower(path)
	return slices.ContainsFunc(c.Extensions, func(ext string) bool {
		return strings.HasSuffix(lower, ext)
	})
}
