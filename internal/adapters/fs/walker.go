// Package fs provides file system adapters for resolving includes and walking workspaces.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/zerr"
)

// Walker enumerates the script files of a workspace.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// ValidatePatterns reports the first malformed ignore glob.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return zerr.With(domain.ErrInvalidIgnorePattern, "pattern", pattern)
		}
	}
	return nil
}

// Ignored reports whether path matches one of the ignore globs.
// Globs are matched against the slash-separated path relative to root.
func Ignored(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
		// Let "**/dir/**" also exclude the directory entry itself.
		if matched, _ := doublestar.Match(pattern, rel+"/"); matched {
			return true
		}
	}
	return false
}

// WalkScripts yields the absolute path of every tracked script under cfg.Root,
// skipping ignored files and directories. Unreadable directories are skipped.
func (w *Walker) WalkScripts(cfg *domain.Config) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != cfg.Root {
					return fs.SkipDir
				}
				return nil
			}

			if path != cfg.Root && Ignored(cfg.Root, path, cfg.Ignore) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if d.IsDir() || !d.Type().IsRegular() || !cfg.IsScript(path) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Scripts collects WalkScripts into a sorted slice.
func (w *Walker) Scripts(cfg *domain.Config) ([]string, error) {
	if err := ValidatePatterns(cfg.Ignore); err != nil {
		return nil, err
	}
	if !isDir(cfg.Root) {
		return nil, zerr.With(domain.ErrWorkspaceWalkFailed, "root", cfg.Root)
	}
	files := slices.Collect(w.WalkScripts(cfg))
	slices.Sort(files)
	return files, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
