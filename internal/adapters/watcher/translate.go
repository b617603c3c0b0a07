package watcher

import (
	"os"
	"path/filepath"

	"go.trai.ch/ahkdeps/internal/adapters/fs"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/core/ports"
)

// Translate maps a raw watch event onto the script event it implies.
//
// Only tracked, non-ignored scripts produce events, with one exception:
// a directory appearing or disappearing is reported too, since the scripts
// inside it are not announced individually.
func Translate(cfg *domain.Config, ev ports.WatchEvent) (domain.FileEvent, bool) {
	path := domain.NormalizePath(ev.Path)
	if fs.Ignored(cfg.Root, path, cfg.Ignore) {
		return domain.FileEvent{}, false
	}

	var op domain.FileOp
	switch ev.Operation {
	case ports.OpCreate:
		op = domain.FileCreated
	case ports.OpWrite:
		op = domain.FileChanged
	case ports.OpRemove, ports.OpRename:
		op = domain.FileDeleted
	default:
		return domain.FileEvent{}, false
	}

	if cfg.IsScript(path) {
		return domain.FileEvent{Path: path, Op: op}, true
	}
	if looksLikeDir(path, op) {
		return domain.FileEvent{Path: path, Op: op}, true
	}
	return domain.FileEvent{}, false
}

// looksLikeDir checks the filesystem for created paths. Removed paths can no
// longer be inspected, so a missing extension is taken as a directory.
func looksLikeDir(path string, op domain.FileOp) bool {
	switch op {
	case domain.FileCreated:
		info, err := os.Stat(path)
		return err == nil && info.IsDir()
	case domain.FileDeleted:
		return filepath.Ext(path) == ""
	default:
		return false
	}
}
