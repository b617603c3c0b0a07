// Package app implements the application layer for ahkdeps.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/ahkdeps/internal/adapters/cache"
	"go.trai.ch/ahkdeps/internal/adapters/fs"
	"go.trai.ch/ahkdeps/internal/adapters/linear"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/core/ports"
	"go.trai.ch/ahkdeps/internal/engine/explorer"
	"go.trai.ch/ahkdeps/internal/engine/graph"
	"go.trai.ch/ahkdeps/internal/ui/output"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	watcher      ports.Watcher
	walker       *fs.Walker
	out          io.Writer
	now          func() time.Time
}

// New creates a new App instance writing reports to stdout.
func New(loader ports.ConfigLoader, log ports.Logger, watcher ports.Watcher, walker *fs.Walker) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		watcher:      watcher,
		walker:       walker,
		out:          os.Stdout,
		now:          time.Now,
	}
}

// WithOutput redirects reports to w.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithClock replaces the clock used for snapshot timestamps.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// logSettings is implemented by loggers that can switch format and level.
type logSettings interface {
	SetJSON(enable bool)
	SetQuiet(quiet bool)
}

// ConfigureLogging applies the global log flags when the logger supports them.
func (a *App) ConfigureLogging(jsonMode, quiet bool) {
	if l, ok := a.logger.(logSettings); ok {
		l.SetJSON(jsonMode)
		l.SetQuiet(quiet)
	}
}

// Close releases the file watcher.
func (a *App) Close() error {
	return a.watcher.Stop()
}

// Options are shared by every command.
type Options struct {
	// Root is the directory the workspace is discovered from; empty means ".".
	Root string
	// Color selects how tags are colored.
	Color output.Mode
}

// TreeOptions configuration for the Tree method.
type TreeOptions struct {
	Options
	File  string
	Depth int
}

// SnapshotOptions configuration for the Snapshot method.
type SnapshotOptions struct {
	Options
	File string
	Pin  bool
	JSON bool
}

// PayloadOptions configuration for the Payload method. Nil limits keep the
// configured values.
type PayloadOptions struct {
	Options
	MaxDepth *int
	MaxBytes *int
}

// Tree prints the include tree below File, or below every entry point when
// File is empty, pulling children level by level up to Depth.
func (a *App) Tree(ctx context.Context, opts TreeOptions) error {
	s, err := a.open(opts.Options)
	if err != nil {
		return err
	}

	var roots []domain.DependencyNode
	if opts.File != "" {
		file, err := s.scriptPath(opts.File)
		if err != nil {
			return err
		}
		s.explorer.SetActiveFile(file)
		root, ok := s.explorer.Root(ctx)
		if !ok {
			return zerr.With(domain.ErrNoRoot, "file", opts.File)
		}
		roots = append(roots, s.explorer.Expand(ctx, *root, opts.Depth))
	} else {
		entries, err := s.entryPoints(ctx)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			roots = append(roots, s.explorer.Expand(ctx, s.builder.RootNode(entry), opts.Depth))
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return a.renderer(opts.Options).Tree(roots)
}

// Snapshot prints the snapshot report for File.
func (a *App) Snapshot(ctx context.Context, opts SnapshotOptions) error {
	s, err := a.open(opts.Options)
	if err != nil {
		return err
	}

	file, err := s.scriptPath(opts.File)
	if err != nil {
		return err
	}
	s.explorer.SetActiveFile(file)
	if opts.Pin {
		if err := s.explorer.Pin(); err != nil {
			return err
		}
	}

	snap, err := s.explorer.CaptureSnapshot(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to capture snapshot")
	}

	if opts.JSON {
		return a.writeJSON(snap)
	}
	return a.renderer(opts.Options).Snapshot(snap, s.explorer.Display(snap.RootFilePath))
}

// EntryPoints lists the workspace scripts that no other script includes.
func (a *App) EntryPoints(ctx context.Context, opts Options) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}

	entries, err := s.entryPoints(ctx)
	if err != nil {
		return err
	}

	displays := make([]string, 0, len(entries))
	for _, entry := range entries {
		displays = append(displays, s.explorer.Display(entry))
	}
	return a.renderer(opts).EntryPoints(displays)
}

// Payload prints the size-guarded JSON payload of every entry point tree.
func (a *App) Payload(ctx context.Context, opts PayloadOptions) error {
	s, err := a.open(opts.Options)
	if err != nil {
		return err
	}

	limits := s.cfg.Payload
	if opts.MaxDepth != nil {
		limits.MaxDepth = *opts.MaxDepth
	}
	if opts.MaxBytes != nil {
		limits.MaxBytes = *opts.MaxBytes
	}
	if limits.MaxDepth < 0 || limits.MaxBytes < 0 {
		return zerr.With(zerr.With(domain.ErrInvalidLimit, "max_depth", limits.MaxDepth), "max_bytes", limits.MaxBytes)
	}

	entries, err := s.entryPoints(ctx)
	if err != nil {
		return err
	}

	payload := s.explorer.Payload(ctx, entries, limits)
	if err := ctx.Err(); err != nil {
		return err
	}
	if payload.Truncated {
		a.logger.Warn(fmt.Sprintf("payload truncated: %s", payload.Reason))
	}
	return a.writeJSON(payload)
}

func (a *App) renderer(opts Options) *linear.Renderer {
	return linear.NewRenderer(a.out, opts.Color)
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, domain.ErrPayloadEncodeFailed.Error())
	}
	return nil
}

// session is the engine stack built for one configuration.
type session struct {
	cfg      *domain.Config
	cwd      string
	cache    *cache.Cache
	builder  *graph.Builder
	explorer *explorer.Explorer
	walker   *fs.Walker
}

func (a *App) open(opts Options, exOpts ...explorer.Option) (*session, error) {
	cwd := opts.Root
	if cwd == "" {
		cwd = "."
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	cfg, err := a.configLoader.Load(abs)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	resolver := fs.NewResolver(cfg.Root, cfg.LibraryPaths...)
	c, err := cache.New(resolver, a.logger, cfg.CacheMaxEntries)
	if err != nil {
		return nil, err
	}
	builder := graph.NewBuilder(c, cfg.Root, cfg.SnapshotMaxLines)

	return &session{
		cfg:      cfg,
		cwd:      abs,
		cache:    c,
		builder:  builder,
		explorer: explorer.New(builder, append([]explorer.Option{explorer.WithClock(a.now)}, exOpts...)...),
		walker:   a.walker,
	}, nil
}

// scriptPath resolves a command-line file against the working directory and
// checks that it is an existing tracked script.
func (s *session) scriptPath(file string) (string, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(s.cwd, file)
	}
	file = domain.NormalizePath(file)

	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", zerr.With(domain.ErrRootNotFound, "file", file)
	}
	if !s.cfg.IsScript(file) {
		return "", zerr.With(zerr.With(domain.ErrRootNotScript, "file", file), "extensions", s.cfg.Extensions)
	}
	return file, nil
}

func (s *session) entryPoints(ctx context.Context) ([]string, error) {
	files, err := s.walker.Scripts(s.cfg)
	if err != nil {
		return nil, err
	}
	return s.builder.EntryPoints(ctx, files), nil
}
