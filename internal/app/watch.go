package app

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/ahkdeps/internal/adapters/detector"
	"go.trai.ch/ahkdeps/internal/adapters/linear"
	"go.trai.ch/ahkdeps/internal/adapters/watcher"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/engine/explorer"
	"go.trai.ch/ahkdeps/internal/engine/refresh"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Options
	// File is the initial active file; empty starts with the entry point list.
	File string
	// Pin keeps File as the root while other scripts change.
	Pin bool
	// Output is the --output flag: auto, redraw or append.
	Output string
	// Ready, when set, is called once the watcher runs and the first report
	// was written. This is primarily used for testing.
	Ready func()
}

// Watch reports the graph after every coalesced batch of file events until
// ctx ends. Unless pinned, the root follows the most recently changed script.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	mode, err := detector.ResolveMode(detector.DetectEnvironment(a.out), opts.Output)
	if err != nil {
		return err
	}

	s, err := a.open(opts.Options, explorer.WithSignal(a.logSignal))
	if err != nil {
		return err
	}

	if opts.File != "" {
		file, err := s.scriptPath(opts.File)
		if err != nil {
			return err
		}
		s.explorer.SetActiveFile(file)
	}
	if opts.Pin {
		if err := s.explorer.Pin(); err != nil {
			return err
		}
	}

	roots := func(ctx context.Context) []string {
		entries, err := s.entryPoints(ctx)
		if err != nil {
			a.logger.Error(err)
			return nil
		}
		return entries
	}
	sched := refresh.New(s.cache, roots, s.cfg.Debounce)
	defer sched.Close()

	r := &reporter{
		app:      a,
		session:  s,
		renderer: a.renderer(opts.Options),
		redraw:   mode == detector.ModeRedraw,
	}
	unsubscribe := sched.Subscribe(r.report)
	defer unsubscribe()

	if err := a.watcher.Start(ctx, s.cfg.Root); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	sched.RequestRefresh()
	if err := sched.Flush(ctx); err != nil {
		return nil //nolint:nilerr // interrupted before the first report
	}
	a.logger.Info(fmt.Sprintf("watching %s", s.cfg.Root))
	if opts.Ready != nil {
		opts.Ready()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for ev := range a.watcher.Events() {
			if fe, ok := watcher.Translate(s.cfg, ev); ok {
				r.note(fe)
				sched.OnEvent(fe)
			}
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Stop()
	})

	return g.Wait()
}

func (a *App) logSignal(sig explorer.ContextSignal) {
	switch {
	case sig.Pinned:
		return
	case sig.ActiveFile == "":
		a.logger.Info("no active file")
	default:
		a.logger.Info(fmt.Sprintf("following %s", sig.ActiveFile))
	}
}

// reporter writes one report per rebuild.
type reporter struct {
	app      *App
	session  *session
	renderer *linear.Renderer
	redraw   bool

	mu     sync.Mutex
	latest string
}

// note remembers the most recent created or changed script. Deleted files
// and directories never become the active file.
func (r *reporter) note(ev domain.FileEvent) {
	if ev.Op == domain.FileDeleted || !r.session.cfg.IsScript(ev.Path) {
		return
	}
	r.mu.Lock()
	r.latest = ev.Path
	r.mu.Unlock()
}

func (r *reporter) report(change domain.GraphChange) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ex := r.session.explorer
	active := ex.ActiveFile()
	for _, ev := range change.Events {
		if ev.Op == domain.FileDeleted && ev.Path == active {
			ex.SetActiveFile("")
		}
	}
	if r.latest != "" {
		ex.SetActiveFile(r.latest)
		r.latest = ""
	}

	if r.redraw {
		r.renderer.Clear()
	}
	if err := r.renderer.Change(change); err != nil {
		r.app.logger.Error(err)
		return
	}

	if _, ok := ex.CurrentRoot(); !ok {
		displays := make([]string, 0, len(change.Roots))
		for _, root := range change.Roots {
			displays = append(displays, ex.Display(root))
		}
		if err := r.renderer.EntryPoints(displays); err != nil {
			r.app.logger.Error(err)
		}
		return
	}

	snap, err := ex.CaptureSnapshot(context.Background())
	if err != nil {
		r.app.logger.Error(err)
		return
	}
	if err := r.renderer.Snapshot(snap, ex.Display(snap.RootFilePath)); err != nil {
		r.app.logger.Error(err)
	}
}
