// Package refresh coalesces file events into serialized graph rebuilds.
package refresh

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/core/ports"
)

// RootSource recomputes the entry points after the cache was invalidated.
type RootSource func(ctx context.Context) []string

// Listener receives a GraphChange after every rebuild.
type Listener func(domain.GraphChange)

// purger is implemented by caches that can drop every entry at once.
type purger interface {
	Purge()
}

// Scheduler debounces file events and runs at most one rebuild at a time.
//
// Every event resets the window. When the window expires while a rebuild is
// running, exactly one follow-up rebuild is queued; it consumes whatever
// events accumulated in the meantime.
type Scheduler struct {
	cache  ports.DependencyCache
	roots  RootSource
	window time.Duration

	mu       sync.Mutex
	pending  map[domain.SourceFile]domain.FileOp
	forced   bool
	timer    *time.Timer
	timerGen uint64
	running  bool
	queued   bool
	closed   bool
	idle     chan struct{}
	revision uint64

	listeners map[int]Listener
	nextID    int
}

// New creates a Scheduler. A non-positive window falls back to the default.
func New(cache ports.DependencyCache, roots RootSource, window time.Duration) *Scheduler {
	if window <= 0 {
		window = domain.DefaultDebounce
	}
	return &Scheduler{
		cache:     cache,
		roots:     roots,
		window:    window,
		pending:   make(map[domain.SourceFile]domain.FileOp),
		listeners: make(map[int]Listener),
	}
}

// OnEvent records a file event and restarts the debounce window.
func (s *Scheduler) OnEvent(ev domain.FileEvent) {
	key := domain.NewSourceFile(ev.Path)
	if key.IsZero() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if prev, ok := s.pending[key]; ok {
		s.pending[key] = prev.Then(ev.Op)
	} else {
		s.pending[key] = ev.Op
	}
	s.resetTimer()
}

// RequestRefresh schedules a rebuild even when no file changed.
func (s *Scheduler) RequestRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.forced = true
	s.resetTimer()
}

// Subscribe registers fn for every subsequent GraphChange. The returned
// function removes it again.
func (s *Scheduler) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Revision returns the number of completed rebuilds.
func (s *Scheduler) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Flush starts a pending rebuild without waiting for the window, then blocks
// until no rebuild is running or ctx is done.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSchedulerClosed
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
		s.trigger()
	}
	idle := s.idle
	running := s.running
	s.mu.Unlock()

	if !running {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the pending window and waits for an in-flight rebuild.
// Later events are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.queued = false
	idle := s.idle
	running := s.running
	s.mu.Unlock()

	if running {
		<-idle
	}
}

// resetTimer must be called with mu held.
func (s *Scheduler) resetTimer() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerGen++
	gen := s.timerGen
	s.timer = time.AfterFunc(s.window, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A stopped or replaced timer may still fire once.
	if s.timer == nil || s.timerGen != gen || s.closed {
		return
	}
	s.timer = nil
	s.trigger()
}

// trigger must be called with mu held.
func (s *Scheduler) trigger() {
	if s.running {
		s.queued = true
		return
	}
	s.running = true
	s.idle = make(chan struct{})
	go s.loop(s.takeBatch())
}

// takeBatch must be called with mu held.
func (s *Scheduler) takeBatch() []domain.FileEvent {
	events := make([]domain.FileEvent, 0, len(s.pending))
	for key, op := range s.pending {
		events = append(events, domain.FileEvent{Path: key.Path(), Op: op})
	}
	clear(s.pending)
	s.forced = false
	slices.SortFunc(events, func(a, b domain.FileEvent) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return events
}

func (s *Scheduler) loop(events []domain.FileEvent) {
	for {
		s.rebuild(events)

		s.mu.Lock()
		if !s.queued || s.closed {
			s.running = false
			s.queued = false
			close(s.idle)
			s.mu.Unlock()
			return
		}
		s.queued = false
		events = s.takeBatch()
		s.mu.Unlock()
	}
}

func (s *Scheduler) rebuild(events []domain.FileEvent) {
	change := domain.GraphChange{Events: events, Invalidated: []string{}}

	structural := false
	for _, ev := range events {
		if ev.Op.Invalidates() {
			s.cache.Invalidate(ev.Path)
			change.Invalidated = append(change.Invalidated, ev.Path)
		}
		structural = structural || ev.Op.Structural()
	}
	if p, ok := s.cache.(purger); ok && structural {
		p.Purge()
		change.Purged = true
	}

	// In-flight rebuilds are never cancelled.
	change.Roots = s.roots(context.Background())

	s.mu.Lock()
	s.revision++
	change.Revision = s.revision
	listeners := make([]Listener, 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}
