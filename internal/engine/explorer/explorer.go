// Package explorer is the consumer-facing view of the include graph. It owns
// the pin state and the active file, and answers root, children, snapshot and
// payload queries through the graph builder.
package explorer

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/engine/graph"
	"go.trai.ch/zerr"
)

// ContextSignal tells a view which pin actions currently apply.
type ContextSignal struct {
	ActiveFile string
	CanPin     bool
	Pinned     bool
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithClock replaces time.Now for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Explorer) { e.now = now }
}

// WithFileCheck replaces the check used to detect a vanished pinned file.
func WithFileCheck(exists func(path string) bool) Option {
	return func(e *Explorer) { e.exists = exists }
}

// WithSignal registers the listener that receives every ContextSignal.
func WithSignal(fn func(ContextSignal)) Option {
	return func(e *Explorer) { e.signal = fn }
}

// Explorer is safe for concurrent use.
type Explorer struct {
	builder *graph.Builder

	mu     sync.Mutex
	pin    domain.PinState
	active string

	signal func(ContextSignal)
	now    func() time.Time
	exists func(string) bool
}

// New creates an unpinned Explorer with no active file.
func New(builder *graph.Builder, opts ...Option) *Explorer {
	e := &Explorer{
		builder: builder,
		pin:     domain.Unpinned(),
		now:     time.Now,
		exists:  isRegularFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetActiveFile records the file the user is looking at. An empty path
// clears it. The pin state is left untouched.
func (e *Explorer) SetActiveFile(file string) {
	if file != "" {
		file = domain.NormalizePath(file)
	}

	e.mu.Lock()
	if e.active == file {
		e.mu.Unlock()
		return
	}
	e.active = file
	sig := e.contextLocked()
	e.mu.Unlock()

	e.emit(sig)
}

// ActiveFile returns the current active file, or "".
func (e *Explorer) ActiveFile() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// PinState returns the current pin state.
func (e *Explorer) PinState() domain.PinState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pin
}

// Pin fixes the root to the active file.
func (e *Explorer) Pin() error {
	e.mu.Lock()
	next, err := e.pin.Pin(e.active)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	changed := next != e.pin
	e.pin = next
	sig := e.contextLocked()
	e.mu.Unlock()

	if changed {
		e.emit(sig)
	}
	return nil
}

// Unpin releases the root so it follows the active file again.
func (e *Explorer) Unpin() {
	e.mu.Lock()
	wasPinned := e.pin.IsPinned()
	e.pin = e.pin.Unpin()
	sig := e.contextLocked()
	e.mu.Unlock()

	if wasPinned {
		e.emit(sig)
	}
}

// CurrentRoot returns the pinned file, or the active file when unpinned.
// A pinned file that no longer exists is dropped and the active file is
// used instead.
func (e *Explorer) CurrentRoot() (string, bool) {
	e.mu.Lock()
	var sig *ContextSignal
	if e.pin.IsPinned() && !e.exists(e.pin.File()) {
		e.pin = e.pin.Unpin()
		s := e.contextLocked()
		sig = &s
	}
	root := e.active
	if e.pin.IsPinned() {
		root = e.pin.File()
	}
	e.mu.Unlock()

	if sig != nil {
		e.emit(*sig)
	}
	return root, root != ""
}

// Root returns the expandable node for the current root.
func (e *Explorer) Root(_ context.Context) (*domain.DependencyNode, bool) {
	root, ok := e.CurrentRoot()
	if !ok {
		return nil, false
	}
	node := e.builder.RootNode(root)
	return &node, true
}

// Children pulls one level below node. Only resolved nodes have children.
func (e *Explorer) Children(ctx context.Context, node domain.DependencyNode) []domain.DependencyNode {
	if !node.Expandable() {
		return nil
	}
	return e.builder.BuildChildren(ctx, node.FilePath)
}

// Expand pulls children below node up to depth levels, guarding each branch
// against cycles. Resolved nodes at the depth limit that still have includes
// are marked depth-limited. A depth of zero or less expands fully.
func (e *Explorer) Expand(ctx context.Context, node domain.DependencyNode, depth int) domain.DependencyNode {
	ancestors := map[string]struct{}{node.FilePath: {}}
	return e.expand(ctx, node, ancestors, 1, depth)
}

func (e *Explorer) expand(
	ctx context.Context,
	node domain.DependencyNode,
	ancestors map[string]struct{},
	level, depth int,
) domain.DependencyNode {
	children := e.Children(ctx, node)
	if len(children) == 0 || ctx.Err() != nil {
		return node
	}
	if depth > 0 && level > depth {
		return domain.DepthLimitedNode(node.FilePath, node.DisplayName)
	}

	node.Children = make([]domain.DependencyNode, 0, len(children))
	for _, child := range children {
		if !child.Expandable() {
			node.Children = append(node.Children, child)
			continue
		}
		if _, loop := ancestors[child.FilePath]; loop {
			node.Children = append(node.Children, domain.CycleRefNode(child.FilePath, child.DisplayName))
			continue
		}
		ancestors[child.FilePath] = struct{}{}
		node.Children = append(node.Children, e.expand(ctx, child, ancestors, level+1, depth))
		delete(ancestors, child.FilePath)
	}
	return node
}

// CaptureSnapshot renders the full tree below the current root.
func (e *Explorer) CaptureSnapshot(ctx context.Context) (domain.Snapshot, error) {
	root, ok := e.CurrentRoot()
	if !ok {
		return domain.Snapshot{}, domain.ErrNoRoot
	}

	res := e.builder.BuildASCII(ctx, root)
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, "snapshot canceled"), "root", root)
	}

	pin := e.PinState()
	res.Stats.IsPinnedRoot = pin.IsPinned() && pin.File() == root

	return domain.Snapshot{
		RootFilePath: root,
		GeneratedAt:  e.now(),
		ASCIITree:    strings.Join(res.Lines, "\n"),
		Summary:      res.Stats,
	}, nil
}

// Payload serializes the trees below entries with the given limits.
func (e *Explorer) Payload(ctx context.Context, entries []string, opts domain.PayloadOptions) domain.Payload {
	return e.builder.BuildPayload(ctx, entries, opts)
}

// Display renders file the way tree nodes name it.
func (e *Explorer) Display(file string) string {
	return e.builder.Display(file)
}

func (e *Explorer) contextLocked() ContextSignal {
	return ContextSignal{
		ActiveFile: e.active,
		CanPin:     e.active != "",
		Pinned:     e.pin.IsPinned(),
	}
}

func (e *Explorer) emit(sig ContextSignal) {
	if e.signal != nil {
		e.signal(sig)
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
