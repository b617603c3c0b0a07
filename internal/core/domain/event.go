package domain

// FileOp is the kind of change a file event reports.
type FileOp uint8

const (
	// FileCreated reports a new file.
	FileCreated FileOp = iota
	// FileChanged reports modified content.
	FileChanged
	// FileDeleted reports a removed (or renamed away) file.
	FileDeleted
)

// String returns the lower-case name of the operation.
func (o FileOp) String() string {
	switch o {
	case FileCreated:
		return "created"
	case FileChanged:
		return "changed"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Invalidates reports whether the operation makes a cached entry stale.
func (o FileOp) Invalidates() bool {
	return o == FileChanged || o == FileDeleted
}

// Then coalesces o followed by next into one operation. A file that is
// recreated after a change or deletion still reports a change, so its
// stale analysis is dropped. A created file stays created when it is
// written before the batch runs.
func (o FileOp) Then(next FileOp) FileOp {
	switch {
	case next == FileCreated && o.Invalidates():
		return FileChanged
	case o == FileCreated && next == FileChanged:
		return FileCreated
	}
	return next
}

// Structural reports whether the operation can change how other files'
// includes resolve.
func (o FileOp) Structural() bool {
	return o == FileCreated || o == FileDeleted
}

// FileEvent is a single filesystem delta for a tracked script.
type FileEvent struct {
	Path string
	Op   FileOp
}

// GraphChange is published to subscribers after every rebuild.
type GraphChange struct {
	// Revision increases by one per completed rebuild.
	Revision uint64
	// Roots are the entry points selected by the rebuild.
	Roots []string
	// Invalidated lists the cache keys dropped by the rebuild, sorted.
	Invalidated []string
	// Purged reports that the whole cache was dropped because files appeared
	// or disappeared.
	Purged bool
	// Events are the coalesced deltas the rebuild consumed, sorted by path.
	Events []FileEvent
}
