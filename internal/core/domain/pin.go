package domain

// PinState is either Unpinned or Pinned(file).
// The zero value is Unpinned.
type PinState struct {
	file string
}

// Unpinned returns the unpinned state.
func Unpinned() PinState {
	return PinState{}
}

// Pin transitions to Pinned(current). It fails when there is no current file.
func (p PinState) Pin(current string) (PinState, error) {
	if current == "" {
		return p, ErrNoActiveFile
	}
	return PinState{file: current}, nil
}

// Unpin transitions to Unpinned. It is legal from every state.
func (p PinState) Unpin() PinState {
	return PinState{}
}

// IsPinned reports whether a file is pinned.
func (p PinState) IsPinned() bool {
	return p.file != ""
}

// File returns the pinned file, or "" when unpinned.
func (p PinState) File() string {
	return p.file
}

// String renders the state for logs.
func (p PinState) String() string {
	if !p.IsPinned() {
		return "Unpinned"
	}
	return "Pinned(" + p.file + ")"
}
