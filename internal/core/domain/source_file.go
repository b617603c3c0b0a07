package domain

import "unique"

// SourceFile identifies a script by its absolute, OS-normalized path.
// Paths are interned, so equal files compare equal cheaply as map keys.
type SourceFile struct {
	h unique.Handle[string]
}

// NewSourceFile normalizes path and interns it.
func NewSourceFile(path string) SourceFile {
	if path == "" {
		return SourceFile{}
	}
	return SourceFile{h: unique.Make(NormalizePath(path))}
}

// Path returns the normalized path, or "" for the zero value.
func (f SourceFile) Path() string {
	var zero unique.Handle[string]
	if f.h == zero {
		return ""
	}
	return f.h.Value()
}

// String returns the normalized path.
func (f SourceFile) String() string {
	return f.Path()
}

// IsZero reports whether f identifies no file.
func (f SourceFile) IsZero() bool {
	var zero unique.Handle[string]
	return f.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (f SourceFile) MarshalText() ([]byte, error) {
	return []byte(f.Path()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *SourceFile) UnmarshalText(text []byte) error {
	*f = NewSourceFile(string(text))
	return nil
}
