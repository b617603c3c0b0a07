// Package output creates termenv outputs that honor NO_COLOR and the
// --color flag.
package output

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/zerr"
)

// Mode selects how colors are chosen.
type Mode uint8

const (
	// ModeAuto detects the terminal profile, unless NO_COLOR is set.
	ModeAuto Mode = iota
	// ModeAlways forces ANSI colors, unless NO_COLOR is set.
	ModeAlways
	// ModeNever disables colors.
	ModeNever
)

var errUnknownMode = zerr.New("unknown color mode, expected auto, always or never")

// ParseMode parses auto, always or never.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, zerr.With(errUnknownMode, "mode", s)
	}
}

// String returns the flag spelling of m.
func (m Mode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

// Profile returns the color profile for m. NO_COLOR always wins.
func (m Mode) Profile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" || m == ModeNever {
		return termenv.Ascii
	}
	if m == ModeAlways {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New creates an auto-mode output for w, or stderr when w is nil.
func New(w io.Writer) *termenv.Output {
	return NewWithMode(w, ModeAuto)
}

// NewWithMode creates an output for w using mode.
func NewWithMode(w io.Writer, mode Mode) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(mode.Profile()),
		termenv.WithTTY(true),
	)
}
