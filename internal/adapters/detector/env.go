// Package detector decides how the watch loop presents successive snapshots.
package detector

import (
	"io"
	"os"

	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode selects how repeated reports are written.
type OutputMode int

const (
	// ModeAuto picks a mode from the environment.
	ModeAuto OutputMode = iota
	// ModeRedraw clears the terminal before each report.
	ModeRedraw
	// ModeAppend writes reports one after another, for pipes and CI logs.
	ModeAppend
)

// String returns the flag spelling of m.
func (m OutputMode) String() string {
	switch m {
	case ModeRedraw:
		return "redraw"
	case ModeAppend:
		return "append"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModeRedraw for an interactive terminal and
// ModeAppend otherwise, or when the CI variable is set.
func DetectEnvironment(w io.Writer) OutputMode {
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return ModeAppend
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		return ModeRedraw
	}
	return ModeAppend
}

// ResolveMode applies the --output flag on top of the detected mode.
func ResolveMode(detected OutputMode, flag string) (OutputMode, error) {
	switch flag {
	case "", "auto":
		return detected, nil
	case "redraw", "tty":
		return ModeRedraw, nil
	case "append", "ci", "linear":
		return ModeAppend, nil
	default:
		return detected, zerr.With(domain.ErrUnknownOutputMode, "output", flag)
	}
}
