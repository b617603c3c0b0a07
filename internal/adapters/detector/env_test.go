package detector_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ahkdeps/internal/adapters/detector"
	"go.trai.ch/ahkdeps/internal/core/domain"
)

func TestDetectEnvironment(t *testing.T) {
	tests := []struct {
		name string
		ci   string
		want detector.OutputMode
	}{
		{name: "CI=true appends", ci: "true", want: detector.ModeAppend},
		{name: "CI=1 appends", ci: "1", want: detector.ModeAppend},
		{name: "buffer is not a terminal", ci: "", want: detector.ModeAppend},
		{name: "CI=false still checks the writer", ci: "false", want: detector.ModeAppend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ci)
			assert.Equal(t, tt.want, detector.DetectEnvironment(&bytes.Buffer{}))
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		flag     string
		detected detector.OutputMode
		want     detector.OutputMode
	}{
		{flag: "", detected: detector.ModeRedraw, want: detector.ModeRedraw},
		{flag: "auto", detected: detector.ModeAppend, want: detector.ModeAppend},
		{flag: "redraw", detected: detector.ModeAppend, want: detector.ModeRedraw},
		{flag: "tty", detected: detector.ModeAppend, want: detector.ModeRedraw},
		{flag: "append", detected: detector.ModeRedraw, want: detector.ModeAppend},
		{flag: "ci", detected: detector.ModeRedraw, want: detector.ModeAppend},
	}

	for _, tt := range tests {
		t.Run(tt.flag+"/"+tt.detected.String(), func(t *testing.T) {
			got, err := detector.ResolveMode(tt.detected, tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := detector.ResolveMode(detector.ModeAuto, "fancy")
	require.ErrorIs(t, err, domain.ErrUnknownOutputMode)
	assert.Contains(t, err.Error(), "unknown output mode")
}
