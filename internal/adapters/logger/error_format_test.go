package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ahkdeps/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func messages(entries []logger.ErrorEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestCollectErrorEntries(t *testing.T) {
	t.Run("standard error", func(t *testing.T) {
		entries := logger.CollectErrorEntries(errors.New("simple"))
		require.Len(t, entries, 1)
		assert.Equal(t, "simple", entries[0].Message)
		assert.Nil(t, entries[0].Metadata)
	})

	t.Run("wrapped chain", func(t *testing.T) {
		err := zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer")
		assert.Equal(t, []string{"outer", "middle", "root cause"}, messages(logger.CollectErrorEntries(err)))
	})

	t.Run("metadata stays on its link", func(t *testing.T) {
		inner := zerr.With(zerr.New("invalid ignore pattern"), "pattern", "[")
		outer := zerr.With(zerr.Wrap(inner, "failed to load config"), "file", "ahkdeps.yaml")

		entries := logger.CollectErrorEntries(outer)
		require.Len(t, entries, 2)
		assert.Equal(t, "ahkdeps.yaml", entries[0].Metadata["file"])
		assert.Equal(t, "[", entries[1].Metadata["pattern"])
		assert.NotContains(t, entries[0].Metadata, "pattern")
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, logger.CollectErrorEntries(nil))
	})
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "sorted metadata",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"zebra": "z", "alpha": "a", "mike": 3},
			}},
			want: "Error: error\n       alpha: a\n       mike: 3\n       zebra: z",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"file": "a.ahk"}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      file: a.ahk",
		},
		{
			name:    "multiline",
			entries: []logger.ErrorEntry{{Message: "main"}, {Message: "line1\nline2"}},
			want:    "Error: main\n\n  Caused by:\n    → line1\n      line2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
