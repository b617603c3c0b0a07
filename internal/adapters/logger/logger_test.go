package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ahkdeps/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newBufferedLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	return l, buf
}

func TestLogger_InfoWarn(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.Info("watching /ws")
	l.Warn("could not read /ws/a.ahk")

	assert.Equal(t, "watching /ws\n! could not read /ws/a.ahk\n", buf.String())
}

func TestLogger_Quiet(t *testing.T) {
	l, buf := newBufferedLogger(t)
	l.SetQuiet(true)

	l.Info("hidden")
	l.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	l, buf := newBufferedLogger(t)

	cause := zerr.With(zerr.New("root file not found"), "file", "x.ahk")
	l.Error(zerr.Wrap(cause, "snapshot failed"))

	want := "✗ Error: snapshot failed\n" +
		"\n" +
		"  Caused by:\n" +
		"    → root file not found\n" +
		"      file: x.ahk\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_Error_StdlibChain(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.Error(fmt.Errorf("outer: %w", errors.New("inner")))

	assert.Equal(t, "✗ Error: outer: inner\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	l, buf := newBufferedLogger(t)
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newBufferedLogger(t)
	l.SetJSON(true)

	l.Error(zerr.Wrap(errors.New("permission denied"), "failed to read config file"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "failed to read config file", record["error"])
	assert.Equal(t, []any{"permission denied"}, record["causes"])
}

func TestLogger_FormatSwitching(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.SetJSON(true)
	l.Info("json")
	require.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))

	buf.Reset()
	l.SetJSON(false)
	l.Info("pretty")
	assert.Equal(t, "pretty\n", buf.String())
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	l, _ := newBufferedLogger(t)
	l.SetOutput(io.Discard)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			l.Info(fmt.Sprintf("message %d", i))
			l.SetJSON(i%2 == 0)
		})
	}
	wg.Wait()
}
