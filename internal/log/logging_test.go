package log

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewHandlerSplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(NewHandler(&stdout, &stderr, slog.LevelDebug))

	logger.Debug("scanning", "file", "a.go")
	logger.Warn("malformed")
	logger.Error("failed")
	logger.Log(context.Background(), LevelTrace, "too verbose")

	assert.Contains(t, stdout.String(), "msg=scanning")
	assert.Contains(t, stdout.String(), "msg=malformed")
	assert.NotContains(t, stdout.String(), "failed")
	assert.NotContains(t, stdout.String(), "too verbose")
	assert.Contains(t, stderr.String(), "msg=failed")
	assert.NotContains(t, stderr.String(), "malformed")
}

func TestMultiHandlerWithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	h := MultiHandler{hs: []slog.Handler{
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With("decl", "Open").WithGroup("g")

	logger.Info("hello", "k", 1)
	assert.Contains(t, a.String(), "decl=Open")
	assert.Contains(t, a.String(), "g.k=1")
	assert.Empty(t, b.String())
}

func TestSetupLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindgen.log")
	logger, closers, err := SetupLogger("debug", path, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("into the file")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "into the file")
}

func TestSetupLoggerConsole(t *testing.T) {
	var console bytes.Buffer
	logger, closers, err := SetupLogger("info", "", &console)
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Info("hello")
	logger.Debug("hidden")
	assert.Contains(t, console.String(), "hello")
	assert.NotContains(t, console.String(), "hidden")

	_, _, err = SetupLogger("nope", "", &console)
	assert.Error(t, err)
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)
	tr.Trace("a.go", 3, " bindgen:prefix=WR_", true)
	tr.Trace("a.go", 3, ` say "hi"`, false)

	assert.Equal(t, "KEEP a.go:3 \" bindgen:prefix=WR_\"\nDROP a.go:3 \" say \\\"hi\\\"\"\n", buf.String())
}

func TestTracerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tr.Trace("f.go", j, "line", j%2 == 0)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 400)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "KEEP ") || strings.HasPrefix(l, "DROP "), l)
	}
}

func TestNilTracer(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTracer(nil).Trace("a.go", 1, "x", true)
	})
}
