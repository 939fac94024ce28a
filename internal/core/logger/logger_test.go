package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToWriter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := ToWriter(zap.New(core), zapcore.WarnLevel)

	n, err := fmt.Fprintln(w, "[GIN-debug] route registered")
	require.NoError(t, err)
	assert.Equal(t, len("[GIN-debug] route registered\n"), n)

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, e.Level)
	assert.Equal(t, "[GIN-debug] route registered", e.Message)
}

func TestToWriter_BelowLevel(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	_, _ = fmt.Fprint(ToWriter(zap.New(core), zapcore.InfoLevel), "dropped")
	assert.Equal(t, 0, logs.Len())
}

func TestToStdLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	std, err := ToStdLogger(zap.New(core), zapcore.ErrorLevel)
	require.NoError(t, err)

	std.Print("http: TLS handshake error")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestNew_Rotate(t *testing.T) {
	var out bytes.Buffer
	file := filepath.Join(t.TempDir(), "app.log")
	l, closer := New(Options{
		App:    "backoffice",
		Level:  "bogus",
		JSON:   true,
		Rotate: Rotate{Filename: file, MaxSizeMB: 1},
		out:    zapcore.AddSync(&out),
	})

	assert.True(t, l.Core().Enabled(zapcore.InfoLevel), "unknown level falls back to info")
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	l.Info("order created", zap.String("id", "o1"))
	closer()

	assert.Contains(t, out.String(), `"app":"backoffice"`)
	assert.Contains(t, out.String(), `"msg":"order created"`)
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":"o1"`)
}

func TestNew_Console(t *testing.T) {
	var out bytes.Buffer
	l, closer := New(Options{Level: "warn", out: zapcore.AddSync(&out)})
	l.Info("hidden")
	l.Warn("stock low")
	closer()

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "stock low")
}
