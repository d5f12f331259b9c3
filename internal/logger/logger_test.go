package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLogLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLogLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel("bogus"))
}

func TestInitializeWritesToFile(t *testing.T) {
	previous := Log
	t.Cleanup(func() {
		Log = previous
		SugaredLog = previous.Sugar()
	})

	logFile := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, Initialize("debug", logFile))
	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))

	Log.Info("hello")
	_ = Close()
	assert.FileExists(t, logFile)
}

func TestErrorFields(t *testing.T) {
	assert.Empty(t, errorFields(nil))
	fields := errorFields(assert.AnError)
	require.Len(t, fields, 1)
	assert.Equal(t, "error", fields[0].Key)
}
