package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.json")
	logger, err := NewLogger(Config{Level: "debug", Format: "json", OutputPath: out})
	require.NoError(t, err)

	logger.Debug("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"), "got %q", data)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(Config{Level: "loud", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
	assert.True(t, logger.Core().Enabled(0))
}

func TestMustLoggerFallsBack(t *testing.T) {
	logger := MustLogger(Config{OutputPath: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.NotNil(t, logger)
}
