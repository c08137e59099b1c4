package loggers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, closer, err := New("loud", "")
	assert.Error(t, err)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
}

func TestNew_WritesToDailyFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer, err := New("info", dir)
	require.NoError(t, err)

	logger.Info().Str(FieldRunID, "run-1").Msg("hello")
	logger.Debug().Msg("filtered out")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(filepath.Join(dir, LogFileName(time.Now())))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"run_id":"run-1"`)
	assert.Contains(t, string(content), `"message":"hello"`)
	assert.False(t, strings.Contains(string(content), "filtered out"))
}

func TestLogFileName(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 2, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "log_file_2024-02-15.txt", LogFileName(day))
}
