package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"log-analyzer/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_Latest_PicksMostRecentDate(t *testing.T) {
	t.Parallel()

	dir := newLogDir(t,
		"access.log-20240101.gz",
		"access.log-20240215.log",
		"access.log-20231231.log",
	)

	file, ok, err := NewSelector().Latest(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "access.log-20240215.log"), file.Path)
	assert.Equal(t, "access.log-20240215.log", file.Name)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), file.Date)
	assert.False(t, file.Compressed)
}

func TestSelector_Latest_CompressedWins(t *testing.T) {
	t.Parallel()

	dir := newLogDir(t,
		"nginx-access-ui.log-20170630.gz",
		"nginx-access-ui.log-20170629.log",
	)

	file, ok, err := NewSelector().Latest(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "nginx-access-ui.log-20170630.gz", file.Name)
	assert.True(t, file.Compressed)
}

func TestSelector_Latest_TieBreaksOnGreatestName(t *testing.T) {
	t.Parallel()

	dir := newLogDir(t,
		"b-access.log-20240215.log",
		"a-access.log-20240215.gz",
		"c-access.log-20240214.log",
	)

	file, ok, err := NewSelector().Latest(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b-access.log-20240215.log", file.Name)
}

func TestSelector_Latest_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := newLogDir(t,
		"access.log-20240101.log",
		"access.log-20240301.bz2",
		"notes.txt",
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.log-20991231.log"), 0755))

	file, ok, err := NewSelector().Latest(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "access.log-20240101.log", file.Name)
}

func TestSelector_Latest_NoCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
	}{
		{name: "empty directory", files: nil},
		{name: "only unrelated files", files: []string{"README.md", "access.log-20240101.bz2"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newLogDir(t, tt.files...)

			file, ok, err := NewSelector().Latest(context.Background(), dir)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, LogFile{}, file)
		})
	}
}

func TestSelector_Latest_DirectoryNotFound(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "missing")

	_, ok, err := NewSelector().Latest(context.Background(), dir)
	assert.False(t, ok)
	require.Error(t, err)

	svcErr, isSvcErr := svcerrors.AsServiceError(err)
	require.True(t, isSvcErr)
	assert.Equal(t, "SRC_1000", svcErr.Code)
	assert.Equal(t, "not_found", svcErr.Category)
	assert.Contains(t, svcErr.Message, dir)
}

func TestSelector_Latest_PathIsAFile(t *testing.T) {
	t.Parallel()

	dir := newLogDir(t, "access.log-20240101.log")

	_, _, err := NewSelector().Latest(context.Background(), filepath.Join(dir, "access.log-20240101.log"))
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "SRC_1000", svcErr.Code)
}

func TestSelector_Latest_MalformedFilename(t *testing.T) {
	t.Parallel()

	tests := []string{
		"access.log",
		"access.log-2024.log",
		"access.log-20241340.gz",
		"access-20240101.log",
	}

	for _, name := range tests {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := newLogDir(t, "access.log-20240101.log", name)

			_, ok, err := NewSelector().Latest(context.Background(), dir)
			assert.False(t, ok)
			svcErr, isSvcErr := svcerrors.AsServiceError(err)
			require.True(t, isSvcErr)
			assert.Equal(t, "SRC_1001", svcErr.Code)
			assert.Contains(t, svcErr.Message, name)
		})
	}
}

func TestParseDateToken(t *testing.T) {
	t.Parallel()

	date, err := ParseDateToken("nginx-access-ui.log-20170630.gz")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 6, 30, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDateToken("nginx.log")
	assert.ErrorIs(t, err, errNoDateToken)
}

func newLogDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	return dir
}
