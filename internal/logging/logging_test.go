package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotatingWriterRotatesAfterMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estate.log")

	w, err := NewRotatingWriter(path, 16)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("first line\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second line\n"))
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	require.Equal(t, "first line\nsecond line\n", string(backup))

	_, err = w.Write([]byte("third\n"))
	require.NoError(t, err)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "third\n", string(current))
}

func TestRotatingWriterKeepsFileWhenRenameFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estate.log")
	// каталог на месте копии .1 не даёт переименовать файл
	require.NoError(t, os.Mkdir(path+".1", 0755))

	w, err := NewRotatingWriter(path, 16)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("first line\n"))
	require.NoError(t, err)
	n, err := w.Write([]byte("second line\n"))
	require.Equal(t, len("second line\n"), n)
	require.ErrorContains(t, err, "rotate log file")

	_, err = w.Write([]byte("third\n"))
	require.Error(t, err)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first line\nsecond line\nthird\n", string(current))
}

func TestNewRotatingWriterTruncatesOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estate.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0644))

	w, err := NewRotatingWriter(path, 32)
	require.NoError(t, err)
	defer w.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, info.Size())
}
