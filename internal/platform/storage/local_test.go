package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Files(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "rental_units", "sunrise-101")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "thumbs"), 0o755))
	for _, name := range []string{"main.JPG", "kitchen.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	s := NewLocal(root, "/storage/")
	files, err := s.Files(context.Background(), "rental_units/sunrise-101")
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{
		"rental_units/sunrise-101/kitchen.png",
		"rental_units/sunrise-101/main.JPG",
		"rental_units/sunrise-101/notes.txt",
	}, files)

	assert.Equal(t, "/storage/rental_units/sunrise-101/main.JPG", s.URL("rental_units/sunrise-101/main.JPG"))
}

func TestLocalStorage_MissingFolder(t *testing.T) {
	s := NewLocal(t.TempDir(), "/storage")
	_, err := s.Files(context.Background(), "rental_units/nope")
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestLocalStorage_NoEscapeFromRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "etc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "etc", "a.jpg"), []byte("x"), 0o644))

	s := NewLocal(root, "/storage")
	files, err := s.Files(context.Background(), "../../etc")
	require.NoError(t, err)
	assert.Equal(t, []string{"etc/a.jpg"}, files)
}
