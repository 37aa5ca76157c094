package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrFolderNotFound is returned when a listed folder does not exist.
var ErrFolderNotFound = errors.New("storage: folder not found")

// PhotoStorage is the public file disk that holds unit photo folders.
type PhotoStorage interface {
	// Files lists the files directly inside dir. Paths are slash separated
	// and relative to the disk root, e.g. "rental_units/a/main.jpg".
	Files(ctx context.Context, dir string) ([]string, error)
	// URL maps a disk path to its public URL.
	URL(path string) string
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
