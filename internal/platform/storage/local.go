package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage serves photos from a directory on the host.
type LocalStorage struct {
	root    string
	baseURL string
}

// NewLocal creates a storage rooted at root whose files are served under baseURL.
func NewLocal(root, baseURL string) *LocalStorage {
	return &LocalStorage{root: root, baseURL: baseURL}
}

func (s *LocalStorage) Files(ctx context.Context, dir string) ([]string, error) {
	dir = strings.Trim(path.Clean("/"+dir), "/")
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(dir)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, path.Join(dir, e.Name()))
	}
	return files, nil
}

func (s *LocalStorage) URL(p string) string {
	return joinURL(s.baseURL, p)
}
