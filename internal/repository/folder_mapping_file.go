package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileMappingStore keeps unit -> folder mappings in a single JSON document
// of the form {"<unit_id>": "<folder>"}. The file is read on every lookup so
// manual edits take effect without a restart.
type FileMappingStore struct {
	path string
	mu   sync.Mutex
}

func NewFileMappingStore(path string) *FileMappingStore {
	return &FileMappingStore{path: path}
}

func (s *FileMappingStore) Get(ctx context.Context, unitID string) (string, error) {
	mappings, err := s.load()
	if err != nil {
		return "", err
	}
	folder, ok := mappings[unitID]
	if !ok || folder == "" {
		return "", ErrMappingNotFound
	}
	return folder, nil
}

func (s *FileMappingStore) Set(ctx context.Context, unitID, folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mappings, err := s.load()
	if err != nil && !errors.Is(err, ErrMappingNotFound) {
		return err
	}
	if mappings == nil {
		mappings = make(map[string]string)
	}
	mappings[unitID] = folder
	return s.write(mappings)
}

// All returns every mapping in the file.
func (s *FileMappingStore) All(ctx context.Context) (map[string]string, error) {
	mappings, err := s.load()
	if errors.Is(err, ErrMappingNotFound) {
		return map[string]string{}, nil
	}
	return mappings, err
}

// Import merges mappings into the file in one write.
func (s *FileMappingStore) Import(ctx context.Context, mappings map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil && !errors.Is(err, ErrMappingNotFound) {
		return err
	}
	if current == nil {
		current = make(map[string]string, len(mappings))
	}
	for k, v := range mappings {
		current[k] = v
	}
	return s.write(current)
}

// load returns ErrMappingNotFound when the file does not exist.
func (s *FileMappingStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMappingNotFound
		}
		return nil, fmt.Errorf("read mapping file %s: %w", s.path, err)
	}
	mappings := make(map[string]string)
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("decode mapping file %s: %w", s.path, err)
	}
	return mappings, nil
}

// write replaces the file atomically via rename.
func (s *FileMappingStore) write(mappings map[string]string) error {
	data, err := json.MarshalIndent(mappings, "", "    ")
	if err != nil {
		return fmt.Errorf("encode mappings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create mapping dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".unit_folder_mappings-*.json")
	if err != nil {
		return fmt.Errorf("create temp mapping file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp mapping file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp mapping file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace mapping file: %w", err)
	}
	return nil
}
