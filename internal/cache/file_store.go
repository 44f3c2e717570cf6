package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// FileStore persists all keys in a single JSON object on disk. Every Set
// rewrites the whole file through a temp file and rename.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFileStore loads path, creating an empty store when the file does not exist.
// An empty file is treated as an empty store. A malformed file is moved aside
// to <path>.corrupt and the store starts empty, as does an unreadable file.
func OpenFileStore(path string) *FileStore {
	s := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return s
	case err != nil:
		log.Warn().Err(err).Str("path", path).Msg("cache: store file unreadable, starting empty")
		return s
	case len(raw) == 0:
		return s
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.data = make(map[string]string)
		corrupt := path + ".corrupt"
		if rerr := os.Rename(path, corrupt); rerr != nil {
			log.Warn().Err(err).AnErr("rename_error", rerr).Str("path", path).Msg("cache: store file malformed, starting empty")
			return s
		}
		log.Warn().Err(err).Str("path", path).Str("moved_to", corrupt).Msg("cache: store file malformed, starting empty")
		return s
	}
	if s.data == nil {
		s.data = make(map[string]string)
	}
	return s
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set overwrites the value stored under key and flushes the file.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	s.data[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("cache: create store dir: %w", err)
	}
	encoded, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encode store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(encoded, '\n'), 0o600); err != nil {
		return fmt.Errorf("cache: write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("cache: replace store: %w", err)
	}
	return nil
}
