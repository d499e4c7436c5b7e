package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStateStore keeps every key in a single JSON document on disk,
// mirroring a browser's localStorage. Writes go through a temp file and
// rename so a crash never leaves a half-written document.
var errCorruptDocument = errors.New("failed to parse state file")

type FileStateStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	value, ok := doc[key]
	if !ok {
		return nil, ErrStateNotFound
	}
	return []byte(value), nil
}

func (s *FileStateStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if errors.Is(err, errCorruptDocument) {
		// Keep the unreadable document for inspection and start over.
		if err := os.Rename(s.path, s.path+".corrupt"); err != nil {
			return fmt.Errorf("failed to quarantine state file: %w", err)
		}
		doc = map[string]string{}
	} else if err != nil {
		return err
	}
	doc[key] = string(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func (s *FileStateStore) read() (map[string]string, error) {
	doc := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorruptDocument, err)
	}
	return doc, nil
}
