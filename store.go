package solin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is the persistence boundary: whole-document reads and writes keyed
// by name. Every mutation in this package is load-mutate-save of one
// document, so the capability stays this small on purpose. A missing
// document is reported as fs.ErrNotExist.
type Store interface {
	// Load decodes the named JSON document into v.
	Load(name string, v any) error
	// Save encodes v as the named JSON document, replacing any previous one.
	Save(name string, v any) error
	// LoadText reads the named raw text document.
	LoadText(name string) (string, error)
	// SaveText writes the named raw text document.
	SaveText(name, text string) error
	// Exists reports whether the named JSON document is present.
	Exists(name string) bool
}

// DirStore persists documents as files under a directory: "<name>.json" for
// JSON documents, "<name>.txt" for text ones. Names may contain slashes to
// address subdirectories ("archives/expenses_2025-07"). Writes go through a
// temporary file and an atomic rename, so a crash mid-write never leaves a
// truncated store behind.
type DirStore struct {
	dir string
}

// NewDirStore returns a store rooted at dir. The directory is created on
// first write.
func NewDirStore(dir string) *DirStore { return &DirStore{dir: dir} }

func (s *DirStore) jsonPath(name string) string { return filepath.Join(s.dir, name+".json") }
func (s *DirStore) textPath(name string) string { return filepath.Join(s.dir, name+".txt") }

func (s *DirStore) Load(name string, v any) error {
	content, err := os.ReadFile(s.jsonPath(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("could not decode store %q: %w", name, err)
	}
	return nil
}

func (s *DirStore) Save(name string, v any) error {
	// Indented output keeps the documents human-readable and diffable.
	content, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("could not encode store %q: %w", name, err)
	}
	return s.write(s.jsonPath(name), append(content, '\n'))
}

func (s *DirStore) LoadText(name string) (string, error) {
	content, err := os.ReadFile(s.textPath(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

func (s *DirStore) SaveText(name, text string) error {
	return s.write(s.textPath(name), []byte(text))
}

func (s *DirStore) Exists(name string) bool {
	_, err := os.Stat(s.jsonPath(name))
	return err == nil
}

// write creates the parent directory if needed and atomically replaces the
// destination file.
func (s *DirStore) write(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary file: %w", err)
	}
	_, werr := tmp.Write(content)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write %q: %w", path, errors.Join(werr, cerr))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not replace %q: %w", path, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and dry runs.
type MemStore struct {
	mu    sync.Mutex
	docs  map[string][]byte
	texts map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte), texts: make(map[string]string)}
}

func (s *MemStore) Load(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.docs[name]
	if !ok {
		return fmt.Errorf("document %q: %w", name, fs.ErrNotExist)
	}
	return json.Unmarshal(content, v)
}

func (s *MemStore) Save(name string, v any) error {
	content, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = content
	return nil
}

func (s *MemStore) LoadText(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.texts[name]
	if !ok {
		return "", fmt.Errorf("document %q: %w", name, fs.ErrNotExist)
	}
	return text, nil
}

func (s *MemStore) SaveText(name, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[name] = text
	return nil
}

func (s *MemStore) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[name]
	return ok
}

// Raw returns the stored bytes of a JSON document, for tests that assert a
// store was not touched.
func (s *MemStore) Raw(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[name]
}
