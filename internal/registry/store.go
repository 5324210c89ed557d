// Package registry stores one JSON file per error code: <dir>/<hash>.json
// holding the canonical record the hash was computed from.
package registry

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"errcode/internal/errcode"
)

const entryExt = ".json"

// Entry is a decoded registry file.
type Entry struct {
	Hash   string
	Path   string
	Record errcode.Record
}

// Store is a registry directory. It is safe for concurrent use; concurrent
// writers of the same hash write identical bytes and the last one wins.
type Store struct {
	dir string

	mu      sync.Mutex
	created bool

	// writeFile заменяется в тестах для имитации ошибок записи
	writeFile func(path string, data []byte) error
}

func Open(dir string) *Store {
	return &Store{dir: dir, writeFile: writeFileAtomic}
}

func (s *Store) Dir() string { return s.dir }

// PathFor returns the registry file of hash.
func (s *Store) PathFor(hash string) string {
	return filepath.Join(s.dir, hash+entryExt)
}

// EnsureDir creates the registry directory; repeated calls are cheap.
func (s *Store) EnsureDir() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.created {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	s.created = true
	return nil
}

// Write stores data as the entry of hash, replacing any previous content.
func (s *Store) Write(hash string, data []byte) error {
	return s.writeFile(s.PathFor(hash), data)
}

// Exists reports whether hash has an entry. Stat failures other than
// "not exist" are returned.
func (s *Store) Exists(hash string) (bool, error) {
	info, err := os.Stat(s.PathFor(hash))
	switch {
	case err == nil:
		return info.Mode().IsRegular(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Read decodes the entry of hash.
func (s *Store) Read(hash string) (Entry, error) {
	path := s.PathFor(hash)
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	var rec errcode.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Entry{}, fmt.Errorf("%s: %w", path, err)
	}
	return Entry{Hash: hash, Path: path, Record: rec}, nil
}

// List decodes every entry, sorted by file path, message and occurrence.
// A missing directory is an empty registry.
func (s *Store) List() ([]Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, entryExt) {
			continue
		}
		e, err := s.Read(strings.TrimSuffix(name, entryExt))
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Record.FilePath, b.Record.FilePath),
			cmp.Compare(a.Record.ErrorMessage, b.Record.ErrorMessage),
			cmp.Compare(a.Record.OccurrenceCount, b.Record.OccurrenceCount),
		)
	})
	return entries, nil
}

// Verify reports entries whose name is not the hash of their content.
func (s *Store) Verify() ([]Entry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	var bad []Entry
	for _, e := range entries {
		if errcode.Hash(e.Record) != e.Hash {
			bad = append(bad, e)
		}
	}
	return bad, nil
}

// writeFileAtomic пишет во временный файл и переименовывает его.
func writeFileAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
