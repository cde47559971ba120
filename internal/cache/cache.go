// Package cache stores fetched upstream data as JSON files so repeated runs
// skip the network and the browser.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
)

// Store is a directory of named JSON entries.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// New returns a store rooted at dir. Entries older than ttl are treated as
// missing; a zero ttl never expires an entry.
func New(dir string, ttl time.Duration) *Store {
	return &Store{dir: dir, ttl: ttl, now: time.Now}
}

// Path returns the file path of the named entry.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Load decodes the named entry into v. It reports false when the entry is
// missing or expired.
func (s *Store) Load(name string, v any) (bool, error) {
	path := s.Path(name)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.WrapIO("stat", path, err)
	}
	if s.ttl > 0 && s.now().Sub(info.ModTime()) >= s.ttl {
		return false, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the cache dir and a fixed entry name
	if err != nil {
		return false, errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.WrapParse("json", path, err)
	}
	return true, nil
}

// Save writes v as the named entry. The file is replaced atomically.
func (s *Store) Save(name string, v any) error {
	if err := os.MkdirAll(s.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", s.dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapParse("json", name, err)
	}

	tempFile, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", tempPath, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", tempPath, err)
	}

	path := s.Path(name)
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// Clear removes the cache directory and everything in it.
func (s *Store) Clear() error {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return nil
	}
	return errors.WrapIO("delete", s.dir, os.RemoveAll(s.dir))
}
