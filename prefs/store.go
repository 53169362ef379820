// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package prefs

import (
	"io/fs"
	"maps"
	"os"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MapStore keeps preferences in memory. It is safe for concurrent use.
type MapStore struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewMapStore() *MapStore {
	return &MapStore{values: make(map[string]any)}
}

func (s *MapStore) Lookup(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

func (s *MapStore) Set(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = v
	return nil
}

func (s *MapStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
	return nil
}

// FileStore keeps preferences in a flat YAML file. Every change is written
// through to the file. It is safe for concurrent use within one process.
type FileStore struct {
	path string

	mu     sync.RWMutex
	values map[string]any
}

// OpenFileStore loads the preferences file at path. A missing file is an
// empty store; it is created on the first change.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]any)}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, errors.Wrapf(err, "OpenFileStore: read %s", path)
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, errors.Wrapf(err, "OpenFileStore: parse %s", path)
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return s, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Lookup(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

func (s *FileStore) Set(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[name]
	s.values[name] = v
	if err := s.save(); err != nil {
		if had {
			s.values[name] = prev
		} else {
			delete(s.values, name)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[name]
	if !had {
		return nil
	}
	delete(s.values, name)
	if err := s.save(); err != nil {
		s.values[name] = prev
		return err
	}
	return nil
}

// Values returns a copy of the stored values.
func (s *FileStore) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

func (s *FileStore) save() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return errors.Wrap(err, "FileStore: encode")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrapf(err, "FileStore: write %s", s.path)
	}
	return nil
}
