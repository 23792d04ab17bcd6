// Package upload stores attachment bytes on the local filesystem,
// addressed by generated file name.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound means no file exists under the given name.
	ErrNotFound = errors.New("file not found")
	// ErrBadName means the name is not a single clean path segment.
	ErrBadName = errors.New("invalid file name")
)

// Store manages files inside a single flat directory.
type Store struct {
	dir string
}

// New creates the directory (and parents) if absent and returns a Store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// Save writes src under name, replacing any existing file. The write goes
// through a temp file and a rename so a reader never observes a partial file.
func (s *Store) Save(name string, src io.Reader) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// Remove deletes the file under name. Missing files are not an error.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Path resolves name to an absolute path inside the store. Names that are
// not a single path segment (separators, "..", empty) are rejected, which
// makes traversal impossible by construction.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", ErrBadName
	}
	return filepath.Join(s.dir, name), nil
}

// Open returns the file under name for reading. The caller closes it.
func (s *Store) Open(name string) (*os.File, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}
