package cartstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File keeps one record file per cart under a directory. Writes go
// through a temp file and a rename so a crash never leaves a
// half-written record. Useful for single-node deployments and tests that
// should not need Redis.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cart directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (s *File) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *File) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading cart[%s]: %w", key, err)
	}
	return data, nil
}

func (s *File) Save(ctx context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing cart[%s]: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cart[%s]: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cart[%s]: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cart[%s]: %w", key, err)
	}
	return nil
}

func (s *File) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting cart[%s]: %w", key, err)
	}
	return nil
}
