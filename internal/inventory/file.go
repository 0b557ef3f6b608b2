package inventory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBlobs keeps one file per key inside a directory.
type FileBlobs struct {
	dir string
}

func NewFileBlobs(dir string) *FileBlobs {
	return &FileBlobs{dir: dir}
}

func (f *FileBlobs) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get returns found=false when the file does not exist.
func (f *FileBlobs) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// Put writes to a temp file and renames it over the old one.
func (f *FileBlobs) Put(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", f.dir, err)
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, f.path(key)); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
