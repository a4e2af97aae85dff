package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmcdole/malplan/internal/domain"
)

// FileKV implements domain.KVStore with one file per key: {dir}/{key}.json.
// Writes truncate and overwrite; there is no locking between processes.
type FileKV struct {
	dir string
}

// NewFileKV creates a file store rooted at dir. The directory is created on first write.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Path returns the file backing key
func (s *FileKV) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileKV) Get(key string) ([]byte, error) {
	path := s.Path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, &domain.FileError{Op: domain.FileOpRead, Path: path, Err: err}
	}
	return data, nil
}

func (s *FileKV) Put(key string, value []byte) error {
	path := s.Path(key)
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &domain.FileError{Op: domain.FileOpOpen, Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &domain.FileError{Op: domain.FileOpOpen, Path: path, Err: err}
	}
	if _, err := f.Write(value); err != nil {
		f.Close()
		return &domain.FileError{Op: domain.FileOpWrite, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &domain.FileError{Op: domain.FileOpWrite, Path: path, Err: err}
	}
	return nil
}

func (s *FileKV) Close() error {
	return nil
}
