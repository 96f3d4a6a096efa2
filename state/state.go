// Package state provides small key/value stores for data that has to
// survive between runs, such as the currently selected wallpaper.
package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/quietmisdreavus/qmwc/logger"
)

// Store is a narrow key/value persistence interface. Get reports
// whether the key exists; a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

var ErrInvalidKey = errors.New("invalid state key")

func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// FileStore keeps each key in its own file inside Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.Dir, key)
}

func (fs *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validKey(key); err != nil {
		return nil, false, err
	}

	b, err := os.ReadFile(fs.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	logger.FromContext(ctx).DebugContext(ctx, "loaded state", "key", key, "length", len(b))
	return b, true, nil
}

func (fs *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}

	if err := os.MkdirAll(fs.Dir, 0o700); err != nil {
		return err
	}

	if err := ReplaceFile(fs.path(key), value); err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "failed to save state", "key", key, "err", err)
		return err
	}
	logger.FromContext(ctx).DebugContext(ctx, "saved state", "key", key, "length", len(value))
	return nil
}

// ReplaceFile writes b to a temporary file next to path and renames it
// into place, so readers see either the old or the new content.
func ReplaceFile(path string, b []byte) error {
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer func() {
		f.Close()
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	n, err := f.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err1 := f.Close(); err == nil {
		err = err1
	}
	if err != nil {
		return err
	}

	err = os.Rename(tmpPath, path)
	if err != nil {
		return err
	}

	return nil
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string][]byte{}}
}

func (m *MemStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := validKey(key); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemStore) Set(_ context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}
