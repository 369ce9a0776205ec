package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStorage stores each item as <escaped key>.json in a directory
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-based store, creating dir if needed
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (fs *FileStorage) GetItem(key string) (string, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read item file: %w", err)
	}
	return string(data), true, nil
}

// SetItem writes through a temporary file so readers never see a partial item
func (fs *FileStorage) SetItem(key, value string) error {
	tmp, err := os.CreateTemp(fs.dir, ".item-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write item file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write item file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path(key)); err != nil {
		return fmt.Errorf("failed to write item file: %w", err)
	}
	return nil
}

func (fs *FileStorage) RemoveItem(key string) error {
	err := os.Remove(fs.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove item file: %w", err)
	}
	return nil
}

func (fs *FileStorage) Keys() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (fs *FileStorage) Close() error {
	return nil
}

// path returns the item file for key; escaping keeps keys like "abc/slot1" flat
func (fs *FileStorage) path(key string) string {
	return filepath.Join(fs.dir, url.PathEscape(key)+".json")
}
