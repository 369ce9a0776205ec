package storage

import (
	"fmt"
	"sort"
	"sync"
)

// Storage is a string key/value store
type Storage interface {
	// GetItem returns the value for key; ok is false when the key is absent
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error

	// Keys returns every stored key, ascending
	Keys() ([]string, error)

	// Close releases the backend
	Close() error
}

// Backend names accepted by New
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// New opens a storage backend. path is a directory for the file backend and
// a database file for sqlite; it is ignored for memory.
func New(backend, path string) (Storage, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStorage(), nil
	case BackendFile:
		return NewFileStorage(path)
	case BackendSQLite:
		return NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// MemoryStorage keeps items in a map
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage creates an empty in-memory store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStorage) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryStorage) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
