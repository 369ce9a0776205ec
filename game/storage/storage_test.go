package storage

import (
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Storage {
	t.Helper()
	dir := t.TempDir()

	files, err := NewFileStorage(filepath.Join(dir, "items"))
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}
	db, err := NewSQLiteStorage(filepath.Join(dir, "db", "games.db"))
	if err != nil {
		t.Fatalf("Failed to create sqlite storage: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]Storage{
		BackendMemory: NewMemoryStorage(),
		BackendFile:   files,
		BackendSQLite: db,
	}
}

func TestStorage_Contract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := store.GetItem("missing"); ok || err != nil {
				t.Errorf("Expected absent key, got ok=%v err=%v", ok, err)
			}

			if err := store.SetItem("abc/slot1", `{"level":2}`); err != nil {
				t.Fatalf("SetItem returned error: %v", err)
			}
			if err := store.SetItem("abc/slot1", `{"level":3}`); err != nil {
				t.Fatalf("SetItem overwrite returned error: %v", err)
			}
			if err := store.SetItem("state", "x"); err != nil {
				t.Fatal(err)
			}

			v, ok, err := store.GetItem("abc/slot1")
			if err != nil || !ok || v != `{"level":3}` {
				t.Errorf("Expected overwritten value, got %q ok=%v err=%v", v, ok, err)
			}

			keys, err := store.Keys()
			if err != nil {
				t.Fatal(err)
			}
			if len(keys) != 2 || keys[0] != "abc/slot1" || keys[1] != "state" {
				t.Errorf("Expected sorted keys [abc/slot1 state], got %v", keys)
			}

			if err := store.RemoveItem("abc/slot1"); err != nil {
				t.Fatal(err)
			}
			if err := store.RemoveItem("abc/slot1"); err != nil {
				t.Errorf("Expected removing an absent key to succeed, got %v", err)
			}
			if _, ok, _ := store.GetItem("abc/slot1"); ok {
				t.Error("Expected key to be removed")
			}
		})
	}
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")

	db, err := NewSQLiteStorage(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.SetItem("state", "persisted"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()
	v, ok, err := db.GetItem("state")
	if err != nil || !ok || v != "persisted" {
		t.Errorf("Expected value to survive reopen, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{BackendMemory, BackendFile, BackendSQLite} {
		path := filepath.Join(dir, backend)
		if backend == BackendSQLite {
			path = filepath.Join(dir, "games.db")
		}
		store, err := New(backend, path)
		if err != nil {
			t.Fatalf("New(%s) returned error: %v", backend, err)
		}
		store.Close()
	}
	if _, err := New("redis", ""); err == nil {
		t.Error("Expected error for an unknown backend")
	}
}
