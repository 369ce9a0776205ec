// Package storage persists saved games.
//
// Storage is a small string key/value contract with three backends:
// MemoryStorage for tests and ephemeral servers, FileStorage writing one
// JSON file per key, and SQLiteStorage backed by modernc.org/sqlite.
// StateService stores an engine.SaveState blob under a single key and
// reports ErrInvalidState when no blob exists or it cannot be parsed.
package storage
