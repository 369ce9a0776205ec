// Package session manages game sessions for the tactics server.
//
// A Manager owns one engine per session. Each engine draws into its own
// event log so transports can forward what the board did after every
// interaction. Session IDs are short random strings; lookups are
// case-insensitive.
//
// Save slots live in a storage.Storage under "save/<session>/<slot>". With
// NewManagerWithPersistence the session records themselves are also kept in
// the store under "session/<id>" and are reloaded lazily by Get or eagerly by
// LoadPersistedSessions.
//
// Usage:
//
//	store, _ := storage.New(storage.BackendSQLite, "tactics.db")
//	manager := session.NewManagerWithPersistence(store)
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		return err
//	}
//	_ = manager.SaveGame(sess.ID, "default")
package session
