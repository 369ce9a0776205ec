package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wricardo/retro-tactics/game/service"
	"github.com/wricardo/retro-tactics/game/storage"
)

// sessionKeyPrefix namespaces session records inside a shared store
const sessionKeyPrefix = "session/"

// StorePersistence implements SessionPersistence on a key/value store
type StorePersistence struct {
	store storage.Storage
}

// NewStorePersistence creates a session persistence layer over store
func NewStorePersistence(store storage.Storage) *StorePersistence {
	return &StorePersistence{store: store}
}

// Save writes the session record, reading it under the session lock
func (sp *StorePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	session.Lock()
	data := PersistedSessionData{
		ID:             session.ID,
		Config:         session.Config,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.SaveState(),
	}
	session.Unlock()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}
	if err := sp.store.SetItem(sessionKey(session.ID), string(jsonData)); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}

// Load rebuilds a session with a fresh engine and restores its board
func (sp *StorePersistence) Load(id string) (*service.Session, error) {
	raw, ok, err := sp.store.GetItem(sessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	var data PersistedSessionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	if data.Config == nil {
		return nil, fmt.Errorf("session %s has no config", id)
	}

	session, err := newSession(data.ID, data.Config)
	if err != nil {
		return nil, err
	}
	if data.GameState != nil {
		if err := session.Engine.Restore(context.Background(), data.GameState); err != nil {
			return nil, fmt.Errorf("failed to restore game state: %w", err)
		}
		session.Events.Drain()
	}
	session.CreatedAt = data.CreatedAt
	session.LastAccessedAt = data.LastAccessedAt

	return session, nil
}

// Delete removes a session record
func (sp *StorePersistence) Delete(id string) error {
	if !sp.Exists(id) {
		return ErrSessionNotFound
	}
	return sp.store.RemoveItem(sessionKey(id))
}

// ListAll returns all persisted session IDs
func (sp *StorePersistence) ListAll() ([]string, error) {
	keys, err := sp.store.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list session records: %w", err)
	}

	var ids []string
	for _, key := range keys {
		if strings.HasPrefix(key, sessionKeyPrefix) {
			ids = append(ids, strings.TrimPrefix(key, sessionKeyPrefix))
		}
	}
	return ids, nil
}

// Exists checks if a session record exists
func (sp *StorePersistence) Exists(id string) bool {
	_, ok, err := sp.store.GetItem(sessionKey(id))
	return err == nil && ok
}

func sessionKey(id string) string {
	return sessionKeyPrefix + strings.ToLower(id)
}
