package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/service"
	"github.com/wricardo/retro-tactics/game/storage"
	"github.com/wricardo/retro-tactics/pkg/logger"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// saveKeyPrefix namespaces save slots inside a shared store
const saveKeyPrefix = "save/"

// Manager handles game session lifecycle and save slots
type Manager struct {
	sessions    map[string]*service.Session
	store       storage.Storage
	persistence SessionPersistence
	mu          sync.RWMutex
	log         *logrus.Entry
}

// NewManager creates a session manager keeping save slots in store.
// A nil store keeps them in memory.
func NewManager(store storage.Storage) *Manager {
	if store == nil {
		store = storage.NewMemoryStorage()
	}
	return &Manager{
		sessions: make(map[string]*service.Session),
		store:    store,
		log:      logger.Log.WithField("component", "session"),
	}
}

// NewManagerWithPersistence also writes every session record to the store so
// sessions survive a restart
func NewManagerWithPersistence(store storage.Storage) *Manager {
	m := NewManager(store)
	m.persistence = NewStorePersistence(m.store)
	return m
}

// newSession builds a session whose engine reports through an event log
func newSession(id string, config *engine.GameConfig) (*service.Session, error) {
	events := engine.NewEventLog()
	eng, err := engine.NewEngine(config, engine.WithRenderer(events), engine.WithNotifier(events))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := time.Now()
	return &service.Session{
		ID:             id,
		Engine:         eng,
		Events:         events,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}, nil
}

// Create creates a new session with the given ID and configuration
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if strings.ContainsAny(id, "/ ") {
		return nil, ErrInvalidSessionID
	}
	if id == "" {
		id = m.generateSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return nil, ErrSessionAlreadyExists
	}

	session, err := newSession(id, config)
	if err != nil {
		return nil, err
	}
	m.sessions[strings.ToLower(id)] = session

	m.persist(session)
	m.log.WithField("session", id).Debug("Session created")
	return session, nil
}

// Get retrieves a session by ID (case-insensitive), falling back to
// persisted records
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return session, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		session, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if cached, exists := m.sessions[strings.ToLower(id)]; exists {
			return cached, nil
		}
		m.sessions[strings.ToLower(id)] = session
		return session, nil
	}

	return nil, ErrSessionNotFound
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}
	return nil, err
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// Delete removes a session, its persisted record and its save slots
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	_, inMemory := m.sessions[lowerID]
	delete(m.sessions, lowerID)

	persisted := m.persistence != nil && m.persistence.Exists(id)
	if persisted {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
	}

	if !inMemory && !persisted {
		return ErrSessionNotFound
	}

	slots, err := m.slotKeys(id)
	if err != nil {
		return err
	}
	for _, key := range slots {
		if err := m.store.RemoveItem(key); err != nil {
			return fmt.Errorf("failed to delete save slot: %w", err)
		}
	}
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session and
// persists its record. The caller must not hold the session lock.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	session.Touch()
	m.persist(session)
	return nil
}

// SaveGame stores the session's game blob in a save slot. A game suspended
// on an unacknowledged hit cannot be saved.
func (m *Manager) SaveGame(id, slot string) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}

	session.Lock()
	awaiting := session.Engine.AwaitingAck()
	state := session.Engine.SaveState()
	session.Unlock()
	if awaiting {
		return engine.ErrAwaitingAck
	}
	return m.states(session.ID, slot).Save(state)
}

// LoadGame restores the session's game from a save slot.
// storage.ErrInvalidState is returned when the slot is empty or unreadable.
func (m *Manager) LoadGame(ctx context.Context, id, slot string) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}

	state, err := m.states(session.ID, slot).Load()
	if err != nil {
		return err
	}
	session.Lock()
	err = session.Engine.Restore(ctx, state)
	session.Unlock()
	if err != nil {
		return err
	}

	m.persist(session)
	return nil
}

// Slots lists the save slots of a session
func (m *Manager) Slots(id string) ([]string, error) {
	keys, err := m.slotKeys(id)
	if err != nil {
		return nil, err
	}
	prefix := slotPrefix(id)
	slots := make([]string, 0, len(keys))
	for _, key := range keys {
		slots = append(slots, strings.TrimPrefix(key, prefix))
	}
	return slots, nil
}

// Save writes a session record to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	return m.persistence.Save(session)
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the
// given duration. Persisted records are kept.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.AccessedAt().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		m.log.WithField("removed", removed).Info("Expired sessions removed")
	}
	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersistedSessions loads all persisted sessions into memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		if _, exists := m.sessions[strings.ToLower(id)]; exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			m.log.WithError(err).WithField("session", id).Warn("Failed to load persisted session")
			continue
		}

		m.sessions[strings.ToLower(id)] = session
		loaded++
	}

	if loaded > 0 {
		m.log.WithField("count", loaded).Info("Loaded persisted sessions")
	}
	return nil
}

// SaveAllSessions writes every in-memory session to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	errorCount := 0
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			m.log.WithError(err).WithField("session", session.ID).Warn("Failed to save session")
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d sessions", errorCount)
	}
	return nil
}

// persist writes the record when persistence is enabled; failures are logged.
// The caller must not hold the session lock.
func (m *Manager) persist(session *service.Session) {
	if m.persistence == nil {
		return
	}
	if err := m.persistence.Save(session); err != nil {
		m.log.WithError(err).WithField("session", session.ID).Warn("Failed to persist session")
	}
}

func (m *Manager) states(id, slot string) *storage.StateService {
	if slot == "" {
		slot = service.DefaultSlot
	}
	return storage.NewStateService(m.store, slotPrefix(id)+slot)
}

func (m *Manager) slotKeys(id string) ([]string, error) {
	keys, err := m.store.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list save slots: %w", err)
	}
	prefix := slotPrefix(id)
	var out []string
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out, nil
}

func slotPrefix(id string) string {
	return saveKeyPrefix + strings.ToLower(id) + "/"
}

// generateSessionID returns a short random ID not yet in use
func (m *Manager) generateSessionID() string {
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
		m.mu.RLock()
		_, exists := m.sessions[id]
		m.mu.RUnlock()
		if !exists {
			return id
		}
	}
}
