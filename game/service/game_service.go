package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/retro-tactics/game/engine"
)

// ErrSessionNotFound is wrapped by every operation on an unknown session
var ErrSessionNotFound = errors.New("session not found")

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Click(ctx context.Context, sessionID string, index int) (*ActionResult, error)
	Hover(ctx context.Context, sessionID string, index int) (*HoverResult, error)
	Leave(ctx context.Context, sessionID string, index int) (*ActionResult, error)
	Acknowledge(ctx context.Context, sessionID string) (*ActionResult, error)
	Cancel(ctx context.Context, sessionID string) (*ActionResult, error)
	NewGame(ctx context.Context, sessionID string, level int) (*ActionResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Saved games
	SaveGame(ctx context.Context, sessionID, slot string) (*ActionResult, error)
	LoadGame(ctx context.Context, sessionID, slot string) (*ActionResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error

	// SaveGame stores the session's game in a save slot
	SaveGame(id, slot string) error
	// LoadGame restores the session's game from a save slot
	LoadGame(ctx context.Context, id, slot string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
}

// Session represents an active game session. Engine, Events and
// LastAccessedAt are guarded by the session lock.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Events         *engine.EventLog
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu sync.Mutex
}

// Lock acquires the session lock
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records an access under the session lock
func (s *Session) Touch() {
	s.mu.Lock()
	s.LastAccessedAt = time.Now()
	s.mu.Unlock()
}

// AccessedAt returns the last access time under the session lock
func (s *Session) AccessedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastAccessedAt
}
