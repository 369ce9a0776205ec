package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/storage"
	"github.com/wricardo/retro-tactics/pkg/logger"
)

// DefaultSlot is the save slot used when none is given
const DefaultSlot = "default"

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
	log      *logrus.Entry
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		log:      logger.Log.WithField("component", "service"),
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("config '%s': %w. Available configs: %v", configName, err, configIDs)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}
	s.log.WithFields(logrus.Fields{"session": sess.ID, "config": configID}).Info("Session created")

	sess.Lock()
	defer sess.Unlock()
	sess.Events.Drain()
	return sessionInfo(sess, configID, true), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	configID := s.getConfigID(sess.Config.Name)

	sess.Lock()
	defer sess.Unlock()
	return sessionInfo(sess, configID, true), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		configID := s.getConfigID(sess.Config.Name)
		sess.Lock()
		result = append(result, sessionInfo(sess, configID, false))
		sess.Unlock()
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Click handles a click on a board cell
func (s *gameServiceImpl) Click(ctx context.Context, sessionID string, index int) (*ActionResult, error) {
	return s.interact(sessionID, func(sess *Session) (*engine.Outcome, error) {
		return sess.Engine.Click(ctx, index)
	})
}

// Leave handles the pointer leaving a cell
func (s *gameServiceImpl) Leave(ctx context.Context, sessionID string, index int) (*ActionResult, error) {
	return s.interact(sessionID, func(sess *Session) (*engine.Outcome, error) {
		return nil, sess.Engine.Leave(index)
	})
}

// Acknowledge resumes the turn suspended on a damage animation
func (s *gameServiceImpl) Acknowledge(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.interact(sessionID, func(sess *Session) (*engine.Outcome, error) {
		return sess.Engine.Acknowledge(ctx)
	})
}

// Cancel clears the selection and resets the run
func (s *gameServiceImpl) Cancel(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.interact(sessionID, func(sess *Session) (*engine.Outcome, error) {
		return sess.Engine.Cancel(ctx)
	})
}

// NewGame starts a fresh run at the given level
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string, level int) (*ActionResult, error) {
	if level == 0 {
		level = 1
	}
	return s.interact(sessionID, func(sess *Session) (*engine.Outcome, error) {
		return sess.Engine.NewGame(ctx, level)
	})
}

// Hover classifies a cell and shows its tooltip
func (s *gameServiceImpl) Hover(ctx context.Context, sessionID string, index int) (*HoverResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	info, err := sess.Engine.Hover(index)
	events := sess.Events.Drain()
	sess.Unlock()
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return &HoverResult{Info: info, Events: events}, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()
	return sess.Engine.Snapshot(), nil
}

// SaveGame stores the session's game in a slot
func (s *gameServiceImpl) SaveGame(ctx context.Context, sessionID, slot string) (*ActionResult, error) {
	if slot == "" {
		slot = DefaultSlot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	awaiting := sess.Engine.AwaitingAck()
	sess.Unlock()
	if awaiting {
		return nil, fmt.Errorf("failed to save game: %w", engine.ErrAwaitingAck)
	}
	if err := s.sessions.SaveGame(sessionID, slot); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()
	sess.Events.Notice(engine.Notice{Kind: engine.NoticeMessage, Text: MsgGameSaved})

	return &ActionResult{
		Success:   true,
		GameState: sess.Engine.Snapshot(),
		Message:   MsgGameSaved,
		Events:    sess.Events.Drain(),
	}, nil
}

// LoadGame restores the session's game from a slot. A missing or corrupt
// save is reported as an unsuccessful result, not an error.
func (s *gameServiceImpl) LoadGame(ctx context.Context, sessionID, slot string) (*ActionResult, error) {
	if slot == "" {
		slot = DefaultSlot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	err = s.sessions.LoadGame(ctx, sessionID, slot)
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()
	switch {
	case errors.Is(err, storage.ErrInvalidState):
		s.log.WithFields(logrus.Fields{"session": sessionID, "slot": slot}).WithError(err).Info("No saved game")
		sess.Events.Notice(engine.Notice{Kind: engine.NoticeError, Text: MsgNoSavedGames})
		return &ActionResult{
			Success:   false,
			GameState: sess.Engine.Snapshot(),
			Message:   MsgNoSavedGames,
			Events:    sess.Events.Drain(),
		}, nil
	case err != nil:
		sess.Events.Drain()
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	sess.Events.Notice(engine.Notice{Kind: engine.NoticeMessage, Text: MsgGameLoaded})
	return &ActionResult{
		Success:   true,
		GameState: sess.Engine.Snapshot(),
		Message:   MsgGameLoaded,
		Events:    sess.Events.Drain(),
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// session resolves a session ID; lookups that miss wrap ErrSessionNotFound
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	case err != nil:
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	return sess, nil
}

// interact runs one engine interaction under the service and session locks,
// collects the events it produced and then records the access
func (s *gameServiceImpl) interact(sessionID string, fn func(sess *Session) (*engine.Outcome, error)) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	outcome, err := fn(sess)
	events := sess.Events.Drain()
	snapshot := sess.Engine.Snapshot()
	sess.Unlock()
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &ActionResult{
		Success:   outcome == nil || outcome.Accepted,
		Outcome:   outcome,
		GameState: snapshot,
		Events:    events,
	}
	if outcome != nil {
		result.Message = outcome.Message
	}
	return result, nil
}

// sessionInfo describes a session; the caller holds the session lock
func sessionInfo(sess *Session, configID string, withConfig bool) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.Snapshot(),
	}
	if withConfig {
		info.GameConfig = sess.Config
	}
	return info
}
