package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/pkg/logger"
)

// ErrInvalidState is returned when no saved game exists or it cannot be parsed
var ErrInvalidState = errors.New("invalid state")

// DefaultStateKey is the key used when none is given
const DefaultStateKey = "state"

// savedBlob mirrors engine.SaveState with optional fields so that missing
// keys can be told apart from zero values
type savedBlob struct {
	Level     *int                 `json:"level"`
	Positions []*engine.PlacedUnit `json:"positions"`
	Theme     *string              `json:"theme"`
	Score     *int                 `json:"score"`
}

// StateService saves and loads one game blob under a key
type StateService struct {
	storage Storage
	key     string
	log     *logrus.Entry
}

// NewStateService binds a storage key
func NewStateService(storage Storage, key string) *StateService {
	if key == "" {
		key = DefaultStateKey
	}
	return &StateService{
		storage: storage,
		key:     key,
		log:     logger.Log.WithFields(logrus.Fields{"component": "storage", "key": key}),
	}
}

// Key returns the bound storage key
func (s *StateService) Key() string {
	return s.key
}

// Save stores the blob
func (s *StateService) Save(state *engine.SaveState) error {
	if state == nil {
		return fmt.Errorf("%w: state is nil", ErrInvalidState)
	}
	positions := state.Positions
	if positions == nil {
		positions = []*engine.PlacedUnit{}
	}
	data, err := json.Marshal(engine.SaveState{
		Level:     state.Level,
		Positions: positions,
		Theme:     state.Theme,
		Score:     state.Score,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		s.log.WithError(err).Warn("Failed to save state")
		return err
	}
	return nil
}

// Load returns the stored blob. Unknown keys are ignored and missing ones
// default to level 1, no positions, the default theme and score 0.
func (s *StateService) Load() (*engine.SaveState, error) {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		s.log.WithError(err).Warn("Failed to read state")
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no saved game", ErrInvalidState)
	}

	var blob savedBlob
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		s.log.WithError(err).Warn("Saved state is corrupt")
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	state := &engine.SaveState{
		Level:     1,
		Positions: []*engine.PlacedUnit{},
		Theme:     engine.DefaultTheme,
	}
	if blob.Level != nil {
		state.Level = *blob.Level
	}
	if blob.Positions != nil {
		state.Positions = blob.Positions
	}
	if blob.Theme != nil {
		state.Theme = *blob.Theme
	}
	if blob.Score != nil {
		state.Score = *blob.Score
	}
	return state, nil
}

// Clear removes the stored blob
func (s *StateService) Clear() error {
	return s.storage.RemoveItem(s.key)
}
