package service

import (
	"time"

	"github.com/wricardo/retro-tactics/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.Snapshot   `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config,omitempty"`
}

// ActionResult contains the result of a player interaction
type ActionResult struct {
	Success   bool             `json:"success"`
	Outcome   *engine.Outcome  `json:"outcome,omitempty"`
	GameState *engine.Snapshot `json:"game_state"`
	Message   string           `json:"message,omitempty"`
	// Render and notice calls produced by the interaction, in order
	Events []engine.Event `json:"events,omitempty"`
}

// HoverResult contains the result of hovering a cell
type HoverResult struct {
	Info   *engine.HoverInfo `json:"info"`
	Events []engine.Event    `json:"events,omitempty"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string   `json:"filename"`
	ConfigID    string   `json:"config_id"` // The identifier to use for session creation
	Name        string   `json:"name"`      // Display name
	Description string   `json:"description"`
	BoardSize   int      `json:"board_size"`
	Levels      int      `json:"levels"`
	Archetypes  []string `json:"archetypes"`
}

// Message texts for saved games
const (
	MsgGameSaved    = "Game saved"
	MsgGameLoaded   = "Game loaded"
	MsgNoSavedGames = "No saved games"
)
