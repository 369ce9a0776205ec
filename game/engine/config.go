package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every rule-set validation failure
var ErrInvalidConfig = errors.New("invalid game config")

// LevelConfig describes one level of a run
type LevelConfig struct {
	Theme string `json:"theme" yaml:"theme"`
	// Player units added when this level starts after a cleared level
	Reinforcements int `json:"reinforcements" yaml:"reinforcements"`
}

// GameConfig is a rule set: board, archetype table and level table
type GameConfig struct {
	Name              string        `json:"name" yaml:"name"`
	Description       string        `json:"description" yaml:"description"`
	BoardSize         int           `json:"board_size" yaml:"board_size"`
	PlayerArchetypes  []Archetype   `json:"player_archetypes" yaml:"player_archetypes"`
	EnemyArchetypes   []Archetype   `json:"enemy_archetypes" yaml:"enemy_archetypes"`
	StarterArchetypes []string      `json:"starter_archetypes" yaml:"starter_archetypes"`
	StarterCount      int           `json:"starter_count" yaml:"starter_count"`
	Levels            []LevelConfig `json:"levels" yaml:"levels"`
	// Seed fixes the random source when non-zero
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// FinalLevel is the last level of a run
func (c *GameConfig) FinalLevel() int {
	return len(c.Levels)
}

// ThemeFor returns the theme of a level, falling back to the default theme
func (c *GameConfig) ThemeFor(level int) string {
	if level >= 1 && level <= len(c.Levels) && c.Levels[level-1].Theme != "" {
		return c.Levels[level-1].Theme
	}
	return DefaultTheme
}

// ReinforcementsFor returns how many player units join at the given level
func (c *GameConfig) ReinforcementsFor(level int) int {
	if level >= 1 && level <= len(c.Levels) {
		return c.Levels[level-1].Reinforcements
	}
	return 0
}

// Starters resolves the starter archetype names against the player table
func (c *GameConfig) Starters() []Archetype {
	var out []Archetype
	for _, name := range c.StarterArchetypes {
		for _, a := range c.PlayerArchetypes {
			if a.Name == name {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// ValidateGameConfig checks a rule set for consistency and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("%w: board_size must be between %d and %d, got %d",
			ErrInvalidConfig, MinBoardSize, MaxBoardSize, config.BoardSize)
	}

	if len(config.Levels) == 0 {
		return fmt.Errorf("%w: at least one level is required", ErrInvalidConfig)
	}
	for i, l := range config.Levels {
		if l.Reinforcements < 0 {
			return fmt.Errorf("%w: level %d reinforcements must be >= 0", ErrInvalidConfig, i+1)
		}
	}

	if err := validateArchetypes("player_archetypes", config.PlayerArchetypes, Player); err != nil {
		return err
	}
	if err := validateArchetypes("enemy_archetypes", config.EnemyArchetypes, Enemy); err != nil {
		return err
	}

	if config.StarterCount <= 0 {
		return fmt.Errorf("%w: starter_count must be positive", ErrInvalidConfig)
	}
	if len(config.StarterArchetypes) == 0 {
		return fmt.Errorf("%w: starter_archetypes is required", ErrInvalidConfig)
	}
	if len(config.Starters()) != len(config.StarterArchetypes) {
		return fmt.Errorf("%w: every starter archetype must name a player archetype", ErrInvalidConfig)
	}

	// Both sides deploy on two columns; the largest team must fit
	capacity := 2 * config.BoardSize
	largest := config.StarterCount
	for _, l := range config.Levels {
		largest += l.Reinforcements
	}
	if largest > capacity {
		return fmt.Errorf("%w: up to %d units per side but only %d deployment cells",
			ErrInvalidConfig, largest, capacity)
	}

	return nil
}

func validateArchetypes(field string, archetypes []Archetype, side Side) error {
	if len(archetypes) == 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, field)
	}
	seen := make(map[string]bool)
	for _, a := range archetypes {
		if a.Name == "" {
			return fmt.Errorf("%w: %s entry without name", ErrInvalidConfig, field)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: %s has duplicate archetype %q", ErrInvalidConfig, field, a.Name)
		}
		seen[a.Name] = true
		if a.Side != side {
			return fmt.Errorf("%w: archetype %q must be on side %s, got %q", ErrInvalidConfig, a.Name, side, a.Side)
		}
		if a.Attack < 0 || a.Defence < 0 || a.MoveRange < 0 || a.AttackRange < 0 {
			return fmt.Errorf("%w: archetype %q has negative stats", ErrInvalidConfig, a.Name)
		}
	}
	return nil
}

// ParseGameConfig decodes a rule set; format is "json" or "yaml"
func ParseGameConfig(data []byte, format string) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	case "json", "":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse json config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadGameConfig loads and validates a rule set from a .json, .yaml or .yml file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	return ParseGameConfig(data, format)
}

// DefaultGameConfig returns the built-in classic rule set
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Four levels on an 8x8 board: prairie, desert, arctic, mountain",
		BoardSize:   DefaultBoard,
		PlayerArchetypes: []Archetype{
			{Name: "swordsman", Side: Player, Attack: 40, Defence: 10, MoveRange: 4, AttackRange: 1},
			{Name: "bowman", Side: Player, Attack: 25, Defence: 25, MoveRange: 2, AttackRange: 2},
			{Name: "magician", Side: Player, Attack: 10, Defence: 40, MoveRange: 1, AttackRange: 4},
		},
		EnemyArchetypes: []Archetype{
			{Name: "undead", Side: Enemy, Attack: 40, Defence: 10, MoveRange: 4, AttackRange: 1},
			{Name: "vampire", Side: Enemy, Attack: 25, Defence: 25, MoveRange: 2, AttackRange: 2},
			{Name: "daemon", Side: Enemy, Attack: 10, Defence: 10, MoveRange: 1, AttackRange: 4},
		},
		StarterArchetypes: []string{"swordsman", "bowman"},
		StarterCount:      2,
		Levels: []LevelConfig{
			{Theme: "prairie", Reinforcements: 0},
			{Theme: "desert", Reinforcements: 1},
			{Theme: "arctic", Reinforcements: 2},
			{Theme: "mountain", Reinforcements: 2},
		},
	}
}
