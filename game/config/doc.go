// Package config provides configuration management for the tactics game.
//
// The config package handles:
//   - Loading rule sets from JSON and YAML files
//   - Validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// A rule set names the board size, the player and enemy archetype tables,
// the starter archetypes and the level table (theme and reinforcements per
// level). The final level is the last entry of the level table.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("skirmish")
//
//	// Get default configuration (classic, else the first valid file,
//	// else the built-in rule set)
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
package config
