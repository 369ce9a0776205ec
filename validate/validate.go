// Command validate provides a small CLI that validates game configuration
// files (.json, .yaml, .yml) in the ../configs directory, or the directory
// given as first argument. It checks:
//   - JSON/YAML structure
//   - The engine's rule-set validation (board, archetypes, starters, levels)
//   - Lint rules: harmless or immobile archetypes, levels without a theme
//   - Playability: level 1 deploys units for both sides and the player can act
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/retro-tactics/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// decodeConfig parses a file by extension without validating it
func decodeConfig(filePath string, data []byte) (*engine.GameConfig, error) {
	var config engine.GameConfig
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("Invalid YAML: %v", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("Invalid JSON: %v", err)
		}
	}
	return &config, nil
}

// validateConfig loads and validates a single configuration file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	config, err := decodeConfig(filePath, data)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		result.fail("%v", err)
	}

	for _, issue := range lint(config) {
		result.fail("%s", issue)
	}

	// Playability needs a structurally valid rule set
	if result.Valid {
		playability := validatePlayable(config)
		if !playability.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, playability.Errors...)
	}

	if result.Valid {
		themes := make([]string, 0, len(config.Levels))
		reinforcements := 0
		for i := range config.Levels {
			themes = append(themes, config.ThemeFor(i+1))
			reinforcements += config.ReinforcementsFor(i + 1)
		}
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ Name: %s", config.Name),
			fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize),
			fmt.Sprintf("✓ Levels: %d (%s)", config.FinalLevel(), strings.Join(themes, ", ")),
			fmt.Sprintf("✓ Archetypes: %d player, %d enemy", len(config.PlayerArchetypes), len(config.EnemyArchetypes)),
			fmt.Sprintf("✓ Starters: %d from %s", config.StarterCount, strings.Join(config.StarterArchetypes, ", ")),
			fmt.Sprintf("✓ Reinforcements: %d", reinforcements),
		)
	}

	return result
}

// lint reports rule sets the engine accepts but that cannot play well
func lint(config *engine.GameConfig) []string {
	var issues []string

	archetypes := append(append([]engine.Archetype{}, config.PlayerArchetypes...), config.EnemyArchetypes...)
	for _, a := range archetypes {
		if a.Attack == 0 {
			issues = append(issues, fmt.Sprintf("Archetype %s has attack 0 and can never deal damage", a.Name))
		}
		if a.MoveRange == 0 && a.AttackRange == 0 {
			issues = append(issues, fmt.Sprintf("Archetype %s can neither move nor attack", a.Name))
		}
	}

	for i, level := range config.Levels {
		if level.Theme == "" {
			issues = append(issues, fmt.Sprintf("Level %d has no theme", i+1))
		}
	}

	return issues
}

// validatePlayable starts level 1 with a fixed seed and checks that both
// sides are deployed and that every player unit has something to do.
func validatePlayable(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	eng, err := engine.NewEngine(config, engine.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		result.fail("Level 1 cannot start: %v", err)
		return result
	}

	units := eng.Units()
	occupied := engine.Occupancy{}
	var players, enemies int
	for _, u := range units {
		occupied[u.Position] = true
		if u.Side == engine.Player {
			players++
		} else {
			enemies++
		}
	}
	if players == 0 {
		result.fail("Level 1 deploys no player units")
	}
	if enemies == 0 {
		result.fail("Level 1 deploys no enemy units")
	}
	if !result.Valid {
		return result
	}

	moveRanges := make(map[string]int, len(config.PlayerArchetypes))
	for _, a := range config.PlayerArchetypes {
		moveRanges[a.Name] = a.MoveRange
	}

	var stuck []string
	for _, u := range units {
		if u.Side != engine.Player {
			continue
		}
		if len(engine.Reachable(u.Position, moveRanges[u.Type], occupied, config.BoardSize)) == 0 {
			stuck = append(stuck, fmt.Sprintf("%s at %d", u.Type, u.Position))
		}
	}
	if len(stuck) > 0 {
		sort.Strings(stuck)
		result.fail("%d player units cannot move on level 1: %s", len(stuck), strings.Join(stuck, ", "))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Level 1: %d player units vs %d enemies", players, enemies))
	return result
}

// configFiles lists the rule-set files of dir, sorted
func configFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main validates every rule set in the config directory, printing a concise
// report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := configFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
