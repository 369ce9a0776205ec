// Command analyze prints quick, human-readable balance heuristics about the
// rule sets in a configs directory. For every config it prints the level-1
// damage matrix between player and enemy archetypes, the hits each matchup
// needs to destroy a fresh unit, the movement and attack coverage of every
// archetype from the board centre, and warnings for matchups that can
// never finish a fight.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/retro-tactics/game/engine"
)

// Matchup is the level-1 exchange between an attacker and a defender archetype
type Matchup struct {
	Attacker string
	Defender string
	Damage   int
	Hits     int
}

// Coverage is how much of an empty board an archetype reaches from the centre
type Coverage struct {
	Archetype  string
	Reachable  int
	Attackable int
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := configFiles(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing configs: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No configs in %s, analyzing the built-in classic rule set\n", dir)
		analyzeGameConfig(os.Stdout, engine.DefaultGameConfig())
		return
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		if err := analyzeConfig(os.Stdout, file); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

// configFiles lists the .json, .yaml and .yml files of dir, sorted
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func analyzeConfig(w io.Writer, path string) error {
	config, err := engine.LoadGameConfig(path)
	if err != nil {
		return err
	}
	analyzeGameConfig(w, config)
	return nil
}

func analyzeGameConfig(w io.Writer, config *engine.GameConfig) {
	fmt.Fprintf(w, "Name: %s\n", config.Name)
	fmt.Fprintf(w, "Board: %d x %d\n", config.BoardSize, config.BoardSize)
	fmt.Fprintf(w, "Levels: %d\n", config.FinalLevel())
	for i, level := range config.Levels {
		fmt.Fprintf(w, "  %d. %-10s +%d units\n", i+1, config.ThemeFor(i+1), level.Reinforcements)
	}

	fmt.Fprintln(w, "\nPlayer attacks:")
	printMatchups(w, damageMatrix(config.PlayerArchetypes, config.EnemyArchetypes))
	fmt.Fprintln(w, "\nEnemy attacks:")
	printMatchups(w, damageMatrix(config.EnemyArchetypes, config.PlayerArchetypes))

	fmt.Fprintln(w, "\nCoverage from the centre of an empty board:")
	for _, c := range coverage(config) {
		fmt.Fprintf(w, "  %-10s moves to %3d cells, attacks %3d cells\n", c.Archetype, c.Reachable, c.Attackable)
	}

	warnings := stalls(config)
	if len(warnings) == 0 {
		fmt.Fprintln(w, "\n✅ Every archetype can destroy every opposing archetype")
		return
	}
	fmt.Fprintf(w, "\n⚠️  WARNING: %d matchups can never finish a fight\n", len(warnings))
	for _, m := range warnings {
		fmt.Fprintf(w, "   %s cannot damage %s\n", m.Attacker, m.Defender)
	}
}

func printMatchups(w io.Writer, matchups []Matchup) {
	for _, m := range matchups {
		fmt.Fprintf(w, "  %-10s -> %-10s damage %3d, %2d hits\n", m.Attacker, m.Defender, m.Damage, m.Hits)
	}
}

// damageMatrix computes every attacker/defender exchange at level 1
func damageMatrix(attackers, defenders []engine.Archetype) []Matchup {
	var out []Matchup
	for _, a := range attackers {
		for _, d := range defenders {
			damage := engine.ComputeDamage(unitOf(a), unitOf(d))
			out = append(out, Matchup{
				Attacker: a.Name,
				Defender: d.Name,
				Damage:   damage,
				Hits:     hitsToKill(damage, engine.BaseHealth),
			})
		}
	}
	return out
}

// hitsToKill is how many hits of damage destroy a unit with health; zero
// means never
func hitsToKill(damage, health int) int {
	if damage <= 0 {
		return 0
	}
	return (health + damage - 1) / damage
}

func coverage(config *engine.GameConfig) []Coverage {
	size := config.BoardSize
	centre := engine.IndexOf(size/2, size/2, size)

	archetypes := append(append([]engine.Archetype{}, config.PlayerArchetypes...), config.EnemyArchetypes...)
	out := make([]Coverage, 0, len(archetypes))
	for _, a := range archetypes {
		out = append(out, Coverage{
			Archetype:  a.Name,
			Reachable:  len(engine.Reachable(centre, a.MoveRange, engine.Occupancy{}, size)),
			Attackable: len(engine.Attackable(centre, a.AttackRange, size)),
		})
	}
	return out
}

// stalls lists matchups in either direction where the attacker deals no
// damage at all
func stalls(config *engine.GameConfig) []Matchup {
	var out []Matchup
	all := append(damageMatrix(config.PlayerArchetypes, config.EnemyArchetypes),
		damageMatrix(config.EnemyArchetypes, config.PlayerArchetypes)...)
	for _, m := range all {
		if m.Hits == 0 {
			out = append(out, m)
		}
	}
	return out
}

func unitOf(a engine.Archetype) *engine.Unit {
	return &engine.Unit{
		Type:        a.Name,
		Side:        a.Side,
		Level:       1,
		Attack:      a.Attack,
		Defence:     a.Defence,
		Health:      engine.BaseHealth,
		MoveRange:   a.MoveRange,
		AttackRange: a.AttackRange,
	}
}
