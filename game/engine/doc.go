// Package engine provides the core rules of the tactics game.
//
// The engine package implements:
//   - Board geometry on a square N×N grid addressed by cell index
//   - Reachable (eight compass directions) and attackable (square band) cell sets
//   - Damage with a chip floor, health clamping and level-up growth
//   - Roster generation from a data-driven archetype table
//   - A defensive relocation heuristic for the opposing side
//   - The turn state machine tying them together
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameConfig holds the rule set (board size,
// archetypes, level table) and is loaded from JSON or YAML files.
// Renderer and Notifier are the presentation collaborators; EventLog records
// their calls for remote clients.
//
// Usage:
//
//	events := engine.NewEventLog()
//	game, err := engine.NewEngine(engine.DefaultGameConfig(),
//		engine.WithRenderer(events), engine.WithNotifier(events))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game.Click(ctx, 0) // select a unit
//	out, _ := game.Click(ctx, 1) // attack the adjacent enemy
//	if out.AwaitingAck {
//		// play the damage animation, then
//		game.Acknowledge(ctx)
//	}
//
// Game Rules:
//
// The player selects a unit and either moves it to a free reachable cell or
// attacks an enemy in range. Every action is answered by the strongest enemy,
// which hits the selected unit when in range and otherwise relocates.
// Clearing all enemies levels up the survivors and starts the next level;
// clearing the final level wins the run with the accumulated score. Losing
// every player unit ends the run.
package engine
