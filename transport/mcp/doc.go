// Package mcp exposes the game to AI agents over the Model Context Protocol.
//
// Client is a thin proxy: every tool calls the REST API of a running server
// and renders the JSON answer as text, with the board drawn as a grid of
// letters (uppercase for the player, lowercase for the enemy).
//
// Tools:
//   - create_session, list_sessions
//   - game_state: board, units, phase and score
//   - click, hover: cell interactions by index
//   - acknowledge: resume after a damage animation
//   - cancel, new_game
//   - save_game, load_game: named save slots
//   - list_configs, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		return err
//	}
package mcp
