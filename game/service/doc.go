// Package service provides the business logic layer for the tactics game.
//
// The service package implements:
//   - Multi-session game management
//   - Turn interactions (click, hover, acknowledge, cancel)
//   - Saved game slots
//   - Configuration listing and loading
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, lifecycle and save slots.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine and an EventLog that
// records render and notice calls; every interaction returns the events it
// produced so remote presentations can replay them.
//
// Usage:
//
//	sessionMgr := session.NewManager(storage.NewMemoryStorage())
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Click(ctx, info.ID, 0)
//	if result.Outcome.AwaitingAck {
//		result, err = gameService.Acknowledge(ctx, info.ID)
//	}
package service
