package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/service"
)

// maxAutoAcks bounds the acknowledgements sent by one auto_ack click
const maxAutoAcks = 4

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Retro Tactics",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Retro Tactics - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Destroy every enemy unit on the board to clear the level. Clear the final level to win.

AVAILABLE TOOLS:
- create_session: Create a new game session
- list_sessions: List all active sessions
- game_state: Board, units, phase and score
- click: Click a cell (select a unit, move it, or attack) - requires intent explanation
- hover: Describe a cell (tooltip and what a click would do)
- acknowledge: Finish a damage animation so the turn can continue
- cancel: Clear the selection and restart the run
- new_game: Start over at a level
- save_game / load_game: Save slots
- list_configs: List rule sets
- game_instructions: Full rules

NOTE: After an attack the game waits for acknowledge. Pass auto_ack=true to click to do it automatically.`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func indexProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional rule set selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the rule set to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, the units, the turn phase and the score",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "click",
		Description: "Click a board cell: select your unit, move the selected unit to a reachable cell, or attack an enemy in range",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"index":      indexProperty("Cell index, row * board_size + column"),
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "What you want to achieve with this click",
				},
				"auto_ack": map[string]interface{}{
					"type":        "boolean",
					"description": "Acknowledge damage animations automatically (default false)",
				},
			},
			Required: []string{"session_id", "index", "intent"},
		},
	}, c.handleClick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hover",
		Description: "Describe a cell: unit tooltip and, with a selection, whether a click would move, attack or be rejected",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"index":      indexProperty("Cell index"),
			},
			Required: []string{"session_id", "index"},
		},
	}, c.handleHover)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "acknowledge",
		Description: "Signal that the damage animation finished so the turn continues",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleAcknowledge)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "cancel",
		Description: "Clear the selection and restart the run at level 1",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleCancel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Abandon the current run and start over",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"level":      indexProperty("Level to start at (default 1)"),
			},
			Required: []string{"session_id"},
		},
	}, c.handleNewGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "save_game",
		Description: "Save the game to a slot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"slot": map[string]interface{}{
					"type":        "string",
					"description": "Save slot name (default \"default\")",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSaveGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "load_game",
		Description: "Load the game from a slot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"slot": map[string]interface{}{
					"type":        "string",
					"description": "Save slot name (default \"default\")",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleLoadGame)

	// Configuration and help
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available rule sets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func sessionPath(sessionID, action string) string {
	if action == "" {
		return "/api/sessions/" + sessionID
	}
	return "/api/sessions/" + sessionID + "/" + action
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		line := fmt.Sprintf("- %s (Config: %s, Created: %s)", s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
		if s.GameState != nil {
			line += fmt.Sprintf(" level %d score %d %s", s.GameState.Level, s.GameState.Score, s.GameState.Phase)
		}
		result.WriteString(line + "\n")
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.Snapshot
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	autoAck, _ := args["auto_ack"].(bool)
	index, ok := intArg(args, "index")
	if !ok {
		return mcp.NewToolResultError("index is required"), nil
	}
	// intent only documents the caller's reasoning; it is not sent
	_, _ = args["intent"].(string)

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "click"), map[string]int{"index": index}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := formatActionResult("click", &result)
	for i := 0; autoAck && i < maxAutoAcks && awaitingAck(&result); i++ {
		result = service.ActionResult{}
		if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "ack"), nil, &result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text += "\n\n" + formatActionResult("acknowledge", &result)
	}

	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleHover(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	index, ok := intArg(args, "index")
	if !ok {
		return mcp.NewToolResultError("index is required"), nil
	}

	var result service.HoverResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "hover"), map[string]int{"index": index}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHover(result.Info)), nil
}

func (c *Client) handleAcknowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleAction(ctx, request, "ack", "acknowledge", nil)
}

func (c *Client) handleCancel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleAction(ctx, request, "cancel", "cancel", nil)
}

func (c *Client) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	level, ok := intArg(arguments(request), "level")
	if !ok {
		level = 1
	}
	return c.simpleAction(ctx, request, "new-game", "new game", map[string]int{"level": level})
}

func (c *Client) handleSaveGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slot, _ := arguments(request)["slot"].(string)
	return c.simpleAction(ctx, request, "save", "save", map[string]string{"slot": slot})
}

func (c *Client) handleLoadGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slot, _ := arguments(request)["slot"].(string)
	return c.simpleAction(ctx, request, "load", "load", map[string]string{"slot": slot})
}

// simpleAction posts an action without extra handling and formats the result
func (c *Client) simpleAction(ctx context.Context, request mcp.CallToolRequest, action, label string, body interface{}) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, action), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(label, &result)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&result, "• %s (config_id: %s)\n  %s\n  Board: %dx%d, Levels: %d, Archetypes: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.BoardSize, config.BoardSize, config.Levels, strings.Join(config.Archetypes, ", "))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

func awaitingAck(result *service.ActionResult) bool {
	if result.Outcome != nil && result.Outcome.AwaitingAck {
		return true
	}
	return result.GameState != nil && result.GameState.AwaitingAck
}

const instructions = `Retro Tactics - Complete Instructions

GAME OBJECTIVE:
Two teams fight on a square board. Destroy every enemy unit to clear the level.
Clearing the final level wins the run; losing every unit ends it.

THE BOARD:
Cells are numbered row by row: index = row * board_size + column.
Your units start on the two left columns, enemies on the two right columns.
In game_state, your units are UPPERCASE and enemies lowercase:
  S swordsman  B bowman  M magician  |  u undead  v vampire  d daemon
  [X] selected unit, + reachable cell, ! attackable enemy, . empty

TURN FLOW:
1. click one of your units to select it (reachable and attackable cells appear)
2. click a reachable empty cell to move, or an enemy marked ! to attack
3. after an attack the game waits: call acknowledge (or click with auto_ack=true)
4. the enemy responds: its strongest unit attacks your selected unit if it is in
   range, otherwise an enemy repositions
5. acknowledge its attack too, then it is your turn again

Clicking another of your units switches the selection. Any other click is rejected
with "Invalid action!" and changes nothing.

COMBAT:
damage = max(attack - defence, ceil(attack * 0.1)), so every hit does at least 1.
Units start with 50 health. A unit at 0 health is removed.
Movement reaches up to move_range cells in straight lines along rows, columns and
diagonals; occupied cells are skipped, not blocking.
Attacks reach every cell within attack_range in both directions (a square).

LEVELS:
Clearing a level adds the health of your survivors to the score. Survivors level up:
+80 health (max 100) and higher attack and defence. New enemies and reinforcements join.

SAVED GAMES:
save_game and load_game use named slots. Loading an empty slot reports "No saved games".

STRATEGY:
- hover a cell first to see what a click would do
- ranged units (bowman, magician) can strike before melee enemies close in
- the enemy always acts with its highest-attack unit; damage it first
- the enemy only strikes the unit you just used, so end turns out of its range

Good luck, commander!`
