package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/service"
)

// Client drives one session over the REST API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID is the session the client plays
func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, bytes.TrimSpace(data))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

// CreateSession starts a session on configName, or the server default when empty
func (c *Client) CreateSession(ctx context.Context, configName string) (*engine.Snapshot, error) {
	var body interface{}
	if configName != "" {
		body = map[string]string{"config_id": configName}
	}

	var session service.SessionInfo
	if err := c.do(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return nil, err
	}
	c.sessionID = session.ID
	return session.GameState, nil
}

// Resume attaches to an existing session
func (c *Client) Resume(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	c.sessionID = sessionID
	return c.State(ctx)
}

func (c *Client) State(ctx context.Context) (*engine.Snapshot, error) {
	var state engine.Snapshot
	if err := c.do(ctx, "GET", c.path("state"), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Click(ctx context.Context, index int) (*service.ActionResult, error) {
	return c.action(ctx, "click", map[string]int{"index": index})
}

func (c *Client) Acknowledge(ctx context.Context) (*service.ActionResult, error) {
	return c.action(ctx, "ack", nil)
}

func (c *Client) Cancel(ctx context.Context) (*service.ActionResult, error) {
	return c.action(ctx, "cancel", nil)
}

func (c *Client) NewGame(ctx context.Context, level int) (*service.ActionResult, error) {
	return c.action(ctx, "new-game", map[string]int{"level": level})
}

func (c *Client) action(ctx context.Context, name string, body interface{}) (*service.ActionResult, error) {
	var result service.ActionResult
	if err := c.do(ctx, "POST", c.path(name), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) path(action string) string {
	return fmt.Sprintf("/api/sessions/%s/%s", c.sessionID, action)
}
