package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http/httptest"
	"testing"

	"github.com/wricardo/retro-tactics/api"
	"github.com/wricardo/retro-tactics/game/config"
	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/service"
	"github.com/wricardo/retro-tactics/game/session"
	"github.com/wricardo/retro-tactics/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(nil), configs)
	server := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(server.Close)
	return server
}

func TestClient_CreateAndResume(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	client := NewClient(server.URL)

	state, err := client.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if client.SessionID() == "" {
		t.Fatal("Expected a session ID")
	}
	if state.Level != 1 || state.ConfigName != "classic" {
		t.Errorf("Expected level 1 of classic, got level %d of %s", state.Level, state.ConfigName)
	}

	other := NewClient(server.URL)
	resumed, err := open(ctx, other, client.SessionID(), "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if other.SessionID() != client.SessionID() || len(resumed.Units) != len(state.Units) {
		t.Errorf("Expected to resume session %s", client.SessionID())
	}

	fresh := NewClient(server.URL)
	if _, err := open(ctx, fresh, "missing", ""); err != nil {
		t.Fatalf("Expected open to fall back to a new session, got %v", err)
	}
	if fresh.SessionID() == "missing" || fresh.SessionID() == "" {
		t.Errorf("Expected a new session ID, got %q", fresh.SessionID())
	}
}

func TestClient_Errors(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	client := NewClient(server.URL)

	if _, err := client.CreateSession(ctx, "nope"); err == nil {
		t.Error("Expected error for unknown config")
	}
	if _, err := client.Resume(ctx, "missing"); err == nil {
		t.Error("Expected error for unknown session")
	}

	if _, err := client.CreateSession(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Acknowledge(ctx); err == nil {
		t.Error("Expected conflict when nothing awaits acknowledge")
	}
	if _, err := client.Click(ctx, 999); err == nil {
		t.Error("Expected error for an index off the board")
	}
}

func TestPlayer_Play(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	client := NewClient(server.URL)

	state, err := client.CreateSession(ctx, "")
	if err != nil {
		t.Fatal(err)
	}

	player := &Player{
		client:    client,
		strategy:  NewStrategy(rand.New(rand.NewSource(3))),
		maxClicks: 300,
		log:       logger.Log.WithField("test", t.Name()),
	}

	final, clicks, err := player.Play(ctx, state)
	if err != nil && !errors.Is(err, errStuck) {
		t.Fatalf("Play failed: %v", err)
	}
	if final == nil {
		t.Fatal("Expected a final state")
	}
	if clicks == 0 {
		t.Error("Expected at least one click")
	}
	if final.AwaitingAck {
		t.Error("Expected every damage animation to be acknowledged")
	}
}

func TestRunOver(t *testing.T) {
	tests := []struct {
		name     string
		state    engine.Snapshot
		expected bool
	}{
		{"playing", engine.Snapshot{Phase: engine.PhaseIdle}, false},
		{"game over phase", engine.Snapshot{Phase: engine.PhaseGameOver}, true},
		{"run over outcome", engine.Snapshot{Phase: engine.PhaseIdle, LastOutcome: &engine.Outcome{RunOver: true}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOver(&tt.state); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
