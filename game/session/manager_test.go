package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/storage"
)

func createTestConfig() *engine.GameConfig {
	config := engine.DefaultGameConfig()
	config.Name = "Test Config"
	config.Seed = 7
	return config
}

func firstPlayerCell(t *testing.T, eng *engine.GameEngine) int {
	t.Helper()
	for _, u := range eng.Units() {
		if u.Side == engine.Player {
			return u.Position
		}
	}
	t.Fatal("no player unit on the board")
	return -1
}

func TestManager_Create(t *testing.T) {
	manager := NewManager(nil)
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil || session.Events == nil {
			t.Fatal("Session should have an engine and an event log")
		}
		if len(session.Events.Events()) == 0 {
			t.Error("Expected the first level to be drawn into the event log")
		}
	})

	t.Run("create with generated ID", func(t *testing.T) {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 6 {
			t.Errorf("Expected 6-character session ID, got '%s'", session.ID)
		}
	})

	t.Run("duplicate ID is case-insensitive", func(t *testing.T) {
		if _, err := manager.Create("TEST-SESSION", config); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		if _, err := manager.Create("a/b", config); !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := createTestConfig()
		bad.BoardSize = 1
		if _, err := manager.Create("bad", bad); !errors.Is(err, engine.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager(nil)
	created, _ := manager.Create("MySession", createTestConfig())

	for _, id := range []string{"MySession", "mysession", "MYSESSION"} {
		t.Run(id, func(t *testing.T) {
			got, err := manager.Get(id)
			if err != nil {
				t.Fatalf("Failed to get session: %v", err)
			}
			if got != created {
				t.Error("Expected the same session instance")
			}
		})
	}

	if _, err := manager.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager(nil)
	config := createTestConfig()

	first, err := manager.GetOrCreate("abc", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := manager.GetOrCreate("ABC", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("Expected GetOrCreate to return the existing session")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager(nil)
	manager.Create("doomed", createTestConfig())
	if err := manager.SaveGame("doomed", "slot1"); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	if err := manager.Delete("DOOMED"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := manager.Get("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
	if slots, _ := manager.Slots("doomed"); len(slots) != 0 {
		t.Errorf("Expected save slots to be removed, got %v", slots)
	}
	if err := manager.Delete("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for second delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager(nil)
	if len(manager.List()) != 0 {
		t.Error("Expected empty list")
	}

	for _, id := range []string{"a1", "b2", "c3"} {
		manager.Create(id, createTestConfig())
	}

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	ids := make(map[string]bool)
	for _, s := range sessions {
		ids[s.ID] = true
	}
	for _, id := range []string{"a1", "b2", "c3"} {
		if !ids[id] {
			t.Errorf("Expected session %s in list", id)
		}
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager(nil)
	old, _ := manager.Create("old", createTestConfig())
	manager.Create("fresh", createTestConfig())
	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, err := manager.Get("old"); err == nil {
		t.Error("Expected expired session to be removed")
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Errorf("Expected fresh session to remain, got %v", err)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager(nil)
	session, _ := manager.Create("touch", createTestConfig())
	before := time.Now().Add(-time.Minute)
	session.LastAccessedAt = before

	if err := manager.UpdateLastAccessed("TOUCH"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected LastAccessedAt to move forward")
	}
	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_SaveSlots(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(storage.NewMemoryStorage())
	session, _ := manager.Create("saver", createTestConfig())
	saved := session.Engine.SaveState()

	if err := manager.SaveGame("saver", ""); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}
	if err := manager.SaveGame("saver", "later"); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	slots, err := manager.Slots("saver")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(slots, ",") != "default,later" {
		t.Errorf("Expected slots [default later], got %v", slots)
	}

	if _, err := session.Engine.NewGame(ctx, 3); err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if err := manager.LoadGame(ctx, "saver", "default"); err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}

	restored := session.Engine.SaveState()
	if restored.Level != saved.Level {
		t.Errorf("Expected level %d, got %d", saved.Level, restored.Level)
	}
	if len(restored.Positions) != len(saved.Positions) {
		t.Fatalf("Expected %d units, got %d", len(saved.Positions), len(restored.Positions))
	}
	for i := range saved.Positions {
		if restored.Positions[i].Position != saved.Positions[i].Position ||
			restored.Positions[i].Unit.ID != saved.Positions[i].Unit.ID {
			t.Errorf("Unit %d not restored: %+v", i, restored.Positions[i])
		}
	}

	if err := manager.LoadGame(ctx, "saver", "empty"); !errors.Is(err, storage.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for an empty slot, got %v", err)
	}
	if err := manager.SaveGame("missing", "default"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager(nil)
	config := createTestConfig()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := manager.Create("", config); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			manager.List()
			manager.Count()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent create failed: %v", err)
	}
	if manager.Count() != 25 {
		t.Errorf("Expected 25 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(nil)
	first, _ := manager.Create("first", createTestConfig())
	second, _ := manager.Create("second", createTestConfig())

	outcome, err := first.Engine.Click(ctx, firstPlayerCell(t, first.Engine))
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if !outcome.Accepted || outcome.Phase != engine.PhaseUnitSelected {
		t.Fatalf("Expected a selection, got %+v", outcome)
	}

	if second.Engine.Phase() != engine.PhaseIdle {
		t.Errorf("Expected second session to stay idle, got %s", second.Engine.Phase())
	}
}
