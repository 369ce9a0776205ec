package service_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/service"
	"github.com/wricardo/retro-tactics/game/storage"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	store    storage.Storage
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		store:    storage.NewMemoryStorage(),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	events := engine.NewEventLog()
	eng, err := engine.NewEngine(config,
		engine.WithRenderer(events),
		engine.WithNotifier(events),
		engine.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Events:         events,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.Touch()
		return nil
	}
	return service.ErrSessionNotFound
}

func (m *MockSessionManager) SaveGame(id, slot string) error {
	session, exists := m.sessions[id]
	if !exists {
		return service.ErrSessionNotFound
	}
	session.Lock()
	state := session.Engine.SaveState()
	session.Unlock()
	return storage.NewStateService(m.store, id+"/"+slot).Save(state)
}

func (m *MockSessionManager) LoadGame(ctx context.Context, id, slot string) error {
	session, exists := m.sessions[id]
	if !exists {
		return service.ErrSessionNotFound
	}
	state, err := storage.NewStateService(m.store, id+"/"+slot).Load()
	if err != nil {
		return err
	}
	session.Lock()
	defer session.Unlock()
	return session.Engine.Restore(ctx, state)
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := engine.DefaultGameConfig()
	defaultConfig.Name = "test"

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"test":    defaultConfig,
			"default": defaultConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("config not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			BoardSize:   config.BoardSize,
			Levels:      config.FinalLevel(),
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["default"]
}

func newTestService(t *testing.T) (service.GameService, *service.SessionInfo) {
	t.Helper()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())
	info, err := svc.CreateSession(context.Background(), "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, info
}

func firstUnit(state *engine.Snapshot, side engine.Side) engine.UnitView {
	for _, u := range state.Units {
		if u.Side == side {
			return u
		}
	}
	return engine.UnitView{}
}

// Test cases

func TestGameService_CreateSession(t *testing.T) {
	svc, info := newTestService(t)

	if info.ID == "" {
		t.Error("Expected session ID")
	}
	if info.ConfigName != "test" {
		t.Errorf("Expected config name test, got %s", info.ConfigName)
	}
	if info.GameState == nil || info.GameState.Phase != engine.PhaseIdle || len(info.GameState.Units) != 4 {
		t.Errorf("Unexpected initial state %+v", info.GameState)
	}

	if _, err := svc.CreateSession(context.Background(), "nonexistent"); err == nil {
		t.Error("Expected error for an unknown config")
	}

	defaultInfo, err := svc.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to create default session: %v", err)
	}
	if defaultInfo.ConfigName != "test" && defaultInfo.ConfigName != "default" {
		t.Errorf("Expected the default config, got %s", defaultInfo.ConfigName)
	}
}

func TestGameService_Click(t *testing.T) {
	svc, info := newTestService(t)
	ctx := context.Background()

	hero := firstUnit(info.GameState, engine.Player)
	result, err := svc.Click(ctx, info.ID, hero.Position)
	if err != nil {
		t.Fatalf("Click returned error: %v", err)
	}
	if !result.Success || result.GameState.Phase != engine.PhaseUnitSelected {
		t.Errorf("Expected selection, got %+v", result.Outcome)
	}
	if result.GameState.Selected == nil || result.GameState.Selected.UnitID != hero.UnitID {
		t.Error("Expected the clicked unit to be selected")
	}
	if len(result.Events) == 0 || result.Events[0].Type != engine.EventSelect {
		t.Errorf("Expected a select event, got %+v", result.Events)
	}

	foe := firstUnit(info.GameState, engine.Enemy)
	result, err = svc.Click(ctx, info.ID, foe.Position)
	if err != nil {
		t.Fatalf("Click returned error: %v", err)
	}
	if result.Success || result.Message != engine.MsgInvalidAction {
		t.Errorf("Expected rejected invalid action, got %+v", result)
	}

	if _, err := svc.Click(ctx, info.ID, 1000); !errors.Is(err, engine.ErrInvalidIndex) {
		t.Errorf("Expected ErrInvalidIndex, got %v", err)
	}
	if _, err := svc.Click(ctx, "missing", 0); !errors.Is(err, service.ErrSessionNotFound) {
		t.Error("Expected error for a missing session")
	}
}

func TestGameService_HoverAndLeave(t *testing.T) {
	svc, info := newTestService(t)
	ctx := context.Background()

	hero := firstUnit(info.GameState, engine.Player)
	hover, err := svc.Hover(ctx, info.ID, hero.Position)
	if err != nil {
		t.Fatalf("Hover returned error: %v", err)
	}
	want := engine.FormatUnitInfo(hero.Stats.Level, hero.Stats.Attack, hero.Stats.Defence, hero.Stats.Health)
	if hover.Info.Tooltip != want {
		t.Errorf("Expected tooltip %q, got %q", want, hover.Info.Tooltip)
	}
	if len(hover.Events) != 1 || hover.Events[0].Type != engine.EventShowTooltip {
		t.Errorf("Expected one show_tooltip event, got %+v", hover.Events)
	}

	result, err := svc.Leave(ctx, info.ID, hero.Position)
	if err != nil {
		t.Fatalf("Leave returned error: %v", err)
	}
	if !result.Success || result.Outcome != nil {
		t.Errorf("Expected a successful leave without outcome, got %+v", result)
	}
}

func TestGameService_AcknowledgeWithoutPending(t *testing.T) {
	svc, info := newTestService(t)
	if _, err := svc.Acknowledge(context.Background(), info.ID); !errors.Is(err, engine.ErrNoPendingAck) {
		t.Errorf("Expected ErrNoPendingAck, got %v", err)
	}
}

func TestGameService_CancelAndNewGame(t *testing.T) {
	svc, info := newTestService(t)
	ctx := context.Background()

	result, err := svc.Cancel(ctx, info.ID)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if len(result.GameState.Units) != 0 || result.GameState.Level != 1 {
		t.Errorf("Expected an empty level 1 board, got %+v", result.GameState)
	}

	result, err = svc.NewGame(ctx, info.ID, 0)
	if err != nil {
		t.Fatalf("NewGame returned error: %v", err)
	}
	if len(result.GameState.Units) != 4 || result.GameState.Level != 1 {
		t.Errorf("Expected a fresh level 1 board, got %+v", result.GameState)
	}

	if _, err := svc.NewGame(ctx, info.ID, 9); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestGameService_SaveAndLoad(t *testing.T) {
	svc, info := newTestService(t)
	ctx := context.Background()

	result, err := svc.LoadGame(ctx, info.ID, "")
	if err != nil {
		t.Fatalf("LoadGame returned error: %v", err)
	}
	if result.Success || result.Message != service.MsgNoSavedGames {
		t.Errorf("Expected no saved games, got %+v", result)
	}

	saved, err := svc.SaveGame(ctx, info.ID, "slot1")
	if err != nil {
		t.Fatalf("SaveGame returned error: %v", err)
	}
	if !saved.Success || saved.Message != service.MsgGameSaved {
		t.Errorf("Unexpected save result %+v", saved)
	}

	if _, err := svc.Cancel(ctx, info.ID); err != nil {
		t.Fatal(err)
	}

	loaded, err := svc.LoadGame(ctx, info.ID, "slot1")
	if err != nil {
		t.Fatalf("LoadGame returned error: %v", err)
	}
	if !loaded.Success || loaded.Message != service.MsgGameLoaded {
		t.Errorf("Unexpected load result %+v", loaded)
	}
	if len(loaded.GameState.Units) != len(info.GameState.Units) {
		t.Errorf("Expected %d units restored, got %d", len(info.GameState.Units), len(loaded.GameState.Units))
	}
	for i, u := range info.GameState.Units {
		if loaded.GameState.Units[i].Position != u.Position || loaded.GameState.Units[i].UnitID != u.UnitID {
			t.Errorf("Unit %d not restored: %+v", i, loaded.GameState.Units[i])
		}
	}
}

func TestGameService_ListSessions(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.CreateSession(context.Background(), "test"); err != nil {
		t.Fatal(err)
	}

	sessions, err := svc.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}
}

func TestGameService_GetGameState(t *testing.T) {
	svc, info := newTestService(t)
	state, err := svc.GetGameState(context.Background(), info.ID)
	if err != nil {
		t.Fatalf("GetGameState returned error: %v", err)
	}
	if state.ConfigName != "test" || state.BoardSize != 8 || state.FinalLevel != 4 {
		t.Errorf("Unexpected state %+v", state)
	}

	if err := svc.DeleteSession(context.Background(), info.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetGameState(context.Background(), info.ID); err == nil {
		t.Error("Expected error after delete")
	}
}
