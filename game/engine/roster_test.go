package engine

import (
	"errors"
	"math/rand"
	"testing"
)

// scriptedRand replays a fixed sequence of draws, cycling when exhausted
type scriptedRand struct {
	draws []int
	next  int
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v % n
}

func zeroRand() *scriptedRand {
	return &scriptedRand{}
}

func TestNewUnit(t *testing.T) {
	a := Archetype{Name: "bowman", Side: Player, Attack: 25, Defence: 25, MoveRange: 2, AttackRange: 2}
	u, err := NewUnit(a, 3)
	if err != nil {
		t.Fatalf("NewUnit returned error: %v", err)
	}
	if u.ID == "" {
		t.Error("Expected unit to get an ID")
	}
	if u.Type != "bowman" || u.Side != Player || u.Level != 3 || u.Health != BaseHealth {
		t.Errorf("Unexpected unit %+v", u)
	}
	if _, err := NewUnit(a, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for level 0, got %v", err)
	}
}

func TestNewPlacedUnit(t *testing.T) {
	u := &Unit{Type: "undead", Side: Enemy}
	if _, err := NewPlacedUnit(u, 64, 8); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Expected ErrInvalidIndex, got %v", err)
	}
	if _, err := NewPlacedUnit(nil, 0, 8); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("Expected ErrInvalidUnit, got %v", err)
	}
	p, err := NewPlacedUnit(u, 63, 8)
	if err != nil {
		t.Fatalf("NewPlacedUnit returned error: %v", err)
	}
	if p.Side() != Enemy || p.Position != 63 {
		t.Errorf("Unexpected placement %+v", p)
	}
}

func TestRoster_AddDuplicate(t *testing.T) {
	r := NewRoster()
	u := &Unit{Type: "swordsman"}
	if err := r.Add(u); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := r.Add(u); !errors.Is(err, ErrCharacterExists) {
		t.Errorf("Expected ErrCharacterExists, got %v", err)
	}
	if err := r.Add(nil); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("Expected ErrInvalidUnit, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 member, got %d", r.Len())
	}
}

func TestRoster_IdentityNotStats(t *testing.T) {
	r := NewRoster()
	a := &Unit{Type: "bowman", Attack: 25}
	b := &Unit{Type: "bowman", Attack: 25}
	if err := r.AddAll(a, b); err != nil {
		t.Fatalf("AddAll returned error: %v", err)
	}
	if r.Len() != 2 || !r.Has(a) || !r.Has(b) {
		t.Errorf("Expected both equal-stat units as members, got %d", r.Len())
	}
}

func TestRoster_AddAll(t *testing.T) {
	r := NewRoster()
	if err := r.AddAll(); !errors.Is(err, ErrNoCharacters) {
		t.Errorf("Expected ErrNoCharacters for an empty batch, got %v", err)
	}

	u := &Unit{Type: "magician"}
	if err := r.Add(u); err != nil {
		t.Fatal(err)
	}
	v := &Unit{Type: "swordsman"}
	if err := r.AddAll(u, v, v); err != nil {
		t.Errorf("Expected duplicates to be skipped, got %v", err)
	}
	if r.Len() != 2 {
		t.Errorf("Expected 2 members, got %d", r.Len())
	}

	if err := r.AddAll(nil); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("Expected ErrInvalidUnit to abort the batch, got %v", err)
	}
}

func TestGenerateRoster(t *testing.T) {
	archetypes := DefaultGameConfig().EnemyArchetypes
	rng := rand.New(rand.NewSource(42))

	for _, tt := range []struct{ maxLevel, count int }{{1, 1}, {2, 5}, {4, 12}} {
		roster, err := GenerateRoster(archetypes, tt.maxLevel, tt.count, rng)
		if err != nil {
			t.Fatalf("GenerateRoster returned error: %v", err)
		}
		if roster.Len() != tt.count {
			t.Fatalf("Expected %d units, got %d", tt.count, roster.Len())
		}
		ids := make(map[string]bool)
		for _, u := range roster.Units() {
			if u.Level < 1 || u.Level > tt.maxLevel {
				t.Errorf("Unit level %d outside [1, %d]", u.Level, tt.maxLevel)
			}
			if u.Side != Enemy {
				t.Errorf("Expected enemy unit, got %s", u.Side)
			}
			ids[u.ID] = true
		}
		if len(ids) != tt.count {
			t.Errorf("Expected %d distinct IDs, got %d", tt.count, len(ids))
		}
	}
}

func TestGenerateRoster_Deterministic(t *testing.T) {
	archetypes := DefaultGameConfig().PlayerArchetypes
	rng := &scriptedRand{draws: []int{2, 0, 1, 1}}

	roster, err := GenerateRoster(archetypes, 3, 2, rng)
	if err != nil {
		t.Fatal(err)
	}
	units := roster.Units()
	if units[0].Type != "magician" || units[0].Level != 1 {
		t.Errorf("Expected level 1 magician, got level %d %s", units[0].Level, units[0].Type)
	}
	if units[1].Type != "bowman" || units[1].Level != 2 {
		t.Errorf("Expected level 2 bowman, got level %d %s", units[1].Level, units[1].Type)
	}
}

func TestGenerateRoster_InvalidArguments(t *testing.T) {
	archetypes := DefaultGameConfig().PlayerArchetypes
	tests := []struct {
		name       string
		archetypes []Archetype
		maxLevel   int
		count      int
	}{
		{"empty archetypes", nil, 1, 2},
		{"zero count", archetypes, 1, 0},
		{"negative count", archetypes, 1, -1},
		{"zero max level", archetypes, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateRoster(tt.archetypes, tt.maxLevel, tt.count, zeroRand())
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}
