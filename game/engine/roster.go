package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrCharacterExists = errors.New("character already exists")
	ErrNoCharacters    = errors.New("no characters provided")
)

// RandSource is the pluggable random source used by generation and the AI.
// *math/rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// NewUnit instantiates a unit from an archetype record
func NewUnit(a Archetype, level int) (*Unit, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: level must be >= 1, got %d", ErrInvalidArgument, level)
	}
	return &Unit{
		ID:          uuid.NewString(),
		Type:        a.Name,
		Side:        a.Side,
		Level:       level,
		Attack:      a.Attack,
		Defence:     a.Defence,
		Health:      BaseHealth,
		MoveRange:   a.MoveRange,
		AttackRange: a.AttackRange,
	}, nil
}

// NewPlacedUnit binds a unit to a position on a size×size board
func NewPlacedUnit(unit *Unit, position, size int) (*PlacedUnit, error) {
	if unit == nil {
		return nil, ErrInvalidUnit
	}
	if position < 0 || position >= size*size {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, position)
	}
	return &PlacedUnit{Unit: unit, Position: position}, nil
}

// Roster is a de-duplicated collection of units. Uniqueness is by identity:
// two units with equal stats are still distinct members.
type Roster struct {
	units  []*Unit
	member map[*Unit]struct{}
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{member: make(map[*Unit]struct{})}
}

// Add inserts a unit, failing with ErrCharacterExists on a duplicate
func (r *Roster) Add(u *Unit) error {
	if u == nil {
		return ErrInvalidUnit
	}
	if _, ok := r.member[u]; ok {
		return ErrCharacterExists
	}
	r.member[u] = struct{}{}
	r.units = append(r.units, u)
	return nil
}

// AddAll inserts several units, skipping duplicates. An empty batch fails
// with ErrNoCharacters; any other insertion error aborts the batch.
func (r *Roster) AddAll(units ...*Unit) error {
	if len(units) == 0 {
		return ErrNoCharacters
	}
	for _, u := range units {
		if err := r.Add(u); err != nil && !errors.Is(err, ErrCharacterExists) {
			return err
		}
	}
	return nil
}

// Has reports membership
func (r *Roster) Has(u *Unit) bool {
	_, ok := r.member[u]
	return ok
}

// Len returns the number of members
func (r *Roster) Len() int {
	return len(r.units)
}

// Units returns the members as a slice
func (r *Roster) Units() []*Unit {
	out := make([]*Unit, len(r.units))
	copy(out, r.units)
	return out
}

// GenerateRoster builds count units, each with a uniformly random archetype
// from archetypes and a uniformly random level in [1, maxLevel].
func GenerateRoster(archetypes []Archetype, maxLevel, count int, rng RandSource) (*Roster, error) {
	if len(archetypes) == 0 {
		return nil, fmt.Errorf("%w: archetype list is empty", ErrInvalidArgument)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, count)
	}
	if maxLevel < 1 {
		return nil, fmt.Errorf("%w: max level must be >= 1, got %d", ErrInvalidArgument, maxLevel)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidArgument)
	}

	roster := NewRoster()
	for i := 0; i < count; i++ {
		archetype := archetypes[rng.Intn(len(archetypes))]
		level := rng.Intn(maxLevel) + 1

		unit, err := NewUnit(archetype, level)
		if err != nil {
			return nil, err
		}
		if err := roster.Add(unit); err != nil {
			return nil, err
		}
	}

	return roster, nil
}
