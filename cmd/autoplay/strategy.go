package main

import (
	"github.com/wricardo/retro-tactics/game/engine"
)

// Strategy picks the next cell to click from a snapshot.
//
// With nothing selected it selects the next player unit in rotation. With a
// unit selected it attacks the weakest enemy in range, otherwise moves to
// the reachable cell closest to any enemy, otherwise hands the turn to the
// next unit.
type Strategy struct {
	rng  engine.RandSource
	turn int
}

func NewStrategy(rng engine.RandSource) *Strategy {
	return &Strategy{rng: rng}
}

// Next returns the cell to click; ok is false when no click can make progress
func (s *Strategy) Next(state *engine.Snapshot) (int, bool) {
	if state == nil || state.AwaitingAck || len(state.Units) == 0 {
		return 0, false
	}

	players, enemies := split(state.Units)
	if len(players) == 0 || len(enemies) == 0 {
		return 0, false
	}

	if state.Selected == nil {
		return players[s.turn%len(players)].Position, true
	}

	if target, ok := weakestTarget(enemies, state.Attackable); ok {
		s.turn++
		return target, true
	}

	if cell, ok := s.closestApproach(state, enemies); ok {
		s.turn++
		return cell, true
	}

	// Stuck: select another unit
	s.turn++
	next := players[s.turn%len(players)]
	if next.Position == state.Selected.Position && len(players) == 1 {
		return 0, false
	}
	return next.Position, true
}

// Reset restarts the unit rotation
func (s *Strategy) Reset() {
	s.turn = 0
}

func split(units []engine.UnitView) (players, enemies []engine.UnitView) {
	for _, u := range units {
		if u.Side == engine.Player {
			players = append(players, u)
		} else {
			enemies = append(enemies, u)
		}
	}
	return players, enemies
}

func weakestTarget(enemies []engine.UnitView, attackable []int) (int, bool) {
	inRange := make(map[int]bool, len(attackable))
	for _, idx := range attackable {
		inRange[idx] = true
	}

	best, found := engine.UnitView{}, false
	for _, e := range enemies {
		if !inRange[e.Position] {
			continue
		}
		if !found || e.Stats.Health < best.Stats.Health {
			best, found = e, true
		}
	}
	return best.Position, found
}

// closestApproach picks the reachable cell with the smallest king-move
// distance to any enemy, breaking ties at random
func (s *Strategy) closestApproach(state *engine.Snapshot, enemies []engine.UnitView) (int, bool) {
	size := state.BoardSize
	var best []int
	bestDist := -1

	for _, cell := range state.Reachable {
		d := nearest(cell, enemies, size)
		switch {
		case bestDist < 0 || d < bestDist:
			best, bestDist = []int{cell}, d
		case d == bestDist:
			best = append(best, cell)
		}
	}

	if len(best) == 0 {
		return 0, false
	}
	current := nearest(state.Selected.Position, enemies, size)
	if bestDist >= current {
		return 0, false
	}
	return best[s.rng.Intn(len(best))], true
}

func nearest(cell int, enemies []engine.UnitView, size int) int {
	best := -1
	for _, e := range enemies {
		if d := chebyshev(cell, e.Position, size); best < 0 || d < best {
			best = d
		}
	}
	return best
}

func chebyshev(a, b, size int) int {
	dr := abs(engine.RowOf(a, size) - engine.RowOf(b, size))
	dc := abs(engine.ColOf(a, size) - engine.ColOf(b, size))
	if dr > dc {
		return dr
	}
	return dc
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
