package engine

// Relocation is the enemy AI's chosen move
type Relocation struct {
	Mover *PlacedUnit
	To    int
}

// ChooseDefensiveMove picks where a threatened enemy unit relocates.
//
// The defender's free reachable cells are restricted to the rectangle spanned
// by the attacker and the defender, one of four quadrant cases chosen by the
// relative row and column. A random restricted cell wins. With no restricted
// cell the defender moves to any of its reachable cells; if it has none at
// all a random other enemy is moved instead. ok is false when nobody can move.
func ChooseDefensiveMove(defender, attacker *PlacedUnit, enemies []*PlacedUnit, occupied Occupancy, size int, rng RandSource) (Relocation, bool) {
	moves := Reachable(defender.Position, defender.Unit.MoveRange, occupied, size)

	candidates := retreatCells(moves, defender.Position, attacker.Position, size)
	if len(candidates) > 0 {
		return Relocation{Mover: defender, To: candidates[rng.Intn(len(candidates))]}, true
	}

	mover := defender
	if len(moves) == 0 {
		others := make([]*PlacedUnit, 0, len(enemies))
		for _, e := range enemies {
			if e != defender {
				others = append(others, e)
			}
		}
		if len(others) == 0 {
			return Relocation{}, false
		}
		mover = others[rng.Intn(len(others))]
		moves = Reachable(mover.Position, mover.Unit.MoveRange, occupied, size)
	}

	if len(moves) == 0 {
		return Relocation{}, false
	}
	return Relocation{Mover: mover, To: moves[rng.Intn(len(moves))]}, true
}

// retreatCells keeps the moves inside the attacker/defender rectangle
func retreatCells(moves []int, defenderPos, attackerPos, size int) []int {
	dx, dy := ColOf(defenderPos, size), RowOf(defenderPos, size)
	ax, ay := ColOf(attackerPos, size), RowOf(attackerPos, size)

	var colOK, rowOK func(c int) bool
	if ax <= dx {
		colOK = func(c int) bool { return c >= ax && c <= dx }
	} else {
		colOK = func(c int) bool { return c > dx && c <= ax }
	}
	if ay <= dy {
		rowOK = func(r int) bool { return r >= ay && r <= dy }
	} else {
		rowOK = func(r int) bool { return r > dy && r <= ay }
	}

	var out []int
	for _, m := range moves {
		if colOK(ColOf(m, size)) && rowOK(RowOf(m, size)) {
			out = append(out, m)
		}
	}
	return out
}
