package engine

import "sort"

// Occupancy is the set of occupied cell indexes
type Occupancy map[int]bool

// compass lists the 8 probe directions as row/col deltas
var compass = []struct{ dr, dc int }{
	{-1, 0},  // North
	{-1, 1},  // North-East
	{0, 1},   // East
	{1, 1},   // South-East
	{1, 0},   // South
	{1, -1},  // South-West
	{0, -1},  // West
	{-1, -1}, // North-West
}

// Reachable returns the free cells a unit at position can move to, ascending.
//
// For each step 1..moveRange every compass direction is probed. Occupied
// cells are not destinations but do not block farther probes along the same
// line. The origin is never included.
func Reachable(position, moveRange int, occupied Occupancy, size int) []int {
	if moveRange <= 0 || position < 0 || position >= size*size {
		return []int{}
	}

	row, col := RowOf(position, size), ColOf(position, size)
	seen := make(map[int]bool)

	for step := 1; step <= moveRange; step++ {
		for _, dir := range compass {
			r, c := row+dir.dr*step, col+dir.dc*step
			if !InBounds(r, c, size) {
				continue
			}
			idx := IndexOf(r, c, size)
			if occupied[idx] {
				continue
			}
			seen[idx] = true
		}
	}

	return sortedCells(seen)
}

// OccupancyOf builds the occupancy set of the given placements
func OccupancyOf(units []*PlacedUnit) Occupancy {
	occ := make(Occupancy, len(units))
	for _, u := range units {
		occ[u.Position] = true
	}
	return occ
}

func sortedCells(set map[int]bool) []int {
	cells := make([]int, 0, len(set))
	for idx := range set {
		cells = append(cells, idx)
	}
	sort.Ints(cells)
	return cells
}
