package engine

// Attackable returns the cells a unit at position can target, ascending.
//
// Rows from -attackRange to +attackRange are scanned (clipped to the board);
// in each row the columns col-attackRange..col+attackRange are taken, clipped
// to that row so nothing wraps onto a neighbouring row. The origin is excluded.
func Attackable(position, attackRange, size int) []int {
	if attackRange <= 0 || position < 0 || position >= size*size {
		return []int{}
	}

	row, col := RowOf(position, size), ColOf(position, size)
	cells := make([]int, 0, (2*attackRange+1)*(2*attackRange+1)-1)

	for r := row - attackRange; r <= row+attackRange; r++ {
		if r < 0 || r >= size {
			continue
		}
		for c := col - attackRange; c <= col+attackRange; c++ {
			if c < 0 || c >= size {
				continue
			}
			idx := IndexOf(r, c, size)
			if idx == position {
				continue
			}
			cells = append(cells, idx)
		}
	}

	return cells
}

// InRange reports whether target lies in the attackable set of position
func InRange(position, attackRange, target, size int) bool {
	for _, idx := range Attackable(position, attackRange, size) {
		if idx == target {
			return true
		}
	}
	return false
}
