package engine

import "testing"

func TestAttackable(t *testing.T) {
	tests := []struct {
		name     string
		position int
		rng      int
		want     []int
	}{
		{"top-left corner", 0, 1, []int{1, 8, 9}},
		{"right edge does not wrap", 7, 1, []int{6, 14, 15}},
		{"center", 27, 1, []int{18, 19, 20, 26, 28, 34, 35, 36}},
		{"zero range", 27, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCells(t, Attackable(tt.position, tt.rng, 8), tt.want)
		})
	}
}

func TestAttackable_Properties(t *testing.T) {
	for p := 0; p < 64; p++ {
		for r := 1; r <= 4; r++ {
			prevRow := -1
			for _, c := range Attackable(p, r, 8) {
				if c == p {
					t.Fatalf("Attackable(%d, %d) contains the origin", p, r)
				}
				dr := RowOf(c, 8) - RowOf(p, 8)
				dc := ColOf(c, 8) - ColOf(p, 8)
				if dr < -r || dr > r || dc < -r || dc > r {
					t.Fatalf("Attackable(%d, %d) contains %d outside the band", p, r, c)
				}
				if RowOf(c, 8) < prevRow {
					t.Fatalf("Attackable(%d, %d) is not ascending", p, r)
				}
				prevRow = RowOf(c, 8)
			}
		}
	}
}

func TestAttackable_FullBandSize(t *testing.T) {
	if got := len(Attackable(27, 2, 8)); got != 24 {
		t.Errorf("Expected 24 cells for range 2 at the center, got %d", got)
	}
}

func TestInRange(t *testing.T) {
	if !InRange(0, 1, 9, 8) {
		t.Error("Expected diagonal neighbour to be in range 1")
	}
	if InRange(0, 1, 2, 8) {
		t.Error("Expected cell two columns away to be out of range 1")
	}
	if InRange(7, 1, 8, 8) {
		t.Error("Expected no wraparound onto the next row")
	}
}
