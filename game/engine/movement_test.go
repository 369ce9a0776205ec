package engine

import "testing"

func TestReachable_ScenarioC(t *testing.T) {
	got := Reachable(27, 2, Occupancy{}, 8)
	want := []int{9, 11, 13, 18, 19, 20, 25, 26, 28, 29, 34, 35, 36, 41, 43, 45}
	assertCells(t, got, want)
}

func TestReachable_OccupiedDoesNotBlock(t *testing.T) {
	got := Reachable(0, 2, Occupancy{1: true}, 8)
	assertCells(t, got, []int{2, 8, 9, 16, 18})
}

func TestReachable_ZeroRange(t *testing.T) {
	if got := Reachable(27, 0, Occupancy{}, 8); len(got) != 0 {
		t.Errorf("Expected empty set for move range 0, got %v", got)
	}
}

func TestReachable_Properties(t *testing.T) {
	occupied := Occupancy{3: true, 10: true, 27: true, 44: true}
	for p := 0; p < 64; p++ {
		for r := 1; r <= 4; r++ {
			got := Reachable(p, r, occupied, 8)
			if len(got) > 8*r {
				t.Fatalf("Reachable(%d, %d) has %d cells, more than %d", p, r, len(got), 8*r)
			}
			for _, c := range got {
				if c == p {
					t.Fatalf("Reachable(%d, %d) contains the origin", p, r)
				}
				if occupied[c] {
					t.Fatalf("Reachable(%d, %d) contains occupied cell %d", p, r, c)
				}
				if c < 0 || c >= 64 {
					t.Fatalf("Reachable(%d, %d) contains off-board cell %d", p, r, c)
				}
			}
		}
	}
}

func TestOccupancyOf(t *testing.T) {
	units := []*PlacedUnit{
		{Unit: &Unit{}, Position: 4},
		{Unit: &Unit{}, Position: 9},
	}
	occ := OccupancyOf(units)
	if !occ[4] || !occ[9] || len(occ) != 2 {
		t.Errorf("Expected occupancy {4, 9}, got %v", occ)
	}
}
