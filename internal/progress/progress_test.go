package progress

import "testing"

func TestCompleteUnlocksNext(t *testing.T) {
	p := New(3)

	if !p.Unlocked(0) || p.Unlocked(1) {
		t.Fatal("only the first level should be unlocked")
	}

	if !p.Complete(0, 5000) {
		t.Error("first clear should be a best time")
	}
	if p.MaxLevel != 1 {
		t.Errorf("MaxLevel = %d, want 1", p.MaxLevel)
	}

	// Replaying an earlier level does not unlock further.
	p.Complete(0, 4000)
	if p.MaxLevel != 1 {
		t.Errorf("MaxLevel = %d, want 1", p.MaxLevel)
	}

	p.Complete(1, 1000)
	p.Complete(2, 1000)
	if p.MaxLevel != 2 {
		t.Errorf("MaxLevel = %d, want 2 (capped at last level)", p.MaxLevel)
	}
}

func TestCompleteBestTimes(t *testing.T) {
	testCases := []struct {
		name     string
		existing int
		millis   int
		best     bool
		want     int
	}{
		{"first time", 0, 3000, true, 3000},
		{"faster", 3000, 2500, true, 2500},
		{"slower", 3000, 3500, false, 3000},
		{"equal", 3000, 3000, false, 3000},
		{"zero counts as one", 0, 0, true, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(2)
			p.BestTimes[0] = tc.existing

			if got := p.Complete(0, tc.millis); got != tc.best {
				t.Errorf("Complete = %v, want %v", got, tc.best)
			}
			if p.BestTimes[0] != tc.want {
				t.Errorf("BestTimes[0] = %d, want %d", p.BestTimes[0], tc.want)
			}
		})
	}
}

func TestCompleteOutOfRange(t *testing.T) {
	p := New(2)
	if p.Complete(5, 100) || p.Complete(-1, 100) {
		t.Error("out-of-range level should not record")
	}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name      string
		in        Progress
		count     int
		wantMax   int
		wantTimes int
	}{
		{"empty grows", Progress{}, 4, 0, 4},
		{"timed max unlocks next", Progress{BestTimes: []int{100, 0, 0}, MaxLevel: 0}, 3, 1, 3},
		{"untimed max stays", Progress{BestTimes: []int{100, 0, 0}, MaxLevel: 1}, 3, 1, 3},
		{"last level stays", Progress{BestTimes: []int{1, 1, 1}, MaxLevel: 2}, 3, 2, 3},
		{"too high clamps", Progress{BestTimes: []int{0, 0}, MaxLevel: 9}, 2, 1, 2},
		{"truncates", Progress{BestTimes: []int{1, 2, 3, 4}, MaxLevel: 1}, 2, 1, 2},
		{"negative", Progress{BestTimes: []int{0}, MaxLevel: -3}, 1, 0, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Normalize(tc.count)
			if p.MaxLevel != tc.wantMax {
				t.Errorf("MaxLevel = %d, want %d", p.MaxLevel, tc.wantMax)
			}
			if len(p.BestTimes) != tc.wantTimes {
				t.Errorf("len(BestTimes) = %d, want %d", len(p.BestTimes), tc.wantTimes)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	p := &Progress{BestTimes: []int{1000, 0, 2500}}
	if p.Cleared() != 2 {
		t.Errorf("Cleared = %d, want 2", p.Cleared())
	}
	if p.Total() != 3500 {
		t.Errorf("Total = %d, want 3500", p.Total())
	}
}

func TestFormatTime(t *testing.T) {
	testCases := []struct {
		ms   int
		want string
	}{
		{0, "-"},
		{5, "0.005"},
		{1000, "1.000"},
		{12345, "12.345"},
		{61020, "61.020"},
	}

	for _, tc := range testCases {
		if got := FormatTime(tc.ms); got != tc.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}
