package progression

import "testing"

func TestThresholds_KnownValues(t *testing.T) {
	thresholds := Thresholds(MaxLevel)

	tests := []struct {
		level, want int
	}{
		{1, 83}, // computed but never consulted by LevelFromXP
		{2, 174},
		{3, 276},
		{4, 388},
		{5, 512},
		{10, 1358},
		{20, 5018},
		{30, 14833},
		{50, 111945},
		{92, 7195629},
		{99, 14391160},
	}

	for _, tc := range tests {
		if got := thresholds[tc.level]; got != tc.want {
			t.Errorf("Thresholds()[%d] = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestThresholds_StrictlyIncreasing(t *testing.T) {
	thresholds := Thresholds(MaxLevel)
	for lvl := 3; lvl <= MaxLevel; lvl++ {
		if thresholds[lvl] <= thresholds[lvl-1] {
			t.Errorf("thresholds not increasing at level %d: %d <= %d",
				lvl, thresholds[lvl], thresholds[lvl-1])
		}
	}
}

func TestLevelFromXP(t *testing.T) {
	thresholds := Thresholds(MaxLevel)

	tests := []struct {
		xp, want int
	}{
		{0, 1},
		{83, 1},  // T[1] is not a level boundary
		{173, 1}, // one below T[2]
		{174, 2},
		{275, 2},
		{276, 3},
		{1357, 9},
		{1358, 10},
		{111945, 50},
		{14391159, 98},
		{14391160, 99},
		{999999999, 99},
	}

	for _, tc := range tests {
		if got := LevelFromXP(tc.xp, thresholds); got != tc.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestLevelFromXP_Monotonic(t *testing.T) {
	thresholds := Thresholds(MaxLevel)

	prev := 0
	for xp := 0; xp < 200000; xp += 37 {
		level := LevelFromXP(xp, thresholds)
		if level < prev {
			t.Fatalf("LevelFromXP not monotonic: xp=%d level=%d prev=%d", xp, level, prev)
		}
		if level > MaxLevel {
			t.Fatalf("LevelFromXP(%d) = %d exceeds max level", xp, level)
		}
		prev = level
	}
}
