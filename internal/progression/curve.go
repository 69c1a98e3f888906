// Package progression implements the XP level curve and the transactional
// per-skill XP ledger.
package progression

import "math"

// MaxLevel is the skill level cap.
const MaxLevel = 99

// Thresholds builds the XP threshold table for levels 1..maxLevel using a
// running accumulator. Every step floors: the per-level term and the final
// division by 4 are both integer truncations, so two implementations of
// this curve agree exactly.
//
// The returned slice is indexed by level; index 0 is unused. T[1] is
// computed for completeness but never consulted by LevelFromXP, since
// level 1 is the implicit floor, reached at 0 xp.
func Thresholds(maxLevel int) []int {
	t := make([]int, maxLevel+1)
	points := 0
	for lvl := 1; lvl <= maxLevel; lvl++ {
		points += int(math.Floor(float64(lvl) + 300*math.Pow(2, float64(lvl)/7.0)))
		t[lvl] = points / 4
	}
	return t
}

// LevelFromXP returns the level for a given xp total against a threshold
// table. The scan starts at level 2 and keeps the highest level whose
// threshold is met, stopping at the first miss (the table is monotonic for
// levels >= 2).
func LevelFromXP(xp int, thresholds []int) int {
	level := 1
	for i := 2; i < len(thresholds); i++ {
		if xp < thresholds[i] {
			break
		}
		level = i
	}
	return level
}
