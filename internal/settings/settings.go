// Package settings provides a typed, per-request view of the engine's
// tunables table. Parsing, defaulting, and clamping happen once here so the
// formula code never touches raw strings.
package settings

import (
	"strconv"
)

// Setting keys as stored in the settings table.
const (
	KeyVoidStepPerFloor       = "void_step_per_floor"
	KeyVoidCapPercent         = "void_cap_percent"
	KeyPlayerAccPenDivisor    = "player_acc_pen_divisor"
	KeyPlayerDmgMinMultiplier = "player_dmg_min_multiplier"
	KeyPlayerDmgDivisor       = "player_dmg_divisor"
	KeyMobDmgDivisor          = "mob_dmg_divisor"
	KeyRewardXPPerFloorPct    = "reward_xp_per_floor_pct"
	KeyRewardGoldPerFloorPct  = "reward_gold_per_floor_pct"
	KeyWinsRequiredPerFloor   = "wins_required_per_floor"
)

// Snapshot is an immutable view of the tunables for one request. Absent or
// non-numeric keys fall back to the defaults; out-of-range values are
// clamped. Callers pass a Snapshot into formula calls rather than reading
// shared state.
type Snapshot struct {
	VoidStepPerFloor       int
	VoidCapPercent         int
	PlayerAccPenDivisor    float64
	PlayerDmgMinMultiplier float64
	PlayerDmgDivisor       float64
	MobDmgDivisor          float64
	RewardXPPerFloorPct    float64
	RewardGoldPerFloorPct  float64
	WinsRequiredPerFloor   int
}

// Defaults returns a Snapshot with every tunable at its default.
func Defaults() Snapshot {
	return Snapshot{
		VoidStepPerFloor:       3,
		VoidCapPercent:         60,
		PlayerAccPenDivisor:    5.0,
		PlayerDmgMinMultiplier: 0.70,
		PlayerDmgDivisor:       200.0,
		MobDmgDivisor:          200.0,
		RewardXPPerFloorPct:    5.0,
		RewardGoldPerFloorPct:  4.0,
		WinsRequiredPerFloor:   3,
	}
}

// FromMap builds a Snapshot from the raw settings table contents.
func FromMap(values map[string]string) Snapshot {
	s := Defaults()
	s.VoidStepPerFloor = intSetting(values, KeyVoidStepPerFloor, s.VoidStepPerFloor, 0, 50)
	s.VoidCapPercent = intSetting(values, KeyVoidCapPercent, s.VoidCapPercent, 0, 100)
	s.PlayerAccPenDivisor = floatSetting(values, KeyPlayerAccPenDivisor, s.PlayerAccPenDivisor, 1, 50)
	s.PlayerDmgMinMultiplier = floatSetting(values, KeyPlayerDmgMinMultiplier, s.PlayerDmgMinMultiplier, 0.1, 1.0)
	s.PlayerDmgDivisor = floatSetting(values, KeyPlayerDmgDivisor, s.PlayerDmgDivisor, 10, 1000)
	s.MobDmgDivisor = floatSetting(values, KeyMobDmgDivisor, s.MobDmgDivisor, 10, 1000)
	s.RewardXPPerFloorPct = floatSetting(values, KeyRewardXPPerFloorPct, s.RewardXPPerFloorPct, 0, 100)
	s.RewardGoldPerFloorPct = floatSetting(values, KeyRewardGoldPerFloorPct, s.RewardGoldPerFloorPct, 0, 100)
	s.WinsRequiredPerFloor = intSetting(values, KeyWinsRequiredPerFloor, s.WinsRequiredPerFloor, 1, 20)
	return s
}

func intSetting(values map[string]string, key string, def, min, max int) int {
	raw, ok := values[key]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func floatSetting(values map[string]string, key string, def, min, max float64) float64 {
	raw, ok := values[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
