package combat

import (
	"math"

	"github.com/HuntleyOG/eldvar-engine/internal/settings"
)

// Profile holds a character's derived combat stats. It is computed from
// skill levels per action and never stored.
type Profile struct {
	Attack      int
	Strength    int
	Defense     int
	Magic       int
	Range       int
	HPMax       int
	MeleePower  int
	RangedPower int
	MagicPower  int
}

// MonsterStats is the slice of a monster definition the formulas need.
type MonsterStats struct {
	Level   int
	Attack  int
	Defense int
}

// Strike is the outcome of one resolved attack.
type Strike struct {
	Hit    bool
	Roll   int
	Damage int
}

// VoidPressure returns the difficulty modifier for a floor, in percentage
// points: min(cap, floor * step). Fixed once per battle at creation.
func VoidPressure(floor int, s settings.Snapshot) int {
	if floor < 0 {
		floor = 0
	}
	void := floor * s.VoidStepPerFloor
	if void > s.VoidCapPercent {
		return s.VoidCapPercent
	}
	return void
}

// AccuracyPenalty returns the void-derived hit chance penalty for the
// player, in percentage points.
func AccuracyPenalty(void int, s settings.Snapshot) float64 {
	return float64(void) / s.PlayerAccPenDivisor
}

// PlayerDamageMultiplier returns the void-derived damage multiplier applied
// to player strikes, floored at the configured minimum.
func PlayerDamageMultiplier(void int, s settings.Snapshot) float64 {
	mult := 1 - float64(void)/s.PlayerDmgDivisor
	if mult < s.PlayerDmgMinMultiplier {
		return s.PlayerDmgMinMultiplier
	}
	return mult
}

// MonsterDamageMultiplier returns the void-derived damage boost applied to
// monster strikes.
func MonsterDamageMultiplier(void int, s settings.Snapshot) float64 {
	return 1 + float64(void)/s.MobDmgDivisor
}

// ResolvePlayerStrike resolves one player attack against a monster.
func ResolvePlayerStrike(p Profile, m MonsterStats, style Style, void int, s settings.Snapshot, r Roller) Strike {
	evasion := m.Level + m.Defense
	baseHit := clampInt(70+(p.Attack-evasion), 35, 95)

	threshold := int(math.Round(float64(baseHit) - AccuracyPenalty(void, s)))
	if threshold < 5 {
		threshold = 5
	}

	roll := r.Percent()
	strike := Strike{Roll: roll, Hit: roll <= threshold}
	if !strike.Hit {
		return strike
	}

	power := style.Power(p)
	spread := int(math.Ceil(float64(power) * 0.5))
	raw := int(math.Ceil(float64(power)*0.6 + float64(r.Between(spread))))
	raw = int(math.Ceil(float64(raw) * PlayerDamageMultiplier(void, s)))

	mitigation := m.Defense * 35 / 100
	strike.Damage = raw - mitigation
	if strike.Damage < 0 {
		strike.Damage = 0
	}
	return strike
}

// ResolveMonsterStrike resolves one monster attack against the player. The
// monster side carries no explicit accuracy penalty; void pressure only
// boosts its damage.
func ResolveMonsterStrike(m MonsterStats, p Profile, void int, s settings.Snapshot, r Roller) Strike {
	baseHit := clampInt(65+(m.Level-p.Defense), 30, 90)

	roll := r.Percent()
	strike := Strike{Roll: roll, Hit: roll <= baseHit}
	if !strike.Hit {
		return strike
	}

	spread := int(math.Ceil(float64(m.Attack) * 0.5))
	raw := int(math.Ceil(float64(m.Attack)*0.6 + float64(r.Between(spread))))
	raw = int(math.Ceil(float64(raw) * MonsterDamageMultiplier(void, s)))

	mitigation := p.Defense * 35 / 100
	strike.Damage = raw - mitigation
	if strike.Damage < 0 {
		strike.Damage = 0
	}
	return strike
}

// ScaleReward grows a base reward by pct percent per floor past the first.
// Floor 1 yields the unscaled base.
func ScaleReward(base, floor int, pct float64) int {
	depth := floor - 1
	if depth < 0 {
		depth = 0
	}
	return int(math.Round(float64(base) * (1 + (pct/100)*float64(depth))))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
