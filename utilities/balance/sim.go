// Package balance provides Monte Carlo simulation tools for tuning the
// combat formulas and reward tunables.
package balance

import (
	"github.com/HuntleyOG/eldvar-engine/internal/combat"
	"github.com/HuntleyOG/eldvar-engine/internal/progression"
	"github.com/HuntleyOG/eldvar-engine/internal/settings"
)

// MonsterSpec describes a simulated opponent.
type MonsterSpec struct {
	Name       string
	Level      int
	HP         int
	Attack     int
	Defense    int
	RewardXP   int
	RewardGold int
}

// Outcome is the result of one simulated battle.
type Outcome struct {
	Won        bool
	Rounds     int
	RewardXP   int
	RewardGold int
}

// Summary aggregates outcomes across many simulated battles.
type Summary struct {
	Battles   int
	Wins      int
	AvgRounds float64
	AvgXP     float64
	AvgGold   float64
}

// WinRate returns the fraction of battles won.
func (s Summary) WinRate() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Battles)
}

// maxRounds caps runaway simulations where neither side can land a kill.
const maxRounds = 500

// SimulateBattle runs one battle to completion through the real formula
// engine and returns the outcome.
func SimulateBattle(skillLevel int, m MonsterSpec, style combat.Style, floor int, snap settings.Snapshot, roller combat.Roller) Outcome {
	levels := map[string]int{
		"attack": skillLevel,
		"range":  skillLevel,
		"magic":  skillLevel,
		"health": skillLevel,
	}
	profile := progression.ProfileFromSkills(levels)
	stats := combat.MonsterStats{Level: m.Level, Attack: m.Attack, Defense: m.Defense}
	void := combat.VoidPressure(floor, snap)

	playerHP := profile.HPMax
	monsterHP := m.HP

	for round := 1; round <= maxRounds; round++ {
		strike := combat.ResolvePlayerStrike(profile, stats, style, void, snap, roller)
		monsterHP -= strike.Damage
		if monsterHP <= 0 {
			return Outcome{
				Won:        true,
				Rounds:     round,
				RewardXP:   combat.ScaleReward(m.RewardXP, floor, snap.RewardXPPerFloorPct),
				RewardGold: combat.ScaleReward(m.RewardGold, floor, snap.RewardGoldPerFloorPct),
			}
		}

		counter := combat.ResolveMonsterStrike(stats, profile, void, snap, roller)
		playerHP -= counter.Damage
		if playerHP <= 0 {
			return Outcome{Won: false, Rounds: round}
		}
	}

	return Outcome{Won: false, Rounds: maxRounds}
}

// RunMany simulates n battles and aggregates the outcomes.
func RunMany(n, skillLevel int, m MonsterSpec, style combat.Style, floor int, snap settings.Snapshot, roller combat.Roller) Summary {
	summary := Summary{Battles: n}

	var totalRounds, totalXP, totalGold int
	for i := 0; i < n; i++ {
		outcome := SimulateBattle(skillLevel, m, style, floor, snap, roller)
		totalRounds += outcome.Rounds
		if outcome.Won {
			summary.Wins++
			totalXP += outcome.RewardXP
			totalGold += outcome.RewardGold
		}
	}

	if n > 0 {
		summary.AvgRounds = float64(totalRounds) / float64(n)
	}
	if summary.Wins > 0 {
		summary.AvgXP = float64(totalXP) / float64(summary.Wins)
		summary.AvgGold = float64(totalGold) / float64(summary.Wins)
	}
	return summary
}
