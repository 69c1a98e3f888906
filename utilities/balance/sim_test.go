package balance

import (
	"testing"

	"github.com/HuntleyOG/eldvar-engine/internal/combat"
	"github.com/HuntleyOG/eldvar-engine/internal/settings"
)

var testRat = MonsterSpec{
	Name: "Gloom Rat", Level: 1, HP: 10, Attack: 2, Defense: 0,
	RewardXP: 12, RewardGold: 5,
}

func TestSimulateBattle_Terminates(t *testing.T) {
	snap := settings.Defaults()
	roller := combat.NewRoller(1)

	outcome := SimulateBattle(10, testRat, combat.StyleAttack, 1, snap, roller)
	if outcome.Rounds < 1 || outcome.Rounds > maxRounds {
		t.Errorf("Rounds = %d, want 1..%d", outcome.Rounds, maxRounds)
	}
}

func TestSimulateBattle_RewardsOnlyOnWin(t *testing.T) {
	snap := settings.Defaults()

	// A high-level character against a trivial monster wins essentially
	// always over 200 seeded battles.
	roller := combat.NewRoller(7)
	summary := RunMany(200, 50, testRat, combat.StyleAttack, 1, snap, roller)
	if summary.WinRate() < 0.95 {
		t.Errorf("WinRate() = %.2f, want >= 0.95", summary.WinRate())
	}
	if summary.AvgXP == 0 {
		t.Error("AvgXP should be nonzero when battles are won")
	}

	// The reverse matchup loses essentially always.
	brute := MonsterSpec{
		Name: "Depth Warden", Level: 60, HP: 800, Attack: 90, Defense: 40,
		RewardXP: 400, RewardGold: 180,
	}
	summary = RunMany(200, 1, brute, combat.StyleAttack, 1, snap, roller)
	if summary.WinRate() > 0.05 {
		t.Errorf("WinRate() = %.2f, want <= 0.05", summary.WinRate())
	}
}

func TestRunMany_DeeperFloorsPayMore(t *testing.T) {
	snap := settings.Defaults()

	shallow := RunMany(300, 50, testRat, combat.StyleAttack, 1, snap, combat.NewRoller(3))
	deep := RunMany(300, 50, testRat, combat.StyleAttack, 8, snap, combat.NewRoller(3))

	if shallow.Wins == 0 || deep.Wins == 0 {
		t.Fatal("expected wins in both runs")
	}
	if deep.AvgXP <= shallow.AvgXP {
		t.Errorf("deep AvgXP %.1f should exceed shallow %.1f", deep.AvgXP, shallow.AvgXP)
	}
	if deep.AvgGold <= shallow.AvgGold {
		t.Errorf("deep AvgGold %.1f should exceed shallow %.1f", deep.AvgGold, shallow.AvgGold)
	}
}

func TestRunMany_Empty(t *testing.T) {
	summary := RunMany(0, 1, testRat, combat.StyleAttack, 1, settings.Defaults(), combat.NewRoller(1))
	if summary.WinRate() != 0 {
		t.Errorf("WinRate() = %f, want 0", summary.WinRate())
	}
}
