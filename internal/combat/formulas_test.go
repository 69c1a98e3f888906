package combat

import (
	"testing"

	"github.com/HuntleyOG/eldvar-engine/internal/settings"
)

// scriptRoller returns scripted rolls in order, then repeats its last value.
type scriptRoller struct {
	percents []int
	betweens []int
}

func (r *scriptRoller) Percent() int {
	if len(r.percents) == 0 {
		return 1
	}
	v := r.percents[0]
	if len(r.percents) > 1 {
		r.percents = r.percents[1:]
	}
	return v
}

func (r *scriptRoller) Between(n int) int {
	if len(r.betweens) == 0 || n <= 0 {
		return 0
	}
	v := r.betweens[0]
	if len(r.betweens) > 1 {
		r.betweens = r.betweens[1:]
	}
	if v > n {
		return n
	}
	return v
}

func TestVoidPressure(t *testing.T) {
	snap := settings.Defaults() // step 3, cap 60

	tests := []struct {
		floor, want int
	}{
		{0, 0},
		{1, 3},
		{10, 30},
		{20, 60},
		{25, 60}, // 75 capped to 60
		{100, 60},
	}

	for _, tc := range tests {
		if got := VoidPressure(tc.floor, snap); got != tc.want {
			t.Errorf("VoidPressure(%d) = %d, want %d", tc.floor, got, tc.want)
		}
	}
}

func TestVoidPressure_Monotonic(t *testing.T) {
	snap := settings.Defaults()
	prev := 0
	for floor := 0; floor <= 100; floor++ {
		void := VoidPressure(floor, snap)
		if void < prev {
			t.Fatalf("void decreased at floor %d: %d < %d", floor, void, prev)
		}
		if void < 0 || void > snap.VoidCapPercent {
			t.Fatalf("void out of range at floor %d: %d", floor, void)
		}
		prev = void
	}
}

func TestScaleReward(t *testing.T) {
	tests := []struct {
		base, floor int
		pct         float64
		want        int
	}{
		{10, 1, 5.0, 10},  // floor 1 is always the unscaled base
		{10, 11, 5.0, 15}, // 10 * (1 + 0.05*10)
		{10, 2, 5.0, 11},  // rounded up from 10.5
		{100, 1, 4.0, 100},
		{100, 11, 4.0, 140},
		{0, 50, 5.0, 0},
	}

	for _, tc := range tests {
		if got := ScaleReward(tc.base, tc.floor, tc.pct); got != tc.want {
			t.Errorf("ScaleReward(%d, %d, %v) = %d, want %d", tc.base, tc.floor, tc.pct, got, tc.want)
		}
	}
}

func TestScaleReward_MonotonicInFloor(t *testing.T) {
	prev := 0
	for floor := 1; floor <= 60; floor++ {
		scaled := ScaleReward(40, floor, 5.0)
		if scaled < prev {
			t.Fatalf("reward decreased at floor %d: %d < %d", floor, scaled, prev)
		}
		prev = scaled
	}
}

func TestPlayerDamageMultiplier(t *testing.T) {
	snap := settings.Defaults()

	if got := PlayerDamageMultiplier(0, snap); got != 1.0 {
		t.Errorf("multiplier at void 0 = %v, want 1.0", got)
	}
	if got := PlayerDamageMultiplier(60, snap); got != 0.7 {
		t.Errorf("multiplier at void 60 = %v, want 0.7", got)
	}

	// A harsher divisor bottoms out at the configured minimum
	snap.PlayerDmgDivisor = 100
	if got := PlayerDamageMultiplier(60, snap); got != 0.7 {
		t.Errorf("multiplier should clamp at min, got %v", got)
	}
}

func TestResolvePlayerStrike_HitMath(t *testing.T) {
	snap := settings.Defaults()
	p := Profile{Attack: 10, MeleePower: 10}
	m := MonsterStats{Level: 3, Defense: 2} // evasion 5, base hit 75

	// roll exactly on the threshold hits
	r := &scriptRoller{percents: []int{75}, betweens: []int{5}}
	strike := ResolvePlayerStrike(p, m, StyleAttack, 0, snap, r)
	if !strike.Hit {
		t.Fatal("roll 75 against threshold 75 should hit")
	}
	// raw = ceil(10*0.6 + 5) = 11, mult 1.0, mitigation floor(2*0.35) = 0
	if strike.Damage != 11 {
		t.Errorf("damage = %d, want 11", strike.Damage)
	}

	// one above the threshold misses and deals no damage
	r = &scriptRoller{percents: []int{76}}
	strike = ResolvePlayerStrike(p, m, StyleAttack, 0, snap, r)
	if strike.Hit || strike.Damage != 0 {
		t.Errorf("roll 76 should miss with 0 damage, got hit=%v damage=%d", strike.Hit, strike.Damage)
	}
}

func TestResolvePlayerStrike_VoidPenalty(t *testing.T) {
	snap := settings.Defaults() // acc pen divisor 5
	p := Profile{Attack: 10, MeleePower: 10}
	m := MonsterStats{Level: 3, Defense: 2} // base hit 75

	// void 30 -> penalty 6 -> threshold 69
	r := &scriptRoller{percents: []int{69}}
	if strike := ResolvePlayerStrike(p, m, StyleAttack, 30, snap, r); !strike.Hit {
		t.Error("roll 69 against threshold 69 should hit")
	}
	r = &scriptRoller{percents: []int{70}}
	if strike := ResolvePlayerStrike(p, m, StyleAttack, 30, snap, r); strike.Hit {
		t.Error("roll 70 against threshold 69 should miss")
	}
}

func TestResolvePlayerStrike_MinimumHitChance(t *testing.T) {
	snap := settings.Defaults()
	snap.PlayerAccPenDivisor = 1 // penalty equals void directly
	p := Profile{Attack: 1, MeleePower: 1}
	m := MonsterStats{Level: 100, Defense: 100} // base hit clamps to 35

	// threshold = max(5, 35-60) = 5
	r := &scriptRoller{percents: []int{5}}
	if strike := ResolvePlayerStrike(p, m, StyleAttack, 60, snap, r); !strike.Hit {
		t.Error("roll 5 should still hit at the 5 percent floor")
	}
	r = &scriptRoller{percents: []int{6}}
	if strike := ResolvePlayerStrike(p, m, StyleAttack, 60, snap, r); strike.Hit {
		t.Error("roll 6 should miss at the 5 percent floor")
	}
}

func TestResolveMonsterStrike_Math(t *testing.T) {
	snap := settings.Defaults()
	p := Profile{Defense: 1}
	m := MonsterStats{Level: 5, Attack: 10} // base hit clamp(65+4) = 69

	r := &scriptRoller{percents: []int{69}, betweens: []int{0}}
	strike := ResolveMonsterStrike(m, p, 60, snap, r)
	if !strike.Hit {
		t.Fatal("roll 69 against threshold 69 should hit")
	}
	// raw = ceil(6) = 6, void mult 1.3 -> ceil(7.8) = 8, mitigation 0
	if strike.Damage != 8 {
		t.Errorf("damage = %d, want 8", strike.Damage)
	}

	r = &scriptRoller{percents: []int{70}}
	strike = ResolveMonsterStrike(m, p, 60, snap, r)
	if strike.Hit || strike.Damage != 0 {
		t.Errorf("roll 70 should miss with 0 damage, got hit=%v damage=%d", strike.Hit, strike.Damage)
	}
}

func TestStrikes_NeverNegative(t *testing.T) {
	snap := settings.Defaults()
	roller := NewRoller(42)

	for i := 0; i < 5000; i++ {
		p := Profile{
			Attack:      1 + i%99,
			Defense:     1 + (i*7)%99,
			MeleePower:  1 + (i*3)%200,
			RangedPower: 1 + (i*5)%200,
			MagicPower:  1 + (i*11)%200,
		}
		m := MonsterStats{
			Level:   1 + i%60,
			Attack:  1 + (i*13)%150,
			Defense: (i * 17) % 120,
		}
		void := VoidPressure(i%40, snap)

		for _, style := range []Style{StyleAttack, StyleStrength, StyleDefense, StyleRange, StyleMagic} {
			if strike := ResolvePlayerStrike(p, m, style, void, snap, roller); strike.Damage < 0 {
				t.Fatalf("negative player damage: %+v", strike)
			}
		}
		if strike := ResolveMonsterStrike(m, p, void, snap, roller); strike.Damage < 0 {
			t.Fatalf("negative monster damage: %+v", strike)
		}
	}
}
