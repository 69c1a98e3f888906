// Package combat implements the battle formula engine: accuracy, damage,
// mitigation, void pressure, and floor-scaled rewards.
package combat

import (
	"errors"
	"fmt"
)

// ErrUnknownStyle is returned when a style string fails to parse.
var ErrUnknownStyle = errors.New("unknown combat style")

// Style is the player's chosen action category for a turn. It routes to a
// power stat and, on victory, to the skill that receives the reward XP.
type Style string

const (
	StyleAttack   Style = "attack"
	StyleStrength Style = "strength"
	StyleDefense  Style = "defense"
	StyleRange    Style = "range"
	StyleMagic    Style = "magic"
)

// ParseStyle validates a style string.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleAttack, StyleStrength, StyleDefense, StyleRange, StyleMagic:
		return Style(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// SkillKey returns the skill that receives the full reward XP when a battle
// is won with this style. Melee styles all feed the attack skill.
func (s Style) SkillKey() string {
	switch s {
	case StyleRange:
		return "range"
	case StyleMagic:
		return "magic"
	default:
		return "attack"
	}
}

// Power returns the power stat the style routes to, floored at 1. A
// defensive stance trades a tenth of melee power for nothing extra; it
// exists purely as a style choice.
func (s Style) Power(p Profile) int {
	var power int
	switch s {
	case StyleRange:
		power = p.RangedPower
	case StyleMagic:
		power = p.MagicPower
	case StyleDefense:
		power = p.MeleePower * 9 / 10
	default:
		power = p.MeleePower
	}
	if power < 1 {
		return 1
	}
	return power
}
