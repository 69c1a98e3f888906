package progression

import "github.com/HuntleyOG/eldvar-engine/internal/combat"

// ProfileFromSkills derives a combat profile from a character's skill
// levels. The attack skill feeds all three melee stats; hp scales off the
// health skill. Recomputed per battle action, never cached across XP
// changes.
func ProfileFromSkills(levels map[string]int) combat.Profile {
	attack := skillLevel(levels, "attack")
	ranged := skillLevel(levels, "range")
	magic := skillLevel(levels, "magic")
	health := skillLevel(levels, "health")

	return combat.Profile{
		Attack:      attack,
		Strength:    attack,
		Defense:     attack,
		Magic:       magic,
		Range:       ranged,
		HPMax:       10*health + 40,
		MeleePower:  attack * 2,
		RangedPower: ranged * 2,
		MagicPower:  magic * 2,
	}
}

func skillLevel(levels map[string]int, key string) int {
	if lvl, ok := levels[key]; ok && lvl >= 1 {
		return lvl
	}
	return 1
}
