package battle

import (
	"fmt"

	"github.com/HuntleyOG/eldvar-engine/internal/combat"
)

func styleVerb(style combat.Style) string {
	switch style {
	case combat.StyleRange:
		return "shoot"
	case combat.StyleMagic:
		return "blast"
	case combat.StyleDefense:
		return "strike"
	default:
		return "slash"
	}
}

func playerNarrative(style combat.Style, monsterName string, strike combat.Strike) string {
	if !strike.Hit {
		return fmt.Sprintf("You lunge at %s but miss!", monsterName)
	}
	return fmt.Sprintf("You %s %s for %d damage.", styleVerb(style), monsterName, strike.Damage)
}

func monsterNarrative(monsterName string, strike combat.Strike) string {
	if !strike.Hit {
		return fmt.Sprintf("%s attacks you but misses!", monsterName)
	}
	return fmt.Sprintf("%s strikes you for %d damage.", monsterName, strike.Damage)
}
