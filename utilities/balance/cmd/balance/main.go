// balance is a Monte Carlo simulator for tuning the combat engine.
//
// Usage:
//
//	balance floors  - sweep floors at a fixed skill level
//	balance levels  - sweep skill levels on a fixed floor
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/HuntleyOG/eldvar-engine/internal/combat"
	"github.com/HuntleyOG/eldvar-engine/internal/settings"
	"github.com/HuntleyOG/eldvar-engine/utilities/balance"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	battles := fs.Int("battles", 1000, "Battles per data point")
	skill := fs.Int("skill", 10, "Skill level for all skills")
	floor := fs.Int("floor", 1, "Floor for level sweeps")
	maxFloor := fs.Int("max-floor", 20, "Highest floor for floor sweeps")
	maxSkill := fs.Int("max-skill", 50, "Highest skill level for level sweeps")
	style := fs.String("style", "attack", "Combat style")
	seed := fs.Int64("seed", 0, "PRNG seed (0 = time-based)")
	fs.Parse(os.Args[2:])

	parsedStyle, err := combat.ParseStyle(*style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad style: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	roller := combat.NewRoller(*seed)
	snap := settings.Defaults()

	mob := balance.MonsterSpec{
		Name: "Gloom Rat", Level: 8, HP: 60, Attack: 10, Defense: 6,
		RewardXP: 40, RewardGold: 12,
	}

	switch os.Args[1] {
	case "floors":
		fmt.Printf("%-6s %-8s %-8s %-8s %-8s\n", "floor", "winrate", "rounds", "avg_xp", "avg_gold")
		for f := 1; f <= *maxFloor; f++ {
			s := balance.RunMany(*battles, *skill, mob, parsedStyle, f, snap, roller)
			fmt.Printf("%-6d %-8.2f %-8.1f %-8.1f %-8.1f\n", f, s.WinRate(), s.AvgRounds, s.AvgXP, s.AvgGold)
		}
	case "levels":
		fmt.Printf("%-6s %-8s %-8s %-8s\n", "skill", "winrate", "rounds", "avg_xp")
		for lvl := 1; lvl <= *maxSkill; lvl++ {
			s := balance.RunMany(*battles, lvl, mob, parsedStyle, *floor, snap, roller)
			fmt.Printf("%-6d %-8.2f %-8.1f %-8.1f\n", lvl, s.WinRate(), s.AvgRounds, s.AvgXP)
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: balance [floors|levels] [options]")
	fmt.Println("Run 'balance floors -h' or 'balance levels -h' for options.")
}
