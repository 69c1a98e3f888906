// Package monster loads monster definitions from YAML and seeds them into
// the store at startup.
package monster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/HuntleyOG/eldvar-engine/internal/database"
	"github.com/HuntleyOG/eldvar-engine/internal/logger"
)

// Definition is one monster entry in the YAML file.
type Definition struct {
	Name       string `yaml:"name"`
	Level      int    `yaml:"level"`
	HP         int    `yaml:"hp"`
	Attack     int    `yaml:"attack"`
	Defense    int    `yaml:"defense"`
	Magic      int    `yaml:"magic"`
	Range      int    `yaml:"range"`
	RewardXP   int    `yaml:"reward_xp"`
	RewardGold int    `yaml:"reward_gold"`
	MinFloor   int    `yaml:"min_floor"` // 0 = no lower bound
	MaxFloor   int    `yaml:"max_floor"` // 0 = no upper bound
}

// File is the structure of the monsters YAML file.
type File struct {
	Monsters []Definition `yaml:"monsters"`
}

// LoadFile parses a monsters YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read monsters file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse monsters file: %w", err)
	}

	for i, def := range f.Monsters {
		if def.Name == "" {
			return nil, fmt.Errorf("monster entry %d has no name", i)
		}
		if def.HP < 1 {
			return nil, fmt.Errorf("monster %q has invalid hp %d", def.Name, def.HP)
		}
	}

	return &f, nil
}

// Seed upserts every definition from the YAML file into the store. Existing
// monsters are updated by name so data tweaks land on restart.
func Seed(db *database.Database, path string) (int, error) {
	f, err := LoadFile(path)
	if err != nil {
		return 0, err
	}

	for _, def := range f.Monsters {
		m := &database.Monster{
			Name:       def.Name,
			Level:      def.Level,
			HP:         def.HP,
			Attack:     def.Attack,
			Defense:    def.Defense,
			Magic:      def.Magic,
			Range:      def.Range,
			RewardXP:   def.RewardXP,
			RewardGold: def.RewardGold,
			MinFloor:   def.MinFloor,
			MaxFloor:   def.MaxFloor,
		}
		if err := db.UpsertMonster(m); err != nil {
			return 0, err
		}
	}

	logger.Info("Monsters seeded", "count", len(f.Monsters), "file", path)
	return len(f.Monsters), nil
}
