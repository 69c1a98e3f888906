package progression

import (
	"fmt"

	"github.com/HuntleyOG/eldvar-engine/internal/combat"
	"github.com/HuntleyOG/eldvar-engine/internal/database"
	"github.com/HuntleyOG/eldvar-engine/internal/logger"
)

// Award describes the result of one XP grant.
type Award struct {
	SkillKey string
	OldLevel int
	NewLevel int
	XP       int
	Gained   int
}

// LeveledUp reports whether this grant crossed a level threshold.
func (a Award) LeveledUp() bool {
	return a.NewLevel > a.OldLevel
}

// Ledger awards skill XP transactionally and keeps the level/xp invariant:
// after every mutation, level == LevelFromXP(xp) capped at MaxLevel.
type Ledger struct {
	db         *database.Database
	thresholds []int
}

// NewLedger creates a Ledger with the standard level curve.
func NewLedger(db *database.Database) *Ledger {
	return &Ledger{
		db:         db,
		thresholds: Thresholds(MaxLevel),
	}
}

// Award grants XP to one (character, skill) pair in a single transaction.
// Negative amounts are clamped to zero. The progress row is created lazily
// at level 1 on first grant.
func (l *Ledger) Award(characterID int64, skillKey string, amount int) (*Award, error) {
	if amount < 0 {
		amount = 0
	}

	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin xp transaction: %w", err)
	}
	defer tx.Rollback()

	progress, found, err := l.db.GetSkillProgressTx(tx, characterID, skillKey)
	if err != nil {
		return nil, err
	}

	oldLevel := progress.Level
	progress.XP += amount
	newLevel := LevelFromXP(progress.XP, l.thresholds)
	if newLevel > MaxLevel {
		newLevel = MaxLevel
	}
	progress.Level = newLevel

	if found {
		err = l.db.UpdateSkillProgressTx(tx, progress)
	} else {
		err = l.db.InsertSkillProgressTx(tx, progress)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit xp transaction: %w", err)
	}

	return &Award{
		SkillKey: skillKey,
		OldLevel: oldLevel,
		NewLevel: newLevel,
		XP:       progress.XP,
		Gained:   amount,
	}, nil
}

// GrantVictory applies the victory policy: the full scaled XP goes to the
// skill tied to the killing-blow style, and a third of it goes to health
// regardless of style. The two grants are independent transactions; a
// failure in either is returned as a warning and never unwinds the other,
// because the battle outcome is already committed and stays authoritative.
func (l *Ledger) GrantVictory(characterID int64, style combat.Style, scaledXP int) ([]Award, error) {
	var awards []Award
	var warning error

	styleAward, err := l.Award(characterID, style.SkillKey(), scaledXP)
	if err != nil {
		warning = fmt.Errorf("xp grant for %s failed: %w", style.SkillKey(), err)
		logger.Error("Victory XP grant failed", "character_id", characterID,
			"skill", style.SkillKey(), "xp", scaledXP, "error", err)
	} else {
		awards = append(awards, *styleAward)
	}

	healthAward, err := l.Award(characterID, "health", scaledXP/3)
	if err != nil {
		if warning == nil {
			warning = fmt.Errorf("health xp grant failed: %w", err)
		}
		logger.Error("Victory health XP grant failed", "character_id", characterID,
			"xp", scaledXP/3, "error", err)
	} else {
		awards = append(awards, *healthAward)
	}

	return awards, warning
}
