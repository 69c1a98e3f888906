// Package battle owns the battle lifecycle: creation, turn resolution,
// fleeing, and the descend gate. Every mutation runs in one transaction
// that re-reads the battle row before writing.
package battle

import (
	"fmt"
	"time"

	"github.com/HuntleyOG/eldvar-engine/internal/combat"
	"github.com/HuntleyOG/eldvar-engine/internal/database"
	"github.com/HuntleyOG/eldvar-engine/internal/logger"
	"github.com/HuntleyOG/eldvar-engine/internal/progression"
	"github.com/HuntleyOG/eldvar-engine/internal/settings"
)

// Service orchestrates battles against the store, the formula engine, and
// the XP ledger.
type Service struct {
	db     *database.Database
	ledger *progression.Ledger
	roller combat.Roller
}

// NewService creates a battle service. Pass a seeded roller in tests for
// deterministic resolution.
func NewService(db *database.Database, roller combat.Roller) *Service {
	return &Service{
		db:     db,
		ledger: progression.NewLedger(db),
		roller: roller,
	}
}

// RewardSummary describes what a won battle paid out.
type RewardSummary struct {
	XP     int
	Gold   int
	Awards []progression.Award

	// Warning carries a non-fatal XP bookkeeping failure. The battle
	// outcome is authoritative once committed; a failed grant degrades the
	// response, it does not convert the win into an error.
	Warning string
}

// TurnResult is the outcome of one TakeTurn call.
type TurnResult struct {
	Battle  *database.Battle
	Turns   []database.BattleTurn
	Rewards *RewardSummary
}

// snapshot builds the per-request tunables view. A storage failure falls
// back to the documented defaults rather than blocking the battle.
func (s *Service) snapshot() settings.Snapshot {
	values, err := s.db.AllSettings()
	if err != nil {
		logger.Warning("Failed to load settings, using defaults", "error", err)
		return settings.Defaults()
	}
	return settings.FromMap(values)
}

// Start creates a battle between a character and a monster on a floor.
// Void intensity and the monster's reward bases are frozen into the battle
// row here; later reward computation never re-reads the monster.
func (s *Service) Start(characterID, monsterID int64, floor int, styleStr string) (*database.Battle, error) {
	style, err := combat.ParseStyle(styleStr)
	if err != nil {
		return nil, err
	}
	if floor < 1 {
		return nil, ErrInvalidFloor
	}

	character, err := s.db.GetCharacter(characterID)
	if err != nil {
		return nil, err
	}

	monster, err := s.db.GetMonster(monsterID)
	if err != nil {
		return nil, err
	}
	if !monster.EligibleForFloor(floor) {
		return nil, ErrMonsterNotOnFloor
	}

	levels, err := s.db.SkillLevels(characterID)
	if err != nil {
		return nil, err
	}
	profile := progression.ProfileFromSkills(levels)

	snap := s.snapshot()

	b := &database.Battle{
		CharacterID:    character.ID,
		MonsterID:      monster.ID,
		CharacterName:  character.Name,
		CharacterHP:    profile.HPMax,
		CharacterHPMax: profile.HPMax,
		MonsterName:    monster.Name,
		MonsterHP:      monster.HP,
		MonsterHPMax:   monster.HP,
		Floor:          floor,
		VoidIntensity:  combat.VoidPressure(floor, snap),
		CombatStyle:    string(style),
		RewardXPBase:   monster.RewardXP,
		RewardGoldBase: monster.RewardGold,
	}

	if err := s.db.CreateBattle(b); err != nil {
		return nil, err
	}

	logger.Info("Battle started", "battle_id", b.ID, "character", character.Name,
		"monster", monster.Name, "floor", floor, "void", b.VoidIntensity)
	return b, nil
}

// Turn resolves one exchange: the player's strike, then the monster's
// counter if it survives. The whole exchange commits atomically
// with the turn log rows; reward XP grants run after commit as their own
// transactions.
func (s *Service) Turn(characterID, battleID int64, styleStr string) (*TurnResult, error) {
	style, err := combat.ParseStyle(styleStr)
	if err != nil {
		return nil, err
	}

	levels, err := s.db.SkillLevels(characterID)
	if err != nil {
		return nil, err
	}
	profile := progression.ProfileFromSkills(levels)
	snap := s.snapshot()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin battle transaction: %w", err)
	}
	defer tx.Rollback()

	// Re-read under lock and re-validate inside the transaction; a
	// concurrent turn that already ended this battle is caught here.
	b, err := s.db.GetBattleForUpdateTx(tx, battleID)
	if err != nil {
		return nil, err
	}
	if b.CharacterID != characterID {
		return nil, ErrNotYourBattle
	}
	if !b.Ongoing() {
		return nil, ErrBattleOver
	}

	monster, err := s.db.GetMonster(b.MonsterID)
	if err != nil {
		return nil, err
	}
	monsterStats := combat.MonsterStats{
		Level:   monster.Level,
		Attack:  monster.Attack,
		Defense: monster.Defense,
	}

	b.CombatStyle = string(style)

	turnNo, err := s.db.NextTurnNoTx(tx, b.ID)
	if err != nil {
		return nil, err
	}

	var turns []database.BattleTurn

	playerStrike := combat.ResolvePlayerStrike(profile, monsterStats, style, b.VoidIntensity, snap, s.roller)
	b.MonsterHP -= playerStrike.Damage
	if b.MonsterHP < 0 {
		b.MonsterHP = 0
	}

	playerTurn := database.BattleTurn{
		BattleID:         b.ID,
		TurnNo:           turnNo,
		Actor:            database.TurnActorPlayer,
		Action:           string(style),
		Damage:           playerStrike.Damage,
		CharacterHPAfter: b.CharacterHP,
		MonsterHPAfter:   b.MonsterHP,
		Narrative:        playerNarrative(style, b.MonsterName, playerStrike),
	}
	if err := s.db.InsertTurnTx(tx, &playerTurn); err != nil {
		return nil, err
	}
	turns = append(turns, playerTurn)

	if b.MonsterHP <= 0 {
		// Monster died this round: no counterattack.
		now := time.Now()
		b.Status = database.StatusWon
		b.EndedAt = &now

		scaledXP := combat.ScaleReward(b.RewardXPBase, b.Floor, snap.RewardXPPerFloorPct)
		scaledGold := combat.ScaleReward(b.RewardGoldBase, b.Floor, snap.RewardGoldPerFloorPct)

		if err := s.db.AddGoldTx(tx, b.CharacterID, scaledGold); err != nil {
			return nil, err
		}
		if err := s.db.UpdateBattleTx(tx, b); err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit battle: %w", err)
		}

		rewards := &RewardSummary{XP: scaledXP, Gold: scaledGold}
		awards, warning := s.ledger.GrantVictory(b.CharacterID, style, scaledXP)
		rewards.Awards = awards
		if warning != nil {
			rewards.Warning = warning.Error()
		}

		logger.Audit("Battle won", "battle_id", b.ID, "character", b.CharacterName,
			"monster", b.MonsterName, "floor", b.Floor, "xp", scaledXP, "gold", scaledGold)
		return &TurnResult{Battle: b, Turns: turns, Rewards: rewards}, nil
	}

	monsterStrike := combat.ResolveMonsterStrike(monsterStats, profile, b.VoidIntensity, snap, s.roller)
	b.CharacterHP -= monsterStrike.Damage
	if b.CharacterHP < 0 {
		b.CharacterHP = 0
	}

	monsterTurn := database.BattleTurn{
		BattleID:         b.ID,
		TurnNo:           turnNo + 1,
		Actor:            database.TurnActorMonster,
		Action:           "attack",
		Damage:           monsterStrike.Damage,
		CharacterHPAfter: b.CharacterHP,
		MonsterHPAfter:   b.MonsterHP,
		Narrative:        monsterNarrative(b.MonsterName, monsterStrike),
	}
	if err := s.db.InsertTurnTx(tx, &monsterTurn); err != nil {
		return nil, err
	}
	turns = append(turns, monsterTurn)

	if b.CharacterHP <= 0 {
		now := time.Now()
		b.Status = database.StatusLost
		b.EndedAt = &now
	}

	if err := s.db.UpdateBattleTx(tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit battle: %w", err)
	}

	if b.Status == database.StatusLost {
		logger.Audit("Battle lost", "battle_id", b.ID, "character", b.CharacterName,
			"monster", b.MonsterName, "floor", b.Floor)
	}

	return &TurnResult{Battle: b, Turns: turns}, nil
}

// Flee ends a battle with no rewards and no monster counterattack.
func (s *Service) Flee(characterID, battleID int64) (*database.Battle, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin battle transaction: %w", err)
	}
	defer tx.Rollback()

	b, err := s.db.GetBattleForUpdateTx(tx, battleID)
	if err != nil {
		return nil, err
	}
	if b.CharacterID != characterID {
		return nil, ErrNotYourBattle
	}
	if !b.Ongoing() {
		return nil, ErrBattleOver
	}

	now := time.Now()
	b.Status = database.StatusFled
	b.EndedAt = &now

	if err := s.db.UpdateBattleTx(tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit battle: %w", err)
	}

	logger.Info("Battle fled", "battle_id", b.ID, "character", b.CharacterName)
	return b, nil
}

// Get loads a battle by id.
func (s *Service) Get(battleID int64) (*database.Battle, error) {
	return s.db.GetBattle(battleID)
}

// CurrentFor returns the character's ongoing battle, or nil if none.
func (s *Service) CurrentFor(characterID int64) (*database.Battle, error) {
	return s.db.OngoingBattleFor(characterID)
}

// Turns returns a battle's full turn log.
func (s *Service) Turns(battleID int64) ([]database.BattleTurn, error) {
	return s.db.TurnsForBattle(battleID)
}

// CanDescend reports whether a character has won enough battles on the
// given floor to advance to the next one. The win count is a live query
// over battle rows, never a cached counter.
func (s *Service) CanDescend(characterID int64, floor int) (bool, int, int, error) {
	if floor < 1 {
		return false, 0, 0, ErrInvalidFloor
	}

	snap := s.snapshot()
	wins, err := s.db.CountWonOnFloor(characterID, floor)
	if err != nil {
		return false, 0, 0, err
	}

	required := snap.WinsRequiredPerFloor
	return wins >= required, wins, required, nil
}
