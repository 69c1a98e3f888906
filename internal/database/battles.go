package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrBattleNotFound is returned when a battle lookup fails.
var ErrBattleNotFound = errors.New("battle not found")

// ErrOngoingBattle is returned when creating a battle for a character that
// already has one in progress.
var ErrOngoingBattle = errors.New("character already has an ongoing battle")

// Battle status values. A battle leaves "ongoing" exactly once and never
// transitions again.
const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusLost    = "lost"
	StatusFled    = "fled"
)

// Turn actor values.
const (
	TurnActorPlayer  = "player"
	TurnActorMonster = "monster"
)

// Battle is the central mutable aggregate. Monster stats and reward bases
// are snapshotted at creation; reward computation never re-reads the
// monster row.
type Battle struct {
	ID             int64
	CharacterID    int64
	MonsterID      int64
	CharacterName  string
	CharacterHP    int
	CharacterHPMax int
	MonsterName    string
	MonsterHP      int
	MonsterHPMax   int
	Floor          int
	VoidIntensity  int
	CombatStyle    string
	RewardXPBase   int
	RewardGoldBase int
	Status         string
	CreatedAt      time.Time
	EndedAt        *time.Time
}

// Ongoing reports whether the battle can still be acted on.
func (b *Battle) Ongoing() bool {
	return b.Status == StatusOngoing
}

// BattleTurn is one append-only turn log row.
type BattleTurn struct {
	ID               int64
	BattleID         int64
	TurnNo           int
	Actor            string
	Action           string
	Damage           int
	CharacterHPAfter int
	MonsterHPAfter   int
	Narrative        string
	CreatedAt        time.Time
}

const battleColumns = `id, character_id, monster_id, character_name,
	character_hp, character_hp_max, monster_name, monster_hp, monster_hp_max,
	floor, void_intensity, combat_style, reward_xp_base, reward_gold_base,
	status, created_at, ended_at`

func scanBattle(row *sql.Row) (*Battle, error) {
	b := &Battle{}
	err := row.Scan(
		&b.ID, &b.CharacterID, &b.MonsterID, &b.CharacterName,
		&b.CharacterHP, &b.CharacterHPMax, &b.MonsterName, &b.MonsterHP,
		&b.MonsterHPMax, &b.Floor, &b.VoidIntensity, &b.CombatStyle,
		&b.RewardXPBase, &b.RewardGoldBase, &b.Status, &b.CreatedAt, &b.EndedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBattle inserts a new ongoing battle. The partial unique index on
// ongoing battles makes the check-and-insert atomic: a concurrent start for
// the same character loses with ErrOngoingBattle.
func (d *Database) CreateBattle(b *Battle) error {
	query := d.qb.BuildWithReturning(`
		INSERT INTO battles (character_id, monster_id, character_name,
			character_hp, character_hp_max, monster_name, monster_hp,
			monster_hp_max, floor, void_intensity, combat_style,
			reward_xp_base, reward_gold_base, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, "id")

	args := []any{
		b.CharacterID, b.MonsterID, b.CharacterName,
		b.CharacterHP, b.CharacterHPMax, b.MonsterName, b.MonsterHP,
		b.MonsterHPMax, b.Floor, b.VoidIntensity, b.CombatStyle,
		b.RewardXPBase, b.RewardGoldBase, StatusOngoing,
	}

	if d.dialect.SupportsLastInsertID() {
		result, err := d.db.Exec(query, args...)
		if err != nil {
			if d.dialect.IsDuplicateKeyError(err) {
				return ErrOngoingBattle
			}
			return fmt.Errorf("failed to create battle: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get battle id: %w", err)
		}
		b.ID = id
	} else {
		if err := d.db.QueryRow(query, args...).Scan(&b.ID); err != nil {
			if d.dialect.IsDuplicateKeyError(err) {
				return ErrOngoingBattle
			}
			return fmt.Errorf("failed to create battle: %w", err)
		}
	}

	b.Status = StatusOngoing
	return nil
}

// GetBattle loads a battle by id.
func (d *Database) GetBattle(id int64) (*Battle, error) {
	query := d.qb.Build(`SELECT ` + battleColumns + ` FROM battles WHERE id = ?`)
	b, err := scanBattle(d.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrBattleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load battle: %w", err)
	}
	return b, nil
}

// GetBattleForUpdateTx re-reads a battle inside a transaction, taking a row
// lock where the dialect supports one. Mutating operations re-validate
// status and ownership against this locked read.
func (d *Database) GetBattleForUpdateTx(tx *sql.Tx, id int64) (*Battle, error) {
	query := d.qb.BuildForUpdate(`SELECT ` + battleColumns + ` FROM battles WHERE id = ?`)
	b, err := scanBattle(tx.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrBattleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load battle: %w", err)
	}
	return b, nil
}

// OngoingBattleFor returns the character's ongoing battle, or nil if none.
func (d *Database) OngoingBattleFor(characterID int64) (*Battle, error) {
	query := d.qb.Build(`
		SELECT ` + battleColumns + ` FROM battles
		WHERE character_id = ? AND status = ?`)
	b, err := scanBattle(d.db.QueryRow(query, characterID, StatusOngoing))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ongoing battle: %w", err)
	}
	return b, nil
}

// UpdateBattleTx persists the mutable battle fields inside a transaction.
func (d *Database) UpdateBattleTx(tx *sql.Tx, b *Battle) error {
	query := d.qb.Build(`
		UPDATE battles
		SET character_hp = ?, monster_hp = ?, combat_style = ?, status = ?,
		    ended_at = ?
		WHERE id = ?`)
	if _, err := tx.Exec(query, b.CharacterHP, b.MonsterHP, b.CombatStyle,
		b.Status, b.EndedAt, b.ID); err != nil {
		return fmt.Errorf("failed to update battle: %w", err)
	}
	return nil
}

// InsertTurnTx appends a turn log row inside a transaction. Turn rows are
// never updated or deleted.
func (d *Database) InsertTurnTx(tx *sql.Tx, t *BattleTurn) error {
	query := d.qb.Build(`
		INSERT INTO battle_turns (battle_id, turn_no, actor, action, damage,
			character_hp_after, monster_hp_after, narrative)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := tx.Exec(query, t.BattleID, t.TurnNo, t.Actor, t.Action,
		t.Damage, t.CharacterHPAfter, t.MonsterHPAfter, t.Narrative); err != nil {
		return fmt.Errorf("failed to insert battle turn: %w", err)
	}
	return nil
}

// NextTurnNoTx returns the next turn number for a battle inside a
// transaction. Turn numbers start at 1 and increase without gaps.
func (d *Database) NextTurnNoTx(tx *sql.Tx, battleID int64) (int, error) {
	query := d.qb.Build(`
		SELECT COALESCE(MAX(turn_no), 0) FROM battle_turns WHERE battle_id = ?`)
	var last int
	if err := tx.QueryRow(query, battleID).Scan(&last); err != nil {
		return 0, fmt.Errorf("failed to count battle turns: %w", err)
	}
	return last + 1, nil
}

// TurnsForBattle returns a battle's turn log in order.
func (d *Database) TurnsForBattle(battleID int64) ([]BattleTurn, error) {
	query := d.qb.Build(`
		SELECT id, battle_id, turn_no, actor, action, damage,
		       character_hp_after, monster_hp_after, narrative, created_at
		FROM battle_turns
		WHERE battle_id = ?
		ORDER BY turn_no ASC`)

	rows, err := d.db.Query(query, battleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load battle turns: %w", err)
	}
	defer rows.Close()

	var turns []BattleTurn
	for rows.Next() {
		var t BattleTurn
		if err := rows.Scan(&t.ID, &t.BattleID, &t.TurnNo, &t.Actor, &t.Action,
			&t.Damage, &t.CharacterHPAfter, &t.MonsterHPAfter, &t.Narrative,
			&t.CreatedAt); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// CountWonOnFloor counts a character's won battles on a floor. The descend
// gate queries this live rather than caching a counter.
func (d *Database) CountWonOnFloor(characterID int64, floor int) (int, error) {
	query := d.qb.Build(`
		SELECT COUNT(*) FROM battles
		WHERE character_id = ? AND floor = ? AND status = ?`)
	var count int
	if err := d.db.QueryRow(query, characterID, floor, StatusWon).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count won battles: %w", err)
	}
	return count, nil
}
