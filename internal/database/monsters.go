package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrMonsterNotFound is returned when a monster lookup fails.
var ErrMonsterNotFound = errors.New("monster not found")

// Monster is static reference data, read-only to the engine. MinFloor and
// MaxFloor bound where the monster may be fought; both zero means any floor.
type Monster struct {
	ID         int64
	Name       string
	Level      int
	HP         int
	Attack     int
	Defense    int
	Magic      int
	Range      int
	RewardXP   int
	RewardGold int
	MinFloor   int
	MaxFloor   int
}

// EligibleForFloor reports whether the monster may appear on the given floor.
func (m *Monster) EligibleForFloor(floor int) bool {
	if m.MinFloor == 0 && m.MaxFloor == 0 {
		return true
	}
	if m.MinFloor > 0 && floor < m.MinFloor {
		return false
	}
	if m.MaxFloor > 0 && floor > m.MaxFloor {
		return false
	}
	return true
}

// GetMonster loads a monster by id.
func (d *Database) GetMonster(id int64) (*Monster, error) {
	query := d.qb.Build(`
		SELECT id, name, level, hp, attack, defense, magic, ranged,
		       reward_xp, reward_gold, min_floor, max_floor
		FROM monsters WHERE id = ?`)

	m := &Monster{}
	err := d.db.QueryRow(query, id).Scan(
		&m.ID, &m.Name, &m.Level, &m.HP, &m.Attack, &m.Defense, &m.Magic,
		&m.Range, &m.RewardXP, &m.RewardGold, &m.MinFloor, &m.MaxFloor)
	if err == sql.ErrNoRows {
		return nil, ErrMonsterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load monster: %w", err)
	}
	return m, nil
}

// GetMonsterByName loads a monster by its unique name.
func (d *Database) GetMonsterByName(name string) (*Monster, error) {
	query := d.qb.Build(`
		SELECT id, name, level, hp, attack, defense, magic, ranged,
		       reward_xp, reward_gold, min_floor, max_floor
		FROM monsters WHERE name = ?`)

	m := &Monster{}
	err := d.db.QueryRow(query, name).Scan(
		&m.ID, &m.Name, &m.Level, &m.HP, &m.Attack, &m.Defense, &m.Magic,
		&m.Range, &m.RewardXP, &m.RewardGold, &m.MinFloor, &m.MaxFloor)
	if err == sql.ErrNoRows {
		return nil, ErrMonsterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load monster: %w", err)
	}
	return m, nil
}

// MonstersForFloor returns all monsters eligible for the given floor,
// ordered by level.
func (d *Database) MonstersForFloor(floor int) ([]Monster, error) {
	query := d.qb.Build(`
		SELECT id, name, level, hp, attack, defense, magic, ranged,
		       reward_xp, reward_gold, min_floor, max_floor
		FROM monsters
		WHERE (min_floor = 0 OR min_floor <= ?)
		  AND (max_floor = 0 OR max_floor >= ?)
		ORDER BY level ASC`)

	rows, err := d.db.Query(query, floor, floor)
	if err != nil {
		return nil, fmt.Errorf("failed to list monsters: %w", err)
	}
	defer rows.Close()

	var monsters []Monster
	for rows.Next() {
		var m Monster
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Level, &m.HP, &m.Attack, &m.Defense, &m.Magic,
			&m.Range, &m.RewardXP, &m.RewardGold, &m.MinFloor, &m.MaxFloor); err != nil {
			return nil, err
		}
		monsters = append(monsters, m)
	}
	return monsters, rows.Err()
}

// UpsertMonster inserts a monster definition or updates it by name. Used by
// the YAML seed loader at startup.
func (d *Database) UpsertMonster(m *Monster) error {
	query := d.qb.Build(`
		INSERT INTO monsters (name, level, hp, attack, defense, magic, ranged,
		                      reward_xp, reward_gold, min_floor, max_floor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			level = excluded.level,
			hp = excluded.hp,
			attack = excluded.attack,
			defense = excluded.defense,
			magic = excluded.magic,
			ranged = excluded.ranged,
			reward_xp = excluded.reward_xp,
			reward_gold = excluded.reward_gold,
			min_floor = excluded.min_floor,
			max_floor = excluded.max_floor`)

	if _, err := d.db.Exec(query,
		m.Name, m.Level, m.HP, m.Attack, m.Defense, m.Magic, m.Range,
		m.RewardXP, m.RewardGold, m.MinFloor, m.MaxFloor); err != nil {
		return fmt.Errorf("failed to upsert monster %q: %w", m.Name, err)
	}
	return nil
}
