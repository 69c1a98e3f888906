package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrSkillNotFound is returned when a skill key lookup fails.
var ErrSkillNotFound = errors.New("skill not found")

// Skill is a static skill definition, seeded once at migration time.
type Skill struct {
	ID   int64
	Key  string
	Name string
}

// SkillProgress is one character's ledger row for one skill.
type SkillProgress struct {
	ID          int64
	CharacterID int64
	SkillID     int64
	SkillKey    string
	Level       int
	XP          int
}

// seedSkills inserts the skill reference rows if they are missing.
func (d *Database) seedSkills() error {
	seeds := []Skill{
		{Key: "attack", Name: "Attack"},
		{Key: "range", Name: "Range"},
		{Key: "magic", Name: "Magic"},
		{Key: "health", Name: "Health"},
	}

	for _, s := range seeds {
		query := d.qb.Build(`INSERT INTO skills (key, name) VALUES (?, ?)`)
		if _, err := d.db.Exec(query, s.Key, s.Name); err != nil {
			if d.dialect.IsDuplicateKeyError(err) {
				continue
			}
			return fmt.Errorf("failed to seed skill %q: %w", s.Key, err)
		}
	}
	return nil
}

// GetSkillByKey loads a skill definition by its stable key.
func (d *Database) GetSkillByKey(key string) (*Skill, error) {
	query := d.qb.Build(`SELECT id, key, name FROM skills WHERE key = ?`)

	s := &Skill{}
	err := d.db.QueryRow(query, key).Scan(&s.ID, &s.Key, &s.Name)
	if err == sql.ErrNoRows {
		return nil, ErrSkillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load skill: %w", err)
	}
	return s, nil
}

// SkillLevels returns a character's level per skill key. Skills without a
// progress row default to level 1.
func (d *Database) SkillLevels(characterID int64) (map[string]int, error) {
	levels := map[string]int{}

	rows, err := d.db.Query(d.qb.Build(`SELECT key FROM skills`))
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		levels[key] = 1
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query := d.qb.Build(`
		SELECT s.key, p.level
		FROM skill_progress p
		JOIN skills s ON s.id = p.skill_id
		WHERE p.character_id = ?`)

	progRows, err := d.db.Query(query, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill levels: %w", err)
	}
	defer progRows.Close()
	for progRows.Next() {
		var key string
		var level int
		if err := progRows.Scan(&key, &level); err != nil {
			return nil, err
		}
		levels[key] = level
	}
	return levels, progRows.Err()
}

// GetSkillProgressTx reads a character's progress row for a skill inside a
// transaction, taking a row lock where the dialect supports one. Returns
// ErrSkillNotFound if the skill key is unknown; a missing progress row is
// reported with found=false rather than an error so callers can create it.
func (d *Database) GetSkillProgressTx(tx *sql.Tx, characterID int64, skillKey string) (*SkillProgress, bool, error) {
	var skillID int64
	err := tx.QueryRow(d.qb.Build(`SELECT id FROM skills WHERE key = ?`), skillKey).Scan(&skillID)
	if err == sql.ErrNoRows {
		return nil, false, ErrSkillNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load skill: %w", err)
	}

	query := d.qb.BuildForUpdate(`
		SELECT id, character_id, skill_id, level, xp
		FROM skill_progress
		WHERE character_id = ? AND skill_id = ?`)

	p := &SkillProgress{SkillKey: skillKey}
	err = tx.QueryRow(query, characterID, skillID).Scan(&p.ID, &p.CharacterID, &p.SkillID, &p.Level, &p.XP)
	if err == sql.ErrNoRows {
		return &SkillProgress{CharacterID: characterID, SkillID: skillID, SkillKey: skillKey, Level: 1, XP: 0}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load skill progress: %w", err)
	}
	return p, true, nil
}

// InsertSkillProgressTx creates a new progress row inside a transaction.
func (d *Database) InsertSkillProgressTx(tx *sql.Tx, p *SkillProgress) error {
	query := d.qb.Build(`
		INSERT INTO skill_progress (character_id, skill_id, level, xp)
		VALUES (?, ?, ?, ?)`)
	if _, err := tx.Exec(query, p.CharacterID, p.SkillID, p.Level, p.XP); err != nil {
		return fmt.Errorf("failed to insert skill progress: %w", err)
	}
	return nil
}

// UpdateSkillProgressTx persists new level/xp values inside a transaction.
func (d *Database) UpdateSkillProgressTx(tx *sql.Tx, p *SkillProgress) error {
	query := d.qb.Build(`
		UPDATE skill_progress SET level = ?, xp = ?
		WHERE character_id = ? AND skill_id = ?`)
	if _, err := tx.Exec(query, p.Level, p.XP, p.CharacterID, p.SkillID); err != nil {
		return fmt.Errorf("failed to update skill progress: %w", err)
	}
	return nil
}
