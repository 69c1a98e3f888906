package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCharacterNotFound is returned when a character lookup fails.
var ErrCharacterNotFound = errors.New("character not found")

// ErrCharacterExists is returned when trying to create a duplicate character.
var ErrCharacterExists = errors.New("character name already taken")

// Character represents a player character's persistent data. Account
// management lives outside the engine; the engine only needs an id, a name
// for battle snapshots, and a gold balance as the reward sink.
type Character struct {
	ID        int64
	Name      string
	Level     int
	Gold      int
	CreatedAt time.Time
}

// CreateCharacter creates a new character.
func (d *Database) CreateCharacter(name string) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("character name cannot be empty")
	}

	query := d.qb.BuildWithReturning(
		`INSERT INTO characters (name) VALUES (?)`, "id")

	var id int64
	if d.dialect.SupportsLastInsertID() {
		result, err := d.db.Exec(query, name)
		if err != nil {
			if d.dialect.IsDuplicateKeyError(err) {
				return nil, ErrCharacterExists
			}
			return nil, fmt.Errorf("failed to create character: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get character id: %w", err)
		}
	} else {
		if err := d.db.QueryRow(query, name).Scan(&id); err != nil {
			if d.dialect.IsDuplicateKeyError(err) {
				return nil, ErrCharacterExists
			}
			return nil, fmt.Errorf("failed to create character: %w", err)
		}
	}

	return d.GetCharacter(id)
}

// GetCharacter loads a character by id.
func (d *Database) GetCharacter(id int64) (*Character, error) {
	query := d.qb.Build(`
		SELECT id, name, level, gold, created_at
		FROM characters WHERE id = ?`)

	c := &Character{}
	err := d.db.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Level, &c.Gold, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCharacterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	return c, nil
}

// AddGoldTx credits gold to a character inside an existing transaction.
func (d *Database) AddGoldTx(tx *sql.Tx, characterID int64, amount int) error {
	query := d.qb.Build(`UPDATE characters SET gold = gold + ? WHERE id = ?`)
	result, err := tx.Exec(query, amount, characterID)
	if err != nil {
		return fmt.Errorf("failed to add gold: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCharacterNotFound
	}
	return nil
}
