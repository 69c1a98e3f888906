package database

import (
	"database/sql"
	"fmt"
)

// AllSettings returns the full settings table as a key→value map. Keys the
// engine doesn't recognize are returned as-is; interpretation and clamping
// happen in the settings package.
func (d *Database) AllSettings() (map[string]string, error) {
	rows, err := d.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// GetSetting returns a single setting value, or "" when the key is absent.
func (d *Database) GetSetting(key string) (string, error) {
	query := d.qb.Build(`SELECT value FROM settings WHERE key = ?`)

	var value string
	err := d.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting inserts or updates a setting.
func (d *Database) SetSetting(key, value string) error {
	query := d.qb.Build(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`)
	if _, err := d.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to save setting %q: %w", key, err)
	}
	return nil
}
