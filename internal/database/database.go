// Package database provides persistence for characters, skills, monsters,
// battles, and engine settings over SQLite or PostgreSQL.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database wraps the SQL connection and provides persistence operations.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens or creates the SQLite database at the given path.
func Open(path string) (*Database, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens a database using the given configuration, runs
// dialect init statements, and applies migrations.
func OpenWithConfig(cfg Config) (*Database, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch dialect.(type) {
	case *PostgresDialect:
		dsn = postgresDSN(cfg.Postgres)
	default:
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		if cfg.Postgres.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		}
		if cfg.Postgres.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		}
		if cfg.Postgres.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		}
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run init statement: %w", err)
		}
	}

	d := &Database{
		db:      db,
		dialect: dialect,
		qb:      NewQueryBuilder(dialect),
	}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// postgresDSN builds a lib/pq connection string.
func postgresDSN(cfg PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if _, ok := d.dialect.(*PostgresDialect); ok {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS characters (
			id %s,
			name TEXT UNIQUE NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			gold INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS skills (
			id %s,
			key TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS skill_progress (
			id %s,
			character_id INTEGER NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
			skill_id INTEGER NOT NULL REFERENCES skills(id),
			level INTEGER NOT NULL DEFAULT 1,
			xp INTEGER NOT NULL DEFAULT 0,
			UNIQUE(character_id, skill_id)
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS monsters (
			id %s,
			name TEXT UNIQUE NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			hp INTEGER NOT NULL DEFAULT 1,
			attack INTEGER NOT NULL DEFAULT 1,
			defense INTEGER NOT NULL DEFAULT 0,
			magic INTEGER NOT NULL DEFAULT 0,
			ranged INTEGER NOT NULL DEFAULT 0,
			reward_xp INTEGER NOT NULL DEFAULT 0,
			reward_gold INTEGER NOT NULL DEFAULT 0,
			min_floor INTEGER NOT NULL DEFAULT 0,
			max_floor INTEGER NOT NULL DEFAULT 0
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS battles (
			id %s,
			character_id INTEGER NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
			monster_id INTEGER NOT NULL REFERENCES monsters(id),
			character_name TEXT NOT NULL,
			character_hp INTEGER NOT NULL,
			character_hp_max INTEGER NOT NULL,
			monster_name TEXT NOT NULL,
			monster_hp INTEGER NOT NULL,
			monster_hp_max INTEGER NOT NULL,
			floor INTEGER NOT NULL DEFAULT 1,
			void_intensity INTEGER NOT NULL DEFAULT 0,
			combat_style TEXT NOT NULL DEFAULT 'attack',
			reward_xp_base INTEGER NOT NULL DEFAULT 0,
			reward_gold_base INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'ongoing',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			ended_at TIMESTAMP
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS battle_turns (
			id %s,
			battle_id INTEGER NOT NULL REFERENCES battles(id) ON DELETE CASCADE,
			turn_no INTEGER NOT NULL,
			actor TEXT NOT NULL,
			action TEXT NOT NULL,
			damage INTEGER NOT NULL DEFAULT 0,
			character_hp_after INTEGER NOT NULL,
			monster_hp_after INTEGER NOT NULL,
			narrative TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(battle_id, turn_no)
		)`, serial),

		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		)`,

		// At most one ongoing battle per character, enforced by the store so
		// concurrent starts cannot both slip through.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_battles_one_ongoing
			ON battles(character_id) WHERE status = 'ongoing'`,

		`CREATE INDEX IF NOT EXISTS idx_battles_character_id ON battles(character_id)`,
		`CREATE INDEX IF NOT EXISTS idx_battles_floor_status ON battles(character_id, floor, status)`,
		`CREATE INDEX IF NOT EXISTS idx_battle_turns_battle_id ON battle_turns(battle_id)`,
		`CREATE INDEX IF NOT EXISTS idx_skill_progress_character_id ON skill_progress(character_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return d.seedSkills()
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Dialect returns the active SQL dialect.
func (d *Database) Dialect() Dialect {
	return d.dialect
}

// Begin starts a transaction.
func (d *Database) Begin() (*sql.Tx, error) {
	return d.db.Begin()
}
