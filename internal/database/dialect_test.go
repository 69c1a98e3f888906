package database

import (
	"errors"
	"testing"
)

func TestNewDialect(t *testing.T) {
	if _, ok := NewDialect(DialectSQLite).(*SQLiteDialect); !ok {
		t.Error("DialectSQLite should yield *SQLiteDialect")
	}
	if _, ok := NewDialect(DialectPostgres).(*PostgresDialect); !ok {
		t.Error("DialectPostgres should yield *PostgresDialect")
	}
	// Unknown dialect defaults to SQLite
	if _, ok := NewDialect("unknown").(*SQLiteDialect); !ok {
		t.Error("unknown dialect should default to *SQLiteDialect")
	}
}

func TestSQLiteDialect(t *testing.T) {
	d := &SQLiteDialect{}

	if got := d.DriverName(); got != "sqlite" {
		t.Errorf("DriverName() = %q, want sqlite", got)
	}
	if got := d.Placeholder(5); got != "?" {
		t.Errorf("Placeholder(5) = %q, want ?", got)
	}
	if !d.SupportsLastInsertID() {
		t.Error("SupportsLastInsertID() = false, want true")
	}
	if got := d.ReturningClause("id"); got != "" {
		t.Errorf("ReturningClause() = %q, want empty", got)
	}
	if got := d.RowLockClause(); got != "" {
		t.Errorf("RowLockClause() = %q, want empty", got)
	}
	if len(d.InitStatements()) == 0 {
		t.Error("InitStatements() should include PRAGMA statements")
	}
}

func TestPostgresDialect(t *testing.T) {
	d := &PostgresDialect{}

	if got := d.DriverName(); got != "postgres" {
		t.Errorf("DriverName() = %q, want postgres", got)
	}
	if got := d.Placeholder(1); got != "$1" {
		t.Errorf("Placeholder(1) = %q, want $1", got)
	}
	if got := d.Placeholder(12); got != "$12" {
		t.Errorf("Placeholder(12) = %q, want $12", got)
	}
	if d.SupportsLastInsertID() {
		t.Error("SupportsLastInsertID() = true, want false")
	}
	if got := d.ReturningClause("id"); got != " RETURNING id" {
		t.Errorf("ReturningClause() = %q", got)
	}
	if got := d.RowLockClause(); got != " FOR UPDATE" {
		t.Errorf("RowLockClause() = %q", got)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	sqlite := &SQLiteDialect{}
	pg := &PostgresDialect{}

	if sqlite.IsDuplicateKeyError(nil) || pg.IsDuplicateKeyError(nil) {
		t.Error("nil error should not be a duplicate key error")
	}

	if !sqlite.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: characters.name")) {
		t.Error("SQLite unique violation not detected")
	}
	if sqlite.IsDuplicateKeyError(errors.New("no such table: characters")) {
		t.Error("unrelated SQLite error misdetected")
	}

	for _, msg := range []string{
		`pq: duplicate key value violates unique constraint "characters_name_key"`,
		"ERROR: 23505",
	} {
		if !pg.IsDuplicateKeyError(errors.New(msg)) {
			t.Errorf("Postgres unique violation not detected: %s", msg)
		}
	}
	if pg.IsDuplicateKeyError(errors.New("connection refused")) {
		t.Error("unrelated Postgres error misdetected")
	}
}

func TestQueryBuilder_Build(t *testing.T) {
	sqliteQB := NewQueryBuilder(&SQLiteDialect{})
	pgQB := NewQueryBuilder(&PostgresDialect{})

	query := "SELECT * FROM battles WHERE character_id = ? AND status = ?"

	if got := sqliteQB.Build(query); got != query {
		t.Errorf("SQLite Build() should pass through unchanged, got %q", got)
	}

	want := "SELECT * FROM battles WHERE character_id = $1 AND status = $2"
	if got := pgQB.Build(query); got != want {
		t.Errorf("Postgres Build() = %q, want %q", got, want)
	}
}

func TestQueryBuilder_BuildWithReturning(t *testing.T) {
	sqliteQB := NewQueryBuilder(&SQLiteDialect{})
	pgQB := NewQueryBuilder(&PostgresDialect{})

	query := "INSERT INTO characters (name) VALUES (?)"

	if got := sqliteQB.BuildWithReturning(query, "id"); got != query {
		t.Errorf("SQLite BuildWithReturning() = %q, want %q", got, query)
	}

	want := "INSERT INTO characters (name) VALUES ($1) RETURNING id"
	if got := pgQB.BuildWithReturning(query, "id"); got != want {
		t.Errorf("Postgres BuildWithReturning() = %q, want %q", got, want)
	}
}

func TestQueryBuilder_BuildForUpdate(t *testing.T) {
	sqliteQB := NewQueryBuilder(&SQLiteDialect{})
	pgQB := NewQueryBuilder(&PostgresDialect{})

	query := "SELECT id FROM battles WHERE id = ?"

	if got := sqliteQB.BuildForUpdate(query); got != query {
		t.Errorf("SQLite BuildForUpdate() = %q, want %q", got, query)
	}

	want := "SELECT id FROM battles WHERE id = $1 FOR UPDATE"
	if got := pgQB.BuildForUpdate(query); got != want {
		t.Errorf("Postgres BuildForUpdate() = %q, want %q", got, want)
	}
}
