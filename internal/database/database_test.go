package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigratesAndSeedsSkills(t *testing.T) {
	db := openTestDB(t)

	for _, key := range []string{"attack", "range", "magic", "health"} {
		skill, err := db.GetSkillByKey(key)
		require.NoError(t, err)
		require.Equal(t, key, skill.Key)
		require.NotZero(t, skill.ID)
	}

	_, err := db.GetSkillByKey("cooking")
	require.ErrorIs(t, err, ErrSkillNotFound)
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening runs migrations again; they must be idempotent.
	db, err = Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	skill, err := db.GetSkillByKey("attack")
	require.NoError(t, err)
	require.Equal(t, "attack", skill.Key)
}

func TestSettings_RoundTrip(t *testing.T) {
	db := openTestDB(t)

	all, err := db.AllSettings()
	require.NoError(t, err)
	require.Empty(t, all)

	require.NoError(t, db.SetSetting("void_step_per_floor", "5"))
	require.NoError(t, db.SetSetting("void_cap_percent", "80"))

	value, err := db.GetSetting("void_step_per_floor")
	require.NoError(t, err)
	require.Equal(t, "5", value)

	// Upsert replaces the value
	require.NoError(t, db.SetSetting("void_step_per_floor", "7"))
	value, err = db.GetSetting("void_step_per_floor")
	require.NoError(t, err)
	require.Equal(t, "7", value)

	// Absent keys return "" rather than an error
	value, err = db.GetSetting("missing_key")
	require.NoError(t, err)
	require.Equal(t, "", value)

	all, err = db.AllSettings()
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestCharacters(t *testing.T) {
	db := openTestDB(t)

	c, err := db.CreateCharacter("Velda")
	require.NoError(t, err)
	require.Equal(t, "Velda", c.Name)
	require.Equal(t, 1, c.Level)

	_, err = db.CreateCharacter("Velda")
	require.ErrorIs(t, err, ErrCharacterExists)

	_, err = db.CreateCharacter("   ")
	require.Error(t, err)

	_, err = db.GetCharacter(9999)
	require.ErrorIs(t, err, ErrCharacterNotFound)
}
