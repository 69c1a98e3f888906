package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seedBattleFixtures(t *testing.T, db *Database) (*Character, *Monster) {
	t.Helper()

	c, err := db.CreateCharacter("Torvald")
	require.NoError(t, err)

	require.NoError(t, db.UpsertMonster(&Monster{
		Name: "Gloom Rat", Level: 2, HP: 15, Attack: 3, Defense: 1,
		RewardXP: 12, RewardGold: 5,
	}))
	m, err := db.GetMonsterByName("Gloom Rat")
	require.NoError(t, err)

	return c, m
}

func newTestBattle(c *Character, m *Monster) *Battle {
	return &Battle{
		CharacterID:    c.ID,
		MonsterID:      m.ID,
		CharacterName:  c.Name,
		CharacterHP:    50,
		CharacterHPMax: 50,
		MonsterName:    m.Name,
		MonsterHP:      m.HP,
		MonsterHPMax:   m.HP,
		Floor:          1,
		VoidIntensity:  3,
		CombatStyle:    "attack",
		RewardXPBase:   m.RewardXP,
		RewardGoldBase: m.RewardGold,
	}
}

func TestCreateBattle_OneOngoingPerCharacter(t *testing.T) {
	db := openTestDB(t)
	c, m := seedBattleFixtures(t, db)

	first := newTestBattle(c, m)
	require.NoError(t, db.CreateBattle(first))
	require.NotZero(t, first.ID)
	require.Equal(t, StatusOngoing, first.Status)

	// Second ongoing battle for the same character must be rejected by the
	// partial unique index.
	second := newTestBattle(c, m)
	require.ErrorIs(t, db.CreateBattle(second), ErrOngoingBattle)

	// Finishing the first battle frees the slot.
	tx, err := db.Begin()
	require.NoError(t, err)
	now := time.Now()
	first.Status = StatusFled
	first.EndedAt = &now
	require.NoError(t, db.UpdateBattleTx(tx, first))
	require.NoError(t, tx.Commit())

	third := newTestBattle(c, m)
	require.NoError(t, db.CreateBattle(third))
}

func TestOngoingBattleFor(t *testing.T) {
	db := openTestDB(t)
	c, m := seedBattleFixtures(t, db)

	b, err := db.OngoingBattleFor(c.ID)
	require.NoError(t, err)
	require.Nil(t, b)

	created := newTestBattle(c, m)
	require.NoError(t, db.CreateBattle(created))

	b, err = db.OngoingBattleFor(c.ID)
	require.NoError(t, err)
	require.NotNil(t, b)
	require.Equal(t, created.ID, b.ID)
	require.Equal(t, "Gloom Rat", b.MonsterName)
	require.Equal(t, 3, b.VoidIntensity)
	require.Nil(t, b.EndedAt)
}

func TestGetBattle_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetBattle(12345)
	require.ErrorIs(t, err, ErrBattleNotFound)
}

func TestBattleTurns_OrderAndNumbering(t *testing.T) {
	db := openTestDB(t)
	c, m := seedBattleFixtures(t, db)

	b := newTestBattle(c, m)
	require.NoError(t, db.CreateBattle(b))

	tx, err := db.Begin()
	require.NoError(t, err)

	no, err := db.NextTurnNoTx(tx, b.ID)
	require.NoError(t, err)
	require.Equal(t, 1, no)

	require.NoError(t, db.InsertTurnTx(tx, &BattleTurn{
		BattleID: b.ID, TurnNo: no, Actor: TurnActorPlayer, Action: "attack",
		Damage: 4, CharacterHPAfter: 50, MonsterHPAfter: 11,
		Narrative: "You slash Gloom Rat for 4 damage.",
	}))
	require.NoError(t, db.InsertTurnTx(tx, &BattleTurn{
		BattleID: b.ID, TurnNo: no + 1, Actor: TurnActorMonster, Action: "attack",
		Damage: 2, CharacterHPAfter: 48, MonsterHPAfter: 11,
		Narrative: "Gloom Rat strikes you for 2 damage.",
	}))
	require.NoError(t, tx.Commit())

	tx, err = db.Begin()
	require.NoError(t, err)
	no, err = db.NextTurnNoTx(tx, b.ID)
	require.NoError(t, err)
	require.Equal(t, 3, no)
	require.NoError(t, tx.Rollback())

	turns, err := db.TurnsForBattle(b.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	require.Equal(t, 1, turns[0].TurnNo)
	require.Equal(t, TurnActorPlayer, turns[0].Actor)
	require.Equal(t, 2, turns[1].TurnNo)
	require.Equal(t, TurnActorMonster, turns[1].Actor)
}

func TestCountWonOnFloor(t *testing.T) {
	db := openTestDB(t)
	c, m := seedBattleFixtures(t, db)

	finish := func(floor int, status string) {
		b := newTestBattle(c, m)
		b.Floor = floor
		require.NoError(t, db.CreateBattle(b))

		tx, err := db.Begin()
		require.NoError(t, err)
		now := time.Now()
		b.Status = status
		b.EndedAt = &now
		require.NoError(t, db.UpdateBattleTx(tx, b))
		require.NoError(t, tx.Commit())
	}

	finish(1, StatusWon)
	finish(1, StatusWon)
	finish(1, StatusLost)
	finish(2, StatusWon)

	count, err := db.CountWonOnFloor(c.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = db.CountWonOnFloor(c.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = db.CountWonOnFloor(c.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
