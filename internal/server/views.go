package server

import (
	"github.com/HuntleyOG/eldvar-engine/internal/battle"
	"github.com/HuntleyOG/eldvar-engine/internal/database"
	"github.com/HuntleyOG/eldvar-engine/internal/progression"
)

// BattleView is the wire representation of a battle.
type BattleView struct {
	ID             int64  `json:"id"`
	CharacterID    int64  `json:"character_id"`
	MonsterID      int64  `json:"monster_id"`
	CharacterName  string `json:"character_name"`
	CharacterHP    int    `json:"character_hp"`
	CharacterHPMax int    `json:"character_hp_max"`
	MonsterName    string `json:"monster_name"`
	MonsterHP      int    `json:"monster_hp"`
	MonsterHPMax   int    `json:"monster_hp_max"`
	Floor          int    `json:"floor"`
	VoidIntensity  int    `json:"void_intensity"`
	CombatStyle    string `json:"combat_style"`
	Status         string `json:"status"`
}

// TurnView is the wire representation of one turn log row.
type TurnView struct {
	TurnNo           int    `json:"turn_no"`
	Actor            string `json:"actor"`
	Action           string `json:"action"`
	Damage           int    `json:"damage"`
	CharacterHPAfter int    `json:"character_hp_after"`
	MonsterHPAfter   int    `json:"monster_hp_after"`
	Narrative        string `json:"narrative"`
}

// AwardView is the wire representation of one XP grant.
type AwardView struct {
	Skill     string `json:"skill"`
	Gained    int    `json:"gained"`
	XP        int    `json:"xp"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	LeveledUp bool   `json:"leveled_up"`
}

// RewardView is the wire representation of a victory payout.
type RewardView struct {
	XP      int         `json:"xp"`
	Gold    int         `json:"gold"`
	Awards  []AwardView `json:"awards"`
	Warning string      `json:"warning,omitempty"`
}

// TurnResultView is the wire representation of one resolved exchange.
type TurnResultView struct {
	Battle  BattleView  `json:"battle"`
	Turns   []TurnView  `json:"turns"`
	Rewards *RewardView `json:"rewards,omitempty"`
}

func battleView(b *database.Battle) BattleView {
	return BattleView{
		ID:             b.ID,
		CharacterID:    b.CharacterID,
		MonsterID:      b.MonsterID,
		CharacterName:  b.CharacterName,
		CharacterHP:    b.CharacterHP,
		CharacterHPMax: b.CharacterHPMax,
		MonsterName:    b.MonsterName,
		MonsterHP:      b.MonsterHP,
		MonsterHPMax:   b.MonsterHPMax,
		Floor:          b.Floor,
		VoidIntensity:  b.VoidIntensity,
		CombatStyle:    b.CombatStyle,
		Status:         b.Status,
	}
}

func turnViews(turns []database.BattleTurn) []TurnView {
	views := make([]TurnView, 0, len(turns))
	for _, t := range turns {
		views = append(views, TurnView{
			TurnNo:           t.TurnNo,
			Actor:            t.Actor,
			Action:           t.Action,
			Damage:           t.Damage,
			CharacterHPAfter: t.CharacterHPAfter,
			MonsterHPAfter:   t.MonsterHPAfter,
			Narrative:        t.Narrative,
		})
	}
	return views
}

func awardViews(awards []progression.Award) []AwardView {
	views := make([]AwardView, 0, len(awards))
	for _, a := range awards {
		views = append(views, AwardView{
			Skill:     a.SkillKey,
			Gained:    a.Gained,
			XP:        a.XP,
			OldLevel:  a.OldLevel,
			NewLevel:  a.NewLevel,
			LeveledUp: a.LeveledUp(),
		})
	}
	return views
}

func turnResultView(result *battle.TurnResult) TurnResultView {
	view := TurnResultView{
		Battle: battleView(result.Battle),
		Turns:  turnViews(result.Turns),
	}
	if result.Rewards != nil {
		view.Rewards = &RewardView{
			XP:      result.Rewards.XP,
			Gold:    result.Rewards.Gold,
			Awards:  awardViews(result.Rewards.Awards),
			Warning: result.Rewards.Warning,
		}
	}
	return view
}
