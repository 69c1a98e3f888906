package battle

import "errors"

// ErrNotYourBattle is returned when a character acts on a battle that
// belongs to someone else.
var ErrNotYourBattle = errors.New("battle belongs to another character")

// ErrBattleOver is returned when acting on a battle that already reached a
// terminal state.
var ErrBattleOver = errors.New("battle is already over")

// ErrInvalidFloor is returned for floor numbers below 1.
var ErrInvalidFloor = errors.New("invalid floor")

// ErrMonsterNotOnFloor is returned when the requested monster is not
// eligible for the requested floor.
var ErrMonsterNotOnFloor = errors.New("monster does not appear on this floor")
