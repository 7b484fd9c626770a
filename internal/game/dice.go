package game

import "fmt"

// DieSides is the number of faces on the die every Player rolls.
const DieSides = 6

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/lox/potsim/internal/game Roller

// Roller produces die rolls in the range [1, DieSides].
type Roller interface {
	Roll() int
}

// Action is what a Player does with a roll.
type Action int

const (
	ActionPass Action = iota
	ActionDrawAll
	ActionDrawHalf
	ActionPut
)

func (a Action) String() string {
	switch a {
	case ActionPass:
		return "pass"
	case ActionDrawAll:
		return "draw-all"
	case ActionDrawHalf:
		return "draw-half"
	case ActionPut:
		return "put"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ActionFor maps a die roll to its action. A roll outside [1, DieSides]
// means the Roller is broken and panics.
func ActionFor(roll int) Action {
	switch roll {
	case 1:
		return ActionPass
	case 2:
		return ActionDrawAll
	case 3:
		return ActionDrawHalf
	case 4, 5, 6:
		return ActionPut
	default:
		panic(fmt.Sprintf("game: die roll %d outside [1, %d]", roll, DieSides))
	}
}
