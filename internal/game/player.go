package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Player is a participant with a private balance and a handle to the shared
// pot of its game. The pot is owned by the Game, not the Player.
type Player struct {
	id            int
	coin          int
	coinPutAmount int
	pot           *Pot
	die           Roller
	logger        *log.Logger
	verbose       bool
}

// PlayerOptions configures the die and diagnostic narration of a Player.
type PlayerOptions struct {
	Die     Roller
	Logger  *log.Logger
	Verbose bool
}

// NewPlayer seats a player with the given balance and per-turn contribution.
func NewPlayer(id, coin, coinPutAmount int, pot *Pot, opts PlayerOptions) *Player {
	if coin < 0 || coinPutAmount < 0 {
		panic(fmt.Sprintf("game: player %d created with coin=%d put=%d", id, coin, coinPutAmount))
	}
	if pot == nil {
		panic("game: player created without a pot")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		id:            id,
		coin:          coin,
		coinPutAmount: coinPutAmount,
		pot:           pot,
		die:           opts.Die,
		logger:        logger.WithPrefix("player").With("player", id),
		verbose:       opts.Verbose,
	}
}

func (p *Player) ID() int            { return p.id }
func (p *Player) Coin() int          { return p.coin }
func (p *Player) CoinPutAmount() int { return p.coinPutAmount }

// PutCoinInPot moves amount coins from the player to the pot.
func (p *Player) PutCoinInPot(amount int) error {
	if amount < 0 {
		panic(fmt.Sprintf("game: player %d put negative amount %d", p.id, amount))
	}
	if amount > p.coin {
		return ErrPlayerInsufficientCoin
	}

	p.coin -= amount
	p.pot.PutCoin(amount)
	return nil
}

// DrawAllCoins takes everything in the pot.
func (p *Player) DrawAllCoins() error {
	drawn, err := p.pot.DrawAllCoins()
	if err != nil {
		return err
	}
	p.coin += drawn
	return nil
}

// DrawHalfCoins takes half of the pot, rounded down.
func (p *Player) DrawHalfCoins() error {
	drawn, err := p.pot.DrawHalfCoins()
	if err != nil {
		return err
	}
	p.coin += drawn
	return nil
}

// Play rolls the die once and performs the matching action. Errors from the
// action are returned unchanged so the Game can stop on them.
func (p *Player) Play() error {
	if p.die == nil {
		panic(fmt.Sprintf("game: player %d has no die", p.id))
	}
	coinBefore, potBefore := p.coin, p.pot.Coin()

	roll := p.die.Roll()
	action := ActionFor(roll)

	var err error
	switch action {
	case ActionPass:
	case ActionDrawAll:
		err = p.DrawAllCoins()
	case ActionDrawHalf:
		err = p.DrawHalfCoins()
	case ActionPut:
		err = p.PutCoinInPot(p.coinPutAmount)
	}

	if p.verbose {
		p.logger.Info("turn",
			"roll", roll,
			"action", action,
			"coin_before", coinBefore,
			"pot_before", potBefore,
			"coin_after", p.coin,
			"pot_after", p.pot.Coin(),
		)
	}
	return err
}
