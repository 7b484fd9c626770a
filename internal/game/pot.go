package game

import "fmt"

// Pot is the coin reservoir shared by every Player of a game.
type Pot struct {
	coin              int
	allowZeroCoinDraw bool
}

// NewPot creates a pot holding coin coins. Whether a draw of zero coins
// counts as a legal action is decided by allowZeroCoinDraw.
func NewPot(coin int, allowZeroCoinDraw bool) *Pot {
	if coin < 0 {
		panic(fmt.Sprintf("game: negative initial pot coin %d", coin))
	}
	return &Pot{coin: coin, allowZeroCoinDraw: allowZeroCoinDraw}
}

// Coin returns the current balance
func (p *Pot) Coin() int {
	return p.coin
}

// AllowsZeroCoinDraw reports the zero draw policy
func (p *Pot) AllowsZeroCoinDraw() bool {
	return p.allowZeroCoinDraw
}

// PutCoin adds amount coins to the pot.
func (p *Pot) PutCoin(amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("game: put of negative amount %d", amount))
	}
	p.coin += amount
}

// DrawCoin removes amount coins from the pot. It fails with
// ErrPotInsufficientCoin when amount exceeds the balance, or when amount is
// zero and zero draws are disallowed.
func (p *Pot) DrawCoin(amount int) error {
	if amount < 0 {
		panic(fmt.Sprintf("game: draw of negative amount %d", amount))
	}
	if amount == 0 && !p.allowZeroCoinDraw {
		return ErrPotInsufficientCoin
	}
	if amount > p.coin {
		return ErrPotInsufficientCoin
	}

	p.coin -= amount
	if p.coin < 0 {
		panic(fmt.Sprintf("game: pot balance went negative (%d)", p.coin))
	}
	return nil
}

// DrawHalfCoins draws floor(coin/2) coins and returns the amount drawn.
func (p *Pot) DrawHalfCoins() (int, error) {
	half := p.coin / 2
	if err := p.DrawCoin(half); err != nil {
		return 0, err
	}
	return half, nil
}

// DrawAllCoins empties the pot and returns the amount drawn.
func (p *Pot) DrawAllCoins() (int, error) {
	all := p.coin
	if err := p.DrawCoin(all); err != nil {
		return 0, err
	}
	return all, nil
}
