package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Config holds the parameters of a single game.
type Config struct {
	PlayersCount      int
	InitialPlayerCoin int
	InitialPotCoin    int
	CoinPutAmount     int
	AllowZeroCoinDraw bool
	Verbose           bool
}

// Validate checks the parameters before any turn is taken.
func (c Config) Validate() error {
	if c.PlayersCount <= 0 {
		return fmt.Errorf("%w: players count must be positive, got %d", ErrInvalidConfig, c.PlayersCount)
	}
	if c.InitialPlayerCoin < 0 {
		return fmt.Errorf("%w: initial player coin must not be negative, got %d", ErrInvalidConfig, c.InitialPlayerCoin)
	}
	if c.InitialPotCoin < 0 {
		return fmt.Errorf("%w: initial pot coin must not be negative, got %d", ErrInvalidConfig, c.InitialPotCoin)
	}
	if c.CoinPutAmount < 0 {
		return fmt.Errorf("%w: coin put amount must not be negative, got %d", ErrInvalidConfig, c.CoinPutAmount)
	}
	// With nothing to put, a game that allows zero draws never stops, and one
	// that disallows them cannot progress past an empty pot.
	if c.CoinPutAmount == 0 {
		return fmt.Errorf("%w: coin put amount must be positive (allow_zero_coin_draw=%t)", ErrInvalidConfig, c.AllowZeroCoinDraw)
	}
	return nil
}

// TotalCoin is the number of coins in play for the whole game.
func (c Config) TotalCoin() int {
	return c.PlayersCount*c.InitialPlayerCoin + c.InitialPotCoin
}

// Result summarises a finished game.
type Result struct {
	Turns      int
	Cycles     int
	WinnerCoin int
	Winner     int // first player holding WinnerCoin
	PotCoin    int
	Reason     PlayError
	StoppedBy  int // player whose action could not be completed
}

// Game drives round-robin turns until an action fails.
type Game struct {
	config    Config
	pot       *Pot
	players   []*Player
	current   int
	totalCoin int
	finished  bool
	logger    *log.Logger
}

// New validates cfg and seats cfg.PlayersCount players sharing one pot.
// Every player rolls the same die.
func New(cfg Config, die Roller, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if die == nil {
		return nil, fmt.Errorf("%w: die cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = log.Default()
	}

	pot := NewPot(cfg.InitialPotCoin, cfg.AllowZeroCoinDraw)
	players := make([]*Player, 0, cfg.PlayersCount)
	for id := 0; id < cfg.PlayersCount; id++ {
		players = append(players, NewPlayer(id, cfg.InitialPlayerCoin, cfg.CoinPutAmount, pot, PlayerOptions{
			Die:     die,
			Logger:  logger,
			Verbose: cfg.Verbose,
		}))
	}

	return &Game{
		config:    cfg,
		pot:       pot,
		players:   players,
		current:   -1,
		totalCoin: cfg.TotalCoin(),
		logger:    logger.WithPrefix("game"),
	}, nil
}

// Pot returns the shared pot
func (g *Game) Pot() *Pot {
	return g.pot
}

// Players returns the players in seat order
func (g *Game) Players() []*Player {
	return g.players
}

func (g *Game) nextPlayer() *Player {
	g.current = (g.current + 1) % len(g.players)
	return g.players[g.current]
}

// Simulate plays the game to the end. A game can only be simulated once.
func (g *Game) Simulate() (Result, error) {
	if g.finished {
		return Result{}, ErrGameFinished
	}
	g.finished = true

	turns := 0
	var (
		reason    PlayError
		stoppedBy int
	)
	for {
		player := g.nextPlayer()
		err := player.Play()
		if err == nil {
			turns++
			g.checkInvariants()
			continue
		}

		pe, ok := asPlayError(err)
		if !ok {
			panic(fmt.Sprintf("game: unexpected error from player %d: %v", player.ID(), err))
		}
		reason, stoppedBy = pe, player.ID()
		break
	}

	winner := 0
	for i, p := range g.players {
		if p.Coin() > g.players[winner].Coin() {
			winner = i
		}
	}

	result := Result{
		Turns:      turns,
		Cycles:     turns / len(g.players),
		WinnerCoin: g.players[winner].Coin(),
		Winner:     winner,
		PotCoin:    g.pot.Coin(),
		Reason:     reason,
		StoppedBy:  stoppedBy,
	}

	if g.config.Verbose {
		g.logger.Info("play ended", "reason", result.Reason, "player", result.StoppedBy)
		g.logger.Info("summary",
			"turns", result.Turns,
			"cycles", result.Cycles,
			"winner", result.Winner,
			"winner_coin", result.WinnerCoin,
			"pot_coin", result.PotCoin,
		)
	}
	return result, nil
}

// checkInvariants panics if a balance went negative or coins were created or
// destroyed.
func (g *Game) checkInvariants() {
	total := g.pot.Coin()
	if total < 0 {
		panic(fmt.Sprintf("game: pot balance %d is negative", total))
	}
	for _, p := range g.players {
		if p.Coin() < 0 {
			panic(fmt.Sprintf("game: player %d balance %d is negative", p.ID(), p.Coin()))
		}
		total += p.Coin()
	}
	if total != g.totalCoin {
		panic(fmt.Sprintf("game: coin conservation violated: have %d, started with %d", total, g.totalCoin))
	}
}
