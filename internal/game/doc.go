// Package game implements a single game of the coin pot dice game.
//
// A Game owns one Pot and an ordered list of Players. Players take turns in
// seat order; on each turn the active Player rolls a six-sided die and either
// passes, takes the whole pot, takes half of the pot or puts a fixed number of
// coins into it. The game stops on the first action that cannot be completed:
// a Player that cannot afford its contribution, or a draw the Pot cannot
// satisfy.
//
// # Basic Usage
//
//	g, err := game.New(game.Config{
//	    PlayersCount:      4,
//	    InitialPlayerCoin: 4,
//	    InitialPotCoin:    2,
//	    CoinPutAmount:     1,
//	}, randutil.NewDie(42), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := g.Simulate()
//
// # Deterministic Testing
//
// The die is injected through the Roller interface. Tests pass a scripted
// roller (or the generated mocks.MockRoller) to replay an exact sequence of
// rolls and check the hand-traced outcome.
package game
