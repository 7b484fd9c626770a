// Package config loads the parameters of a simulation run.
//
// The layout mirrors the three groups of the legacy configs.json file:
// player settings, pot settings and simulation settings. Files may be written
// in HCL, YAML or the legacy JSON layout; POTSIM_* environment variables are
// applied on top.
package config

import (
	"fmt"

	"github.com/lox/potsim/internal/game"
)

// Config is the complete parameter set of a run
type Config struct {
	Player     PlayerConfig     `hcl:"player,block" yaml:"player" json:"player_configs" envPrefix:"PLAYER_"`
	Pot        PotConfig        `hcl:"pot,block" yaml:"pot" json:"pot_configs" envPrefix:"POT_"`
	Simulation SimulationConfig `hcl:"simulation,block" yaml:"simulation" json:"simulation_configs" envPrefix:"SIMULATION_"`
}

// PlayerConfig describes the players seated in every game
type PlayerConfig struct {
	PlayersCount      int `hcl:"players_count" yaml:"players_count" json:"players_count" env:"PLAYERS_COUNT"`
	InitialPlayerCoin int `hcl:"initial_player_coin" yaml:"initial_player_coin" json:"initial_player_coin" env:"INITIAL_PLAYER_COIN"`
	CoinPutAmount     int `hcl:"coin_put_amount" yaml:"coin_put_amount" json:"coin_put_amount" env:"COIN_PUT_AMOUNT"`
}

// PotConfig describes the shared pot
type PotConfig struct {
	InitialPotCoin    int  `hcl:"initial_pot_coin" yaml:"initial_pot_coin" json:"initial_pot_coin" env:"INITIAL_POT_COIN"`
	AllowZeroCoinDraw bool `hcl:"allow_zero_coin_draw" yaml:"allow_zero_coin_draw" json:"allow_zero_coin_draw" env:"ALLOW_ZERO_COIN_DRAW"`
}

// SimulationConfig controls the Monte Carlo driver
type SimulationConfig struct {
	Repetition    int   `hcl:"repetition" yaml:"repetition" json:"repetition" env:"REPETITION"`
	VerboseOutput bool  `hcl:"verbose_output,optional" yaml:"verbose_output" json:"verbose_output" env:"VERBOSE_OUTPUT"`
	Seed          int64 `hcl:"seed,optional" yaml:"seed" json:"seed,omitempty" env:"SEED"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Player: PlayerConfig{
			PlayersCount:      4,
			InitialPlayerCoin: 4,
			CoinPutAmount:     1,
		},
		Pot: PotConfig{
			InitialPotCoin:    2,
			AllowZeroCoinDraw: false,
		},
		Simulation: SimulationConfig{
			Repetition:    10000,
			VerboseOutput: false,
		},
	}
}

// GameConfig converts the file layout into the parameters of a single game.
func (c Config) GameConfig() game.Config {
	return game.Config{
		PlayersCount:      c.Player.PlayersCount,
		InitialPlayerCoin: c.Player.InitialPlayerCoin,
		InitialPotCoin:    c.Pot.InitialPotCoin,
		CoinPutAmount:     c.Player.CoinPutAmount,
		AllowZeroCoinDraw: c.Pot.AllowZeroCoinDraw,
		Verbose:           c.Simulation.VerboseOutput,
	}
}

// Validate checks every parameter before a run starts
func (c Config) Validate() error {
	if err := c.GameConfig().Validate(); err != nil {
		return err
	}
	if c.Simulation.Repetition <= 0 {
		return fmt.Errorf("repetition must be positive, got %d", c.Simulation.Repetition)
	}
	return nil
}
