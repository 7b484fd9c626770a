package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/potsim/cmd/potsim/shared"
	"github.com/lox/potsim/internal/config"
	"github.com/lox/potsim/internal/report"
	"github.com/lox/potsim/internal/simulator"
	"github.com/lox/potsim/internal/statistics"
	"github.com/lox/potsim/internal/store"
)

type SimulateCmd struct {
	Config  string `short:"c" default:"potsim.hcl" type:"path" help:"Configuration file (.hcl, .yaml or legacy .json); defaults apply when missing"`
	Output  string `short:"o" default:"simulation_result/simulation_result.cbor" type:"path" help:"Where to write the aggregated results"`
	Archive string `type:"path" help:"Also record the run in this SQLite archive"`

	Players           *int   `help:"Override number of players"`
	PlayerCoin        *int   `name:"player-coin" help:"Override initial coin of each player"`
	PutAmount         *int   `name:"put-amount" help:"Override coin a player puts in on rolls 4-6"`
	PotCoin           *int   `name:"pot-coin" help:"Override initial coin in the pot"`
	AllowZeroCoinDraw *bool  `name:"allow-zero-coin-draw" help:"Override whether drawing from an empty pot is allowed"`
	Repetition        *int   `short:"n" help:"Override number of games to simulate"`
	Seed              *int64 `help:"Deterministic RNG seed (0 picks one from the clock)"`

	Verbose  bool `short:"v" help:"Narrate every turn of every game"`
	Progress bool `default:"true" negatable:"" help:"Show a progress bar on stderr"`
	Summary  bool `default:"true" negatable:"" help:"Print a summary table when done"`
	Top      int  `default:"3" help:"Most frequent values shown per metric"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := g.Logger()

	cfg, err := c.resolveConfig()
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	simCfg := simulator.Config{
		Run:    cfg,
		Logger: logger,
	}
	if c.Progress && !cfg.Simulation.VerboseOutput {
		bar := newProgressPrinter(os.Stderr, !g.NoColor)
		simCfg.ProgressInterval = progressInterval(cfg.Simulation.Repetition)
		simCfg.OnProgress = bar.Update
	}

	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}
	resolved := sim.Config()

	logger.Info("Starting simulation",
		"games", resolved.Simulation.Repetition,
		"players", resolved.Player.PlayersCount,
		"seed", resolved.Simulation.Seed,
	)

	agg, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	if err := store.SaveBlob(c.Output, agg); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	logger.Info("Results saved", "id", agg.ID, "path", c.Output)

	if c.Archive != "" {
		if err := recordRun(ctx, logger, c.Archive, agg); err != nil {
			return err
		}
	}

	if c.Summary {
		return report.WriteSummary(os.Stdout, agg, report.Options{
			Color: !g.NoColor,
			Top:   c.Top,
		})
	}
	return nil
}

// resolveConfig layers file, environment and flags, in that order
func (c *SimulateCmd) resolveConfig() (config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}
	c.applyOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (c *SimulateCmd) applyOverrides(cfg *config.Config) {
	if c.Players != nil {
		cfg.Player.PlayersCount = *c.Players
	}
	if c.PlayerCoin != nil {
		cfg.Player.InitialPlayerCoin = *c.PlayerCoin
	}
	if c.PutAmount != nil {
		cfg.Player.CoinPutAmount = *c.PutAmount
	}
	if c.PotCoin != nil {
		cfg.Pot.InitialPotCoin = *c.PotCoin
	}
	if c.AllowZeroCoinDraw != nil {
		cfg.Pot.AllowZeroCoinDraw = *c.AllowZeroCoinDraw
	}
	if c.Repetition != nil {
		cfg.Simulation.Repetition = *c.Repetition
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = *c.Seed
	}
	if c.Verbose {
		cfg.Simulation.VerboseOutput = true
	}
}

// progressInterval redraws roughly a hundred times per run
func progressInterval(total int) int {
	return max(total/100, 1)
}

func recordRun(ctx context.Context, logger *log.Logger, path string, agg *statistics.Aggregate) error {
	archive, err := store.OpenArchive(ctx, path)
	if err != nil {
		return err
	}
	defer archive.Close()

	if err := archive.Record(ctx, agg); err != nil {
		return err
	}
	logger.Info("Run archived", "id", agg.ID, "archive", path)
	return nil
}
