package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/potsim/internal/config"
	"github.com/lox/potsim/internal/game"
	"github.com/lox/potsim/internal/randutil"
	"github.com/lox/potsim/internal/statistics"
)

// Progress is reported every ProgressInterval games
type Progress struct {
	Completed      int
	Total          int
	Elapsed        time.Duration
	GamesPerSecond float64
}

// Fraction is the completed share of the run in [0, 1]
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Config holds configuration for a Monte Carlo run
type Config struct {
	Run    config.Config
	Logger *log.Logger

	// Die overrides the seeded die built from Run.Simulation.Seed.
	Die game.Roller

	// Clock defaults to the real clock.
	Clock quartz.Clock

	ProgressInterval int
	OnProgress       func(Progress)
}

// Simulator repeats independent games and tallies their outcomes
type Simulator struct {
	config Config
	die    game.Roller
	logger *log.Logger
}

// New validates the configuration and creates a simulator. When no die is
// given, a die seeded from Run.Simulation.Seed is built; a zero seed is first
// resolved to a time based one and written back so the aggregate records it.
func New(cfg Config) (*Simulator, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := cfg.Run.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}

	die := cfg.Die
	if die == nil {
		cfg.Run.Simulation.Seed = randutil.ResolveSeed(cfg.Run.Simulation.Seed)
		die = randutil.NewDie(cfg.Run.Simulation.Seed)
	}

	return &Simulator{
		config: cfg,
		die:    die,
		logger: cfg.Logger.WithPrefix("simulator"),
	}, nil
}

// Config returns the resolved run configuration, including the seed
func (s *Simulator) Config() config.Config {
	return s.config.Run
}

// Run plays Repetition games and returns the aggregate. Cancelling ctx stops
// the run between games.
func (s *Simulator) Run(ctx context.Context) (*statistics.Aggregate, error) {
	run := s.config.Run
	total := run.Simulation.Repetition
	gameCfg := run.GameConfig()

	start := s.config.Clock.Now()
	agg := statistics.NewAggregate(uuid.NewString(), start, run)

	s.logger.Debug("Starting simulation",
		"id", agg.ID,
		"games", total,
		"players", gameCfg.PlayersCount,
		"seed", run.Simulation.Seed,
	)

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation interrupted after %d of %d games: %w", i, total, err)
		}

		g, err := game.New(gameCfg, s.die, s.config.Logger)
		if err != nil {
			return nil, fmt.Errorf("create game %d: %w", i+1, err)
		}
		result, err := g.Simulate()
		if err != nil {
			return nil, fmt.Errorf("simulate game %d: %w", i+1, err)
		}
		agg.Add(result)

		if s.config.OnProgress != nil && s.config.ProgressInterval > 0 {
			done := i + 1
			if done%s.config.ProgressInterval == 0 || done == total {
				s.config.OnProgress(s.progress(start, done, total))
			}
		}
	}

	if err := agg.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	s.logger.Debug("Simulation complete", "id", agg.ID, "games", total, "elapsed", elapsed)
	return agg, nil
}

func (s *Simulator) progress(start time.Time, done, total int) Progress {
	elapsed := s.config.Clock.Since(start)
	var rate float64
	if elapsed > 0 {
		rate = float64(done) / elapsed.Seconds()
	}
	return Progress{
		Completed:      done,
		Total:          total,
		Elapsed:        elapsed,
		GamesPerSecond: rate,
	}
}

// RunSimulation is a convenience function for running a simulation with a
// loaded configuration.
func RunSimulation(ctx context.Context, run config.Config, logger *log.Logger) (*statistics.Aggregate, error) {
	simulator, err := New(Config{
		Run:    run,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	return simulator.Run(ctx)
}
