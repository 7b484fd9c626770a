package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/potsim/internal/config"
	"github.com/lox/potsim/internal/simulator"
	"github.com/lox/potsim/internal/statistics"
	"github.com/lox/potsim/internal/store"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseSimulateFlags(t *testing.T) {
	t.Parallel()

	cli, ctx := parse(t, "simulate", "--players", "3", "--seed", "7", "-n", "25", "--allow-zero-coin-draw", "--no-progress")
	assert.Equal(t, "simulate", ctx.Command())

	cmd := cli.Simulate
	require.NotNil(t, cmd.Players)
	assert.Equal(t, 3, *cmd.Players)
	require.NotNil(t, cmd.Seed)
	assert.Equal(t, int64(7), *cmd.Seed)
	require.NotNil(t, cmd.Repetition)
	assert.Equal(t, 25, *cmd.Repetition)
	require.NotNil(t, cmd.AllowZeroCoinDraw)
	assert.True(t, *cmd.AllowZeroCoinDraw)
	assert.Nil(t, cmd.PotCoin)
	assert.False(t, cmd.Progress)
	assert.True(t, cmd.Summary)
}

func TestParseReportMetrics(t *testing.T) {
	t.Parallel()

	cli, ctx := parse(t, "report", "cycles", "pot-coins", "--top", "5", "--no-color")
	assert.Contains(t, ctx.Command(), "report")
	assert.True(t, cli.NoColor)

	metrics, err := cli.Report.metrics()
	require.NoError(t, err)
	assert.Equal(t, []statistics.Metric{statistics.MetricCycles, statistics.MetricPotCoins}, metrics)
	assert.Equal(t, 5, cli.Report.Top)
}

func TestReportMetricsDefaultsToAll(t *testing.T) {
	t.Parallel()

	metrics, err := (&ReportCmd{}).metrics()
	require.NoError(t, err)
	assert.Equal(t, statistics.Metrics, metrics)

	_, err = (&ReportCmd{Metrics: []string{"hands"}}).metrics()
	assert.ErrorContains(t, err, `unknown metric "hands"`)
}

func TestResolveConfigLayersFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "potsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player:\n  players_count: 5\n  initial_player_coin: 6\npot:\n  initial_pot_coin: 3\n"), 0o644))

	t.Setenv("POTSIM_PLAYER_INITIAL_PLAYER_COIN", "8")
	t.Setenv("POTSIM_SIMULATION_REPETITION", "40")

	put := 2
	repetition := 12
	cmd := &SimulateCmd{Config: path, PutAmount: &put, Repetition: &repetition, Verbose: true}

	cfg, err := cmd.resolveConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Player.PlayersCount, "from file")
	assert.Equal(t, 8, cfg.Player.InitialPlayerCoin, "env beats file")
	assert.Equal(t, 3, cfg.Pot.InitialPotCoin, "from file")
	assert.Equal(t, 2, cfg.Player.CoinPutAmount, "flag")
	assert.Equal(t, 12, cfg.Simulation.Repetition, "flag beats env")
	assert.True(t, cfg.Simulation.VerboseOutput)
}

func TestResolveConfigRejectsInvalidOverrides(t *testing.T) {
	t.Parallel()

	players := 1
	cmd := &SimulateCmd{Config: filepath.Join(t.TempDir(), "missing.hcl"), Players: &players}
	_, err := cmd.resolveConfig()
	assert.Error(t, err)
}

func TestProgressInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, progressInterval(0))
	assert.Equal(t, 1, progressInterval(50))
	assert.Equal(t, 100, progressInterval(10000))
}

func TestProgressLine(t *testing.T) {
	t.Parallel()

	line := progressLine(simulator.Progress{Completed: 250, Total: 1000, Elapsed: time.Second, GamesPerSecond: 250})
	assert.Equal(t, " 25% 250/1000 games (250/sec)", line)
}

func TestSimulateThenReportFromArchive(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out", "result.cbor")
	archivePath := filepath.Join(dir, "runs.db")

	seed := int64(11)
	repetition := 30
	sim := &SimulateCmd{
		Config:     filepath.Join(dir, "missing.hcl"),
		Output:     output,
		Archive:    archivePath,
		Seed:       &seed,
		Repetition: &repetition,
	}
	require.NoError(t, sim.Run(&Globals{NoColor: true}))

	blob, err := store.LoadBlob(output)
	require.NoError(t, err)
	assert.Equal(t, 30, blob.Repetition())
	assert.Equal(t, seed, blob.Config.Simulation.Seed)

	report := &ReportCmd{Archive: archivePath}
	fromArchive, err := report.load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, blob.ID, fromArchive.ID)
	assert.Equal(t, blob.Turns, fromArchive.Turns)

	report = &ReportCmd{Input: output, RunID: blob.ID}
	_, err = report.load(context.Background())
	assert.ErrorContains(t, err, "--run requires --archive")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "potsim.hcl")
	cmd := &ConfigInitCmd{Path: path}
	require.NoError(t, cmd.Run(&Globals{}))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	assert.ErrorContains(t, cmd.Run(&Globals{}), "already exists")

	cmd.Force = true
	assert.NoError(t, cmd.Run(&Globals{}))
}

func TestParseLogFormat(t *testing.T) {
	t.Parallel()

	cli, _ := parse(t, "--log-format", "logfmt", "runs", "main_test.go")
	assert.Equal(t, "logfmt", cli.LogFormat)
	assert.NotNil(t, cli.Logger())

	cli, _ = parse(t, "runs", "main_test.go")
	assert.Equal(t, "text", cli.LogFormat)

	var bad CLI
	parser, err := kong.New(&bad, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"--log-format", "json", "runs", "main_test.go"})
	assert.Error(t, err)
}
