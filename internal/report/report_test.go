package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/potsim/internal/config"
	"github.com/lox/potsim/internal/game"
	"github.com/lox/potsim/internal/statistics"
	"github.com/lox/potsim/internal/store"
)

func testAggregate() *statistics.Aggregate {
	cfg := config.Default()
	cfg.Player.PlayersCount = 2
	cfg.Simulation.Repetition = 4
	agg := statistics.NewAggregate("run-1", time.Unix(0, 0), cfg)
	agg.Add(game.Result{Turns: 2, Cycles: 1, WinnerCoin: 8, PotCoin: 0})
	agg.Add(game.Result{Turns: 4, Cycles: 2, WinnerCoin: 0, PotCoin: 10})
	agg.Add(game.Result{Turns: 4, Cycles: 2, WinnerCoin: 6, PotCoin: 2})
	agg.Add(game.Result{Turns: 10, Cycles: 5, WinnerCoin: 8, PotCoin: 0})
	return agg
}

func TestDistribution(t *testing.T) {
	t.Parallel()

	points, err := Distribution(testAggregate(), statistics.MetricTurns)
	require.NoError(t, err)

	assert.Equal(t, []Point{
		{Value: 2, Count: 1, Probability: 0.25},
		{Value: 4, Count: 2, Probability: 0.5},
		{Value: 10, Count: 1, Probability: 0.25},
	}, points)

	var sum float64
	for _, p := range points {
		sum += p.Probability
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	_, err = Distribution(testAggregate(), "bogus")
	assert.Error(t, err)
	_, err = Distribution(nil, statistics.MetricTurns)
	assert.Error(t, err)
}

func TestAverage(t *testing.T) {
	t.Parallel()

	agg := testAggregate()
	for _, metric := range statistics.Metrics {
		points, err := Distribution(agg, metric)
		require.NoError(t, err)
		h, _ := agg.Histogram(metric)
		// With every game accounted for the weighted average equals the mean
		assert.InDelta(t, h.Mean(), Average(points), 1e-9, "metric %s", metric)
	}

	points, _ := Distribution(agg, statistics.MetricTurns)
	assert.InDelta(t, 5.0, Average(points), 1e-9)
}

func TestMostFrequent(t *testing.T) {
	t.Parallel()

	points := []Point{
		{Value: 1, Probability: 0.2},
		{Value: 2, Probability: 0.4},
		{Value: 3, Probability: 0.2},
		{Value: 4, Probability: 0.1},
		{Value: 0, Probability: 0.1},
	}

	top := MostFrequent(points, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{top[0].Value, top[1].Value, top[2].Value})

	assert.Len(t, MostFrequent(points, 10), 5)
	// The input order is left alone
	assert.Equal(t, 1, points[0].Value)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	points, err := Distribution(testAggregate(), statistics.MetricPotCoins)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "graph", "pot-coins.csv")
	require.NoError(t, SaveCSV(path, statistics.MetricPotCoins, points))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"pot-coins", "count", "probability"},
		{"0", "2", "0.5"},
		{"2", "1", "0.25"},
		{"10", "1", "0.25"},
	}, records)
}

func TestInterpolate(t *testing.T) {
	t.Parallel()

	points := []Point{{Value: 0, Probability: 0}, {Value: 10, Probability: 1}}
	assert.InDelta(t, 0.0, interpolate(points, -5), 1e-9)
	assert.InDelta(t, 0.5, interpolate(points, 5), 1e-9)
	assert.InDelta(t, 1.0, interpolate(points, 10), 1e-9)
	assert.InDelta(t, 1.0, interpolate(points, 11), 1e-9)
}

func TestPlotMarksEveryColumn(t *testing.T) {
	t.Parallel()

	points := []Point{{Value: 0, Probability: 1}, {Value: 9, Probability: 0}}
	grid := plot(points, 10, 5)
	require.Len(t, grid, 5)

	assert.Equal(t, '•', grid[0][0], "peak at the top left")
	assert.Equal(t, '•', grid[4][9], "zero at the bottom right")
	for col := 0; col < 10; col++ {
		marked := false
		for row := range grid {
			if grid[row][col] == '•' {
				marked = true
			}
		}
		assert.True(t, marked, "column %d has no point", col)
	}
}

func TestRenderChart(t *testing.T) {
	t.Parallel()

	points, err := Distribution(testAggregate(), statistics.MetricCycles)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, ChartOptions{Title: "Cycles", XLabel: "Cycles", Width: 30, Height: 8}, points))

	out := buf.String()
	assert.Contains(t, out, "Cycles")
	assert.Contains(t, out, "0.500")
	assert.Contains(t, out, "0.000")
	assert.Contains(t, out, "•")
	assert.NotContains(t, out, "\x1b[", "no color codes without Color")

	var empty bytes.Buffer
	require.NoError(t, RenderChart(&empty, ChartOptions{}, nil))
	assert.Contains(t, empty.String(), "no data")
}

func TestWriteMetric(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteMetric(&buf, testAggregate(), statistics.MetricCycles, Options{Width: 20, Height: 6, Top: 3}))

	out := buf.String()
	assert.Contains(t, out, "Cycles distribution (4 games)")
	assert.Contains(t, out, "Average cycles: 2.50")
	assert.Contains(t, out, "Most frequent: 2 (50.0%), 1 (25.0%), 5 (25.0%)")
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, testAggregate(), Options{}))

	out := buf.String()
	assert.Contains(t, out, "Run run-1")
	for _, metric := range statistics.Metrics {
		assert.Contains(t, out, metric.Label())
	}
	assert.Contains(t, out, "5.00", "average turns")
	assert.Equal(t, 0, strings.Count(out, "\x1b["))
}

func TestWriteRuns(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Simulation.Seed = 42
	runs := []store.RunSummary{
		{ID: "run-2", CreatedAt: time.Unix(200, 0), Config: cfg, MeanTurns: 12.5, MeanCycles: 3.25},
		{ID: "run-1", CreatedAt: time.Unix(100, 0), Config: cfg, MeanTurns: 9, MeanCycles: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRuns(&buf, runs, Options{}))

	out := buf.String()
	assert.Less(t, strings.Index(out, "run-2"), strings.Index(out, "run-1"))
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "3.25")
	assert.Contains(t, out, "4/1/2")
	assert.Contains(t, out, "disallowed")
}

func TestWriteRunsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteRuns(&buf, nil, Options{}))
	assert.Equal(t, "No runs recorded\n", buf.String())
}
