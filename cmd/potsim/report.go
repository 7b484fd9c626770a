package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/potsim/internal/report"
	"github.com/lox/potsim/internal/statistics"
	"github.com/lox/potsim/internal/store"
)

type ReportCmd struct {
	Metrics []string `arg:"" optional:"" help:"Metrics to chart: turns, cycles, winner-coins, pot-coins (all when omitted)"`
	Input   string   `short:"i" default:"simulation_result/simulation_result.cbor" type:"path" help:"Aggregated results written by simulate"`
	Archive string   `type:"path" help:"Read the run from this SQLite archive instead of --input"`
	RunID   string   `name:"run" help:"Run ID in the archive (latest when empty)"`

	Summary bool   `help:"Print only the summary table"`
	Width   int    `default:"60" help:"Chart width in columns"`
	Height  int    `default:"15" help:"Chart height in rows"`
	Top     int    `default:"3" help:"Most frequent values listed per metric"`
	CSVDir  string `name:"csv-dir" type:"path" help:"Also export one <metric>.csv per chart into this directory"`
}

func (c *ReportCmd) Run(g *Globals) error {
	logger := g.Logger()

	metrics, err := c.metrics()
	if err != nil {
		return err
	}

	agg, err := c.load(context.Background())
	if err != nil {
		return err
	}
	logger.Debug("Loaded run", "id", agg.ID, "games", agg.Repetition())

	opts := report.Options{
		Width:  c.Width,
		Height: c.Height,
		Color:  !g.NoColor,
		Top:    c.Top,
	}

	if c.Summary {
		return report.WriteSummary(os.Stdout, agg, opts)
	}

	for i, metric := range metrics {
		if i > 0 {
			fmt.Println()
		}
		if err := report.WriteMetric(os.Stdout, agg, metric, opts); err != nil {
			return err
		}
		if c.CSVDir == "" {
			continue
		}
		points, err := report.Distribution(agg, metric)
		if err != nil {
			return err
		}
		path := filepath.Join(c.CSVDir, string(metric)+".csv")
		if err := report.SaveCSV(path, metric, points); err != nil {
			return err
		}
		logger.Info("Exported distribution", "metric", metric, "path", path)
	}
	return nil
}

func (c *ReportCmd) metrics() ([]statistics.Metric, error) {
	if len(c.Metrics) == 0 {
		return statistics.Metrics, nil
	}
	metrics := make([]statistics.Metric, 0, len(c.Metrics))
	for _, name := range c.Metrics {
		m, err := statistics.ParseMetric(name)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

func (c *ReportCmd) load(ctx context.Context) (*statistics.Aggregate, error) {
	if c.Archive == "" {
		if c.RunID != "" {
			return nil, errors.New("--run requires --archive")
		}
		return store.LoadBlob(c.Input)
	}

	archive, err := store.OpenArchive(ctx, c.Archive)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	if c.RunID == "" {
		return archive.Latest(ctx)
	}
	return archive.Get(ctx, c.RunID)
}
