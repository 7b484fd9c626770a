package main

import (
	"context"
	"os"

	"github.com/lox/potsim/internal/report"
	"github.com/lox/potsim/internal/store"
)

type RunsCmd struct {
	Archive string `arg:"" type:"existingfile" help:"SQLite archive written by simulate --archive"`
}

func (c *RunsCmd) Run(g *Globals) error {
	ctx := context.Background()

	archive, err := store.OpenArchive(ctx, c.Archive)
	if err != nil {
		return err
	}
	defer archive.Close()

	runs, err := archive.List(ctx)
	if err != nil {
		return err
	}
	return report.WriteRuns(os.Stdout, runs, report.Options{Color: !g.NoColor})
}
