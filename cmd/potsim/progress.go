package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"

	"github.com/lox/potsim/internal/simulator"
)

// progressPrinter redraws a single progress line in place
type progressPrinter struct {
	mu  sync.Mutex
	out io.Writer
	bar progress.Model
}

func newProgressPrinter(out io.Writer, color bool) *progressPrinter {
	opts := []progress.Option{
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	}
	if color {
		opts = append(opts, progress.WithDefaultGradient())
	} else {
		opts = append(opts, progress.WithColorProfile(termenv.Ascii))
	}
	return &progressPrinter{
		out: out,
		bar: progress.New(opts...),
	}
}

// Update implements the simulator progress callback
func (p *progressPrinter) Update(pr simulator.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\r%s %s", p.bar.ViewAs(pr.Fraction()), progressLine(pr))
	if pr.Completed >= pr.Total {
		fmt.Fprintln(p.out)
	}
}

func progressLine(pr simulator.Progress) string {
	return fmt.Sprintf("%3.0f%% %d/%d games (%.0f/sec)",
		pr.Fraction()*100, pr.Completed, pr.Total, pr.GamesPerSecond)
}
