package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/potsim/internal/store"
)

// WriteRuns renders the archive listing as a table, newest run first.
func WriteRuns(w io.Writer, runs []store.RunSummary, opts Options) error {
	st := newStyles(newRenderer(w, opts.Color))
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, st.Axis.Render("No runs recorded"))
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		cfg := run.Config
		rows = append(rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			fmt.Sprint(cfg.Player.PlayersCount),
			fmt.Sprintf("%d/%d/%d", cfg.Player.InitialPlayerCoin, cfg.Player.CoinPutAmount, cfg.Pot.InitialPotCoin),
			allowed(cfg.Pot.AllowZeroCoinDraw),
			fmt.Sprint(cfg.Simulation.Repetition),
			fmt.Sprint(cfg.Simulation.Seed),
			fmt.Sprintf("%.2f", run.MeanTurns),
			fmt.Sprintf("%.2f", run.MeanCycles),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers("ID", "Created", "Players", "Coin/Put/Pot", "Zero draws", "Games", "Seed", "Avg turns", "Avg cycles").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Label.Padding(0, 1)
			}
			return st.Value.Padding(0, 1)
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
