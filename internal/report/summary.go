package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/potsim/internal/statistics"
)

// Options for a full metric report
type Options struct {
	Width  int
	Height int
	Color  bool
	Top    int
}

// WriteMetric renders the chart of one metric followed by its average and
// the most frequent values.
func WriteMetric(w io.Writer, agg *statistics.Aggregate, metric statistics.Metric, opts Options) error {
	points, err := Distribution(agg, metric)
	if err != nil {
		return err
	}

	err = RenderChart(w, ChartOptions{
		Title:  fmt.Sprintf("%s distribution (%d games)", metric.Label(), agg.Repetition()),
		XLabel: metric.Label(),
		Width:  opts.Width,
		Height: opts.Height,
		Color:  opts.Color,
	}, points)
	if err != nil {
		return err
	}

	st := newStyles(newRenderer(w, opts.Color))
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(st.Average.Render(fmt.Sprintf("Average %s: %.2f", strings.ToLower(metric.Label()), Average(points))))
	b.WriteString("\n")
	if opts.Top > 0 {
		b.WriteString(st.Label.Render("Most frequent:"))
		b.WriteString(" ")
		b.WriteString(st.Value.Render(formatTop(MostFrequent(points, opts.Top))))
		b.WriteString("\n")
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// WriteSummary renders one table row per metric.
func WriteSummary(w io.Writer, agg *statistics.Aggregate, opts Options) error {
	st := newStyles(newRenderer(w, opts.Color))
	top := opts.Top
	if top <= 0 {
		top = 3
	}

	rows := make([][]string, 0, len(statistics.Metrics))
	for _, metric := range statistics.Metrics {
		h, err := agg.Histogram(metric)
		if err != nil {
			return err
		}
		points, err := Distribution(agg, metric)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			metric.Label(),
			fmt.Sprint(h.Min()),
			fmt.Sprint(h.Max()),
			fmt.Sprintf("%.2f", Average(points)),
			fmt.Sprintf("%.2f", h.StdDev()),
			formatTop(MostFrequent(points, top)),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers("Metric", "Min", "Max", "Average", "Std Dev", "Most frequent").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Label.Padding(0, 1)
			}
			return st.Value.Padding(0, 1)
		})

	cfg := agg.Config
	header := fmt.Sprintf("Run %s: %d players, %d coin each, put %d, pot %d, zero draws %s, %d games, seed %d",
		agg.ID,
		cfg.Player.PlayersCount,
		cfg.Player.InitialPlayerCoin,
		cfg.Player.CoinPutAmount,
		cfg.Pot.InitialPotCoin,
		allowed(cfg.Pot.AllowZeroCoinDraw),
		cfg.Simulation.Repetition,
		cfg.Simulation.Seed,
	)

	_, err := fmt.Fprintf(w, "%s\n%s\n", st.Header.Render(header), t.Render())
	return err
}

func formatTop(points []Point) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, fmt.Sprintf("%d (%.1f%%)", p.Value, p.Probability*100))
	}
	return strings.Join(parts, ", ")
}

func allowed(ok bool) string {
	if ok {
		return "allowed"
	}
	return "disallowed"
}
