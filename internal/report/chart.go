package report

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// ChartOptions controls the size and labels of a line chart
type ChartOptions struct {
	Title  string
	XLabel string
	Width  int
	Height int
	Color  bool
}

const yLabelWidth = 7

// RenderChart draws points as a text line chart of probability against value.
// Values between observations are interpolated linearly.
func RenderChart(w io.Writer, opts ChartOptions, points []Point) error {
	if opts.Width < 2 {
		opts.Width = 60
	}
	if opts.Height < 2 {
		opts.Height = 15
	}
	st := newStyles(newRenderer(w, opts.Color))

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(st.Header.Render(opts.Title))
		b.WriteString("\n\n")
	}

	if len(points) == 0 {
		b.WriteString(st.Axis.Render("(no data)"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	grid := plot(points, opts.Width, opts.Height)
	maxY := maxProbability(points)

	for row, line := range grid {
		var label string
		switch row {
		case 0:
			label = formatProbability(maxY)
		case len(grid) / 2:
			label = formatProbability(maxY / 2)
		case len(grid) - 1:
			label = formatProbability(0)
		}
		b.WriteString(st.Axis.Render(fmt.Sprintf("%*s ┤", yLabelWidth, label)))
		b.WriteString(st.Line.Render(string(line)))
		b.WriteString("\n")
	}

	b.WriteString(st.Axis.Render(strings.Repeat(" ", yLabelWidth+1) + "└" + strings.Repeat("─", opts.Width)))
	b.WriteString("\n")

	minLabel := fmt.Sprint(points[0].Value)
	maxLabel := fmt.Sprint(points[len(points)-1].Value)
	gap := opts.Width - len(minLabel) - len(maxLabel)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(st.Axis.Render(strings.Repeat(" ", yLabelWidth+2) + minLabel + strings.Repeat(" ", gap) + maxLabel))
	b.WriteString("\n")
	if opts.XLabel != "" {
		pad := yLabelWidth + 2 + (opts.Width-len(opts.XLabel))/2
		if pad < 0 {
			pad = 0
		}
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(st.Label.Render(opts.XLabel))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// plot rasterises the interpolated curve into height rows of width cells.
// Row 0 is the top of the chart.
func plot(points []Point, width, height int) [][]rune {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	minX := float64(points[0].Value)
	maxX := float64(points[len(points)-1].Value)
	maxY := maxProbability(points)

	prevRow := -1
	for col := 0; col < width; col++ {
		x := minX
		if maxX > minX {
			x = minX + (maxX-minX)*float64(col)/float64(width-1)
		}
		y := interpolate(points, x)

		row := height - 1
		if maxY > 0 {
			row = height - 1 - int(math.Round(y/maxY*float64(height-1)))
		}
		grid[row][col] = '•'

		// Join steep segments so the line stays continuous
		if prevRow >= 0 {
			for r := min(row, prevRow) + 1; r < max(row, prevRow); r++ {
				grid[r][col] = '│'
			}
		}
		prevRow = row
	}
	return grid
}

// interpolate returns the probability at x, linear between the neighbouring
// observed values. points must be sorted by value.
func interpolate(points []Point, x float64) float64 {
	if x <= float64(points[0].Value) {
		return points[0].Probability
	}
	for i := 1; i < len(points); i++ {
		left, right := points[i-1], points[i]
		if x <= float64(right.Value) {
			span := float64(right.Value - left.Value)
			t := (x - float64(left.Value)) / span
			return left.Probability + t*(right.Probability-left.Probability)
		}
	}
	return points[len(points)-1].Probability
}

func maxProbability(points []Point) float64 {
	var m float64
	for _, p := range points {
		m = math.Max(m, p.Probability)
	}
	return m
}

func formatProbability(p float64) string {
	return fmt.Sprintf("%.3f", p)
}
