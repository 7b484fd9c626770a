// Package report turns a simulation aggregate into probability
// distributions, text line charts and summary tables.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/lox/potsim/internal/fileutil"
	"github.com/lox/potsim/internal/statistics"
)

// Point is one outcome value with its observed probability
type Point struct {
	Value       int
	Count       int
	Probability float64
}

// Distribution normalises the histogram of metric by the run's repetition
// count. Points are sorted by value.
func Distribution(agg *statistics.Aggregate, metric statistics.Metric) ([]Point, error) {
	if agg == nil {
		return nil, errors.New("aggregate cannot be nil")
	}
	h, err := agg.Histogram(metric)
	if err != nil {
		return nil, err
	}
	repetition := agg.Repetition()
	if repetition <= 0 {
		return nil, fmt.Errorf("invalid repetition: %d", repetition)
	}

	points := make([]Point, 0, len(h))
	for _, value := range h.Keys() {
		points = append(points, Point{
			Value:       value,
			Count:       h[value],
			Probability: float64(h[value]) / float64(repetition),
		})
	}
	return points, nil
}

// Average is the probability weighted mean of the values.
func Average(points []Point) float64 {
	var sum float64
	for _, p := range points {
		sum += float64(p.Value) * p.Probability
	}
	return sum
}

// MostFrequent returns up to n points with the highest probability. Ties are
// broken by the smaller value.
func MostFrequent(points []Point, n int) []Point {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		switch {
		case a.Probability > b.Probability:
			return -1
		case a.Probability < b.Probability:
			return 1
		default:
			return a.Value - b.Value
		}
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// WriteCSV writes the distribution as value,count,probability rows.
func WriteCSV(w io.Writer, metric statistics.Metric, points []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{string(metric), "count", "probability"}); err != nil {
		return err
	}
	for _, p := range points {
		record := []string{
			strconv.Itoa(p.Value),
			strconv.Itoa(p.Count),
			strconv.FormatFloat(p.Probability, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV atomically writes the distribution to path.
func SaveCSV(path string, metric statistics.Metric, points []Point) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return WriteCSV(w, metric, points)
	})
}
