package statistics

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/lox/potsim/internal/config"
	"github.com/lox/potsim/internal/game"
)

// Metric names one of the four outcomes recorded per game
type Metric string

const (
	MetricTurns       Metric = "turns"
	MetricCycles      Metric = "cycles"
	MetricWinnerCoins Metric = "winner-coins"
	MetricPotCoins    Metric = "pot-coins"
)

// Metrics lists every outcome in report order
var Metrics = []Metric{MetricTurns, MetricCycles, MetricWinnerCoins, MetricPotCoins}

// ParseMetric validates a metric name
func ParseMetric(name string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", name)
}

// Label is the axis label used in reports
func (m Metric) Label() string {
	switch m {
	case MetricTurns:
		return "Turns"
	case MetricCycles:
		return "Cycles"
	case MetricWinnerCoins:
		return "Winner Coins"
	case MetricPotCoins:
		return "Pot Coins"
	default:
		return string(m)
	}
}

// Histogram maps an observed outcome value to the number of games that
// produced it.
type Histogram map[int]int

// Add records one observation of value
func (h Histogram) Add(value int) {
	h[value]++
}

// Total is the number of observations
func (h Histogram) Total() int {
	total := 0
	for _, count := range h {
		total += count
	}
	return total
}

// Keys returns the observed values in ascending order
func (h Histogram) Keys() []int {
	keys := make([]int, 0, len(h))
	for value := range h {
		keys = append(keys, value)
	}
	slices.Sort(keys)
	return keys
}

// Mean is the count-weighted mean of the observed values
func (h Histogram) Mean() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for value, count := range h {
		sum += value * count
	}
	return float64(sum) / float64(total)
}

// StdDev is the population standard deviation of the observed values
func (h Histogram) StdDev() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	mean := h.Mean()
	var ss float64
	for value, count := range h {
		d := float64(value) - mean
		ss += d * d * float64(count)
	}
	return math.Sqrt(ss / float64(total))
}

// Min returns the smallest observed value, or 0 when empty
func (h Histogram) Min() int {
	keys := h.Keys()
	if len(keys) == 0 {
		return 0
	}
	return keys[0]
}

// Max returns the largest observed value, or 0 when empty
func (h Histogram) Max() int {
	keys := h.Keys()
	if len(keys) == 0 {
		return 0
	}
	return keys[len(keys)-1]
}

// Aggregate is the output of a Monte Carlo run: the configuration it ran with
// and one histogram per metric.
type Aggregate struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Config      config.Config `json:"configs"`
	Turns       Histogram     `json:"turns"`
	Cycles      Histogram     `json:"cycles"`
	WinnerCoins Histogram     `json:"winner_coins"`
	PotCoins    Histogram     `json:"pot_coins"`
}

// NewAggregate returns an empty aggregate for cfg
func NewAggregate(id string, createdAt time.Time, cfg config.Config) *Aggregate {
	return &Aggregate{
		ID:          id,
		CreatedAt:   createdAt,
		Config:      cfg,
		Turns:       make(Histogram),
		Cycles:      make(Histogram),
		WinnerCoins: make(Histogram),
		PotCoins:    make(Histogram),
	}
}

// Add tallies one finished game
func (a *Aggregate) Add(result game.Result) {
	a.Turns.Add(result.Turns)
	a.Cycles.Add(result.Cycles)
	a.WinnerCoins.Add(result.WinnerCoin)
	a.PotCoins.Add(result.PotCoin)
}

// Repetition is the number of games the aggregate was configured for, used to
// normalise counts into probabilities.
func (a *Aggregate) Repetition() int {
	return a.Config.Simulation.Repetition
}

// Histogram returns the histogram of metric
func (a *Aggregate) Histogram(metric Metric) (Histogram, error) {
	switch metric {
	case MetricTurns:
		return a.Turns, nil
	case MetricCycles:
		return a.Cycles, nil
	case MetricWinnerCoins:
		return a.WinnerCoins, nil
	case MetricPotCoins:
		return a.PotCoins, nil
	default:
		return nil, fmt.Errorf("unknown metric %q", metric)
	}
}

// Validate checks that every histogram accounts for exactly Repetition games
// and that cycles never exceed turns.
func (a *Aggregate) Validate() error {
	if a.Repetition() <= 0 {
		return fmt.Errorf("invalid repetition: %d", a.Repetition())
	}

	for _, metric := range Metrics {
		h, _ := a.Histogram(metric)
		if total := h.Total(); total != a.Repetition() {
			return fmt.Errorf("%s histogram holds %d games, expected %d", metric, total, a.Repetition())
		}
		for value, count := range h {
			if value < 0 || count <= 0 {
				return fmt.Errorf("%s histogram has invalid bucket %d:%d", metric, value, count)
			}
		}
	}

	if a.Cycles.Max() > a.Turns.Max() {
		return fmt.Errorf("max cycles (%d) exceeds max turns (%d)", a.Cycles.Max(), a.Turns.Max())
	}
	return nil
}
