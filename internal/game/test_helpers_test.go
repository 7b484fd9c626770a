package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// scriptedRoller replays a fixed sequence of rolls and fails the test if the
// game asks for more.
type scriptedRoller struct {
	t     *testing.T
	rolls []int
	next  int
}

func newScriptedRoller(t *testing.T, rolls ...int) *scriptedRoller {
	t.Helper()
	return &scriptedRoller{t: t, rolls: rolls}
}

func (r *scriptedRoller) Roll() int {
	if r.next >= len(r.rolls) {
		r.t.Fatalf("scripted roller exhausted after %d rolls", len(r.rolls))
	}
	roll := r.rolls[r.next]
	r.next++
	return roll
}

// cycleRoller repeats its rolls forever.
type cycleRoller struct {
	rolls []int
	next  int
}

func (r *cycleRoller) Roll() int {
	roll := r.rolls[r.next%len(r.rolls)]
	r.next++
	return roll
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}
