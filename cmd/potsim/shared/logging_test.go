package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown", "games", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "games=3")

	buf.Reset()
	logger = NewLogger(&buf, true)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewStructuredLoggerWritesLogfmt(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, false)
	logger.Debug("hidden")
	logger.Info("run archived", "games", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, `msg="run archived"`)
	assert.Contains(t, out, "games=3")
	assert.Contains(t, out, "time=")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
