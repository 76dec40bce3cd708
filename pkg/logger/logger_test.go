package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_UnknownLevelFallsBack(t *testing.T) {
	l := NewLogger("loud")
	assert.NotNil(t, l)
	assert.True(t, l.logger.Desugar().Core().Enabled(0)) // info
	assert.False(t, l.logger.Desugar().Core().Enabled(-1))
}

func TestNewLogger_DebugLevel(t *testing.T) {
	l := NewLogger("debug")
	assert.True(t, l.logger.Desugar().Core().Enabled(-1))
}

func TestWith_ReturnsChildLogger(t *testing.T) {
	l := NewNop()
	child := l.With("runID", "abc")
	assert.NotSame(t, l, child)
	child.Info("still works", "k", "v")
}
