package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEaseInOut(t *testing.T) {
	assert.Equal(t, 0.0, easeInOut(0))
	assert.Equal(t, 1.0, easeInOut(1))
	assert.InDelta(t, 0.5, easeInOut(0.5), 1e-6)
	assert.Less(t, easeInOut(0.1), 0.1, "slow start")
	assert.Greater(t, easeInOut(0.9), 0.9, "slow finish")

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := easeInOut(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestSlideAt(t *testing.T) {
	s := slide{from: 0, to: -100, start: t0, active: true}

	v, done := s.at(t0)
	assert.Equal(t, 0.0, v)
	assert.False(t, done)

	v, done = s.at(t0.Add(-time.Second))
	assert.Equal(t, 0.0, v)
	assert.False(t, done)

	v, done = s.at(t0.Add(TransitionDuration + time.Millisecond))
	assert.Equal(t, -100.0, v)
	assert.True(t, done)
}
