package soc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdaptationFiresOncePerRestEpisode(t *testing.T) {
	e := New(50.0, 100.0, linearCal(t))

	// Ten ticks at 0.05A: rest detected from the first tick, the timer
	// reaches 5s on the fifth, and exactly one adaptation fires.
	for i := 0; i < 10; i++ {
		e.Update(12.5, 0.05, 298, 1.0)

		s := e.Status()
		if i < 4 {
			assert.Equal(t, uint32(0), s.SOHUpdateCount, "tick %d", i)
		} else {
			assert.Equal(t, uint32(1), s.SOHUpdateCount, "tick %d", i)
		}
		assert.True(t, s.Resting)
	}
}

func TestAdaptationRearmsAfterRestEnds(t *testing.T) {
	e := New(50.0, 100.0, linearCal(t))

	for i := 0; i < 6; i++ {
		e.Update(12.5, 0.0, 298, 1.0)
	}
	assert.Equal(t, uint32(1), e.Status().SOHUpdateCount)

	// Load ends the episode and resets the latch.
	e.Update(12.5, 20.0, 298, 1.0)
	s := e.Status()
	assert.False(t, s.Resting)
	assert.Equal(t, float32(0), s.RestSeconds)

	// A fresh rest episode earns a second adaptation.
	for i := 0; i < 6; i++ {
		e.Update(12.5, 0.0, 298, 1.0)
	}
	assert.Equal(t, uint32(2), e.Status().SOHUpdateCount)
}

func TestLongRestStillFiresOnce(t *testing.T) {
	e := New(50.0, 100.0, linearCal(t))
	// Ten minutes of rest, one adaptation.
	for i := 0; i < 6000; i++ {
		e.Update(12.5, 0.02, 298, 0.1)
	}
	assert.Equal(t, uint32(1), e.Status().SOHUpdateCount)
}

func TestAdaptationAdjustsCapacityAndSOH(t *testing.T) {
	// Counter says 40%, terminal voltage says 50% at rest: the pack holds
	// more than the counter assumed, so capacity ticks up.
	e := New(40.0, 100.0, linearCal(t))
	for i := 0; i < 6; i++ {
		e.Update(12.5, 0.0, 298, 1.0)
	}

	s := e.Status()
	assert.Equal(t, uint32(1), s.SOHUpdateCount)
	assert.Greater(t, s.CurrentCapacityAh, float32(100.0))
	assert.InDelta(t, 100.005, s.CurrentCapacityAh, 1e-3)
	assert.InDelta(t, s.CurrentCapacityAh/100*100, s.SOHPercent, 1e-4)
}

func TestAdaptationClampsCapacity(t *testing.T) {
	e := New(0.0, 100.0, linearCal(t))
	// An absurd adaptation rate forces the clamp in a single firing.
	e.adaptationRate = 1e6

	// Counter at 0%, voltage claims 100%.
	for i := 0; i < 6; i++ {
		e.Update(13.0, 0.0, 298, 1.0)
	}
	s := e.Status()
	assert.Equal(t, float32(120.0), s.CurrentCapacityAh)
	assert.Equal(t, float32(120.0), s.SOHPercent)

	// And the other direction.
	e2 := New(100.0, 100.0, linearCal(t))
	e2.adaptationRate = 1e6
	for i := 0; i < 6; i++ {
		e2.Update(12.0, 0.0, 298, 1.0)
	}
	s2 := e2.Status()
	assert.Equal(t, float32(50.0), s2.CurrentCapacityAh)
	assert.Equal(t, float32(50.0), s2.SOHPercent)
}

func TestNoAdaptationWhileLoaded(t *testing.T) {
	e := New(50.0, 100.0, linearCal(t))
	for i := 0; i < 100; i++ {
		e.Update(12.5, 25.0, 298, 1.0)
	}
	s := e.Status()
	assert.Equal(t, uint32(0), s.SOHUpdateCount)
	assert.False(t, s.Resting)
	assert.Equal(t, float32(100.0), s.CurrentCapacityAh)
}
