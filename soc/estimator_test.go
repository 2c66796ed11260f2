package soc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlap/bms/calibration"
)

// linearCal maps 12V..13V linearly onto 0..100% SOC at every temperature,
// so the voltage whose OCV SOC is 50% is exactly 12.5V.
func linearCal(t *testing.T) *calibration.Pack {
	p := &calibration.Pack{
		VoltageAxis:     []float32{12.0, 13.0},
		TemperatureAxis: []float32{263, 313},
		SOCAxis:         []float32{0, 100},
		SOCTable:        [][]float32{{0, 0}, {100, 100}},
		ResistanceTable: [][]float32{{0.02, 0.01}, {0.01, 0.005}},
	}
	require.NoError(t, p.Validate())
	return p
}

func TestUpdateHoldsAtTrueOCV(t *testing.T) {
	e := New(50.0, 100.0, linearCal(t))
	before := e.Status()

	e.Update(12.5, 0, 298, 1.0)

	s := e.Status()
	assert.InDelta(t, 50.0, s.SOCPercent, 1e-3)
	assert.Less(t, s.ErrorCovariance, before.ErrorCovariance)
	assert.Equal(t, uint32(1), s.UpdateCount)
}

func TestCovarianceDecreasesMonotonically(t *testing.T) {
	e := New(50.0, 100.0, linearCal(t))
	prev := e.Status().ErrorCovariance
	for i := 0; i < 100; i++ {
		e.Update(12.5, 0, 298, 0.1)
		s := e.Status()
		assert.Less(t, s.ErrorCovariance, prev, "tick %d", i)
		assert.GreaterOrEqual(t, s.KalmanGain, float32(0))
		assert.LessOrEqual(t, s.KalmanGain, float32(1))
		prev = s.ErrorCovariance
	}
}

func TestUpdatePullsTowardOCV(t *testing.T) {
	// Counted SOC says 20%, terminal voltage says 50%: the fused estimate
	// must land strictly between, nearer the counter (measurement noise is
	// tuned high).
	e := New(20.0, 100.0, linearCal(t))
	e.Update(12.5, 0, 298, 1.0)

	s := e.Status()
	assert.Greater(t, s.SOCPercent, float32(20.0))
	assert.Less(t, s.SOCPercent, float32(35.0))
}

func TestDischargeLowersSOC(t *testing.T) {
	e := New(80.0, 100.0, linearCal(t))
	// 36A for 100s moves 1% of a 100Ah pack.
	for i := 0; i < 100; i++ {
		e.Update(12.8, 36.0, 298, 1.0)
	}
	assert.InDelta(t, 79.0, e.SOC(), 0.5)

	// Charging (negative current) moves it back up.
	for i := 0; i < 100; i++ {
		e.Update(12.8, -36.0, 298, 1.0)
	}
	assert.InDelta(t, 80.0, e.SOC(), 0.5)
}

func TestBoundedUnderExtremeInput(t *testing.T) {
	e := New(50.0, 100.0, linearCal(t))
	nominal := float32(100.0)
	currents := []float32{1e4, -1e4, 5000, -5000, 0.05, 0, 1e4}
	for i := 0; i < 500; i++ {
		c := currents[i%len(currents)]
		e.Update(11.0+float32(i%5), c, 250+float32(i%100), 1.0)

		s := e.Status()
		assert.GreaterOrEqual(t, s.SOCPercent, float32(0))
		assert.LessOrEqual(t, s.SOCPercent, float32(100))
		assert.GreaterOrEqual(t, s.CurrentCapacityAh, 0.5*nominal)
		assert.LessOrEqual(t, s.CurrentCapacityAh, 1.2*nominal)
		assert.GreaterOrEqual(t, s.ErrorCovariance, float32(0))
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Status {
		e := New(60.0, 100.0, linearCal(t))
		var out []Status
		for i := 0; i < 200; i++ {
			e.Update(12.3+float32(i%7)*0.05, float32(i%13)-6, 280+float32(i%30), 0.1)
			out = append(out, e.Status())
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestInvalidTickIsNoOp(t *testing.T) {
	e := New(50.0, 100.0, linearCal(t))
	before := e.Status()

	e.Update(12.5, 30, 298, 0)
	assert.Equal(t, before, e.Status())

	e.Update(12.5, 30, 298, -1)
	assert.Equal(t, before, e.Status())

	var nilEst *Estimator
	assert.NotPanics(t, func() { nilEst.Update(12.5, 30, 298, 1.0) })
}

func TestUpdateFromADC(t *testing.T) {
	a := New(50.0, 100.0, linearCal(t))
	b := New(50.0, 100.0, linearCal(t))

	a.Update(12.5, 40.0, 298, 1.0)
	b.UpdateFromADC(12.5, 2.5+0.0267*40, 2.5+0.004*40, 298, 1.0)

	assert.InDelta(t, a.SOC(), b.SOC(), 1e-3)
}

func TestInternalResistanceLookup(t *testing.T) {
	e := New(0, 100.0, linearCal(t))
	assert.InDelta(t, 0.02, e.InternalResistance(263), 1e-4)
}
