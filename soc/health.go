package soc

import "math"

const (
	// A pack is considered at rest below this current. Only at rest does
	// the OCV lookup reflect true SOC well enough to judge capacity.
	restCurrentThresholdA = 0.1

	// How long the pack must rest before one adaptation may fire.
	restSettleSeconds = 5.0

	minCapacityFraction = 0.5
	maxCapacityFraction = 1.2
)

// trackRest runs the rest-period state machine and, once per contiguous
// rest episode, adapts the usable capacity from the divergence between the
// coulomb-counted SOC and the OCV SOC.
func (e *Estimator) trackRest(current, coulombSOC, ocvSOC, dt float32) {
	if math.Abs(float64(current)) >= restCurrentThresholdA {
		if e.resting {
			log.Debugf("rest ended after %.1fs", e.restTimer)
		}
		e.resting = false
		e.restTimer = 0
		e.correctionApplied = false
		return
	}

	if !e.resting {
		e.resting = true
		e.restTimer = 0
		e.correctionApplied = false
		log.Debug("rest period started")
	}
	e.restTimer += dt

	if e.restTimer < restSettleSeconds || e.correctionApplied {
		return
	}
	e.adaptCapacity(coulombSOC, ocvSOC)
}

func (e *Estimator) adaptCapacity(coulombSOC, ocvSOC float32) {
	e.sohUpdateCount++

	socError := ocvSOC - coulombSOC
	e.currentCapacityAh += socError * e.nominalCapacityAh / 100 * e.adaptationRate

	lo := minCapacityFraction * e.nominalCapacityAh
	hi := maxCapacityFraction * e.nominalCapacityAh
	if e.currentCapacityAh < lo {
		e.currentCapacityAh = lo
	}
	if e.currentCapacityAh > hi {
		e.currentCapacityAh = hi
	}

	e.sohPercent = e.currentCapacityAh / e.nominalCapacityAh * 100
	e.correctionApplied = true

	log.Debugf("capacity adapted: soc error %.2f%%, capacity %.4fAh, SOH %.2f%%",
		socError, e.currentCapacityAh, e.sohPercent)
}
