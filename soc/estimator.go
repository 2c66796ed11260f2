// Package soc implements the pack state-of-charge and state-of-health
// estimator. A fixed-point coulomb counter tracks charge moved tick to tick,
// a scalar Kalman filter fuses the counted SOC with the OCV-table SOC, and a
// rest-period monitor slowly adapts usable capacity from the divergence
// between the two. One Update call per control-loop tick, nominally 10Hz.
//
// An Estimator is owned by exactly one control loop and is not internally
// synchronized. Calibration packs are read-only and may be shared.
package soc

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/voltlap/bms/calibration"
)

var log = logrus.New()

const (
	// Fixed-point scale for the charge counter. The counter holds scaled
	// microamp-seconds so long accumulation doesn't drift the way a float
	// would.
	coulombScale = 1e6

	secondsPerHour = 3600

	defaultKalmanGain       = 0.1
	defaultProcessNoise     = 0.00001
	defaultMeasurementNoise = 15.0
	defaultErrorCovariance  = 0.1

	defaultAdaptationRate = 0.0005
)

// Estimator is the per-pack estimator state, mutated once per Update.
type Estimator struct {
	cal *calibration.Pack

	socPercent    float32
	chargeCounter int64 // scaled uAs; positive current is discharge and decreases it

	currentCapacityAh float32
	nominalCapacityAh float32

	kalmanGain       float32
	processNoise     float32
	measurementNoise float32
	errorCovariance  float32

	sohPercent     float32
	adaptationRate float32
	socErrorAccum  float32 // reserved for the accumulating adaptation variant

	resting           bool
	restTimer         float32
	correctionApplied bool

	updateCount    uint32
	sohUpdateCount uint32

	// Thevenin extension hooks. The resistance table and these fields are
	// not consumed by the fusion step yet.
	r0Ohm float32
	r1Ohm float32
	tauRC float32
}

// Status is a snapshot of the estimator for reporting.
type Status struct {
	SOCPercent        float32 `json:"soc_percent"`
	SOHPercent        float32 `json:"soh_percent"`
	CurrentCapacityAh float32 `json:"current_capacity_ah"`
	NominalCapacityAh float32 `json:"nominal_capacity_ah"`
	KalmanGain        float32 `json:"kalman_gain"`
	ErrorCovariance   float32 `json:"error_covariance"`
	Resting           bool    `json:"resting"`
	RestSeconds       float32 `json:"rest_seconds"`
	UpdateCount       uint32  `json:"update_count"`
	SOHUpdateCount    uint32  `json:"soh_update_count"`
}

// New creates an estimator starting from a known SOC in percent and the
// pack's nominal capacity in Ah. The capacity must be positive; the
// percentage math is undefined otherwise and New does not defend against it.
// A nil cal selects the compiled-in calibration.
func New(initialSOCPercent, nominalCapacityAh float32, cal *calibration.Pack) *Estimator {
	if cal == nil {
		cal = calibration.Default()
	}
	return &Estimator{
		cal:        cal,
		socPercent: initialSOCPercent,
		chargeCounter: int64(float64(initialSOCPercent) / 100 *
			float64(nominalCapacityAh) * secondsPerHour * coulombScale),
		currentCapacityAh: nominalCapacityAh,
		nominalCapacityAh: nominalCapacityAh,
		kalmanGain:        defaultKalmanGain,
		processNoise:      defaultProcessNoise,
		measurementNoise:  defaultMeasurementNoise,
		errorCovariance:   defaultErrorCovariance,
		sohPercent:        100,
		adaptationRate:    defaultAdaptationRate,
	}
}

// Update advances the estimator by one tick: voltage in volts, current in
// amps (positive discharging), temperature in kelvin. Calls with dt <= 0 or
// a nil receiver leave the state untouched.
func (e *Estimator) Update(voltage, current, temperature, dt float32) {
	if e == nil || dt <= 0 {
		return
	}

	e.chargeCounter -= int64(math.Round(float64(current) * float64(dt) * coulombScale))

	coulombSOC := float32(float64(e.chargeCounter) /
		(float64(e.currentCapacityAh) * secondsPerHour * coulombScale) * 100)
	coulombSOC = clampPercent(coulombSOC)

	ocvSOC := e.cal.OCVSOC(voltage, temperature)

	// Coulomb counting is the prediction: trusted over one tick, drifting
	// over many. The OCV lookup is the measurement: unbiased only at rest,
	// so it gets a large noise variance and pulls the estimate gently.
	predicted := e.errorCovariance + e.processNoise
	e.kalmanGain = predicted / (predicted + e.measurementNoise)
	e.socPercent = clampPercent(coulombSOC + e.kalmanGain*(ocvSOC-coulombSOC))
	e.errorCovariance = (1 - e.kalmanGain) * predicted

	e.trackRest(current, coulombSOC, ocvSOC, dt)

	e.updateCount++
}

// UpdateFromADC is Update with the current decoded from the raw dual-channel
// sensor voltages. This is the path the monitor daemon uses.
func (e *Estimator) UpdateFromADC(voltage, adcAVolts, adcBVolts, temperature, dt float32) {
	e.Update(voltage, DecodeCurrent(adcAVolts, adcBVolts), temperature, dt)
}

// SOC returns the current state-of-charge estimate in percent.
func (e *Estimator) SOC() float32 {
	return e.socPercent
}

// SOH returns the current state-of-health estimate in percent.
func (e *Estimator) SOH() float32 {
	return e.sohPercent
}

// InternalResistance looks up the pack resistance at the present SOC
// estimate. Informational only; the fusion step does not consume it.
func (e *Estimator) InternalResistance(temperature float32) float32 {
	return e.cal.InternalResistance(e.socPercent, temperature)
}

// Status returns a snapshot of the estimator state.
func (e *Estimator) Status() Status {
	return Status{
		SOCPercent:        e.socPercent,
		SOHPercent:        e.sohPercent,
		CurrentCapacityAh: e.currentCapacityAh,
		NominalCapacityAh: e.nominalCapacityAh,
		KalmanGain:        e.kalmanGain,
		ErrorCovariance:   e.errorCovariance,
		Resting:           e.resting,
		RestSeconds:       e.restTimer,
		UpdateCount:       e.updateCount,
		SOHUpdateCount:    e.sohUpdateCount,
	}
}

func clampPercent(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
