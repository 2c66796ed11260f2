package soc

import "math"

// Dual-channel hall current sensor. Channel A is high resolution but
// saturates at ±70A; channel B covers the full pack range at lower
// resolution. Both idle at 2.5V.
const (
	sensorZeroOffsetV   = 2.5
	channelASensitivity = 0.0267 // V/A
	channelBSensitivity = 0.004  // V/A
	channelAMaxCurrentA = 70.0
)

// DecodeCurrent converts the two sensor ADC voltages to amps. Channel A is
// used while its reading is inside the ±70A window, otherwise channel B
// takes over. There is no hysteresis at the boundary, so a current sitting
// exactly on 70A may toggle the selected channel tick to tick.
func DecodeCurrent(adcAVolts, adcBVolts float32) float32 {
	currentA := (adcAVolts - sensorZeroOffsetV) / channelASensitivity
	if math.Abs(float64(currentA)) <= channelAMaxCurrentA {
		return currentA
	}
	return (adcBVolts - sensorZeroOffsetV) / channelBSensitivity
}
