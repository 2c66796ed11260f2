// Package telemetry implements the framed sample stream from the
// acquisition MCU: pack voltage, the two raw current-sense channel voltages,
// temperature and the sample interval, packed into a fixed 12-byte frame
// with a CRC-8 trailer.
package telemetry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/sigurn/crc8"
)

const (
	// FrameSize is the fixed on-wire frame length in bytes.
	FrameSize = 12

	syncByte = 0xA5

	// Field scales. All fields travel as big-endian uint16.
	packVoltsLSB = 0.001  // 1mV
	adcVoltsLSB  = 0.0001 // 0.1mV
	kelvinLSB    = 0.01   // 10mK
	dtLSB        = 0.001  // 1ms
)

var crcTable = crc8.MakeTable(crc8.Params{
	Poly:   0x31, // Polynomial 1 + x^4 + x^5 + x^8
	Init:   0xFF,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x00,
})

var ErrBadCRC = errors.New("bad crc")

// Sample is one decoded acquisition tick.
type Sample struct {
	PackVolts    float32
	ADCAVolts    float32
	ADCBVolts    float32
	TemperatureK float32
	Dt           float32 // seconds since the previous sample
}

// Encode packs the sample into a wire frame.
func (s Sample) Encode() []byte {
	frame := make([]byte, FrameSize)
	frame[0] = syncByte
	putScaled(frame[1:3], s.PackVolts, packVoltsLSB)
	putScaled(frame[3:5], s.ADCAVolts, adcVoltsLSB)
	putScaled(frame[5:7], s.ADCBVolts, adcVoltsLSB)
	putScaled(frame[7:9], s.TemperatureK, kelvinLSB)
	putScaled(frame[9:11], s.Dt, dtLSB)
	frame[11] = crc8.Checksum(frame[:11], crcTable)
	return frame
}

// Decode parses one wire frame. A frame with a wrong trailer returns
// ErrBadCRC so readers can resynchronize.
func Decode(frame []byte) (Sample, error) {
	if len(frame) != FrameSize {
		return Sample{}, fmt.Errorf("frame must be %d bytes, got %d", FrameSize, len(frame))
	}
	if frame[0] != syncByte {
		return Sample{}, fmt.Errorf("bad sync byte 0x%02X", frame[0])
	}
	if crc8.Checksum(frame[:11], crcTable) != frame[11] {
		return Sample{}, ErrBadCRC
	}
	return Sample{
		PackVolts:    getScaled(frame[1:3], packVoltsLSB),
		ADCAVolts:    getScaled(frame[3:5], adcVoltsLSB),
		ADCBVolts:    getScaled(frame[5:7], adcVoltsLSB),
		TemperatureK: getScaled(frame[7:9], kelvinLSB),
		Dt:           getScaled(frame[9:11], dtLSB),
	}, nil
}

func putScaled(b []byte, v float32, lsb float64) {
	binary.BigEndian.PutUint16(b, uint16(math.Round(float64(v)/lsb)))
}

func getScaled(b []byte, lsb float64) float32 {
	return float32(float64(binary.BigEndian.Uint16(b)) * lsb)
}
