// Package adc drives the ADS1015 that samples the current-sense hall
// sensors, the pack voltage divider and the temperature sensor on the
// measurement board.
package adc

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

const (
	// DefaultAddress is the ADS1015 address with ADDR tied to ground.
	DefaultAddress = 0x48

	regConversion = 0x00
	regConfig     = 0x01

	// Config register fields.
	configOSSingle    = 0x8000 // start a single conversion
	configMuxAIN0     = 0x4000 // AINx vs GND
	configPGA6144     = 0x0000 // ±6.144V full scale
	configModeSingle  = 0x0100
	configRate1600SPS = 0x0080
	configCompDisable = 0x0003

	// ±6.144V across 11 signed bits.
	voltsPerCount = 0.003

	// A 1600SPS conversion takes 625us; leave some slack before reading.
	conversionWait = time.Millisecond
)

// ADS1015 is a 4-channel 12-bit I2C ADC read in single-shot mode.
type ADS1015 struct {
	dev *i2c.Dev
}

func New(bus i2c.Bus, address uint16) *ADS1015 {
	return &ADS1015{dev: &i2c.Dev{Bus: bus, Addr: address}}
}

// Present reports whether the device answers on the bus.
func (a *ADS1015) Present() bool {
	_, err := a.readRegister(regConfig)
	return err == nil
}

// ReadVolts performs a single-shot conversion of input channel 0-3
// (referenced to ground) and returns the voltage.
func (a *ADS1015) ReadVolts(channel int) (float32, error) {
	if channel < 0 || channel > 3 {
		return 0, fmt.Errorf("no such input channel: %d", channel)
	}

	config := uint16(configOSSingle | configPGA6144 | configModeSingle |
		configRate1600SPS | configCompDisable)
	config |= uint16(configMuxAIN0 + channel<<12)

	if err := a.writeRegister(regConfig, config); err != nil {
		return 0, fmt.Errorf("failed to start conversion on channel %d: %v", channel, err)
	}
	time.Sleep(conversionWait)

	raw, err := a.readRegister(regConversion)
	if err != nil {
		return 0, fmt.Errorf("failed to read conversion on channel %d: %v", channel, err)
	}

	// 12-bit result left-aligned in the 16-bit register.
	counts := int16(raw) >> 4
	return float32(counts) * voltsPerCount, nil
}

func (a *ADS1015) writeRegister(register byte, value uint16) error {
	_, err := a.dev.Write([]byte{register, byte(value >> 8), byte(value)})
	return err
}

func (a *ADS1015) readRegister(register byte) (uint16, error) {
	data := make([]byte, 2)
	if err := a.dev.Tx([]byte{register}, data); err != nil {
		return 0, err
	}
	return uint16(data[0])<<8 | uint16(data[1]), nil
}
