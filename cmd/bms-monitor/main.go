/*
bms-monitor - pack state-of-charge and state-of-health monitor
Copyright (C) 2025, Voltlap

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"
	"github.com/tarm/serial"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/voltlap/bms/adc"
	"github.com/voltlap/bms/calibration"
	"github.com/voltlap/bms/soc"
	"github.com/voltlap/bms/telemetry"
)

const (
	i2cSamplePeriod = 100 * time.Millisecond

	// LM335 on ADC channel 3, 10mV per kelvin.
	tempSensorKPerVolt = 100.0
)

var version = "<not set>"

var log = logrus.New()

type Args struct {
	Serial         string  `arg:"--serial" help:"serial device carrying telemetry frames"`
	Baud           int     `arg:"--baud" help:"serial baud rate"`
	I2C            bool    `arg:"--i2c" help:"sample the measurement ADC over I2C instead of reading serial frames"`
	DividerRatio   float64 `arg:"--divider-ratio" help:"pack voltage divider ratio on ADC channel 2"`
	Calibration    string  `arg:"-c,--calibration" help:"calibration YAML file, compiled-in tables when empty"`
	InitialSOC     float64 `arg:"--initial-soc" help:"starting state of charge percent"`
	CapacityAh     float64 `arg:"--capacity" help:"nominal pack capacity in Ah"`
	CSVFile        string  `arg:"--csv" help:"CSV file to append estimates to, disabled when empty"`
	LogRateSeconds int     `arg:"--log-rate" help:"seconds between estimate log lines"`
	LogLevel       string  `arg:"-l,--log-level" default:"info" help:"Set the logging level (debug, info, warn, error)"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	args := Args{
		Serial:         "/dev/serial0",
		Baud:           115200,
		DividerRatio:   4.0,
		InitialSOC:     100,
		CapacityAh:     100,
		LogRateSeconds: 10,
	}
	arg.MustParse(&args)
	return args
}

type customFormatter struct{}

func (f *customFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s] %s\n", strings.ToUpper(entry.Level.String()), entry.Message)), nil
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
		log.Warn("Unknown log level, defaulting to info")
	}
}

// monitor serializes estimator access between the sample loop and the D-Bus
// service. The estimator itself is single-owner and has no locking.
type monitor struct {
	mu  sync.Mutex
	est *soc.Estimator
}

func (m *monitor) apply(s telemetry.Sample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.est.UpdateFromADC(s.PackVolts, s.ADCAVolts, s.ADCBVolts, s.TemperatureK, s.Dt)
}

func (m *monitor) status() soc.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.est.Status()
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err.Error())
	}
}

func runMain() error {
	log.SetFormatter(new(customFormatter))
	args := procArgs()
	setLogLevel(args.LogLevel)

	log.Info("Running version: ", version)

	cal := calibration.Default()
	if args.Calibration != "" {
		var err error
		cal, err = calibration.Load(args.Calibration)
		if err != nil {
			return err
		}
		log.Info("Loaded calibration from ", args.Calibration)
	}

	mon := &monitor{
		est: soc.New(float32(args.InitialSOC), float32(args.CapacityAh), cal),
	}

	if err := startService(mon); err != nil {
		return err
	}

	if args.I2C {
		return runI2CLoop(mon, args)
	}
	return runSerialLoop(mon, args)
}

func runSerialLoop(mon *monitor, args Args) error {
	log.Infof("Reading sample frames from %s at %d baud", args.Serial, args.Baud)
	port, err := serial.OpenPort(&serial.Config{Name: args.Serial, Baud: args.Baud})
	if err != nil {
		return fmt.Errorf("failed to open serial port: %v", err)
	}
	defer port.Close()

	reader := telemetry.NewReader(port)
	lastLog := time.Time{}
	logRate := time.Duration(args.LogRateSeconds) * time.Second

	for {
		sample, err := reader.Next()
		if err != nil {
			return fmt.Errorf("sample stream failed: %v", err)
		}
		mon.apply(sample)

		if time.Since(lastLog) > logRate {
			s := mon.status()
			log.Infof("SOC: %.2f%%, SOH: %.2f%%, V: %.3f, T: %.1fK",
				s.SOCPercent, s.SOHPercent, sample.PackVolts, sample.TemperatureK)
			if err := appendCSV(args.CSVFile, sample, s); err != nil {
				return err
			}
			lastLog = time.Now()
		}
	}
}

func runI2CLoop(mon *monitor, args Args) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open("")
	if err != nil {
		return err
	}
	defer bus.Close()

	dev := adc.New(bus, adc.DefaultAddress)
	if !dev.Present() {
		return fmt.Errorf("no ADC found at address 0x%02X", adc.DefaultAddress)
	}
	log.Info("Sampling measurement ADC over I2C")

	lastLog := time.Time{}
	logRate := time.Duration(args.LogRateSeconds) * time.Second
	lastSample := time.Now()

	ticker := time.NewTicker(i2cSamplePeriod)
	defer ticker.Stop()
	for range ticker.C {
		sample, err := readADCSample(dev, args)
		if err != nil {
			return err
		}
		now := time.Now()
		sample.Dt = float32(now.Sub(lastSample).Seconds())
		lastSample = now

		mon.apply(sample)

		if time.Since(lastLog) > logRate {
			s := mon.status()
			log.Infof("SOC: %.2f%%, SOH: %.2f%%, V: %.3f, T: %.1fK",
				s.SOCPercent, s.SOHPercent, sample.PackVolts, sample.TemperatureK)
			if err := appendCSV(args.CSVFile, sample, s); err != nil {
				return err
			}
			lastLog = time.Now()
		}
	}
	return nil
}

// Channel map on the measurement board: 0 and 1 are the two current-sense
// hall channels, 2 is the pack voltage divider, 3 is the LM335.
func readADCSample(dev *adc.ADS1015, args Args) (telemetry.Sample, error) {
	var volts [4]float32
	for ch := 0; ch < 4; ch++ {
		v, err := dev.ReadVolts(ch)
		if err != nil {
			return telemetry.Sample{}, err
		}
		volts[ch] = v
	}
	return telemetry.Sample{
		ADCAVolts:    volts[0],
		ADCBVolts:    volts[1],
		PackVolts:    volts[2] * float32(args.DividerRatio),
		TemperatureK: volts[3] * tempSensorKPerVolt,
	}, nil
}

func appendCSV(path string, sample telemetry.Sample, s soc.Status) error {
	if path == "" {
		return nil
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("%s, %.3f, %.1f, %.2f, %.2f, %.6f",
		time.Now().Format("2006-01-02 15:04:05"),
		sample.PackVolts, sample.TemperatureK, s.SOCPercent, s.SOHPercent, s.ErrorCovariance)
	_, err = file.WriteString(line + "\n")
	if err != nil {
		return err
	}
	return file.Close()
}
