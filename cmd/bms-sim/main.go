/*
bms-sim - offline drive-cycle harness for the pack estimator
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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	arg "github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/voltlap/bms/calibration"
	"github.com/voltlap/bms/soc"
)

var version = "<not set>"

var log = logrus.New()

type Args struct {
	Cycle          string  `arg:"--cycle" help:"drive cycle CSV to replay (time_s,voltage,current_a,temperature_k); synthetic race profile when empty"`
	Out            string  `arg:"-o,--out" help:"CSV file for the estimate trajectory"`
	Duration       float64 `arg:"--duration" help:"synthetic run length in seconds"`
	Dt             float64 `arg:"--dt" help:"synthetic sample interval in seconds"`
	InitialSOC     float64 `arg:"--initial-soc" help:"estimator starting state of charge percent"`
	CapacityAh     float64 `arg:"--capacity" help:"nominal pack capacity in Ah"`
	TrueCapacityAh float64 `arg:"--true-capacity" help:"actual pack capacity in Ah, set below nominal to emulate fade"`
	TemperatureK   float64 `arg:"--temperature" help:"pack temperature in kelvin for the synthetic profile"`
	Calibration    string  `arg:"-c,--calibration" help:"calibration YAML file, compiled-in tables when empty"`
	LogLevel       string  `arg:"-l,--log-level" default:"info" help:"Set the logging level (debug, info, warn, error)"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	args := Args{
		Out:          "bms-sim.csv",
		Duration:     300,
		Dt:           0.1,
		InitialSOC:   90,
		CapacityAh:   100,
		TemperatureK: 296,
	}
	arg.MustParse(&args)
	if args.TrueCapacityAh == 0 {
		args.TrueCapacityAh = args.CapacityAh
	}
	return args
}

func main() {
	if err := runMain(); err != nil {
		log.Fatal(err.Error())
	}
}

func runMain() error {
	args := procArgs()
	switch args.LogLevel {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	log.Info("Running version: ", version)

	cal := calibration.Default()
	if args.Calibration != "" {
		var err error
		cal, err = calibration.Load(args.Calibration)
		if err != nil {
			return err
		}
	}

	out, err := os.Create(args.Out)
	if err != nil {
		return err
	}
	defer out.Close()
	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{
		"time_s", "current_a", "voltage", "temperature_k",
		"true_soc", "est_soc", "est_soh", "kalman_gain", "error_covariance",
	}); err != nil {
		return err
	}

	est := soc.New(float32(args.InitialSOC), float32(args.CapacityAh), cal)

	if args.Cycle != "" {
		return replayCycle(est, args, w)
	}
	return runSynthetic(est, cal, args, w)
}

// replayCycle feeds a recorded drive cycle through the estimator. Column
// layout: time_s, voltage, current_a, temperature_k. A header row is skipped
// if present.
func replayCycle(est *soc.Estimator, args Args, w *csv.Writer) error {
	log.Info("Replaying drive cycle from ", args.Cycle)
	file, err := os.Open(args.Cycle)
	if err != nil {
		return err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.TrimLeadingSpace = true
	lastT := math.NaN()
	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(record) < 4 {
			return fmt.Errorf("drive cycle needs 4 columns, row has %d", len(record))
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			if rows == 0 { // header row
				continue
			}
			return fmt.Errorf("bad time value %q: %v", record[0], err)
		}
		voltage, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return fmt.Errorf("bad voltage %q: %v", record[1], err)
		}
		current, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return fmt.Errorf("bad current %q: %v", record[2], err)
		}
		temperature, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return fmt.Errorf("bad temperature %q: %v", record[3], err)
		}

		dt := args.Dt
		if !math.IsNaN(lastT) {
			dt = t - lastT
		}
		lastT = t
		rows++

		est.Update(float32(voltage), float32(current), float32(temperature), float32(dt))
		if err := writeRow(w, t, current, voltage, temperature, math.NaN(), est.Status()); err != nil {
			return err
		}
	}
	log.Infof("Replayed %d samples, final SOC %.2f%%, SOH %.2f%%", rows, est.SOC(), est.SOH())
	return nil
}

// runSynthetic drives the estimator with a repeating race-lap current
// profile and a terminal voltage synthesized from the true SOC and the
// pack's internal resistance.
func runSynthetic(est *soc.Estimator, cal *calibration.Pack, args Args, w *csv.Writer) error {
	log.Infof("Synthesizing %.0fs race profile at dt=%.2fs", args.Duration, args.Dt)

	trueSOC := args.InitialSOC
	steps := int(args.Duration / args.Dt)
	temperature := args.TemperatureK

	for i := 0; i < steps; i++ {
		t := float64(i) * args.Dt
		current := lapCurrent(t)

		// Advance the true pack against its actual capacity.
		trueSOC -= current * args.Dt / (args.TrueCapacityAh * 3600) * 100
		trueSOC = math.Max(0, math.Min(100, trueSOC))

		ocv := ocvForSOC(cal, trueSOC)
		r := cal.InternalResistance(float32(trueSOC), float32(temperature))
		voltage := ocv - current*float64(r)

		// Feed the raw sensor voltages so the dual-channel decode path is
		// exercised, saturation and all.
		adcA := 2.5 + 0.0267*current
		adcB := 2.5 + 0.004*current
		est.UpdateFromADC(float32(voltage), float32(adcA), float32(adcB),
			float32(temperature), float32(args.Dt))

		if err := writeRow(w, t, current, voltage, temperature, trueSOC, est.Status()); err != nil {
			return err
		}
	}

	s := est.Status()
	log.Infof("Done: true SOC %.2f%%, estimated %.2f%%, SOH %.2f%% (%d adaptations)",
		trueSOC, s.SOCPercent, s.SOHPercent, s.SOHUpdateCount)
	return nil
}

// lapCurrent is a 60-second race lap in amps, positive discharging: an
// acceleration spike, a cruise, a regen burst, a cornering phase and a final
// straight. Every fifth lap is a pit stop at zero current, which is what
// lets the rest-period capacity adaptation fire.
func lapCurrent(t float64) float64 {
	lap := int(t / 60)
	if lap%5 == 4 {
		return 0
	}

	lt := math.Mod(t, 60)
	switch {
	case lt < 2:
		return 250 - 75*lt // launch spike decaying toward cruise
	case lt < 10:
		return 100 + 20*math.Sin(2*math.Pi*(lt-2)/8)
	case lt < 30:
		return 95 + 10*math.Sin(2*math.Pi*(lt-10)/20)
	case lt < 32:
		return -150 + 25*(lt-30) // regen braking
	case lt < 35:
		return -100 + 20*(lt-32)/3
	case lt < 50:
		return 20 + 5*math.Sin(2*math.Pi*(lt-35)/15)
	default:
		return 60 + 20*math.Sin(2*math.Pi*(lt-50)/10)
	}
}

// ocvForSOC inverts the near-linear reference calibration by mapping SOC
// onto the voltage axis span.
func ocvForSOC(cal *calibration.Pack, socPercent float64) float64 {
	vMin := float64(cal.VoltageAxis[0])
	vMax := float64(cal.VoltageAxis[len(cal.VoltageAxis)-1])
	return vMin + (vMax-vMin)*socPercent/100
}

func writeRow(w *csv.Writer, t, current, voltage, temperature, trueSOC float64, s soc.Status) error {
	trueField := ""
	if !math.IsNaN(trueSOC) {
		trueField = strconv.FormatFloat(trueSOC, 'f', 3, 64)
	}
	return w.Write([]string{
		strconv.FormatFloat(t, 'f', 2, 64),
		strconv.FormatFloat(current, 'f', 2, 64),
		strconv.FormatFloat(voltage, 'f', 4, 64),
		strconv.FormatFloat(temperature, 'f', 1, 64),
		trueField,
		strconv.FormatFloat(float64(s.SOCPercent), 'f', 3, 64),
		strconv.FormatFloat(float64(s.SOHPercent), 'f', 3, 64),
		strconv.FormatFloat(float64(s.KalmanGain), 'f', 6, 64),
		strconv.FormatFloat(float64(s.ErrorCovariance), 'f', 6, 64),
	})
}
