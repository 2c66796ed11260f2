// Package calibration holds the pack calibration tables and the bilinear
// lookup engine used to derive SOC from terminal voltage and internal
// resistance from SOC. Tables are built once (compiled-in defaults or a YAML
// file) and shared read-only between any number of estimators.
package calibration

import "fmt"

// Pack is one battery's calibration set. SOCTable rows are indexed by
// VoltageAxis and columns by TemperatureAxis; ResistanceTable rows are
// indexed by SOCAxis and columns by TemperatureAxis. All axes must be
// strictly increasing.
type Pack struct {
	VoltageAxis     []float32   `yaml:"voltage_axis"`
	TemperatureAxis []float32   `yaml:"temperature_axis"`
	SOCAxis         []float32   `yaml:"soc_axis"`
	SOCTable        [][]float32 `yaml:"soc_table"`
	ResistanceTable [][]float32 `yaml:"resistance_table"`
}

// OCVSOC looks up the open-circuit-voltage SOC estimate in percent for a
// terminal voltage in volts and a temperature in kelvin. Note the result is
// only meaningful as an SOC measurement when the pack is near rest; under
// load the IR drop biases it.
func (p *Pack) OCVSOC(voltage, temperature float32) float32 {
	return Bilinear(voltage, temperature, p.VoltageAxis, p.TemperatureAxis, p.SOCTable)
}

// InternalResistance looks up the pack internal resistance in ohms for an
// SOC in percent and a temperature in kelvin.
func (p *Pack) InternalResistance(socPercent, temperature float32) float32 {
	return Bilinear(socPercent, temperature, p.SOCAxis, p.TemperatureAxis, p.ResistanceTable)
}

// Bilinear interpolates table at (x, y). Rows of table are indexed by xAxis
// and columns by yAxis, both strictly increasing with at least two samples.
// Queries beyond either end of an axis are linearly extrapolated from the
// first or last segment rather than clamped. If a bracketing interval has
// zero width the lower-corner value is returned.
func Bilinear(x, y float32, xAxis, yAxis []float32, table [][]float32) float32 {
	xi := 0
	for xi < len(xAxis)-2 && xAxis[xi+1] <= x {
		xi++
	}
	yi := 0
	for yi < len(yAxis)-2 && yAxis[yi+1] <= y {
		yi++
	}

	x1, x2 := xAxis[xi], xAxis[xi+1]
	y1, y2 := yAxis[yi], yAxis[yi+1]

	q11 := table[xi][yi]
	q12 := table[xi][yi+1]
	q21 := table[xi+1][yi]
	q22 := table[xi+1][yi+1]

	if x2-x1 == 0 || y2-y1 == 0 {
		return q11
	}

	fxy1 := ((y2-y)/(y2-y1))*q11 + ((y-y1)/(y2-y1))*q12
	fxy2 := ((y2-y)/(y2-y1))*q21 + ((y-y1)/(y2-y1))*q22

	return ((x2-x)/(x2-x1))*fxy1 + ((x-x1)/(x2-x1))*fxy2
}

// Validate checks the calibration for correctness. It performs declarative
// validation only and does not mutate the pack.
func (p *Pack) Validate() error {
	if err := checkAxis("voltage_axis", p.VoltageAxis); err != nil {
		return err
	}
	if err := checkAxis("temperature_axis", p.TemperatureAxis); err != nil {
		return err
	}
	if err := checkAxis("soc_axis", p.SOCAxis); err != nil {
		return err
	}
	if err := checkTable("soc_table", p.SOCTable, len(p.VoltageAxis), len(p.TemperatureAxis)); err != nil {
		return err
	}
	return checkTable("resistance_table", p.ResistanceTable, len(p.SOCAxis), len(p.TemperatureAxis))
}

func checkAxis(name string, axis []float32) error {
	if len(axis) < 2 {
		return fmt.Errorf("%s: need at least 2 samples, have %d", name, len(axis))
	}
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return fmt.Errorf("%s: not strictly increasing at index %d (%v after %v)",
				name, i, axis[i], axis[i-1])
		}
	}
	return nil
}

func checkTable(name string, table [][]float32, rows, cols int) error {
	if len(table) != rows {
		return fmt.Errorf("%s: have %d rows, axis has %d samples", name, len(table), rows)
	}
	for i, row := range table {
		if len(row) != cols {
			return fmt.Errorf("%s: row %d has %d columns, axis has %d samples", name, i, len(row), cols)
		}
	}
	return nil
}
