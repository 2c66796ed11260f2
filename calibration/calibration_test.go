package calibration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testXAxis = []float32{0, 10, 20}
	testYAxis = []float32{100, 200}
	testTable = [][]float32{
		{1, 2},
		{3, 4},
		{5, 6},
	}
)

func TestBilinearVertexExactness(t *testing.T) {
	for i, x := range testXAxis {
		for j, y := range testYAxis {
			got := Bilinear(x, y, testXAxis, testYAxis, testTable)
			assert.InDelta(t, testTable[i][j], got, 1e-5, "vertex (%v,%v)", x, y)
		}
	}
}

func TestBilinearInterior(t *testing.T) {
	// Centre of the first cell: mean of its four corners.
	got := Bilinear(5, 150, testXAxis, testYAxis, testTable)
	assert.InDelta(t, 2.5, got, 1e-5)
}

func TestBilinearContinuityAcrossSegments(t *testing.T) {
	// Values just either side of the interior axis sample x=10 must agree.
	const eps = 1e-3
	below := Bilinear(10-eps, 150, testXAxis, testYAxis, testTable)
	at := Bilinear(10, 150, testXAxis, testYAxis, testTable)
	above := Bilinear(10+eps, 150, testXAxis, testYAxis, testTable)
	assert.InDelta(t, at, below, 1e-3)
	assert.InDelta(t, at, above, 1e-3)
}

func TestBilinearExtrapolatesBeyondEdges(t *testing.T) {
	// Below the first axis sample the first segment's line continues.
	got := Bilinear(-10, 100, testXAxis, testYAxis, testTable)
	assert.InDelta(t, -1.0, got, 1e-5)

	// Above the last axis sample the last segment's line continues.
	got = Bilinear(30, 100, testXAxis, testYAxis, testTable)
	assert.InDelta(t, 7.0, got, 1e-5)
}

func TestBilinearZeroWidthInterval(t *testing.T) {
	// A degenerate axis never passes Validate, but the engine itself must
	// not divide by zero.
	xAxis := []float32{5, 5}
	got := Bilinear(5, 150, xAxis, testYAxis, [][]float32{{1, 2}, {3, 4}})
	assert.InDelta(t, 1.0, got, 1e-5)
}

func TestDefaultPackVertices(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())

	assert.InDelta(t, 0.0, p.OCVSOC(12.0584, 263), 1e-3)
	assert.InDelta(t, 100.0, p.OCVSOC(13.4147, 313), 1e-3)
	assert.InDelta(t, 50.91, p.OCVSOC(12.7434, 296), 1e-3)

	assert.InDelta(t, 0.050, p.InternalResistance(0, 263), 1e-5)
	assert.InDelta(t, 0.0, p.InternalResistance(90, 313), 1e-5)
	assert.InDelta(t, 0.013, p.InternalResistance(40, 296), 1e-5)
}

func TestValidateRejectsBadAxes(t *testing.T) {
	p := &Pack{
		VoltageAxis:     []float32{1, 1}, // not strictly increasing
		TemperatureAxis: []float32{263, 313},
		SOCAxis:         []float32{0, 100},
		SOCTable:        [][]float32{{0, 0}, {1, 1}},
		ResistanceTable: [][]float32{{0, 0}, {1, 1}},
	}
	assert.ErrorContains(t, p.Validate(), "voltage_axis")

	p.VoltageAxis = []float32{1}
	assert.ErrorContains(t, p.Validate(), "at least 2")

	p.VoltageAxis = []float32{1, 2}
	p.SOCTable = [][]float32{{0, 0}}
	assert.ErrorContains(t, p.Validate(), "soc_table")

	p.SOCTable = [][]float32{{0}, {1}}
	assert.ErrorContains(t, p.Validate(), "columns")
}

func TestLoadFromYAML(t *testing.T) {
	content := `
voltage_axis: [12.0, 12.5, 13.0]
temperature_axis: [263, 313]
soc_axis: [0, 100]
soc_table:
  - [0, 0]
  - [50, 50]
  - [100, 100]
resistance_table:
  - [0.05, 0.02]
  - [0.01, 0.0]
`
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, p.OCVSOC(12.5, 263), 1e-3)
	assert.InDelta(t, 50.0, p.OCVSOC(12.5, 313), 1e-3)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	require.NoError(t, os.WriteFile(path, []byte("voltage_axis: [1]\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
