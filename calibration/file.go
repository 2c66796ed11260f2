package calibration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a calibration pack from a YAML file and validates it.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration file: %w", err)
	}
	pack := &Pack{}
	if err := yaml.Unmarshal(data, pack); err != nil {
		return nil, fmt.Errorf("failed to parse calibration file %s: %w", path, err)
	}
	if err := pack.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration in %s: %w", path, err)
	}
	return pack, nil
}
