package pmt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadModelFile reads custom model parameters from a YAML file holding a
// single model document. The file must carry the full geometry for its
// type; missing dimensions fail validation rather than defaulting.
func LoadModelFile(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("read model file: %w", err)
	}
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Model{}, fmt.Errorf("parse model file %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}
