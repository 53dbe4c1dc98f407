package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileData is the YAML shape of a catalog override file. A file replaces the
// built-in data wholesale; there is no per-section merging.
type fileData struct {
	Stages   []Stage               `yaml:"stages"`
	Upgrades map[int]StageUpgrades `yaml:"upgrades"`
	Tasks    []TaskDef             `yaml:"tasks"`
	Boosters []BoosterDef          `yaml:"boosters"`
}

// LoadFile reads a full catalog from a YAML file. Missing file is an error;
// callers that want the built-in data should use Default directly.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var raw fileData
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for _, t := range raw.Tasks {
		if err := t.Requires.Validate(); err != nil {
			return nil, fmt.Errorf("task %q: %w", t.ID, err)
		}
	}

	return New(raw.Stages, raw.Upgrades, raw.Tasks, raw.Boosters)
}
