package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finpro/internal/core"
)

// vocabularyFile is the on-disk shape of a category override:
//
//	income:
//	  - Gaji
//	  - Bonus
//	expense:
//	  - Makanan
//	  - Transportasi
type vocabularyFile struct {
	Income  []string `yaml:"income"`
	Expense []string `yaml:"expense"`
}

// LoadVocabulary reads a category vocabulary from a YAML file. An empty
// path returns the built-in defaults. Both lists must be non-empty; a file
// that drops a whole side would make every record of that type invalid.
func LoadVocabulary(path string) (core.Vocabulary, error) {
	if path == "" {
		return core.DefaultVocabulary(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.Vocabulary{}, fmt.Errorf("read categories file: %w", err)
	}

	var vf vocabularyFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return core.Vocabulary{}, fmt.Errorf("parse categories file: %w", err)
	}
	if len(vf.Income) == 0 {
		return core.Vocabulary{}, fmt.Errorf("categories file %s: income list is empty", path)
	}
	if len(vf.Expense) == 0 {
		return core.Vocabulary{}, fmt.Errorf("categories file %s: expense list is empty", path)
	}

	return core.Vocabulary{Income: vf.Income, Expense: vf.Expense}, nil
}
