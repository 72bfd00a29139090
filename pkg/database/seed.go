package database

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixtures is the content of a seed file:
//
//	categories:
//	  - name: Frutas
//	    description: Frutas disponibles en temporada
//	    parameters:
//	      - name: precio base
//	        default: "100"
type Fixtures struct {
	Categories []CategoryFixture `yaml:"categories"`
}

type CategoryFixture struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Parameters  []ParameterFixture `yaml:"parameters"`
}

type ParameterFixture struct {
	Name        string `yaml:"name"`
	Default     string `yaml:"default"`
	Description string `yaml:"description"`
}

// LoadFixtures reads and parses a YAML seed file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	return ParseFixtures(raw)
}

func ParseFixtures(raw []byte) (*Fixtures, error) {
	var fixtures Fixtures
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	for i, c := range fixtures.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category #%d has no name", i+1)
		}
		for j, p := range c.Parameters {
			if p.Name == "" || p.Default == "" {
				return nil, fmt.Errorf("parameter #%d of %q needs name and default", j+1, c.Name)
			}
		}
	}
	return &fixtures, nil
}
