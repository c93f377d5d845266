package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/platewise/platewise-backend/internal/domain"
)

type yamlFile struct {
	Ingredients []domain.Ingredient `yaml:"ingredients"`
}

// LoadFile reads a YAML ingredient dataset from disk and validates it.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var f yamlFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, &domain.CatalogLoadError{Problems: []string{fmt.Sprintf("parse yaml: %v", err)}}
	}
	return New(f.Ingredients)
}
