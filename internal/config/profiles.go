package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"accident-reconciliation/internal/domain"
)

// Catalog is the content of a profiles file.
type Catalog struct {
	Profiles []domain.CategoryProfile `yaml:"profiles"`
	Schema   domain.Schema            `yaml:"schema"`
}

// LoadCatalog returns the built-in profiles and default schema, extended by
// the YAML file at path when path is set. File profiles replace built-ins of
// the same name.
func LoadCatalog(path string) (*domain.ProfileSet, domain.Schema, error) {
	profiles := domain.DefaultProfiles()
	if path == "" {
		return profiles, domain.DefaultSchema(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.Schema{}, &Error{Component: "profiles", Message: "failed to read " + path, Err: err}
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, domain.Schema{}, &Error{Component: "profiles", Message: "invalid file " + path, Err: err}
	}

	for _, p := range catalog.Profiles {
		profiles.Add(p)
	}
	return profiles, catalog.Schema.Merge(domain.DefaultSchema()), nil
}

// ParseCatalog decodes and validates a profiles document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	for i, p := range catalog.Profiles {
		if domain.FoldCategory(p.Name) == "" {
			return nil, fmt.Errorf("profile #%d has no name", i+1)
		}
		if len(p.Categories) == 0 {
			return nil, fmt.Errorf("profile %q has no categories", p.Name)
		}
	}
	return &catalog, nil
}
