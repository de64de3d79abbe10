package helpdocs

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads a catalog from a TOML file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load help catalog %s: %w", path, err)
	}

	var catalog Catalog
	if err := k.Unmarshal("", &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal help catalog: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid help catalog %s: %w", path, err)
	}

	return &catalog, nil
}
