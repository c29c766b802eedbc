// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package request reads planning-request files and writes plan results.
// A request file names the ingredients and preferences for one run and
// may inline a catalog fixture so a plan can run offline without the
// SQLite catalog.
package request

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/grocery-engine/internal/catalog"
	"github.com/pdiddy/grocery-engine/internal/engine"
	"github.com/pdiddy/grocery-engine/pkg/types"
)

// File is the on-disk representation of a planning request.
type File struct {
	// Ingredients is the shopping list in display order.
	Ingredients []string `yaml:"ingredients"`

	// Preferences are the shopper's knobs; unset fields take defaults.
	Preferences types.UserPreferences `yaml:"preferences"`

	// Catalog optionally inlines candidates and signals for offline
	// runs. When present it overrides the SQLite catalog.
	Catalog *catalog.Fixture `yaml:"catalog,omitempty"`
}

// Read loads a planning request from a YAML file.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	if len(f.Ingredients) == 0 {
		return nil, fmt.Errorf("request file %s lists no ingredients", path)
	}
	return &f, nil
}

// ResultFile is the on-disk representation of a finished plan: the
// request that produced it, the bundle, the split, and a summary.
type ResultFile struct {
	Request engine.Request       `yaml:"request"`
	Bundle  types.DecisionBundle `yaml:"bundle"`
	Split   types.StoreSplit     `yaml:"split"`
	Summary ResultSummary        `yaml:"summary"`
}

// ResultSummary records run statistics and a timestamp.
type ResultSummary struct {
	Items          int       `yaml:"items"`
	Unavailable    int       `yaml:"unavailable"`
	StoresNeeded   int       `yaml:"stores_needed"`
	CatalogVersion string    `yaml:"catalog_version,omitempty"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteResult saves a finished plan to a YAML file.
func WriteResult(path string, req engine.Request, res *engine.Result, catalogVersion string) error {
	rf := ResultFile{
		Request: req,
		Bundle:  res.Bundle,
		Split:   res.Split,
		Summary: ResultSummary{
			Items:          len(res.Bundle.Items),
			Unavailable:    len(res.Split.Unavailable),
			StoresNeeded:   res.Split.TotalStoresNeeded,
			CatalogVersion: catalogVersion,
			Timestamp:      time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
