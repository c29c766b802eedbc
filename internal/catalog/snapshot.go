// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pdiddy/grocery-engine/pkg/types"
)

// Snapshot is an immutable in-memory view of the catalog at one version.
// It implements the engine's Repository interface and is safe for
// concurrent use by any number of planning requests; a new ingest
// produces a new snapshot rather than mutating a loaded one.
type Snapshot struct {
	version     string
	candidates  map[string][]types.ProductCandidate
	safety      map[string]types.SafetySignal
	seasonality map[string]types.SeasonalitySignal
}

// Version returns the catalog version tag the snapshot was built from.
func (s *Snapshot) Version() string { return s.version }

// Candidates returns the product candidates for an ingredient in
// catalog-ID order.
func (s *Snapshot) Candidates(ingredient string) []types.ProductCandidate {
	return s.candidates[ingredient]
}

// Safety returns the safety signal for an ingredient.
func (s *Snapshot) Safety(ingredient string) (types.SafetySignal, bool) {
	sig, ok := s.safety[ingredient]
	return sig, ok
}

// Seasonality returns the seasonality signal for an ingredient.
func (s *Snapshot) Seasonality(ingredient string) (types.SeasonalitySignal, bool) {
	sig, ok := s.seasonality[ingredient]
	return sig, ok
}

// Ingredients lists every ingredient with at least one candidate, sorted.
func (s *Snapshot) Ingredients() []string {
	names := make([]string, 0, len(s.candidates))
	for ing := range s.candidates {
		names = append(names, ing)
	}
	sort.Strings(names)
	return names
}

// SnapshotFromFixture builds a snapshot directly from a fixture, without
// a database. Planning requests with inline candidates use this path.
func SnapshotFromFixture(f *Fixture) *Snapshot {
	snap := &Snapshot{
		version:     f.Version,
		candidates:  make(map[string][]types.ProductCandidate),
		safety:      make(map[string]types.SafetySignal, len(f.Safety)),
		seasonality: make(map[string]types.SeasonalitySignal, len(f.Seasonality)),
	}
	for _, p := range f.Products {
		snap.candidates[p.Ingredient] = append(snap.candidates[p.Ingredient], p)
	}
	for ing, cs := range snap.candidates {
		sortByID(cs)
		snap.candidates[ing] = cs
	}
	for ing, sig := range f.Safety {
		snap.safety[ing] = sig
	}
	for ing, sig := range f.Seasonality {
		snap.seasonality[ing] = sig
	}
	return snap
}

// LoadSnapshot reads the whole catalog into an immutable snapshot.
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		candidates:  make(map[string][]types.ProductCandidate),
		safety:      make(map[string]types.SafetySignal),
		seasonality: make(map[string]types.SeasonalitySignal),
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT value FROM catalog_meta WHERE key = 'version'`).Scan(&snap.version); err != nil {
		return nil, fmt.Errorf("reading catalog version: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ingredient, title, brand, price, size, unit_price, unit,
		        organic, in_stock, recalled, attributes, stores, metadata
		 FROM products ORDER BY ingredient, id`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p types.ProductCandidate
		var attrs, stores, meta string
		if err := rows.Scan(&p.ID, &p.Ingredient, &p.Title, &p.Brand, &p.Price, &p.Size,
			&p.UnitPrice, &p.Unit, &p.Organic, &p.InStock, &p.Recalled, &attrs, &stores, &meta); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		if err := unmarshalJSONList(attrs, &p.Attributes); err != nil {
			return nil, fmt.Errorf("decoding attributes for %s: %w", p.ID, err)
		}
		if err := unmarshalJSONList(stores, &p.Stores); err != nil {
			return nil, fmt.Errorf("decoding stores for %s: %w", p.ID, err)
		}
		if meta != "" && meta != "null" {
			if err := json.Unmarshal([]byte(meta), &p.Metadata); err != nil {
				return nil, fmt.Errorf("decoding metadata for %s: %w", p.ID, err)
			}
		}
		snap.candidates[p.Ingredient] = append(snap.candidates[p.Ingredient], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	if err := s.loadSafety(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadSeasonality(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) loadSafety(ctx context.Context, snap *Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ingredient, risk, recall_direct, advisory, confidence, data_gap FROM safety_signals`)
	if err != nil {
		return fmt.Errorf("querying safety signals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ing, risk, advisory, confidence string
		var direct, gap bool
		if err := rows.Scan(&ing, &risk, &direct, &advisory, &confidence, &gap); err != nil {
			return fmt.Errorf("scanning safety row: %w", err)
		}
		snap.safety[ing] = types.SafetySignal{
			Risk: types.RiskClass(risk),
			Recall: types.RecallStatus{
				DirectMatch:      direct,
				CategoryAdvisory: types.Advisory(advisory),
				Confidence:       types.Confidence(confidence),
				DataGap:          gap,
			},
		}
	}
	return rows.Err()
}

func (s *Store) loadSeasonality(ctx context.Context, snap *Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ingredient, in_season, peak_season, locally_available, data_gap FROM seasonality_signals`)
	if err != nil {
		return fmt.Errorf("querying seasonality signals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ing string
		var sig types.SeasonalitySignal
		if err := rows.Scan(&ing, &sig.InSeason, &sig.PeakSeason, &sig.LocallyAvailable, &sig.DataGap); err != nil {
			return fmt.Errorf("scanning seasonality row: %w", err)
		}
		snap.seasonality[ing] = sig
	}
	return rows.Err()
}

func unmarshalJSONList(raw string, dst *[]string) error {
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func sortByID(cs []types.ProductCandidate) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
}
