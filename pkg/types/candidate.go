// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the grocery-engine
// decision pipeline: product candidates, ingredient signals, user
// preferences, decision bundles, and store splits.
package types

// ProductCandidate represents one purchasable product option for an
// ingredient, as retrieved by the catalog layer. Candidates are read-only
// to the engine: every pipeline stage consumes them by value and never
// mutates the snapshot they came from.
type ProductCandidate struct {
	// ID is the catalog identifier, unique within a snapshot.
	ID string `json:"id" yaml:"id"`

	// Ingredient is the ingredient this candidate can satisfy.
	Ingredient string `json:"ingredient" yaml:"ingredient"`

	// Title is the display title as listed by the retailer.
	Title string `json:"title" yaml:"title"`

	// Brand is the product brand, used for preference matching.
	Brand string `json:"brand" yaml:"brand"`

	// Price is the shelf price in dollars. Never negative; candidates
	// with a negative price are dropped as inconsistent before scoring.
	Price float64 `json:"price" yaml:"price"`

	// Size is the package size in the unit named by Unit.
	Size float64 `json:"size" yaml:"size"`

	// UnitPrice is Price normalized by Size (e.g. dollars per ounce).
	UnitPrice float64 `json:"unit_price" yaml:"unit_price"`

	// Unit is the denomination of UnitPrice (e.g. "oz", "lb", "each").
	Unit string `json:"unit" yaml:"unit"`

	// Organic reports whether the product carries an organic certification.
	Organic bool `json:"organic" yaml:"organic"`

	// InStock reports retailer availability at snapshot time.
	InStock bool `json:"in_stock" yaml:"in_stock"`

	// Recalled reports a direct product-level recall match. Recalled
	// candidates are always disqualified.
	Recalled bool `json:"recalled" yaml:"recalled"`

	// Attributes lists declared positive attributes beyond the organic
	// flag (e.g. "local", "fair-trade"). Each earns a small score bonus
	// up to a cap.
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Stores lists the store names this candidate can be purchased at.
	// Empty means available everywhere; the engine's second pass uses
	// this to restrict pools to the resolved store.
	Stores []string `json:"stores,omitempty" yaml:"stores,omitempty"`

	// Metadata carries free-form listing details not interpreted by the
	// engine (origin, packaging, retrieval provenance).
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// AvailableAt reports whether the candidate can be purchased at the named
// store. Candidates with no store list are available everywhere.
func (c ProductCandidate) AvailableAt(store string) bool {
	if len(c.Stores) == 0 {
		return true
	}
	for _, s := range c.Stores {
		if s == store {
			return true
		}
	}
	return false
}

// ScoreComponent records one named contribution to a candidate's score,
// kept in application order for explainability.
type ScoreComponent struct {
	// Name identifies the scoring component (e.g. "risk", "seasonality").
	Name string `json:"name" yaml:"name"`

	// Delta is the signed adjustment the component applied.
	Delta float64 `json:"delta" yaml:"delta"`
}

// ScoredCandidate pairs a surviving candidate with its final score and the
// ordered component breakdown that produced it.
type ScoredCandidate struct {
	Candidate  ProductCandidate `json:"candidate" yaml:"candidate"`
	Score      float64          `json:"score" yaml:"score"`
	Components []ScoreComponent `json:"components" yaml:"components"`
}
