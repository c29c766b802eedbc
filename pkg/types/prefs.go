// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Urgency selects how specialty stores are ranked during allocation.
type Urgency string

const (
	// UrgencyPlanning favors the highest-transparency specialty store.
	UrgencyPlanning Urgency = "planning"

	// UrgencyUrgent favors the fastest-delivery specialty store.
	UrgencyUrgent Urgency = "urgent"
)

// Default preference values applied by Normalize.
const (
	DefaultMaxStores                 = 2
	DefaultMinItemsForSecondaryStore = 2
)

// UserPreferences carries the shopper's constraints and knobs for one
// planning request. Zero values are filled in by Normalize; Validate
// rejects structurally invalid preferences before any processing begins.
type UserPreferences struct {
	// AvoidedBrands lists brands that must never be selected.
	AvoidedBrands []string `json:"avoided_brands,omitempty" yaml:"avoided_brands,omitempty"`

	// PreferredBrands lists brands that earn a scoring bonus.
	PreferredBrands []string `json:"preferred_brands,omitempty" yaml:"preferred_brands,omitempty"`

	// StrictSafety disqualifies non-organic candidates for high-residue
	// ingredients when true.
	StrictSafety bool `json:"strict_safety" yaml:"strict_safety"`

	// Urgency is "planning" or "urgent" (default "planning").
	Urgency Urgency `json:"urgency" yaml:"urgency"`

	// MaxStores caps the number of supply locations (default 2, min 1).
	MaxStores int `json:"max_stores" yaml:"max_stores"`

	// MinItemsForSecondaryStore is the efficiency threshold: a secondary
	// store must carry at least this many items or its ingredients are
	// merged into the primary store (default 2, min 1).
	MinItemsForSecondaryStore int `json:"min_items_for_secondary_store" yaml:"min_items_for_secondary_store"`
}

// Normalize fills unset fields with documented defaults and returns the
// result. It never modifies the receiver.
func (p UserPreferences) Normalize() UserPreferences {
	if p.Urgency == "" {
		p.Urgency = UrgencyPlanning
	}
	if p.MaxStores == 0 {
		p.MaxStores = DefaultMaxStores
	}
	if p.MinItemsForSecondaryStore == 0 {
		p.MinItemsForSecondaryStore = DefaultMinItemsForSecondaryStore
	}
	return p
}

// Validate checks structural preconditions. Invalid preferences are fatal
// at entry: the engine rejects the request before touching any ingredient.
func (p UserPreferences) Validate() error {
	if p.MaxStores < 1 {
		return fmt.Errorf("invalid preferences: max_stores must be >= 1, got %d", p.MaxStores)
	}
	if p.MinItemsForSecondaryStore < 1 {
		return fmt.Errorf("invalid preferences: min_items_for_secondary_store must be >= 1, got %d", p.MinItemsForSecondaryStore)
	}
	if p.Urgency != UrgencyPlanning && p.Urgency != UrgencyUrgent {
		return fmt.Errorf("invalid preferences: urgency must be %q or %q, got %q", UrgencyPlanning, UrgencyUrgent, p.Urgency)
	}
	return nil
}

// AvoidsBrand reports whether brand is in the avoided set. Matching is
// case-insensitive so catalog casing differences do not leak through.
func (p UserPreferences) AvoidsBrand(brand string) bool {
	return containsFold(p.AvoidedBrands, brand)
}

// PrefersBrand reports whether brand is in the preferred set.
func (p UserPreferences) PrefersBrand(brand string) bool {
	return containsFold(p.PreferredBrands, brand)
}

func containsFold(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
