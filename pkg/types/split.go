// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StoreKind distinguishes full-range stores from specialty suppliers.
type StoreKind string

const (
	// StorePrimaryCapable marks a store that can supply any ingredient,
	// including fresh/perishable goods.
	StorePrimaryCapable StoreKind = "primary-capable"

	// StoreSpecialty marks a specialty or online supplier that cannot
	// carry fresh goods.
	StoreSpecialty StoreKind = "specialty"
)

// StoreGroup is one supply location and the ingredients assigned to it.
type StoreGroup struct {
	Name        string    `json:"name" yaml:"name"`
	Kind        StoreKind `json:"kind" yaml:"kind"`
	Ingredients []string  `json:"ingredients" yaml:"ingredients"`
	Count       int       `json:"count" yaml:"count"`

	// IsPrimary marks the dominant location. Exactly one group is
	// primary whenever any group exists, and it has the maximum
	// ingredient count among all groups.
	IsPrimary bool `json:"is_primary" yaml:"is_primary"`
}

// StoreSplit is the allocation of a full ingredient list across supply
// locations, with the trace of every allocation decision taken.
type StoreSplit struct {
	Stores []StoreGroup `json:"stores" yaml:"stores"`

	// Unavailable lists ingredients with no eligible candidate anywhere;
	// they are excluded from all groups and from bundle totals.
	Unavailable []string `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`

	// TotalStoresNeeded is len(Stores).
	TotalStoresNeeded int `json:"total_stores_needed" yaml:"total_stores_needed"`

	// AppliedEfficiencyRule reports whether an under-threshold specialty
	// group was merged into the primary store.
	AppliedEfficiencyRule bool `json:"applied_efficiency_rule" yaml:"applied_efficiency_rule"`

	// Reasoning is the ordered human-readable allocation trace.
	Reasoning []string `json:"reasoning" yaml:"reasoning"`
}

// PrimaryGroup returns the primary store group, or nil when the split has
// no groups.
func (s *StoreSplit) PrimaryGroup() *StoreGroup {
	for i := range s.Stores {
		if s.Stores[i].IsPrimary {
			return &s.Stores[i]
		}
	}
	return nil
}
