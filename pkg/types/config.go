// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ScoringConfig holds the weights for the multi-factor scoring function.
// Every component adjustment is independently bounded by its weight here;
// the final score is clamped to [0,100].
type ScoringConfig struct {
	// BaseScore is the starting score before component adjustments.
	BaseScore float64 `json:"base_score" yaml:"base_score"`

	// RiskOrganicBonus applies to organic candidates of high-residue
	// ingredients.
	RiskOrganicBonus float64 `json:"risk_organic_bonus" yaml:"risk_organic_bonus"`

	// RiskConventionalPenalty applies to non-organic candidates of
	// high-residue ingredients.
	RiskConventionalPenalty float64 `json:"risk_conventional_penalty" yaml:"risk_conventional_penalty"`

	// LowResidueOrganicBonus applies to organic candidates of low-residue
	// ingredients.
	LowResidueOrganicBonus float64 `json:"low_residue_organic_bonus" yaml:"low_residue_organic_bonus"`

	// PeakSeasonBonus applies when the ingredient is at peak season.
	PeakSeasonBonus float64 `json:"peak_season_bonus" yaml:"peak_season_bonus"`

	// InSeasonBonus applies when in season but not at peak.
	InSeasonBonus float64 `json:"in_season_bonus" yaml:"in_season_bonus"`

	// OutOfSeasonPenalty applies when the ingredient is out of season.
	OutOfSeasonPenalty float64 `json:"out_of_season_penalty" yaml:"out_of_season_penalty"`

	// PriceEfficiencyMax is the bonus for the lowest unit price in the
	// surviving set; the bonus decays linearly across the set's range.
	PriceEfficiencyMax float64 `json:"price_efficiency_max" yaml:"price_efficiency_max"`

	// PreferredBrandBonus applies to candidates from a preferred brand.
	PreferredBrandBonus float64 `json:"preferred_brand_bonus" yaml:"preferred_brand_bonus"`

	// OutlierMultiple and OutlierPenalty define the price-outlier rule:
	// a candidate priced above OutlierMultiple times the set's median
	// price takes the fixed penalty.
	OutlierMultiple float64 `json:"outlier_multiple" yaml:"outlier_multiple"`
	OutlierPenalty  float64 `json:"outlier_penalty" yaml:"outlier_penalty"`

	// AttributeBonus is the per-attribute bonus (organic, local, and
	// declared positives); AttributeBonusCap bounds the stacked total.
	AttributeBonus    float64 `json:"attribute_bonus" yaml:"attribute_bonus"`
	AttributeBonusCap float64 `json:"attribute_bonus_cap" yaml:"attribute_bonus_cap"`
}

// DefaultScoring returns the documented default weights.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		BaseScore:               50,
		RiskOrganicBonus:        20,
		RiskConventionalPenalty: 20,
		LowResidueOrganicBonus:  5,
		PeakSeasonBonus:         10,
		InSeasonBonus:           5,
		OutOfSeasonPenalty:      5,
		PriceEfficiencyMax:      15,
		PreferredBrandBonus:     10,
		OutlierMultiple:         2.0,
		OutlierPenalty:          25,
		AttributeBonus:          3,
		AttributeBonusCap:       9,
	}
}

// SelectionConfig holds neighbor-selection and tier-labeling tunables.
type SelectionConfig struct {
	// CheaperScoreFloor is the minimum score a cheaper neighbor must
	// reach to qualify on score; when no cheaper candidate reaches it,
	// the lowest-priced cheaper candidate is used instead (default 30).
	CheaperScoreFloor float64 `json:"cheaper_score_floor" yaml:"cheaper_score_floor"`

	// CheaperBand and ConsciousBand bound the normalized price-position
	// ratio (recommended - cheaper) / (conscious - cheaper) that maps to
	// the "cheaper" and "conscious" tiers when both neighbors exist.
	// The defaults (0 and 1) label only the endpoints, so any
	// recommendation priced strictly between its neighbors is
	// "balanced"; tightening the band shifts near-endpoint selections
	// into the adjacent tier.
	CheaperBand   float64 `json:"cheaper_band" yaml:"cheaper_band"`
	ConsciousBand float64 `json:"conscious_band" yaml:"conscious_band"`
}

// DefaultSelection returns the documented default selection tunables.
func DefaultSelection() SelectionConfig {
	return SelectionConfig{
		CheaperScoreFloor: 30,
		CheaperBand:       0,
		ConsciousBand:     1,
	}
}

// StoreInfo describes one supply location available to the allocator.
type StoreInfo struct {
	// Name is the store's display name.
	Name string `json:"name" yaml:"name"`

	// Kind is primary-capable or specialty.
	Kind StoreKind `json:"kind" yaml:"kind"`

	// Transparency scores sourcing transparency in [0,1]; "planning"
	// urgency ranks specialty stores by it, descending.
	Transparency float64 `json:"transparency" yaml:"transparency"`

	// DeliveryHours is the typical fulfillment time; "urgent" urgency
	// ranks specialty stores by it, ascending.
	DeliveryHours int `json:"delivery_hours" yaml:"delivery_hours"`
}

// AllocationConfig holds the store roster for the allocator.
type AllocationConfig struct {
	// Primary is the primary-capable location; all perishable-only
	// ingredients go here unconditionally.
	Primary StoreInfo `json:"primary" yaml:"primary"`

	// Specialty lists the specialty locations considered for
	// specialty-eligible ingredients.
	Specialty []StoreInfo `json:"specialty" yaml:"specialty"`
}

// DefaultAllocation returns a roster with one neighborhood grocer and two
// specialty suppliers.
func DefaultAllocation() AllocationConfig {
	return AllocationConfig{
		Primary: StoreInfo{
			Name: "neighborhood-grocer",
			Kind: StorePrimaryCapable,
		},
		Specialty: []StoreInfo{
			{Name: "international-market", Kind: StoreSpecialty, Transparency: 0.9, DeliveryHours: 48},
			{Name: "online-pantry", Kind: StoreSpecialty, Transparency: 0.6, DeliveryHours: 24},
		},
	}
}

// CatalogConfig holds settings for the product catalog.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog (contains
	// catalog.db and fixture files).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`
}

// EngineConfig groups all tunables for the decision pipeline.
type EngineConfig struct {
	Scoring    ScoringConfig    `json:"scoring" yaml:"scoring"`
	Selection  SelectionConfig  `json:"selection" yaml:"selection"`
	Allocation AllocationConfig `json:"allocation" yaml:"allocation"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
}

// DefaultEngine returns the full default configuration.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		Scoring:    DefaultScoring(),
		Selection:  DefaultSelection(),
		Allocation: DefaultAllocation(),
		Catalog:    CatalogConfig{CatalogDir: "catalog"},
	}
}
