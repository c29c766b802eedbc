// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Tier labels a recommended product's price position between its cheaper
// and conscious neighbors. It is a display/grouping label only and never
// changes which product is recommended.
type Tier string

const (
	TierCheaper   Tier = "cheaper"
	TierBalanced  Tier = "balanced"
	TierConscious Tier = "conscious"
)

// DecisionItem is the finalized per-ingredient recommendation. Items are
// created once per planning request and never mutated afterwards.
type DecisionItem struct {
	// Ingredient is the requested ingredient name.
	Ingredient string `json:"ingredient_name" yaml:"ingredient_name"`

	// ProductID identifies the selected candidate.
	ProductID string `json:"selected_product_id" yaml:"selected_product_id"`

	// Tier is the price-position label for the selection.
	Tier Tier `json:"tier" yaml:"tier"`

	// Score is the selection's final score in [0,100].
	Score float64 `json:"score" yaml:"score"`

	// Reason is a short deterministic explanation of the selection,
	// built from the dominant score components.
	Reason string `json:"reason_short" yaml:"reason_short"`

	// CheaperID identifies the cheaper neighbor, when one qualifies.
	CheaperID string `json:"cheaper_neighbor_id,omitempty" yaml:"cheaper_neighbor_id,omitempty"`

	// ConsciousID identifies the premium/ethical neighbor, when one
	// qualifies.
	ConsciousID string `json:"conscious_neighbor_id,omitempty" yaml:"conscious_neighbor_id,omitempty"`

	// Attributes echoes the selection's positive attributes.
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// SafetyNotes lists soft safety advisories (category recalls,
	// residue warnings) attached to the selection.
	SafetyNotes []string `json:"safety_notes,omitempty" yaml:"safety_notes,omitempty"`
}

// TierTotals are cart-level sums under each tier strategy: always taking
// the cheaper neighbor, always the recommendation, or always the
// conscious neighbor (falling back to the recommendation when a neighbor
// is absent).
type TierTotals struct {
	Cheaper   float64 `json:"cheaper" yaml:"cheaper"`
	Balanced  float64 `json:"balanced" yaml:"balanced"`
	Conscious float64 `json:"conscious" yaml:"conscious"`
}

// TierDeltas are the totals expressed relative to the balanced total.
type TierDeltas struct {
	CheaperVsBalanced   float64 `json:"cheaper_vs_balanced" yaml:"cheaper_vs_balanced"`
	ConsciousVsBalanced float64 `json:"conscious_vs_balanced" yaml:"conscious_vs_balanced"`
}

// DecisionBundle aggregates all per-ingredient decisions for one planning
// request. Items preserve the caller's ingredient order; ingredients with
// no surviving candidate are recorded in ConstraintNotes instead of
// appearing as items. A new request always produces a new bundle.
type DecisionBundle struct {
	Items  []DecisionItem `json:"items" yaml:"items"`
	Totals TierTotals     `json:"totals" yaml:"totals"`
	Deltas TierDeltas     `json:"deltas" yaml:"deltas"`

	// ConstraintNotes records ingredients excluded by hard constraints
	// and other non-fatal filtering diagnostics.
	ConstraintNotes []string `json:"constraint_notes,omitempty" yaml:"constraint_notes,omitempty"`

	// DataGaps records ingredients scored with safe-default neutral
	// treatment because a signal was missing.
	DataGaps []string `json:"data_gaps,omitempty" yaml:"data_gaps,omitempty"`
}
