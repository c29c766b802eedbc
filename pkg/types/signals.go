// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RiskClass is the pesticide-residue exposure tier for an ingredient.
type RiskClass string

const (
	RiskHighResidue RiskClass = "high-residue"
	RiskLowResidue  RiskClass = "low-residue"
	RiskUnknown     RiskClass = "unknown"
)

// Advisory is a category-level recall advisory severity.
type Advisory string

const (
	AdvisoryNone     Advisory = "none"
	AdvisoryRecent   Advisory = "recent"
	AdvisoryElevated Advisory = "elevated"
)

// Confidence grades how authoritative a recall signal is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// RecallStatus describes recall exposure for an ingredient's category.
// A direct product match is disqualifying; a category advisory only
// surfaces as a safety note.
type RecallStatus struct {
	// DirectMatch reports a product-level recall hit for the category.
	DirectMatch bool `json:"direct_match" yaml:"direct_match"`

	// CategoryAdvisory is the soft category-level advisory state.
	CategoryAdvisory Advisory `json:"category_advisory" yaml:"category_advisory"`

	// Confidence grades the recall data source.
	Confidence Confidence `json:"confidence" yaml:"confidence"`

	// DataGap reports that no authoritative recall data was available.
	DataGap bool `json:"data_gap" yaml:"data_gap"`
}

// SafetySignal is the per-ingredient safety input: residue risk tier plus
// recall status. Missing signals are treated as RiskUnknown with a data gap.
type SafetySignal struct {
	Risk   RiskClass    `json:"risk" yaml:"risk"`
	Recall RecallStatus `json:"recall" yaml:"recall"`
}

// SeasonalitySignal is the per-ingredient seasonality input.
type SeasonalitySignal struct {
	// InSeason reports whether the ingredient is in season regionally.
	InSeason bool `json:"in_season" yaml:"in_season"`

	// PeakSeason reports peak-season status; implies InSeason.
	PeakSeason bool `json:"peak_season" yaml:"peak_season"`

	// LocallyAvailable reports local sourcing availability.
	LocallyAvailable bool `json:"locally_available" yaml:"locally_available"`

	// DataGap reports that no seasonality data was available; the signal
	// is then treated as neutral rather than out-of-season.
	DataGap bool `json:"data_gap" yaml:"data_gap"`
}
