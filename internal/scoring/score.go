// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring assigns each surviving candidate a deterministic score
// from weighted components. Scores are reproducible: identical inputs
// always yield identical scores, and ranking never depends on map or set
// iteration order.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/grocery-engine/pkg/types"
)

// Component names recorded in each candidate's score breakdown.
const (
	ComponentRisk        = "risk"
	ComponentSeasonality = "seasonality"
	ComponentPrice       = "price-efficiency"
	ComponentBrand       = "brand-preference"
	ComponentOutlier     = "price-outlier"
	ComponentAttributes  = "attributes"
)

// Score scores every candidate in the surviving set for one ingredient.
// The set is scored together because the price-efficiency and outlier
// components are relative to the set's price distribution. The returned
// slice is ranked: score descending, ties broken by ascending price, then
// ascending candidate ID.
func Score(survivors []types.ProductCandidate, safety types.SafetySignal, seasonality types.SeasonalitySignal, prefs types.UserPreferences, cfg types.ScoringConfig) []types.ScoredCandidate {
	if len(survivors) == 0 {
		return nil
	}

	minUnit, maxUnit := unitPriceRange(survivors)
	median := medianPrice(survivors)

	scored := make([]types.ScoredCandidate, 0, len(survivors))
	for _, c := range survivors {
		sc := types.ScoredCandidate{Candidate: c, Score: cfg.BaseScore}
		apply := func(name string, delta float64) {
			sc.Score += delta
			sc.Components = append(sc.Components, types.ScoreComponent{Name: name, Delta: delta})
		}

		apply(ComponentRisk, riskDelta(c, safety, cfg))
		apply(ComponentSeasonality, seasonalityDelta(seasonality, cfg))
		apply(ComponentPrice, priceEfficiencyDelta(c, minUnit, maxUnit, cfg))
		apply(ComponentBrand, brandDelta(c, prefs, cfg))
		apply(ComponentOutlier, outlierDelta(c, median, cfg))
		apply(ComponentAttributes, attributeDelta(c, cfg))

		sc.Score = clamp(sc.Score, 0, 100)
		scored = append(scored, sc)
	}

	Rank(scored)
	return scored
}

// Rank sorts scored candidates in place: score descending, then price
// ascending, then candidate ID ascending. This is the single tie-break
// order used everywhere in the pipeline.
func Rank(scored []types.ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Candidate.Price != b.Candidate.Price {
			return a.Candidate.Price < b.Candidate.Price
		}
		return a.Candidate.ID < b.Candidate.ID
	})
}

// Reason builds a short deterministic explanation from the strongest
// positive components of a scored candidate.
func Reason(sc types.ScoredCandidate) string {
	var parts []string
	for _, comp := range sc.Components {
		if comp.Delta <= 0 {
			continue
		}
		switch comp.Name {
		case ComponentRisk:
			parts = append(parts, "organic pick for a high-residue item")
		case ComponentSeasonality:
			parts = append(parts, "in season")
		case ComponentPrice:
			parts = append(parts, "strong unit price")
		case ComponentBrand:
			parts = append(parts, "preferred brand")
		case ComponentAttributes:
			parts = append(parts, "quality attributes")
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("best available option (score %.0f)", sc.Score)
	}
	return strings.Join(parts, ", ")
}

// riskDelta applies the pesticide-risk component: organic picks of
// high-residue produce earn the large bonus, conventional picks take the
// large penalty, organic low-residue picks earn a small bonus, and an
// unknown classification is neutral.
func riskDelta(c types.ProductCandidate, safety types.SafetySignal, cfg types.ScoringConfig) float64 {
	switch safety.Risk {
	case types.RiskHighResidue:
		if c.Organic {
			return cfg.RiskOrganicBonus
		}
		return -cfg.RiskConventionalPenalty
	case types.RiskLowResidue:
		if c.Organic {
			return cfg.LowResidueOrganicBonus
		}
	}
	return 0
}

// seasonalityDelta applies the seasonality component. A data gap is
// neutral rather than out-of-season.
func seasonalityDelta(s types.SeasonalitySignal, cfg types.ScoringConfig) float64 {
	if s.DataGap {
		return 0
	}
	switch {
	case s.PeakSeason:
		return cfg.PeakSeasonBonus
	case s.InSeason:
		return cfg.InSeasonBonus
	default:
		return -cfg.OutOfSeasonPenalty
	}
}

// priceEfficiencyDelta grants the full bonus to the set's lowest unit
// price and decays it linearly to zero at the highest. A set with a
// single price point gets the full bonus across the board.
func priceEfficiencyDelta(c types.ProductCandidate, minUnit, maxUnit float64, cfg types.ScoringConfig) float64 {
	if maxUnit <= minUnit {
		return cfg.PriceEfficiencyMax
	}
	position := (c.UnitPrice - minUnit) / (maxUnit - minUnit)
	return cfg.PriceEfficiencyMax * (1 - position)
}

func brandDelta(c types.ProductCandidate, prefs types.UserPreferences, cfg types.ScoringConfig) float64 {
	if prefs.PrefersBrand(c.Brand) {
		return cfg.PreferredBrandBonus
	}
	return 0
}

// outlierDelta applies the fixed penalty when the candidate's price
// exceeds the outlier multiple of the set's median price.
func outlierDelta(c types.ProductCandidate, median float64, cfg types.ScoringConfig) float64 {
	if median > 0 && c.Price > cfg.OutlierMultiple*median {
		return -cfg.OutlierPenalty
	}
	return 0
}

// attributeDelta sums the per-attribute bonus for the organic flag and
// every declared positive attribute, capped so attributes cannot dominate
// the score.
func attributeDelta(c types.ProductCandidate, cfg types.ScoringConfig) float64 {
	count := len(c.Attributes)
	if c.Organic {
		count++
	}
	total := float64(count) * cfg.AttributeBonus
	if total > cfg.AttributeBonusCap {
		return cfg.AttributeBonusCap
	}
	return total
}

func unitPriceRange(candidates []types.ProductCandidate) (min, max float64) {
	min, max = candidates[0].UnitPrice, candidates[0].UnitPrice
	for _, c := range candidates[1:] {
		if c.UnitPrice < min {
			min = c.UnitPrice
		}
		if c.UnitPrice > max {
			max = c.UnitPrice
		}
	}
	return min, max
}

// medianPrice returns the median shelf price of the set without mutating
// the caller's slice.
func medianPrice(candidates []types.ProductCandidate) float64 {
	prices := make([]float64, len(candidates))
	for i, c := range candidates {
		prices[i] = c.Price
	}
	sort.Float64s(prices)
	n := len(prices)
	if n%2 == 1 {
		return prices[n/2]
	}
	return (prices[n/2-1] + prices[n/2]) / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
