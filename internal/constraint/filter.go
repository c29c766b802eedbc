// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package constraint removes disqualified product candidates before
// scoring. Filtering applies hard rules only; soft signals (category
// advisories, seasonality) are left to the scoring stage.
package constraint

import (
	"fmt"

	"github.com/pdiddy/grocery-engine/pkg/types"
)

// Result holds the surviving candidates for one ingredient plus the
// diagnostics produced while filtering. An empty survivor set is not an
// error; the caller reports the ingredient as unavailable.
type Result struct {
	// Survivors are the candidates that passed every hard rule, in
	// input order.
	Survivors []types.ProductCandidate

	// Notes records each disqualification (recall match, avoided brand,
	// strict-safety rule) for the bundle's constraint notes.
	Notes []string

	// Gaps records inconsistent candidates (negative price, non-positive
	// size) dropped before any rule ran.
	Gaps []string
}

// Filter applies the hard disqualification rules to one ingredient's
// candidates. A candidate is removed when its recall status is a direct
// product match, its brand is avoided, or strict safety is on and the
// ingredient is high-residue but the candidate is not organic.
//
// Membership in the result depends only on the inputs, never on candidate
// order; survivor order preserves input order.
func Filter(candidates []types.ProductCandidate, safety types.SafetySignal, prefs types.UserPreferences) Result {
	var res Result
	for _, c := range candidates {
		if c.Price < 0 || c.Size <= 0 {
			res.Gaps = append(res.Gaps, fmt.Sprintf("%s: candidate %s dropped: inconsistent price/size data", c.Ingredient, c.ID))
			continue
		}
		if c.Recalled || safety.Recall.DirectMatch {
			res.Notes = append(res.Notes, fmt.Sprintf("%s: candidate %s excluded: product recall match", c.Ingredient, c.ID))
			continue
		}
		if prefs.AvoidsBrand(c.Brand) {
			res.Notes = append(res.Notes, fmt.Sprintf("%s: candidate %s excluded: avoided brand %s", c.Ingredient, c.ID, c.Brand))
			continue
		}
		if prefs.StrictSafety && safety.Risk == types.RiskHighResidue && !c.Organic {
			res.Notes = append(res.Notes, fmt.Sprintf("%s: candidate %s excluded: strict safety requires organic for high-residue produce", c.Ingredient, c.ID))
			continue
		}
		res.Survivors = append(res.Survivors, c)
	}
	return res
}
