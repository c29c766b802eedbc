// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bundle aggregates per-ingredient decisions into one
// DecisionBundle with cart-level totals, deltas, and diagnostics.
package bundle

import (
	"fmt"

	"github.com/pdiddy/grocery-engine/internal/scoring"
	"github.com/pdiddy/grocery-engine/internal/selection"
	"github.com/pdiddy/grocery-engine/pkg/types"
)

// ItemResult is one ingredient's outcome entering assembly. A nil
// Selection means no candidate survived; the ingredient is then recorded
// in the bundle's constraint notes instead of producing an item.
type ItemResult struct {
	Ingredient  string
	Selection   *selection.Selection
	Notes       []string
	Gaps        []string
	SafetyNotes []string
}

// Unavailable reports whether the ingredient has no surviving candidate.
func (r ItemResult) Unavailable() bool { return r.Selection == nil }

// Assemble builds the DecisionBundle from per-ingredient results. The
// results slice must be in the caller's ingredient order; item order
// preserves it for display stability. Totals are plain sums, so
// processing order cannot affect them.
func Assemble(results []ItemResult) types.DecisionBundle {
	var b types.DecisionBundle

	for _, r := range results {
		b.ConstraintNotes = append(b.ConstraintNotes, r.Notes...)
		b.DataGaps = append(b.DataGaps, r.Gaps...)

		if r.Selection == nil {
			b.ConstraintNotes = append(b.ConstraintNotes,
				fmt.Sprintf("%s: unavailable, no candidate passed the constraint filter", r.Ingredient))
			continue
		}

		sel := *r.Selection
		b.Items = append(b.Items, itemFrom(r.Ingredient, sel, r.SafetyNotes))

		rec := sel.Recommended.Candidate.Price
		b.Totals.Balanced += rec
		if sel.Cheaper != nil {
			b.Totals.Cheaper += sel.Cheaper.Candidate.Price
		} else {
			b.Totals.Cheaper += rec
		}
		if sel.Conscious != nil {
			b.Totals.Conscious += sel.Conscious.Candidate.Price
		} else {
			b.Totals.Conscious += rec
		}
	}

	b.Deltas = types.TierDeltas{
		CheaperVsBalanced:   b.Totals.Cheaper - b.Totals.Balanced,
		ConsciousVsBalanced: b.Totals.Conscious - b.Totals.Balanced,
	}
	return b
}

// itemFrom converts a finalized selection into an immutable DecisionItem.
func itemFrom(ingredient string, sel selection.Selection, safetyNotes []string) types.DecisionItem {
	item := types.DecisionItem{
		Ingredient:  ingredient,
		ProductID:   sel.Recommended.Candidate.ID,
		Tier:        sel.Tier,
		Score:       sel.Recommended.Score,
		Reason:      scoring.Reason(sel.Recommended),
		Attributes:  attributesOf(sel.Recommended.Candidate),
		SafetyNotes: safetyNotes,
	}
	if sel.Cheaper != nil {
		item.CheaperID = sel.Cheaper.Candidate.ID
	}
	if sel.Conscious != nil {
		item.ConsciousID = sel.Conscious.Candidate.ID
	}
	return item
}

// attributesOf lists the candidate's positive attributes, with the
// organic flag folded in ahead of the declared list.
func attributesOf(c types.ProductCandidate) []string {
	var attrs []string
	if c.Organic {
		attrs = append(attrs, "organic")
	}
	attrs = append(attrs, c.Attributes...)
	return attrs
}
