// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selection

import "github.com/pdiddy/grocery-engine/pkg/types"

// tierFor labels the recommendation's price position between its
// neighbors. With no cheaper neighbor the recommendation is already the
// cheap end ("cheaper"); with a cheaper neighbor but no conscious one it
// is the expensive end ("conscious"). With both neighbors present the
// label comes from the normalized price-position ratio
//
//	r = (recommended - cheaper) / (conscious - cheaper)
//
// mapped through the configured band: r <= CheaperBand is "cheaper",
// r >= ConsciousBand is "conscious", anything between is "balanced". The
// default band (0, 1) labels only the endpoints.
//
// The tier is a display label: it never changes which candidate is
// recommended.
func tierFor(sel Selection, cfg types.SelectionConfig) types.Tier {
	if sel.Cheaper == nil {
		return types.TierCheaper
	}
	if sel.Conscious == nil {
		return types.TierConscious
	}

	cheap := sel.Cheaper.Candidate.Price
	premium := sel.Conscious.Candidate.Price
	if premium <= cheap {
		// Degenerate spread; the recommendation sits between two equal
		// prices, which reads as balanced.
		return types.TierBalanced
	}

	r := (sel.Recommended.Candidate.Price - cheap) / (premium - cheap)
	switch {
	case r <= cfg.CheaperBand:
		return types.TierCheaper
	case r >= cfg.ConsciousBand:
		return types.TierConscious
	default:
		return types.TierBalanced
	}
}
