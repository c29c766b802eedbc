// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection picks the recommended candidate for an ingredient
// plus its cheaper and conscious (premium/ethical) neighbors, and labels
// the recommendation's tier from its price position between them.
package selection

import (
	"github.com/pdiddy/grocery-engine/pkg/types"
)

// Selection is the per-ingredient outcome of neighbor selection.
type Selection struct {
	// Recommended is the top-ranked surviving candidate.
	Recommended types.ScoredCandidate

	// Cheaper is the cheaper alternative, or nil when none qualifies.
	Cheaper *types.ScoredCandidate

	// Conscious is the premium/ethical alternative, or nil when none
	// qualifies.
	Conscious *types.ScoredCandidate

	// Tier labels Recommended's price position between the neighbors.
	Tier types.Tier

	// Ranked is the full ranked scored set the selection came from, kept
	// as read-only context for the explanation stage.
	Ranked []types.ScoredCandidate
}

// Select picks the recommended candidate and both neighbors from a ranked
// scored set (see scoring.Rank for the ordering contract). It returns the
// zero Selection and false when the set is empty.
//
// The cheaper neighbor must be priced strictly below the recommendation
// and is chosen to maximize score among candidates at or above the score
// floor; when none reaches the floor, the lowest-priced cheaper candidate
// is taken instead. The conscious neighbor is priced at or above the
// recommendation, preferring the highest score and breaking ties toward
// the higher price.
func Select(ranked []types.ScoredCandidate, cfg types.SelectionConfig) (Selection, bool) {
	if len(ranked) == 0 {
		return Selection{}, false
	}

	sel := Selection{Recommended: ranked[0], Ranked: ranked}
	if len(ranked) > 1 {
		sel.Cheaper = cheaperNeighbor(ranked, cfg)
		sel.Conscious = consciousNeighbor(ranked)
	}
	sel.Tier = tierFor(sel, cfg)
	return sel, true
}

// cheaperNeighbor scans the ranked tail for the best-scoring candidate
// strictly cheaper than the recommendation. Because the slice is ranked,
// the first candidate meeting the score floor is the score-based winner.
func cheaperNeighbor(ranked []types.ScoredCandidate, cfg types.SelectionConfig) *types.ScoredCandidate {
	recPrice := ranked[0].Candidate.Price

	var fallback *types.ScoredCandidate
	for i := 1; i < len(ranked); i++ {
		c := &ranked[i]
		if c.Candidate.Price >= recPrice {
			continue
		}
		if c.Score >= cfg.CheaperScoreFloor {
			return c
		}
		if fallback == nil || c.Candidate.Price < fallback.Candidate.Price {
			fallback = c
		}
	}
	return fallback
}

// consciousNeighbor scans the ranked tail for the best-scoring candidate
// priced at or above the recommendation, breaking score ties toward the
// higher price.
func consciousNeighbor(ranked []types.ScoredCandidate) *types.ScoredCandidate {
	recPrice := ranked[0].Candidate.Price

	var best *types.ScoredCandidate
	for i := 1; i < len(ranked); i++ {
		c := &ranked[i]
		if c.Candidate.Price < recPrice {
			continue
		}
		if best == nil ||
			c.Score > best.Score ||
			(c.Score == best.Score && c.Candidate.Price > best.Candidate.Price) {
			best = c
		}
	}
	return best
}
