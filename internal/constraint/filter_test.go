// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package constraint

import (
	"strings"
	"testing"

	"github.com/pdiddy/grocery-engine/pkg/types"
)

func candidate(id, brand string, price float64, organic bool) types.ProductCandidate {
	return types.ProductCandidate{
		ID:         id,
		Ingredient: "spinach",
		Brand:      brand,
		Price:      price,
		Size:       1,
		UnitPrice:  price,
		Organic:    organic,
		InStock:    true,
	}
}

func TestFilterDisqualifications(t *testing.T) {
	tests := []struct {
		name          string
		candidates    []types.ProductCandidate
		safety        types.SafetySignal
		prefs         types.UserPreferences
		wantSurvivors []string
		wantNotePart  string
	}{
		{
			name: "recalled candidate excluded",
			candidates: []types.ProductCandidate{
				func() types.ProductCandidate {
					c := candidate("p1", "Acme", 2.99, false)
					c.Recalled = true
					return c
				}(),
				candidate("p2", "Acme", 3.49, false),
			},
			wantSurvivors: []string{"p2"},
			wantNotePart:  "recall",
		},
		{
			name: "ingredient-level recall match excludes all",
			candidates: []types.ProductCandidate{
				candidate("p1", "Acme", 2.99, false),
				candidate("p2", "Best", 3.49, true),
			},
			safety: types.SafetySignal{
				Recall: types.RecallStatus{DirectMatch: true},
			},
			wantSurvivors: nil,
			wantNotePart:  "recall",
		},
		{
			name: "avoided brand excluded",
			candidates: []types.ProductCandidate{
				candidate("p1", "BadBrand", 1.99, false),
				candidate("p2", "GoodBrand", 2.99, false),
			},
			prefs:         types.UserPreferences{AvoidedBrands: []string{"badbrand"}},
			wantSurvivors: []string{"p2"},
			wantNotePart:  "avoided brand",
		},
		{
			name: "strict safety removes conventional high-residue",
			candidates: []types.ProductCandidate{
				candidate("p1", "Acme", 1.99, false),
				candidate("p2", "Best", 3.99, true),
			},
			safety:        types.SafetySignal{Risk: types.RiskHighResidue},
			prefs:         types.UserPreferences{StrictSafety: true},
			wantSurvivors: []string{"p2"},
			wantNotePart:  "strict safety",
		},
		{
			name: "strict safety off keeps conventional",
			candidates: []types.ProductCandidate{
				candidate("p1", "Acme", 1.99, false),
			},
			safety:        types.SafetySignal{Risk: types.RiskHighResidue},
			wantSurvivors: []string{"p1"},
		},
		{
			name: "low residue unaffected by strict safety",
			candidates: []types.ProductCandidate{
				candidate("p1", "Acme", 1.99, false),
			},
			safety:        types.SafetySignal{Risk: types.RiskLowResidue},
			prefs:         types.UserPreferences{StrictSafety: true},
			wantSurvivors: []string{"p1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Filter(tt.candidates, tt.safety, tt.prefs)

			var got []string
			for _, c := range res.Survivors {
				got = append(got, c.ID)
			}
			if len(got) != len(tt.wantSurvivors) {
				t.Fatalf("survivors = %v, want %v", got, tt.wantSurvivors)
			}
			for i := range got {
				if got[i] != tt.wantSurvivors[i] {
					t.Errorf("survivor[%d] = %s, want %s", i, got[i], tt.wantSurvivors[i])
				}
			}
			if tt.wantNotePart != "" {
				if len(res.Notes) == 0 || !strings.Contains(strings.Join(res.Notes, "\n"), tt.wantNotePart) {
					t.Errorf("notes = %v, want one containing %q", res.Notes, tt.wantNotePart)
				}
			}
		})
	}
}

func TestFilterInconsistentCandidates(t *testing.T) {
	negative := candidate("p1", "Acme", -0.99, false)
	zeroSize := candidate("p2", "Acme", 2.99, false)
	zeroSize.Size = 0
	ok := candidate("p3", "Acme", 2.99, false)

	res := Filter([]types.ProductCandidate{negative, zeroSize, ok}, types.SafetySignal{}, types.UserPreferences{})

	if len(res.Survivors) != 1 || res.Survivors[0].ID != "p3" {
		t.Fatalf("survivors = %v, want only p3", res.Survivors)
	}
	if len(res.Gaps) != 2 {
		t.Errorf("gaps = %v, want 2 entries", res.Gaps)
	}
	if len(res.Notes) != 0 {
		t.Errorf("inconsistent candidates should be gaps, not constraint notes: %v", res.Notes)
	}
}

func TestFilterEmptyResultIsNotError(t *testing.T) {
	res := Filter(nil, types.SafetySignal{}, types.UserPreferences{})
	if res.Survivors != nil || res.Notes != nil || res.Gaps != nil {
		t.Errorf("empty input should produce an empty result, got %+v", res)
	}
}

func TestFilterMembershipIgnoresOrder(t *testing.T) {
	a := candidate("a", "Acme", 1.99, false)
	b := candidate("b", "BadBrand", 2.49, false)
	c := candidate("c", "Best", 2.99, true)
	prefs := types.UserPreferences{AvoidedBrands: []string{"BadBrand"}}

	forward := Filter([]types.ProductCandidate{a, b, c}, types.SafetySignal{}, prefs)
	reverse := Filter([]types.ProductCandidate{c, b, a}, types.SafetySignal{}, prefs)

	if len(forward.Survivors) != 2 || len(reverse.Survivors) != 2 {
		t.Fatalf("survivor counts differ: %d vs %d", len(forward.Survivors), len(reverse.Survivors))
	}
	seen := map[string]bool{}
	for _, c := range reverse.Survivors {
		seen[c.ID] = true
	}
	for _, c := range forward.Survivors {
		if !seen[c.ID] {
			t.Errorf("membership depends on input order: %s missing from reversed run", c.ID)
		}
	}
}
