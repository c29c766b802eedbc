// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"math"
	"reflect"
	"testing"

	"github.com/pdiddy/grocery-engine/pkg/types"
)

func candidate(id string, price float64, organic bool) types.ProductCandidate {
	return types.ProductCandidate{
		ID:         id,
		Ingredient: "spinach",
		Price:      price,
		Size:       1,
		UnitPrice:  price,
		Organic:    organic,
		InStock:    true,
	}
}

func componentDelta(sc types.ScoredCandidate, name string) float64 {
	for _, c := range sc.Components {
		if c.Name == name {
			return c.Delta
		}
	}
	return math.NaN()
}

// --- risk component ---

func TestRiskComponent(t *testing.T) {
	cfg := types.DefaultScoring()
	tests := []struct {
		name    string
		risk    types.RiskClass
		organic bool
		want    float64
	}{
		{"high residue organic gets large bonus", types.RiskHighResidue, true, cfg.RiskOrganicBonus},
		{"high residue conventional gets large penalty", types.RiskHighResidue, false, -cfg.RiskConventionalPenalty},
		{"low residue organic gets small bonus", types.RiskLowResidue, true, cfg.LowResidueOrganicBonus},
		{"low residue conventional neutral", types.RiskLowResidue, false, 0},
		{"unknown neutral", types.RiskUnknown, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := Score(
				[]types.ProductCandidate{candidate("p1", 3.99, tt.organic)},
				types.SafetySignal{Risk: tt.risk},
				types.SeasonalitySignal{DataGap: true},
				types.UserPreferences{}, cfg)
			if got := componentDelta(scored[0], ComponentRisk); got != tt.want {
				t.Errorf("risk delta = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- seasonality component ---

func TestSeasonalityComponent(t *testing.T) {
	cfg := types.DefaultScoring()
	tests := []struct {
		name   string
		signal types.SeasonalitySignal
		want   float64
	}{
		{"peak season", types.SeasonalitySignal{InSeason: true, PeakSeason: true}, cfg.PeakSeasonBonus},
		{"in season not peak", types.SeasonalitySignal{InSeason: true}, cfg.InSeasonBonus},
		{"out of season", types.SeasonalitySignal{}, -cfg.OutOfSeasonPenalty},
		{"data gap is neutral", types.SeasonalitySignal{DataGap: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := Score(
				[]types.ProductCandidate{candidate("p1", 3.99, false)},
				types.SafetySignal{Risk: types.RiskUnknown}, tt.signal,
				types.UserPreferences{}, cfg)
			if got := componentDelta(scored[0], ComponentSeasonality); got != tt.want {
				t.Errorf("seasonality delta = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- price efficiency ---

func TestPriceEfficiencyDecaysAcrossRange(t *testing.T) {
	cfg := types.DefaultScoring()
	scored := Score(
		[]types.ProductCandidate{
			candidate("cheap", 2.00, false),
			candidate("mid", 3.00, false),
			candidate("dear", 4.00, false),
		},
		types.SafetySignal{Risk: types.RiskUnknown},
		types.SeasonalitySignal{DataGap: true},
		types.UserPreferences{}, cfg)

	byID := map[string]types.ScoredCandidate{}
	for _, sc := range scored {
		byID[sc.Candidate.ID] = sc
	}

	if got := componentDelta(byID["cheap"], ComponentPrice); got != cfg.PriceEfficiencyMax {
		t.Errorf("lowest unit price delta = %v, want full bonus %v", got, cfg.PriceEfficiencyMax)
	}
	if got := componentDelta(byID["dear"], ComponentPrice); got != 0 {
		t.Errorf("highest unit price delta = %v, want 0", got)
	}
	mid := componentDelta(byID["mid"], ComponentPrice)
	if mid <= 0 || mid >= cfg.PriceEfficiencyMax {
		t.Errorf("mid unit price delta = %v, want strictly between 0 and %v", mid, cfg.PriceEfficiencyMax)
	}
}

func TestPriceEfficiencySinglePricePoint(t *testing.T) {
	cfg := types.DefaultScoring()
	scored := Score(
		[]types.ProductCandidate{candidate("a", 3.00, false), candidate("b", 3.00, false)},
		types.SafetySignal{Risk: types.RiskUnknown},
		types.SeasonalitySignal{DataGap: true},
		types.UserPreferences{}, cfg)

	for _, sc := range scored {
		if got := componentDelta(sc, ComponentPrice); got != cfg.PriceEfficiencyMax {
			t.Errorf("%s price delta = %v, want full bonus for a flat range", sc.Candidate.ID, got)
		}
	}
}

// --- outlier penalty ---

func TestOutlierPenalty(t *testing.T) {
	cfg := types.DefaultScoring()
	scored := Score(
		[]types.ProductCandidate{
			candidate("a", 2.00, false),
			candidate("b", 3.00, false),
			candidate("spendy", 9.00, false), // median 3.00, threshold 6.00
		},
		types.SafetySignal{Risk: types.RiskUnknown},
		types.SeasonalitySignal{DataGap: true},
		types.UserPreferences{}, cfg)

	for _, sc := range scored {
		want := 0.0
		if sc.Candidate.ID == "spendy" {
			want = -cfg.OutlierPenalty
		}
		if got := componentDelta(sc, ComponentOutlier); got != want {
			t.Errorf("%s outlier delta = %v, want %v", sc.Candidate.ID, got, want)
		}
	}
}

// --- brand and attributes ---

func TestPreferredBrandBonus(t *testing.T) {
	cfg := types.DefaultScoring()
	c := candidate("p1", 3.99, false)
	c.Brand = "Earthbound"

	scored := Score([]types.ProductCandidate{c},
		types.SafetySignal{Risk: types.RiskUnknown},
		types.SeasonalitySignal{DataGap: true},
		types.UserPreferences{PreferredBrands: []string{"earthbound"}}, cfg)

	if got := componentDelta(scored[0], ComponentBrand); got != cfg.PreferredBrandBonus {
		t.Errorf("brand delta = %v, want %v", got, cfg.PreferredBrandBonus)
	}
}

func TestAttributeBonusCapped(t *testing.T) {
	cfg := types.DefaultScoring()
	c := candidate("p1", 3.99, true)
	c.Attributes = []string{"local", "fair-trade", "non-gmo", "b-corp"}

	scored := Score([]types.ProductCandidate{c},
		types.SafetySignal{Risk: types.RiskUnknown},
		types.SeasonalitySignal{DataGap: true},
		types.UserPreferences{}, cfg)

	if got := componentDelta(scored[0], ComponentAttributes); got != cfg.AttributeBonusCap {
		t.Errorf("attribute delta = %v, want cap %v", got, cfg.AttributeBonusCap)
	}
}

// --- clamping, determinism, ranking ---

func TestScoreClampedToRange(t *testing.T) {
	cfg := types.DefaultScoring()
	cfg.RiskConventionalPenalty = 500

	scored := Score([]types.ProductCandidate{candidate("p1", 3.99, false)},
		types.SafetySignal{Risk: types.RiskHighResidue},
		types.SeasonalitySignal{},
		types.UserPreferences{}, cfg)

	if scored[0].Score != 0 {
		t.Errorf("score = %v, want clamped to 0", scored[0].Score)
	}
}

func TestScoringIsIdempotent(t *testing.T) {
	cfg := types.DefaultScoring()
	candidates := []types.ProductCandidate{
		candidate("a", 1.99, false),
		candidate("b", 3.99, true),
		candidate("c", 5.49, true),
	}
	safety := types.SafetySignal{Risk: types.RiskHighResidue}
	season := types.SeasonalitySignal{InSeason: true}

	first := Score(candidates, safety, season, types.UserPreferences{}, cfg)
	second := Score(candidates, safety, season, types.UserPreferences{}, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-scoring an unchanged set produced a different result")
	}
}

func TestRankTieBreaks(t *testing.T) {
	mk := func(id string, score, price float64) types.ScoredCandidate {
		return types.ScoredCandidate{
			Candidate: types.ProductCandidate{ID: id, Price: price},
			Score:     score,
		}
	}
	scored := []types.ScoredCandidate{
		mk("z", 70, 3.00),
		mk("a", 70, 3.00),
		mk("m", 70, 2.00),
		mk("top", 90, 9.00),
	}

	Rank(scored)

	want := []string{"top", "m", "a", "z"}
	for i, id := range want {
		if scored[i].Candidate.ID != id {
			t.Fatalf("rank[%d] = %s, want %s (score desc, price asc, id asc)", i, scored[i].Candidate.ID, id)
		}
	}
}

func TestReasonMentionsDominantComponents(t *testing.T) {
	cfg := types.DefaultScoring()
	scored := Score([]types.ProductCandidate{candidate("p1", 3.99, true)},
		types.SafetySignal{Risk: types.RiskHighResidue},
		types.SeasonalitySignal{InSeason: true},
		types.UserPreferences{}, cfg)

	reason := Reason(scored[0])
	if reason == "" {
		t.Fatal("reason is empty")
	}
}
