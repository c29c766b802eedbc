// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explain builds the read-only per-item context consumed by a
// downstream explanation stage. The context is derived strictly from a
// finalized plan; nothing here feeds back into scoring or tier labels.
package explain

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/grocery-engine/internal/engine"
	"github.com/pdiddy/grocery-engine/pkg/types"
)

// NeighborSummary condenses a neighbor selection for the explainer.
type NeighborSummary struct {
	ProductID string  `json:"product_id" yaml:"product_id"`
	Brand     string  `json:"brand" yaml:"brand"`
	Price     float64 `json:"price" yaml:"price"`
	Score     float64 `json:"score" yaml:"score"`
}

// ItemContext is the explanation input for one decided ingredient.
type ItemContext struct {
	Ingredient string                 `json:"ingredient" yaml:"ingredient"`
	Brand      string                 `json:"brand" yaml:"brand"`
	Title      string                 `json:"title" yaml:"title"`
	Price      float64                `json:"price" yaml:"price"`
	Tier       types.Tier             `json:"tier" yaml:"tier"`
	Score      float64                `json:"score" yaml:"score"`
	Components []types.ScoreComponent `json:"components" yaml:"components"`
	Cheaper    *NeighborSummary       `json:"cheaper,omitempty" yaml:"cheaper,omitempty"`
	Conscious  *NeighborSummary       `json:"conscious,omitempty" yaml:"conscious,omitempty"`
}

// Build derives one ItemContext per decided item, in bundle order.
func Build(res *engine.Result) []ItemContext {
	contexts := make([]ItemContext, 0, len(res.Bundle.Items))
	for _, item := range res.Bundle.Items {
		ranked := res.Breakdowns[item.Ingredient]

		ic := ItemContext{
			Ingredient: item.Ingredient,
			Tier:       item.Tier,
			Score:      item.Score,
		}
		if sc := findScored(ranked, item.ProductID); sc != nil {
			ic.Brand = sc.Candidate.Brand
			ic.Title = sc.Candidate.Title
			ic.Price = sc.Candidate.Price
			ic.Components = sc.Components
		}
		ic.Cheaper = summarize(ranked, item.CheaperID)
		ic.Conscious = summarize(ranked, item.ConsciousID)
		contexts = append(contexts, ic)
	}
	return contexts
}

// Write serializes the explanation contexts as YAML to w.
func Write(contexts []ItemContext, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(contexts); err != nil {
		return fmt.Errorf("encoding explanation context: %w", err)
	}
	return nil
}

func findScored(ranked []types.ScoredCandidate, id string) *types.ScoredCandidate {
	for i := range ranked {
		if ranked[i].Candidate.ID == id {
			return &ranked[i]
		}
	}
	return nil
}

func summarize(ranked []types.ScoredCandidate, id string) *NeighborSummary {
	if id == "" {
		return nil
	}
	sc := findScored(ranked, id)
	if sc == nil {
		return nil
	}
	return &NeighborSummary{
		ProductID: sc.Candidate.ID,
		Brand:     sc.Candidate.Brand,
		Price:     sc.Candidate.Price,
		Score:     sc.Score,
	}
}
