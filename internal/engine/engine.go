// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine orchestrates the decision pipeline: constraint
// filtering, scoring, neighbor selection, tier labeling, bundle assembly,
// and store allocation. The engine itself is pure computation over a
// read-only candidate snapshot; all I/O belongs to the repository and the
// callers.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdiddy/grocery-engine/internal/allocate"
	"github.com/pdiddy/grocery-engine/internal/bundle"
	"github.com/pdiddy/grocery-engine/internal/classify"
	"github.com/pdiddy/grocery-engine/internal/constraint"
	"github.com/pdiddy/grocery-engine/internal/scoring"
	"github.com/pdiddy/grocery-engine/internal/selection"
	"github.com/pdiddy/grocery-engine/pkg/types"
)

// Repository is the read-only candidate and signal source for one
// planning request. Implementations must return data that the engine can
// treat as immutable for the lifetime of the request; the catalog package
// provides a SQLite-backed snapshot implementation.
type Repository interface {
	// Candidates returns the product candidates for an ingredient.
	Candidates(ingredient string) []types.ProductCandidate

	// Safety returns the safety signal for an ingredient, and false when
	// no signal exists.
	Safety(ingredient string) (types.SafetySignal, bool)

	// Seasonality returns the seasonality signal for an ingredient, and
	// false when no signal exists.
	Seasonality(ingredient string) (types.SeasonalitySignal, bool)
}

// State is one step of the request lifecycle. Every transition is a pure
// function of the prior state; no step retries internally.
type State string

const (
	StateRequested          State = "REQUESTED"
	StateCandidatesFetched  State = "CANDIDATES_FETCHED"
	StateConstraintsApplied State = "CONSTRAINTS_APPLIED"
	StateScored             State = "SCORED"
	StateBundled            State = "BUNDLED"
	StateSplit              State = "SPLIT"
	StateReady              State = "READY"
)

// Request is one planning request: the ingredient list in the shopper's
// order plus their preferences.
type Request struct {
	Ingredients []string              `json:"ingredients" yaml:"ingredients"`
	Preferences types.UserPreferences `json:"preferences" yaml:"preferences"`
}

// Result is the finished plan: the decision bundle, the store split, the
// per-item scored breakdowns for downstream explanation, and the state
// trace.
type Result struct {
	Bundle types.DecisionBundle `json:"bundle" yaml:"bundle"`
	Split  types.StoreSplit     `json:"split" yaml:"split"`

	// Breakdowns holds the final ranked scored set per ingredient,
	// keyed by ingredient name. Read-only context for the explanation
	// stage; never fed back into scoring.
	Breakdowns map[string][]types.ScoredCandidate `json:"-" yaml:"-"`

	// States is the lifecycle trace, ending in READY.
	States []State `json:"states" yaml:"states"`
}

// Engine runs planning requests against a candidate repository. Engines
// are stateless across requests and safe for concurrent use.
type Engine struct {
	cfg        types.EngineConfig
	classifier classify.Classifier
}

// New builds an engine with the given tunables. A nil classifier selects
// the default keyword classifier.
func New(cfg types.EngineConfig, classifier classify.Classifier) *Engine {
	if classifier == nil {
		classifier = classify.NewKeywordClassifier()
	}
	return &Engine{cfg: cfg, classifier: classifier}
}

// Plan runs the full pipeline for one request. Invalid preferences are
// rejected before any processing; everything after that is best-effort
// with partial-failure semantics, so one bad ingredient never aborts the
// rest.
//
// Selection runs in two passes: the first decides per ingredient ignoring
// store constraints to drive classification and allocation, the second
// restricts each ingredient's candidate pool to its resolved store and
// re-runs filtering, scoring, and neighbor selection before the bundle is
// finalized.
func (e *Engine) Plan(ctx context.Context, repo Repository, req Request) (*Result, error) {
	prefs := req.Preferences.Normalize()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if len(req.Ingredients) == 0 {
		return nil, fmt.Errorf("empty request: no ingredients")
	}

	res := &Result{States: []State{StateRequested}}

	inputs := e.fetch(repo, req.Ingredients)
	res.States = append(res.States, StateCandidatesFetched)

	// Pass 1: tentative decisions ignoring store constraints.
	first := e.decideAll(ctx, inputs, prefs, nil)
	res.States = append(res.States, StateConstraintsApplied, StateScored)

	unavailable := make(map[string]bool)
	for _, r := range first {
		if r.Unavailable() {
			unavailable[r.Ingredient] = true
		}
	}
	split := allocate.Allocate(req.Ingredients, e.classifier, unavailable, prefs, e.cfg.Allocation)

	// Pass 2: re-decide with each pool restricted to the resolved store.
	resolved := storeByIngredient(split)
	final := e.decideAll(ctx, inputs, prefs, resolved)
	for i := range final {
		if final[i].Unavailable() && !first[i].Unavailable() {
			// The store restriction emptied the pool. Keep the
			// unrestricted decision and flag it rather than dropping the
			// ingredient from the cart.
			final[i] = first[i]
			final[i].Notes = append(final[i].Notes,
				fmt.Sprintf("%s: selection may be unavailable at %s", final[i].Ingredient, resolved[final[i].Ingredient]))
		}
	}

	res.Bundle = bundle.Assemble(final)
	res.States = append(res.States, StateBundled)

	res.Split = split
	res.States = append(res.States, StateSplit)

	res.Breakdowns = make(map[string][]types.ScoredCandidate, len(final))
	for _, r := range final {
		if r.Selection != nil {
			res.Breakdowns[r.Ingredient] = r.Selection.Ranked
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.States = append(res.States, StateReady)
	return res, nil
}

// ingredientInput is everything fetched for one ingredient before the
// pipeline runs.
type ingredientInput struct {
	name        string
	candidates  []types.ProductCandidate
	safety      types.SafetySignal
	seasonality types.SeasonalitySignal
	gaps        []string
}

// fetch pulls candidates and signals for every ingredient. Missing
// signals become neutral defaults with a recorded data gap, never errors.
func (e *Engine) fetch(repo Repository, ingredients []string) []ingredientInput {
	inputs := make([]ingredientInput, len(ingredients))
	for i, ing := range ingredients {
		in := ingredientInput{name: ing, candidates: repo.Candidates(ing)}

		safety, ok := repo.Safety(ing)
		if !ok {
			safety = types.SafetySignal{
				Risk:   types.RiskUnknown,
				Recall: types.RecallStatus{CategoryAdvisory: types.AdvisoryNone, Confidence: types.ConfidenceLow, DataGap: true},
			}
			in.gaps = append(in.gaps, fmt.Sprintf("%s: no safety signal, treated as unknown risk", ing))
		} else if safety.Recall.DataGap {
			in.gaps = append(in.gaps, fmt.Sprintf("%s: recall data gap, advisory treated as none", ing))
		}
		in.safety = safety

		seasonality, ok := repo.Seasonality(ing)
		if !ok {
			seasonality = types.SeasonalitySignal{DataGap: true}
			in.gaps = append(in.gaps, fmt.Sprintf("%s: no seasonality signal, treated as neutral", ing))
		} else if seasonality.DataGap {
			in.gaps = append(in.gaps, fmt.Sprintf("%s: seasonality data gap, treated as neutral", ing))
		}
		in.seasonality = seasonality

		inputs[i] = in
	}
	return inputs
}

// decideAll runs filter, scoring, and neighbor selection for every
// ingredient concurrently. Per-ingredient work has no cross-ingredient
// dependency and no shared mutable state; each goroutine writes only its
// own slot, so the fan-in preserves input order for free. When resolved
// is non-nil each ingredient's pool is restricted to its resolved store.
func (e *Engine) decideAll(ctx context.Context, inputs []ingredientInput, prefs types.UserPreferences, resolved map[string]string) []bundle.ItemResult {
	results := make([]bundle.ItemResult, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.decideOne(inputs[i], prefs, resolved)
		}(i)
	}
	wg.Wait()

	// Cancellation is coarse-grained: sub-millisecond per-ingredient
	// work is never interrupted, an abandoned request just discards it.
	if ctx.Err() != nil {
		return results
	}
	return results
}

// decideOne runs the per-ingredient pipeline: restrict to the resolved
// store if one is set, filter, score, select neighbors, label the tier,
// and collect safety notes.
func (e *Engine) decideOne(in ingredientInput, prefs types.UserPreferences, resolved map[string]string) bundle.ItemResult {
	res := bundle.ItemResult{Ingredient: in.name, Gaps: in.gaps}

	pool := in.candidates
	if store, ok := resolved[in.name]; ok {
		pool = availableAt(pool, store)
	}

	filtered := constraint.Filter(pool, in.safety, prefs)
	res.Notes = append(res.Notes, filtered.Notes...)
	res.Gaps = append(res.Gaps, filtered.Gaps...)
	if len(filtered.Survivors) == 0 {
		return res
	}

	ranked := scoring.Score(filtered.Survivors, in.safety, in.seasonality, prefs, e.cfg.Scoring)
	sel, ok := selection.Select(ranked, e.cfg.Selection)
	if !ok {
		return res
	}
	res.Selection = &sel
	res.SafetyNotes = safetyNotes(in, sel.Recommended.Candidate)
	return res
}

// safetyNotes builds the soft advisories attached to a selection.
func safetyNotes(in ingredientInput, selected types.ProductCandidate) []string {
	var notes []string
	switch in.safety.Recall.CategoryAdvisory {
	case types.AdvisoryRecent:
		notes = append(notes, fmt.Sprintf("recent recall advisory for the %s category", in.name))
	case types.AdvisoryElevated:
		notes = append(notes, fmt.Sprintf("elevated recall advisory for the %s category", in.name))
	}
	if in.safety.Risk == types.RiskHighResidue && !selected.Organic {
		notes = append(notes, "high-residue produce, consider the organic alternative")
	}
	return notes
}

// storeByIngredient inverts a store split into ingredient -> store name.
func storeByIngredient(split types.StoreSplit) map[string]string {
	resolved := make(map[string]string)
	for _, g := range split.Stores {
		for _, ing := range g.Ingredients {
			resolved[ing] = g.Name
		}
	}
	return resolved
}

func availableAt(candidates []types.ProductCandidate, store string) []types.ProductCandidate {
	var out []types.ProductCandidate
	for _, c := range candidates {
		if c.AvailableAt(store) {
			out = append(out, c)
		}
	}
	return out
}
