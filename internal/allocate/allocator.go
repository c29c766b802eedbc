// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package allocate groups a classified ingredient list into supply
// locations under the efficiency rule: a secondary store is only worth a
// trip when enough ingredients justify it.
package allocate

import (
	"fmt"
	"sort"

	"github.com/pdiddy/grocery-engine/internal/classify"
	"github.com/pdiddy/grocery-engine/pkg/types"
)

// Allocate splits ingredients across the configured store roster.
// Primary-only ingredients go to the primary-capable store
// unconditionally; specialty-eligible ingredients are tentatively
// assigned to the top-ranked specialty store; ingredients in unavailable
// are excluded from every group. The result is fully deterministic given
// the same classification and thresholds.
func Allocate(ingredients []string, classifier classify.Classifier, unavailable map[string]bool, prefs types.UserPreferences, cfg types.AllocationConfig) types.StoreSplit {
	split := types.StoreSplit{}

	primary := &types.StoreGroup{Name: cfg.Primary.Name, Kind: cfg.Primary.Kind}
	var specialtyGroup *types.StoreGroup

	ranked := rankSpecialty(cfg.Specialty, prefs.Urgency)
	if len(ranked) > 0 {
		split.Reasoning = append(split.Reasoning,
			fmt.Sprintf("specialty ranking for %s urgency: %s", prefs.Urgency, ranked[0].Name))
		specialtyGroup = &types.StoreGroup{Name: ranked[0].Name, Kind: ranked[0].Kind}
	}

	for _, ing := range ingredients {
		if unavailable[ing] {
			split.Unavailable = append(split.Unavailable, ing)
			split.Reasoning = append(split.Reasoning,
				fmt.Sprintf("%s: no eligible candidate anywhere, excluded from all stores", ing))
			continue
		}
		switch classifier.Classify(ing) {
		case classify.SpecialtyEligible:
			if specialtyGroup != nil {
				specialtyGroup.Ingredients = append(specialtyGroup.Ingredients, ing)
			} else {
				split.Reasoning = append(split.Reasoning,
					fmt.Sprintf("%s: specialty-eligible but no specialty store configured, assigned to %s", ing, primary.Name))
				primary.Ingredients = append(primary.Ingredients, ing)
			}
		default:
			// Primary-only by the fresh-goods rule, or "either" which
			// defaults to the primary trip.
			primary.Ingredients = append(primary.Ingredients, ing)
		}
	}

	// Efficiency rule: an under-threshold specialty group is not worth a
	// second trip.
	if specialtyGroup != nil && len(specialtyGroup.Ingredients) > 0 &&
		len(specialtyGroup.Ingredients) < prefs.MinItemsForSecondaryStore {
		split.AppliedEfficiencyRule = true
		split.Reasoning = append(split.Reasoning,
			fmt.Sprintf("efficiency rule: only %d item(s) for %s (minimum %d), merged into %s",
				len(specialtyGroup.Ingredients), specialtyGroup.Name,
				prefs.MinItemsForSecondaryStore, primary.Name))
		primary.Ingredients = append(primary.Ingredients, specialtyGroup.Ingredients...)
		specialtyGroup.Ingredients = nil
	}

	var groups []types.StoreGroup
	if len(primary.Ingredients) > 0 {
		groups = append(groups, *primary)
	}
	if specialtyGroup != nil && len(specialtyGroup.Ingredients) > 0 {
		groups = append(groups, *specialtyGroup)
	}

	// Enforce the store cap by folding the smallest specialty group into
	// the primary-capable group.
	for len(groups) > prefs.MaxStores {
		idx := smallestSpecialty(groups)
		if idx < 0 {
			break
		}
		dst := primaryCapableIndex(groups)
		if dst < 0 {
			dst = 0
		}
		split.Reasoning = append(split.Reasoning,
			fmt.Sprintf("store cap %d exceeded: merged %s into %s", prefs.MaxStores, groups[idx].Name, groups[dst].Name))
		groups[dst].Ingredients = append(groups[dst].Ingredients, groups[idx].Ingredients...)
		groups = append(groups[:idx], groups[idx+1:]...)
	}

	for i := range groups {
		groups[i].Count = len(groups[i].Ingredients)
	}
	markPrimary(groups)
	if len(groups) > 0 {
		p := groups[primaryIndex(groups)]
		split.Reasoning = append(split.Reasoning,
			fmt.Sprintf("%s is the primary stop with %d item(s)", p.Name, p.Count))
	}

	split.Stores = groups
	split.TotalStoresNeeded = len(groups)
	return split
}

// rankSpecialty orders specialty stores for the given urgency: planning
// favors transparency, urgent favors delivery speed. Ties break on name
// so the ranking is stable across runs.
func rankSpecialty(stores []types.StoreInfo, urgency types.Urgency) []types.StoreInfo {
	ranked := make([]types.StoreInfo, len(stores))
	copy(ranked, stores)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if urgency == types.UrgencyUrgent {
			if a.DeliveryHours != b.DeliveryHours {
				return a.DeliveryHours < b.DeliveryHours
			}
		} else {
			if a.Transparency != b.Transparency {
				return a.Transparency > b.Transparency
			}
		}
		return a.Name < b.Name
	})
	return ranked
}

// markPrimary flags the group with the greatest ingredient count,
// breaking ties in favor of the primary-capable store.
func markPrimary(groups []types.StoreGroup) {
	if len(groups) == 0 {
		return
	}
	idx := primaryIndex(groups)
	for i := range groups {
		groups[i].IsPrimary = i == idx
	}
}

func primaryIndex(groups []types.StoreGroup) int {
	best := 0
	for i := 1; i < len(groups); i++ {
		switch {
		case groups[i].Count > groups[best].Count:
			best = i
		case groups[i].Count == groups[best].Count &&
			groups[best].Kind != types.StorePrimaryCapable &&
			groups[i].Kind == types.StorePrimaryCapable:
			best = i
		}
	}
	return best
}

func primaryCapableIndex(groups []types.StoreGroup) int {
	for i := range groups {
		if groups[i].Kind == types.StorePrimaryCapable {
			return i
		}
	}
	return -1
}

func smallestSpecialty(groups []types.StoreGroup) int {
	idx := -1
	for i := range groups {
		if groups[i].Kind != types.StoreSpecialty {
			continue
		}
		if idx < 0 || len(groups[i].Ingredients) < len(groups[idx].Ingredients) {
			idx = i
		}
	}
	return idx
}
