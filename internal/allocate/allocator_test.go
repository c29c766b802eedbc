// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package allocate

import (
	"strings"
	"testing"

	"github.com/pdiddy/grocery-engine/internal/classify"
	"github.com/pdiddy/grocery-engine/pkg/types"
)

func prefs() types.UserPreferences {
	return types.UserPreferences{}.Normalize()
}

func classifier() classify.Classifier {
	return classify.NewKeywordClassifier()
}

func groupNamed(t *testing.T, split types.StoreSplit, name string) types.StoreGroup {
	t.Helper()
	for _, g := range split.Stores {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("no group named %s in %+v", name, split.Stores)
	return types.StoreGroup{}
}

// One specialty item does not justify a second trip: everything folds
// into the primary store and the merge is traced.
func TestEfficiencyMergeBelowThreshold(t *testing.T) {
	ingredients := []string{"spinach", "milk", "chicken thighs", "apples", "white miso paste"}

	split := Allocate(ingredients, classifier(), nil, prefs(), types.DefaultAllocation())

	if split.TotalStoresNeeded != 1 {
		t.Fatalf("stores needed = %d, want 1", split.TotalStoresNeeded)
	}
	if !split.AppliedEfficiencyRule {
		t.Error("efficiency rule should be recorded as applied")
	}
	g := split.Stores[0]
	if g.Count != 5 {
		t.Errorf("merged group count = %d, want all 5 ingredients", g.Count)
	}
	if !g.IsPrimary {
		t.Error("the only group must be primary")
	}
	if !strings.Contains(strings.Join(split.Reasoning, "\n"), "efficiency rule") {
		t.Errorf("reasoning %v lacks an efficiency-merge entry", split.Reasoning)
	}
}

// Seven specialty items keep their own store, and the bigger specialty
// group becomes the primary stop.
func TestLargeSpecialtyGroupBecomesPrimary(t *testing.T) {
	ingredients := []string{
		"white miso paste", "gochujang", "tahini", "fish sauce", "mirin",
		"sesame oil", "saffron",
		"spinach", "milk", "eggs", "bananas",
	}

	split := Allocate(ingredients, classifier(), nil, prefs(), types.DefaultAllocation())

	if split.TotalStoresNeeded != 2 {
		t.Fatalf("stores needed = %d, want 2", split.TotalStoresNeeded)
	}
	specialty := groupNamed(t, split, "international-market")
	if specialty.Count != 7 {
		t.Errorf("specialty count = %d, want 7", specialty.Count)
	}
	if !specialty.IsPrimary {
		t.Error("the 7-item specialty group should be primary")
	}
	primary := groupNamed(t, split, "neighborhood-grocer")
	if primary.IsPrimary {
		t.Error("only one group may be primary")
	}
}

func TestPrimaryTieBreaksTowardPrimaryCapable(t *testing.T) {
	// Two specialty, two primary-only: tie at 2 apiece.
	ingredients := []string{"white miso paste", "gochujang", "spinach", "milk"}

	split := Allocate(ingredients, classifier(), nil, prefs(), types.DefaultAllocation())

	if split.TotalStoresNeeded != 2 {
		t.Fatalf("stores needed = %d, want 2", split.TotalStoresNeeded)
	}
	if !groupNamed(t, split, "neighborhood-grocer").IsPrimary {
		t.Error("tie should break toward the primary-capable store")
	}
}

func TestPrimaryGroupHasMaximumCount(t *testing.T) {
	ingredients := []string{"white miso paste", "gochujang", "tahini", "spinach", "milk"}

	split := Allocate(ingredients, classifier(), nil, prefs(), types.DefaultAllocation())

	p := split.PrimaryGroup()
	if p == nil {
		t.Fatal("split has groups but no primary")
	}
	for _, g := range split.Stores {
		if g.Count > p.Count {
			t.Errorf("group %s count %d exceeds primary count %d", g.Name, g.Count, p.Count)
		}
	}
}

func TestUrgencyChangesSpecialtyRanking(t *testing.T) {
	cfg := types.DefaultAllocation()
	ingredients := []string{"white miso paste", "gochujang"}

	planning := Allocate(ingredients, classifier(), nil, prefs(), cfg)
	if _, ok := findGroup(planning, "international-market"); !ok {
		t.Errorf("planning ranking should pick the most transparent store, got %+v", planning.Stores)
	}

	urgent := prefs()
	urgent.Urgency = types.UrgencyUrgent
	fast := Allocate(ingredients, classifier(), nil, urgent, cfg)
	if _, ok := findGroup(fast, "online-pantry"); !ok {
		t.Errorf("urgent ranking should pick the fastest-delivery store, got %+v", fast.Stores)
	}
}

func findGroup(split types.StoreSplit, name string) (types.StoreGroup, bool) {
	for _, g := range split.Stores {
		if g.Name == name {
			return g, true
		}
	}
	return types.StoreGroup{}, false
}

func TestMaxStoresCapMergesSpecialty(t *testing.T) {
	p := prefs()
	p.MaxStores = 1
	ingredients := []string{"white miso paste", "gochujang", "tahini", "spinach", "milk"}

	split := Allocate(ingredients, classifier(), nil, p, types.DefaultAllocation())

	if split.TotalStoresNeeded != 1 {
		t.Fatalf("stores needed = %d, want 1 under the cap", split.TotalStoresNeeded)
	}
	if split.Stores[0].Count != 5 {
		t.Errorf("capped group count = %d, want 5", split.Stores[0].Count)
	}
	if !strings.Contains(strings.Join(split.Reasoning, "\n"), "store cap") {
		t.Errorf("reasoning %v lacks a store-cap entry", split.Reasoning)
	}
}

func TestUnavailableIngredientsExcludedFromGroups(t *testing.T) {
	ingredients := []string{"spinach", "milk", "unicorn fruit"}
	unavailable := map[string]bool{"unicorn fruit": true}

	split := Allocate(ingredients, classifier(), unavailable, prefs(), types.DefaultAllocation())

	if len(split.Unavailable) != 1 || split.Unavailable[0] != "unicorn fruit" {
		t.Fatalf("unavailable = %v, want [unicorn fruit]", split.Unavailable)
	}
	for _, g := range split.Stores {
		for _, ing := range g.Ingredients {
			if ing == "unicorn fruit" {
				t.Error("unavailable ingredient assigned to a store group")
			}
		}
	}
}

func TestAllocateIsDeterministic(t *testing.T) {
	ingredients := []string{"white miso paste", "gochujang", "spinach", "milk", "olive oil"}

	first := Allocate(ingredients, classifier(), nil, prefs(), types.DefaultAllocation())
	second := Allocate(ingredients, classifier(), nil, prefs(), types.DefaultAllocation())

	if first.TotalStoresNeeded != second.TotalStoresNeeded {
		t.Fatalf("store counts differ across identical runs")
	}
	for i := range first.Stores {
		if first.Stores[i].Name != second.Stores[i].Name || first.Stores[i].Count != second.Stores[i].Count {
			t.Errorf("group %d differs across identical runs", i)
		}
	}
}
