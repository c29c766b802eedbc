// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify maps ingredient names to store-eligibility classes.
// The classifier is an interface so the keyword default can be swapped
// for a learned or externally-delegated implementation without touching
// the allocator.
package classify

import "strings"

// Class is an ingredient's store-eligibility classification.
type Class string

const (
	// PrimaryOnly ingredients are perishable/fresh goods that only the
	// primary-capable store can supply.
	PrimaryOnly Class = "primary-only"

	// SpecialtyEligible ingredients are well served by a specialty or
	// online supplier.
	SpecialtyEligible Class = "specialty-eligible"

	// Either ingredients can come from any store.
	Either Class = "either"
)

// Classifier maps an ingredient name to its store-eligibility class.
// Implementations must be deterministic and safe for concurrent use.
type Classifier interface {
	Classify(ingredient string) Class
}

// freshKeywords mark perishable goods. Specialty/online locations cannot
// supply fresh goods, so a match forces PrimaryOnly.
var freshKeywords = []string{
	"fresh", "spinach", "lettuce", "kale", "arugula", "cilantro", "basil",
	"parsley", "berries", "strawberr", "blueberr", "raspberr", "banana",
	"apple", "avocado", "tomato", "cucumber", "pepper", "onion", "garlic",
	"carrot", "celery", "broccoli", "mushroom", "milk", "cream", "yogurt",
	"egg", "cheese", "butter", "chicken", "beef", "pork", "fish", "salmon",
	"shrimp", "tofu", "bread",
}

// specialtyKeywords mark ethnic and specialty pantry goods.
var specialtyKeywords = []string{
	"miso", "gochujang", "harissa", "tahini", "fish sauce", "oyster sauce",
	"mirin", "sake", "rice vinegar", "sesame oil", "curry paste", "dashi",
	"nori", "wakame", "kimchi", "sumac", "za'atar", "cardamom", "saffron",
	"star anise", "lemongrass", "galangal", "masa", "tamarind", "ghee",
	"paneer", "rose water", "pomegranate molasses", "furikake",
}

// KeywordClassifier is the default Classifier: case-insensitive substring
// match against fresh and specialty keyword lists.
type KeywordClassifier struct {
	fresh     []string
	specialty []string
}

// NewKeywordClassifier returns the default keyword classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{fresh: freshKeywords, specialty: specialtyKeywords}
}

// Classify maps an ingredient name to its class. An explicit "fresh"
// always forces PrimaryOnly because perishability is a hard constraint.
// Otherwise the specialty list is checked first: its entries are longer,
// more specific terms ("fish sauce", "rice vinegar") that would be
// shadowed by broad fresh keywords like "fish".
func (k *KeywordClassifier) Classify(ingredient string) Class {
	name := strings.ToLower(strings.TrimSpace(ingredient))
	if strings.Contains(name, "fresh") {
		return PrimaryOnly
	}
	for _, kw := range k.specialty {
		if strings.Contains(name, kw) {
			return SpecialtyEligible
		}
	}
	for _, kw := range k.fresh {
		if strings.Contains(name, kw) {
			return PrimaryOnly
		}
	}
	return Either
}
