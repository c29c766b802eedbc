// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "testing"

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()
	tests := []struct {
		ingredient string
		want       Class
	}{
		{"spinach", PrimaryOnly},
		{"Fresh Basil", PrimaryOnly},
		{"whole milk", PrimaryOnly},
		{"chicken thighs", PrimaryOnly},
		{"white miso paste", SpecialtyEligible},
		{"gochujang", SpecialtyEligible},
		{"fish sauce", SpecialtyEligible},
		{"pomegranate molasses", SpecialtyEligible},
		{"olive oil", Either},
		{"canned beans", Either},
		{"rice", Either},
	}

	for _, tt := range tests {
		t.Run(tt.ingredient, func(t *testing.T) {
			if got := c.Classify(tt.ingredient); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.ingredient, got, tt.want)
			}
		})
	}
}

// An explicit "fresh" wins even over a specialty keyword; perishability
// is the hard constraint.
func TestFreshBeatsSpecialty(t *testing.T) {
	c := NewKeywordClassifier()
	if got := c.Classify("fresh lemongrass"); got != PrimaryOnly {
		t.Errorf("Classify(fresh lemongrass) = %s, want primary-only", got)
	}
}

// stubClassifier shows the interface boundary: the allocator accepts any
// implementation.
type stubClassifier struct{ class Class }

func (s stubClassifier) Classify(string) Class { return s.class }

func TestClassifierIsPluggable(t *testing.T) {
	var c Classifier = stubClassifier{class: SpecialtyEligible}
	if got := c.Classify("anything"); got != SpecialtyEligible {
		t.Errorf("stub classifier = %s, want specialty-eligible", got)
	}
}
