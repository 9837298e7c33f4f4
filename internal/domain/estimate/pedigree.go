package estimate

import (
	"fmt"
	"strings"
)

// Relative is the relationship of a diabetic family member to the subject.
type Relative string

// Known relationships.
const (
	Parent      Relative = "Parent"
	Sibling     Relative = "Sibling"
	Grandparent Relative = "Grandparent"
	AuntUncle   Relative = "Aunt/Uncle"
	Cousin      Relative = "Cousin"
)

var relativeWeights = map[Relative]float64{
	Parent:      1.0,
	Sibling:     0.8,
	Grandparent: 0.5,
	AuntUncle:   0.4,
	Cousin:      0.2,
}

// Relatives lists the known relationships in display order.
func Relatives() []Relative {
	return []Relative{Parent, Sibling, Grandparent, AuntUncle, Cousin}
}

// Weight returns the pedigree weight of the relationship, or 0 if unknown.
func (r Relative) Weight() float64 {
	return relativeWeights[r]
}

// ParseRelative accepts display names as well as lower, snake and kebab case
// variants ("aunt_uncle", "aunt-uncle", "aunt/uncle").
func ParseRelative(s string) (Relative, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "/", "-", "/", " ", "").Replace(key)
	for _, r := range Relatives() {
		if strings.ToLower(string(r)) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown relative: %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so forms can carry
// relatives as plain strings.
func (r *Relative) UnmarshalText(b []byte) error {
	parsed, err := ParseRelative(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RelativeWeights maps relatives to their weights.
func RelativeWeights(relatives []Relative) []float64 {
	weights := make([]float64, len(relatives))
	for i, r := range relatives {
		weights[i] = r.Weight()
	}
	return weights
}

// PedigreeScore sums relative weights into a diabetes pedigree value rounded
// to 2 decimals. A zero count yields exactly 0 whatever the weights hold.
func PedigreeScore(count int, weights []float64) float64 {
	if count == 0 {
		return 0.0
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return Round(sum, 2)
}
