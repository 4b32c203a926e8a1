package generation

import (
	"training-builder-be/pkg/retrieval"
)

// SelectWeight picks how strongly retrieved content steers a persona's
// generation request.
//
// The persona's default tier applies unless quickTweak steps it down one
// rung (toward more original phrasing). A degraded retrieval forces the
// weight to zero regardless of tier; the resulting candidate must then
// carry the fallback flag.
func SelectWeight(p Persona, result retrieval.Result, quickTweak bool) float64 {
	if result.Degraded {
		return 0
	}

	weight := p.DefaultTier
	if quickTweak {
		weight = tierBelow(weight)
	}
	return weight
}

// tierBelow returns the next weaker rung of the tier ladder, staying on the
// weakest rung once reached.
func tierBelow(tier float64) float64 {
	for i, w := range weightTiers {
		if w == tier && i+1 < len(weightTiers) {
			return weightTiers[i+1]
		}
	}
	return weightTiers[len(weightTiers)-1]
}
